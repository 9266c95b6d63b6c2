package actions

import (
	"context"

	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/siliconflow/imgup-cli/config"
	"github.com/siliconflow/imgup-cli/lib"
)

// BlobUploader 表单默认的上传实现：校验图片、可选转 WebP、经授权路由直传
type BlobUploader struct {
	Options     lib.UploadOptions
	ConvertWebP bool
	WebPQuality uint

	// convert 为空时使用 lib.ConvertImageToWebP
	convert func(path string, quality uint) (string, func(), error)
}

func NewBlobUploader(opts lib.UploadOptions, convertWebP bool, quality uint) *BlobUploader {
	return &BlobUploader{Options: opts, ConvertWebP: convertWebP, WebPQuality: quality}
}

func (u *BlobUploader) Upload(ctx context.Context, file SelectedFile, progress lib.ProgressCallback) (*lib.PutBlobResult, error) {
	if err := lib.ValidateImageFile(file.Path); err != nil {
		return nil, lib.WithStep(lib.StepReadFile, err)
	}

	path := file.Path
	if u.ConvertWebP && lib.NeedsWebPConversion(path) {
		convert := u.convert
		if convert == nil {
			convert = lib.ConvertImageToWebP
		}
		converted, cleanup, err := convert(path, u.WebPQuality)
		if err != nil {
			// 转换失败回退原格式上传
			logs.Warnf("webp conversion failed, uploading original: %v\n", err)
		} else {
			defer cleanup()
			path = converted
		}
	}

	opts := u.Options
	opts.ProgressFunc = progress
	opts.ContentType = ""
	opts.ContentMD5 = ""
	return lib.UploadFile(ctx, path, opts)
}

// NewBlobUploaderFromArgs 按命令行/配置参数组装上传实现
func NewBlobUploaderFromArgs(args *config.Argument) *BlobUploader {
	return NewBlobUploader(lib.UploadOptions{
		Access:          args.Access,
		HandleUploadURL: args.HandleUploadURL,
		Client:          lib.NewClient(args.BaseURL, args.Token),
	}, args.ConvertWebP, args.WebPQuality)
}
