package lib

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/siliconflow/imgup-cli/lib/filehash"
	"github.com/siliconflow/imgup-cli/meta"
)

// 上传流水线的步骤名
const (
	StepOptions   = "options"
	StepReadFile  = "read file"
	StepAuthorize = "authorize"
	StepStorage   = "storage client"
	StepTransfer  = "transfer"
	StepNotify    = "notify"
)

// UploadOptions 上传选项
type UploadOptions struct {
	Access          string           // 目前仅支持 public
	HandleUploadURL string           // 授权路由，如 /api/upload
	Client          *Client          // 授权路由客户端
	ClientPayload   string           // 透传给授权路由的附加信息
	ContentType     string           // 为空时按扩展名推断
	Size            int64            // body 字节数，未知时为 0
	ContentMD5      string           // 可选，base64 MD5
	ProgressFunc    ProgressCallback // 进度回调函数
}

// Upload 先向授权路由申请直传目标，再把内容直接传到对象存储
func Upload(ctx context.Context, pathname string, body io.Reader, opts UploadOptions) (*PutBlobResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// 1. 校验参数
	if err := ValidateAccess(opts.Access); err != nil {
		return nil, WithStep(StepOptions, err)
	}
	if strings.TrimSpace(opts.HandleUploadURL) == "" {
		return nil, WithStep(StepOptions, NewValidationError("handleUploadUrl is required"))
	}
	if opts.Client == nil {
		return nil, WithStep(StepOptions, NewValidationError("upload client is not configured"))
	}
	if pathname == "" {
		return nil, WithStep(StepOptions, NewValidationError("pathname is required"))
	}
	if body == nil {
		return nil, WithStep(StepOptions, NewValidationError(meta.MsgNoFileSelected))
	}
	contentType := opts.ContentType
	if contentType == "" {
		contentType = ContentTypeFor(pathname)
	}

	// 2. 获取直传凭证
	token, err := opts.Client.GenerateClientToken(ctx, opts.HandleUploadURL, GenerateClientTokenPayload{
		Pathname:      pathname,
		ClientPayload: opts.ClientPayload,
		ContentType:   contentType,
		Size:          opts.Size,
	})
	if err != nil {
		return nil, WithStep(StepAuthorize, err)
	}
	target := token.Target
	logs.Debugf("upload target: provider=%s key=%s\n", target.Provider, target.ObjectKey)

	// 3. 创建存储客户端
	store, err := NewBlobStore(target)
	if err != nil {
		return nil, WithStep(StepStorage, err)
	}

	// 4. 直传
	url, err := store.Put(ctx, PutInput{
		Key:         target.ObjectKey,
		Body:        body,
		Size:        opts.Size,
		ContentType: contentType,
		ContentMD5:  opts.ContentMD5,
		Progress:    opts.ProgressFunc,
	})
	if err != nil {
		return nil, WithStep(StepTransfer, err)
	}

	result := &PutBlobResult{
		Url:                url,
		DownloadUrl:        downloadURL(url),
		Pathname:           target.ObjectKey,
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("inline; filename=%q", filepath.Base(pathname)),
		Size:               opts.Size,
	}

	// 5. 需要时通知授权路由，服务端可改写最终 url
	if target.Notify {
		resp, err := opts.Client.NotifyUploadCompleted(ctx, opts.HandleUploadURL, *result, token.ClientToken)
		if err != nil {
			return nil, WithStep(StepNotify, err)
		}
		if resp.Url != "" {
			result.Url = resp.Url
			result.DownloadUrl = downloadURL(resp.Url)
		}
	}

	logs.Debugf("upload succeeded: %s\n", result.Url)
	return result, nil
}

// UploadFile 上传本地文件，文件名作为 pathname
func UploadFile(ctx context.Context, path string, opts UploadOptions) (*PutBlobResult, error) {
	if err := ValidatePath(path); err != nil {
		return nil, WithStep(StepReadFile, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, WithStep(StepReadFile, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, WithStep(StepReadFile, err)
	}
	opts.Size = st.Size()

	if opts.ContentMD5 == "" {
		sum, err := filehash.ContentMD5(path)
		if err != nil {
			return nil, WithStep(StepReadFile, err)
		}
		opts.ContentMD5 = sum
	}
	return Upload(ctx, filepath.Base(path), f, opts)
}

func downloadURL(u string) string {
	if strings.Contains(u, "?") {
		return u + "&download=1"
	}
	return u + "?download=1"
}
