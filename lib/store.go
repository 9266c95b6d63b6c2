package lib

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/siliconflow/imgup-cli/meta"
)

// PutInput 一次直传所需参数
type PutInput struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
	ContentMD5  string
	Progress    ProgressCallback
}

// BlobStore 直传目标的统一抽象
type BlobStore interface {
	// Put 上传对象并返回其公开访问地址
	Put(ctx context.Context, in PutInput) (string, error)
}

// NewBlobStore 根据授权路由返回的 provider 创建对应的存储客户端
func NewBlobStore(target *UploadTarget) (BlobStore, error) {
	if target == nil {
		return nil, fmt.Errorf("upload target is empty")
	}
	switch target.Provider {
	case meta.ProviderOSS:
		return NewAliOssStorageClient(target)
	case meta.ProviderS3:
		return NewS3StorageClient(target)
	case meta.ProviderMinIO:
		return NewMinioStorageClient(target)
	case meta.ProviderPresigned:
		return NewPresignedStorageClient(target)
	}
	return nil, fmt.Errorf("unsupported storage provider [%s], only %s", target.Provider, meta.BlobProvidersStr)
}

// publicURL 优先使用服务端下发的公开地址
func publicURL(target *UploadTarget, fallback string) string {
	if target.PublicUrl != "" {
		return target.PublicUrl
	}
	return fallback
}

// progressReader 包装 io.Reader 以提供进度回调
type progressReader struct {
	reader      io.Reader
	total       int64
	progress    ProgressCallback
	readBytes   int64
	lastTime    time.Time
	minInterval time.Duration
}

func newProgressReader(r io.Reader, total int64, progress ProgressCallback) io.Reader {
	if progress == nil {
		return r
	}
	return &progressReader{
		reader:      r,
		total:       total,
		progress:    progress,
		lastTime:    time.Now(),
		minInterval: 50 * time.Millisecond,
	}
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)
	if n > 0 {
		pr.readBytes += int64(n)
		now := time.Now()
		if now.Sub(pr.lastTime) >= pr.minInterval {
			pr.progress(pr.readBytes, pr.total)
			pr.lastTime = now
		}
	}
	return n, err
}

// progressReadSeeker 可 Seek 的进度 reader；SDK 计算签名后会 Seek 回起点，进度随之回退
type progressReadSeeker struct {
	*progressReader
	seeker io.Seeker
}

func newProgressReadSeeker(rs io.ReadSeeker, total int64, progress ProgressCallback) io.ReadSeeker {
	if progress == nil {
		return rs
	}
	return &progressReadSeeker{
		progressReader: newProgressReader(rs, total, progress).(*progressReader),
		seeker:         rs,
	}
}

func (pr *progressReadSeeker) Seek(offset int64, whence int) (int64, error) {
	pos, err := pr.seeker.Seek(offset, whence)
	if err == nil {
		pr.readBytes = pos
	}
	return pos, err
}
