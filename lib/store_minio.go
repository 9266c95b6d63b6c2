package lib

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStorageClient S3 兼容存储（MinIO 等）
type MinioStorageClient struct {
	client *minio.Client
	bucket string
	scheme string
	host   string
	target *UploadTarget
}

func NewMinioStorageClient(target *UploadTarget) (*MinioStorageClient, error) {
	host := target.Endpoint
	secure := target.UseSSL
	switch {
	case strings.HasPrefix(host, "https://"):
		host, secure = strings.TrimPrefix(host, "https://"), true
	case strings.HasPrefix(host, "http://"):
		host, secure = strings.TrimPrefix(host, "http://"), false
	}
	host = strings.TrimRight(host, "/")

	cli, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(target.AccessKeyId, target.AccessKeySecret, target.SecurityToken),
		Secure: secure,
		Region: target.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	scheme := "http"
	if secure {
		scheme = "https"
	}
	logs.Debugf("new minio storage client: host=%s bucket=%s", host, target.Bucket)
	return &MinioStorageClient{client: cli, bucket: target.Bucket, scheme: scheme, host: host, target: target}, nil
}

func (m *MinioStorageClient) Put(ctx context.Context, in PutInput) (string, error) {
	size := in.Size
	if size <= 0 {
		size = -1
	}
	opts := minio.PutObjectOptions{
		ContentType:    in.ContentType,
		SendContentMd5: in.ContentMD5 != "",
	}
	info, err := m.client.PutObject(ctx, m.bucket, in.Key, newProgressReader(in.Body, in.Size, in.Progress), size, opts)
	if err != nil {
		return "", fmt.Errorf("minio upload failed: %w", err)
	}
	if in.Progress != nil {
		in.Progress(info.Size, info.Size)
	}

	logs.Debugf("put object completed for %s (etag: %s)\n", in.Key, info.ETag)
	return publicURL(m.target, fmt.Sprintf("%s://%s/%s/%s", m.scheme, m.host, m.bucket, in.Key)), nil
}
