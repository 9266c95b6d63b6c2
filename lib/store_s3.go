package lib

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudwego/hertz/cmd/hz/util/logs"
)

const defaultS3Region = "us-east-1"

type S3StorageClient struct {
	client   *s3.Client
	bucket   string
	endpoint string
	target   *UploadTarget
}

// NewS3StorageClient 使用临时凭证创建 S3 客户端，endpoint 为空时走 AWS 默认域名
func NewS3StorageClient(target *UploadTarget) (*S3StorageClient, error) {
	region := target.Region
	if region == "" {
		region = defaultS3Region
	}
	creds := aws.Credentials{
		AccessKeyID:     target.AccessKeyId,
		SecretAccessKey: target.AccessKeySecret,
		SessionToken:    target.SecurityToken,
		Source:          "imgup-upload-route",
	}

	opts := s3.Options{
		Region: region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return creds, nil
		})),
	}
	endpoint := target.Endpoint
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	} else {
		endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", region)
	}

	logs.Debugf("new s3 storage client: bucket=%s region=%s", target.Bucket, region)
	return &S3StorageClient{
		client:   s3.New(opts),
		bucket:   target.Bucket,
		endpoint: strings.TrimRight(endpoint, "/"),
		target:   target,
	}, nil
}

func (s *S3StorageClient) Put(ctx context.Context, in PutInput) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(in.Key),
	}
	// 可 Seek 的 body 保持可 Seek，SDK 才能计算 payload 签名
	if rs, ok := in.Body.(io.ReadSeeker); ok {
		input.Body = newProgressReadSeeker(rs, in.Size, in.Progress)
	} else {
		input.Body = newProgressReader(in.Body, in.Size, in.Progress)
	}
	if in.Size > 0 {
		input.ContentLength = aws.Int64(in.Size)
	}
	if in.ContentType != "" {
		input.ContentType = aws.String(in.ContentType)
	}
	if in.ContentMD5 != "" {
		input.ContentMD5 = aws.String(in.ContentMD5)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}
	if in.Progress != nil {
		in.Progress(in.Size, in.Size)
	}

	logs.Debugf("put object completed for %s\n", in.Key)
	return publicURL(s.target, fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, in.Key)), nil
}
