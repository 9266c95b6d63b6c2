package lib

import (
	"context"
	"fmt"
	"strings"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/siliconflow/imgup-cli/meta"
)

type AliOssStorageClient struct {
	ossClient     *oss.Client
	ossBucketName string
	ossRegion     string
	ossEndpoint   string
	target        *UploadTarget
}

func parseRegionFromEndpoint(endpoint string) string {
	// "oss-cn-hangzhou.aliyuncs.com" -> "cn-hangzhou"
	if strings.Contains(endpoint, "oss-") && strings.Contains(endpoint, ".aliyuncs.com") {
		start := strings.Index(endpoint, "oss-") + 4
		end := strings.Index(endpoint[start:], ".")
		if end != -1 {
			return endpoint[start : start+end]
		}
	}
	logs.Warnf("failed to parse region from endpoint: %s, using default", endpoint)
	return "cn-hangzhou"
}

// NewAliOssStorageClient 使用授权路由下发的 STS 临时凭证创建 OSS 客户端
func NewAliOssStorageClient(target *UploadTarget) (*AliOssStorageClient, error) {
	region := target.Region
	if region == "" {
		region = parseRegionFromEndpoint(target.Endpoint)
	}

	cfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credentials.NewStaticCredentialsProvider(target.AccessKeyId, target.AccessKeySecret, target.SecurityToken)).
		WithRegion(region).
		WithEndpoint(target.Endpoint)

	client := &AliOssStorageClient{
		ossClient:     oss.NewClient(cfg),
		ossBucketName: target.Bucket,
		ossRegion:     region,
		ossEndpoint:   target.Endpoint,
		target:        target,
	}
	logs.Debugf("new oss storage client: bucket=%s region=%s", client.ossBucketName, client.ossRegion)
	return client, nil
}

func (a *AliOssStorageClient) Put(ctx context.Context, in PutInput) (string, error) {
	putRequest := &oss.PutObjectRequest{
		Bucket: oss.Ptr(a.ossBucketName),
		Key:    oss.Ptr(in.Key),
		Body:   newProgressReader(in.Body, in.Size, in.Progress),
	}
	if in.Size > 0 {
		putRequest.ContentLength = oss.Ptr(in.Size)
	}
	if in.ContentType != "" {
		putRequest.ContentType = oss.Ptr(in.ContentType)
	}
	if in.ContentMD5 != "" {
		putRequest.ContentMD5 = oss.Ptr(in.ContentMD5)
	}

	if _, err := a.ossClient.PutObject(ctx, putRequest); err != nil {
		return "", fmt.Errorf("failed to put object %v", err)
	}

	// 确保进度回调显示100%
	if in.Progress != nil {
		in.Progress(in.Size, in.Size)
	}

	logs.Debugf("put object completed for %s\n", in.Key)
	return publicURL(a.target, fmt.Sprintf(meta.OSSObjectURL, a.ossBucketName, a.ossRegion, in.Key)), nil
}
