package lib

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/siliconflow/imgup-cli/meta"
)

// PresignedStorageClient 直接向预签名 URL 发起 PUT
type PresignedStorageClient struct {
	uploadURL  string
	target     *UploadTarget
	httpClient *http.Client
}

func NewPresignedStorageClient(target *UploadTarget) (*PresignedStorageClient, error) {
	u, err := url.Parse(target.UploadUrl)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("invalid presigned upload url: %q", target.UploadUrl)
	}
	return &PresignedStorageClient{
		uploadURL:  u.String(),
		target:     target,
		httpClient: &http.Client{Timeout: 30 * time.Minute},
	}, nil
}

func (p *PresignedStorageClient) Put(ctx context.Context, in PutInput) (string, error) {
	req, err := http.NewRequestWithContext(ctx, meta.HTTPPut, p.uploadURL, newProgressReader(in.Body, in.Size, in.Progress))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	if in.Size > 0 {
		req.ContentLength = in.Size
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = meta.OctetStreamContentType
	}
	req.Header.Set(meta.HeaderContentType, contentType)
	if in.ContentMD5 != "" {
		req.Header.Set(meta.HeaderContentMD5, in.ContentMD5)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("presigned upload failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("presigned upload failed: %s %s", resp.Status, string(body))
	}
	if in.Progress != nil {
		in.Progress(in.Size, in.Size)
	}

	logs.Debugf("presigned put completed for %s\n", in.Key)
	return publicURL(p.target, stripQuery(p.uploadURL)), nil
}

func stripQuery(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
