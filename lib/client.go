package lib

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/siliconflow/imgup-cli/meta"
	"github.com/urfave/cli/v2"
)

var validate = validator.New()

// Client 授权路由客户端
type Client struct {
	BaseURL string
	Token   string

	httpClient *http.Client
}

// NewClient New Client
func NewClient(baseURL string, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		httpClient: &http.Client{
			Transport: &http.Transport{TLSClientConfig: &tls.Config{}},
			Timeout:   30 * time.Second,
		},
	}
}

// ResolveURL 将 handleUploadUrl 解析为绝对地址，已是绝对地址时原样返回
func (c *Client) ResolveURL(handleUploadURL string) (string, error) {
	ref, err := url.Parse(handleUploadURL)
	if err != nil {
		return "", fmt.Errorf("invalid handle upload url %q: %w", handleUploadURL, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(c.BaseURL + "/")
	if err != nil || base.Host == "" {
		return "", fmt.Errorf("invalid base url %q, you can use \"--base_url\" to specify it", c.BaseURL)
	}
	return base.ResolveReference(ref).String(), nil
}

// GenerateClientToken 向授权路由申请直传凭证
func (c *Client) GenerateClientToken(ctx context.Context, handleUploadURL string, payload GenerateClientTokenPayload) (*GenerateClientTokenResp, error) {
	serverUrl, err := c.ResolveURL(handleUploadURL)
	if err != nil {
		return nil, cli.Exit(err, meta.LoadError)
	}
	body, statusCode, err := c.doPost(ctx, serverUrl, GenerateClientTokenReq{
		Type:    meta.EventGenerateClientToken,
		Payload: payload,
	}, c.authHeader())
	if err != nil {
		return nil, cli.Exit(err, meta.HttpError)
	}
	if statusCode != http.StatusOK {
		return nil, handleError(body, statusCode)
	}

	resp, err := handleResponse[GenerateClientTokenResp](body)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(resp); err != nil {
		logs.Debugf("invalid token response: %v\n", err)
		return nil, cli.Exit(fmt.Errorf("invalid upload authorization response: %w", err), meta.ServerError)
	}
	return resp, nil
}

// NotifyUploadCompleted 通知授权路由直传已完成，服务端可返回最终 url
func (c *Client) NotifyUploadCompleted(ctx context.Context, handleUploadURL string, blob PutBlobResult, clientToken string) (*UploadCompletedResp, error) {
	serverUrl, err := c.ResolveURL(handleUploadURL)
	if err != nil {
		return nil, cli.Exit(err, meta.LoadError)
	}
	body, statusCode, err := c.doPost(ctx, serverUrl, UploadCompletedReq{
		Type: meta.EventUploadCompleted,
		Payload: UploadCompletedPayload{
			Blob:         blob,
			TokenPayload: clientToken,
		},
	}, c.authHeader())
	if err != nil {
		return nil, cli.Exit(err, meta.HttpError)
	}
	if statusCode != http.StatusOK {
		return nil, handleError(body, statusCode)
	}
	return handleResponse[UploadCompletedResp](body)
}

func (c *Client) authHeader() map[string]string {
	header := make(map[string]string)
	if c.Token != "" {
		header[meta.HeaderAuthorization] = fmt.Sprintf("Bearer %s", c.Token)
	}
	return header
}

// doPost do post request
func (c *Client) doPost(ctx context.Context, url string, data interface{}, header map[string]string) ([]byte, int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, -1, err
	}

	req, err := http.NewRequestWithContext(ctx, meta.HTTPPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, -1, err
	}

	for key, value := range header {
		req.Header.Set(key, value)
	}
	req.Header.Set(meta.HeaderImgupCliVersion, meta.Version)
	req.Header.Set(meta.HeaderContentType, meta.JsonContentType)
	req.Header.Set(meta.HeaderRequestID, uuid.NewString())

	logs.Debugf("POST %s (request id: %s)\n", url, req.Header.Get(meta.HeaderRequestID))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, -1, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return body, resp.StatusCode, err
}

func handleError(responseBody []byte, statusCode int) error {
	rawMessage := string(responseBody)
	if statusCode == http.StatusNotFound {
		return cli.Exit(fmt.Errorf("upload route not found, you can use \"--handle_upload_url\" to specify the authorization route"), meta.LoadError)
	}
	var parsed ErrorResp
	if err := json.Unmarshal(responseBody, &parsed); err == nil {
		if parsed.Message != "" {
			return cli.Exit(fmt.Errorf("%s", parsed.Message), meta.ServerError)
		}
		if parsed.Error != "" {
			return cli.Exit(fmt.Errorf("%s", parsed.Error), meta.ServerError)
		}
	}

	rawMessage = strings.TrimFunc(strings.TrimSpace(rawMessage), func(r rune) bool {
		return unicode.Is(unicode.Quotation_Mark, r)
	})
	if rawMessage == "" {
		return cli.Exit(fmt.Errorf("unexpected http status code: %d", statusCode), meta.ServerError)
	}
	return cli.Exit(fmt.Errorf("unexpected http status code: %d, message: %s", statusCode, rawMessage), meta.ServerError)
}

func handleResponse[T any](responseBody []byte) (*T, error) {
	var parsed T
	if err := json.Unmarshal(responseBody, &parsed); err != nil {
		logs.Debugf("error: %s\n", err)
		return nil, cli.Exit(fmt.Errorf("malformed server response: %w", err), meta.ServerError)
	}
	return &parsed, nil
}
