package lib

import "github.com/siliconflow/imgup-cli/meta"

// GenerateClientTokenReq 向授权路由申请上传凭证
type GenerateClientTokenReq struct {
	Type    string                     `json:"type"`
	Payload GenerateClientTokenPayload `json:"payload"`
}

type GenerateClientTokenPayload struct {
	Pathname      string `json:"pathname"`
	CallbackUrl   string `json:"callbackUrl,omitempty"`
	ClientPayload string `json:"clientPayload,omitempty"`
	Multipart     bool   `json:"multipart"`
	ContentType   string `json:"contentType,omitempty"`
	Size          int64  `json:"size,omitempty"`
}

// GenerateClientTokenResp 授权路由返回的凭证与存储目标
type GenerateClientTokenResp struct {
	Type        string        `json:"type" validate:"required,eq=blob.generate-client-token"`
	ClientToken string        `json:"clientToken" validate:"required"`
	Target      *UploadTarget `json:"target" validate:"required"`
}

// UploadTarget 服务端签发的直传目标
type UploadTarget struct {
	Provider        meta.BlobProvider `json:"provider" validate:"required,oneof=oss s3 minio presigned"`
	Endpoint        string            `json:"endpoint,omitempty" validate:"required_unless=Provider presigned"`
	Region          string            `json:"region,omitempty"`
	Bucket          string            `json:"bucket,omitempty" validate:"required_unless=Provider presigned"`
	ObjectKey       string            `json:"objectKey" validate:"required"`
	AccessKeyId     string            `json:"accessKeyId,omitempty" validate:"required_unless=Provider presigned"`
	AccessKeySecret string            `json:"accessKeySecret,omitempty" validate:"required_unless=Provider presigned"`
	SecurityToken   string            `json:"securityToken,omitempty"`
	Expiration      string            `json:"expiration,omitempty"`
	UseSSL          bool              `json:"useSSL,omitempty"`
	UploadUrl       string            `json:"uploadUrl,omitempty" validate:"required_if=Provider presigned"`
	PublicUrl       string            `json:"publicUrl,omitempty" validate:"omitempty,url"`
	Notify          bool              `json:"notify,omitempty"`
}

// UploadCompletedReq 直传完成后通知授权路由
type UploadCompletedReq struct {
	Type    string                 `json:"type"`
	Payload UploadCompletedPayload `json:"payload"`
}

type UploadCompletedPayload struct {
	Blob         PutBlobResult `json:"blob"`
	TokenPayload string        `json:"tokenPayload,omitempty"`
}

type UploadCompletedResp struct {
	Response string `json:"response,omitempty"`
	Url      string `json:"url,omitempty"`
}

// PutBlobResult 上传结果描述
type PutBlobResult struct {
	Url                string `json:"url"`
	DownloadUrl        string `json:"downloadUrl"`
	Pathname           string `json:"pathname"`
	ContentType        string `json:"contentType,omitempty"`
	ContentDisposition string `json:"contentDisposition,omitempty"`
	Size               int64  `json:"size,omitempty"`
}

// ErrorResp 授权路由的错误返回
type ErrorResp struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}
