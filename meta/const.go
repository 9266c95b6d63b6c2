package meta

import (
	"strings"

	"github.com/samber/lo"
)

const (
	CmdUpload = "upload"
	CmdCopy   = "copy"
)

const (
	DefaultBaseURL         = "http://localhost:3000"
	DefaultHandleUploadURL = "/api/upload"
	AccessPublic           = "public"
)

const (
	LoadError   = 1
	ServerError = 2
	HttpError   = 3
)

// BlobProvider is the storage backend named by the authorization route.
type BlobProvider string

const (
	ProviderOSS       BlobProvider = "oss"
	ProviderS3        BlobProvider = "s3"
	ProviderMinIO     BlobProvider = "minio"
	ProviderPresigned BlobProvider = "presigned"
)

var BlobProviders = []BlobProvider{
	ProviderOSS,
	ProviderS3,
	ProviderMinIO,
	ProviderPresigned,
}

var BlobProvidersStr = func(arr []BlobProvider) string {
	strs := lo.Map[BlobProvider, string](arr, func(v BlobProvider, _ int) string {
		return string(v)
	})
	return "'" + strings.Join(strs, "','") + "'"
}(BlobProviders)

const (
	ClipboardSystem = "system"
	ClipboardOSC52  = "osc52"
	ClipboardPrompt = "prompt"
)

// DefaultClipboardOrder mirrors the browser chain: native API, legacy copy, manual prompt.
var DefaultClipboardOrder = []string{ClipboardSystem, ClipboardOSC52, ClipboardPrompt}

const (
	EventGenerateClientToken = "blob.generate-client-token"
	EventUploadCompleted     = "blob.upload-completed"
)

const (
	HTTPPost               = "POST"
	HTTPPut                = "PUT"
	HeaderAuthorization    = "Authorization"
	HeaderContentType      = "Content-Type"
	HeaderContentMD5       = "Content-MD5"
	HeaderRequestID        = "X-Request-Id"
	HeaderImgupCliVersion  = "X-Imgup-CLI-Version"
	JsonContentType        = "application/json"
	OctetStreamContentType = "application/octet-stream"
	ImgupFolder            = ".imgup"
	ConfigFileName         = "config.yaml"
	EnvToken               = "IMGUP_TOKEN"
	EnvBaseURL             = "IMGUP_BASE_URL"
	OSSObjectURL           = "https://%s.oss-%s.aliyuncs.com/%s"
)

// MaxImageSize caps a single upload at 50 MB.
const MaxImageSize = int64(50 * 1024 * 1024)

var SupportedImageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif", ".svg", ".bmp"}

const (
	MsgNoFileSelected = "No file selected"
	MsgUploadFailed   = "Upload failed. Please try again."
)
