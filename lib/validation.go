package lib

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/siliconflow/imgup-cli/meta"
)

// ValidateAccess 目前仅支持 public
func ValidateAccess(access string) error {
	if access != meta.AccessPublic {
		return NewValidationError(fmt.Sprintf("access must be %q, got %q", meta.AccessPublic, access))
	}
	return nil
}

// ValidatePath 校验文件路径存在且不是目录
func ValidatePath(path string) error {
	if path == "" {
		return NewValidationError(meta.MsgNoFileSelected)
	}
	st, err := os.Stat(path)
	if err != nil {
		return NewValidationError(fmt.Sprintf("file does not exist: %s", path))
	}
	if st.IsDir() {
		return NewValidationError(fmt.Sprintf("directories cannot be uploaded: %s", path))
	}
	return nil
}

// IsSupportedImage 检查扩展名是否为支持的图片格式
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return lo.Contains(meta.SupportedImageExts, ext)
}

// GetSupportedImageFormats 获取支持的图片格式列表
func GetSupportedImageFormats() string {
	return strings.Join(meta.SupportedImageExts, ", ")
}

// ValidateImageFile 校验图片文件格式和大小
func ValidateImageFile(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if !IsSupportedImage(path) {
		return NewValidationError(fmt.Sprintf("unsupported image format: %s (supported: %s)",
			filepath.Ext(path), GetSupportedImageFormats()))
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > meta.MaxImageSize {
		return NewValidationError(fmt.Sprintf("image is too large (%.1f MB > %d MB)",
			float64(info.Size())/(1024*1024), meta.MaxImageSize/(1024*1024)))
	}
	return nil
}

// ContentTypeFor 根据扩展名推断 Content-Type
func ContentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return meta.OctetStreamContentType
}
