package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nickalie/go-webpbin"
)

// getWebPVendorPath 获取WebP工具的存储路径（相对于可执行文件）
func getWebPVendorPath() string {
	exePath, err := os.Executable()
	if err != nil {
		return ".bin/webp"
	}
	return filepath.Join(filepath.Dir(exePath), ".bin", "webp")
}

// NeedsWebPConversion 仅 jpg/png/gif 需要转换
func NeedsWebPConversion(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png" || ext == ".gif"
}

// ConvertImageToWebP 将图片转换为WebP格式
// 不需要转换时返回原路径；返回值：转换后的文件路径、清理函数、错误
func ConvertImageToWebP(sourcePath string, quality uint) (string, func(), error) {
	if !NeedsWebPConversion(sourcePath) {
		return sourcePath, func() {}, nil
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	tmpDir, err := os.MkdirTemp("", "imgup-webp-*")
	if err != nil {
		return "", nil, fmt.Errorf("cannot create temp dir: %w", err)
	}
	// 保留原文件名，上传时作为 pathname
	tmpPath := filepath.Join(tmpDir, base+".webp")
	cleanup := func() {
		os.RemoveAll(tmpDir)
	}

	// 临时抑制stdout和stderr输出，避免下载日志干扰TUI界面
	oldStdout := os.Stdout
	oldStderr := os.Stderr
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0666)
	if err == nil {
		os.Stdout = devNull
		os.Stderr = devNull
		defer func() {
			os.Stdout = oldStdout
			os.Stderr = oldStderr
			devNull.Close()
		}()
	}

	err = webpbin.NewCWebP(webpbin.SetVendorPath(getWebPVendorPath())).
		Quality(quality).
		InputFile(sourcePath).
		OutputFile(tmpPath).
		Run()
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("cannot convert to webp: %w", err)
	}

	return tmpPath, cleanup, nil
}
