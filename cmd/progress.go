package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/siliconflow/imgup-cli/lib"
)

// 创建上传进度回调函数
func createUploadProgressCallback(fileName string) lib.ProgressCallback {
	return func(consumed, total int64) {
		if total > 0 {
			percent := float64(consumed) / float64(total)
			fmt.Printf("\r%s %s: %.1f%% (%s/%s)",
				renderProgressBar(percent),
				filepath.Base(fileName),
				percent*100,
				formatBytes(consumed),
				formatBytes(total))
		}
	}
}

// 格式化字节数
func formatBytes(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// 渲染简单的进度条
func renderProgressBar(percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	width := 20
	filled := int(percent * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return bar
}
