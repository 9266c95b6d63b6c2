package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/siliconflow/imgup-cli/lib"
)

// 空值显示占位符
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// 绝对路径
func absPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	wd, _ := os.Getwd()
	return filepath.Join(wd, p)
}

// findPathCompletions 返回输入路径可补全到的目录与图片文件，以及所在目录
func findPathCompletions(typed string) ([]string, string) {
	if typed == "" {
		return nil, ""
	}
	dir, prefix := filepath.Split(typed)
	if dir == "" {
		dir = "." + string(filepath.Separator)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ""
	}
	matches := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) {
			return "", false
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			return "", false
		}
		if !e.IsDir() && !lib.IsSupportedImage(name) {
			return "", false
		}
		return filepath.Join(dir, name), true
	})
	sort.Strings(matches)
	return matches, dir
}

// buildCompletionSuggestion 多个匹配时取公共前缀
func buildCompletionSuggestion(typed string, matches []string) string {
	if len(matches) == 0 {
		return ""
	}
	s := matches[0]
	for _, m := range matches[1:] {
		for !strings.HasPrefix(m, s) {
			s = s[:len(s)-1]
		}
	}
	if len(s) <= len(typed) {
		return ""
	}
	return s
}

// contextualHint 根据焦点与阶段返回操作提示
func (m *formModel) contextualHint() string {
	if m.showHelp {
		return "? / Esc close help"
	}
	if m.state.IsLoading() {
		return "Uploading… • Ctrl+C cancel"
	}
	var hint string
	switch m.focus {
	case focusPath:
		hint = "Type a path • Tab complete • Enter upload • Shift+Tab switch"
	case focusSubmit:
		hint = "Enter upload • Tab switch • ? help • q quit"
	default:
		hint = "↑/↓ select • ←/→ folders • Enter choose • Tab switch • ? help • q quit"
	}
	if m.state.ResultURL() != "" && m.focus != focusPath {
		hint += "\nc copy url • o open in browser"
	}
	return hint
}
