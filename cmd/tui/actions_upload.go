package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/siliconflow/imgup-cli/lib/actions"
)

// runUpload 在后台执行上传，进度与结果都通过 channel 回传；ctx 由 submit 创建以便随时取消
func runUpload(ctx context.Context, cancel context.CancelFunc, up actions.Uploader, file actions.SelectedFile) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan tea.Msg, 64)

		go func() {
			defer close(ch)
			defer cancel()

			progress := func(consumed, total int64) {
				select {
				case ch <- uploadProgMsg{consumed: consumed, total: total}:
				default:
				}
			}
			result, err := up.Upload(ctx, file, progress)
			ch <- uploadDoneMsg{result: result, err: err}
		}()

		return uploadStartMsg{ch: ch}
	}
}

// 等待上传事件（进度/完成）
func waitForUploadEvent(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func runCopy(c actions.Copier, url string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		outcome, err := c.Copy(ctx, url)
		return copyDoneMsg{url: url, outcome: outcome, err: err}
	}
}

func runOpen(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return openDoneMsg{err: open(url)}
	}
}

func clearNoticeAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg { return clearNoticeMsg{} })
}
