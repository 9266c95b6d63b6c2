package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/siliconflow/imgup-cli/lib"
	"github.com/siliconflow/imgup-cli/lib/actions"
	"github.com/siliconflow/imgup-cli/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct{}

func (stubUploader) Upload(context.Context, actions.SelectedFile, lib.ProgressCallback) (*lib.PutBlobResult, error) {
	return &lib.PutBlobResult{Url: "https://x/cat.png"}, nil
}

// blockingUploader 阻塞到 ctx 被取消
type blockingUploader struct{ canceled chan struct{} }

func (b blockingUploader) Upload(ctx context.Context, _ actions.SelectedFile, _ lib.ProgressCallback) (*lib.PutBlobResult, error) {
	<-ctx.Done()
	close(b.canceled)
	return nil, ctx.Err()
}

type stubCopier struct{ outcome lib.CopyOutcome }

func (s stubCopier) Copy(context.Context, string) (lib.CopyOutcome, error) { return s.outcome, nil }

func update(t *testing.T, m formModel, msg tea.Msg) (formModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	fm, ok := next.(formModel)
	require.True(t, ok)
	return fm, cmd
}

func TestForm_SubmitWithoutFile(t *testing.T) {
	m := newFormModel(stubUploader{}, stubCopier{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, actions.PhaseFailed, m.state.Phase)
	assert.Equal(t, meta.MsgNoFileSelected, m.state.ErrMessage)
	assert.False(t, m.state.IsLoading())
}

func TestForm_UploadLifecycle(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))

	m := newFormModel(stubUploader{}, stubCopier{outcome: lib.CopyOutcome{Strategy: meta.ClipboardSystem, Copied: true}})
	require.True(t, m.selectFile(p))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.True(t, m.state.IsLoading())

	// 上传中按键被忽略，也不会重复提交
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.True(t, m.state.IsLoading())

	m, _ = update(t, m, uploadDoneMsg{result: &lib.PutBlobResult{Url: "https://x/cat.png"}})
	assert.Equal(t, actions.PhaseSucceeded, m.state.Phase)
	assert.Contains(t, m.View(), "Blob url:")

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	require.NotNil(t, cmd)
	msg := cmd()
	m, _ = update(t, m, msg)
	assert.True(t, m.state.Copied)
	assert.Contains(t, m.View(), "Copied!")
}

func TestForm_UploadFailureShowsStep(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))

	m := newFormModel(stubUploader{}, stubCopier{})
	require.True(t, m.selectFile(p))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m, _ = update(t, m, uploadDoneMsg{err: lib.WithStep(lib.StepAuthorize, errors.New("token expired"))})

	assert.Equal(t, actions.PhaseFailed, m.state.Phase)
	view := m.View()
	assert.Contains(t, view, "Step: "+lib.StepAuthorize)
	assert.Contains(t, view, "Error: token expired")
}

func TestForm_ManualCopyPanel(t *testing.T) {
	m := newFormModel(stubUploader{}, stubCopier{})
	m.state = actions.FormState{Phase: actions.PhaseSucceeded, Result: &lib.PutBlobResult{Url: "https://x/cat.png"}}

	m, _ = update(t, m, copyDoneMsg{url: "https://x/cat.png", outcome: lib.CopyOutcome{Strategy: meta.ClipboardPrompt, Manual: true}})
	assert.False(t, m.state.Copied)
	assert.Contains(t, m.View(), "Copy this URL manually:")
}

// uploadStart 执行 submit 返回的批量命令，取出 runUpload 的启动消息
func uploadStart(t *testing.T, cmd tea.Cmd) uploadStartMsg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if start, ok := c().(uploadStartMsg); ok {
			return start
		}
	}
	t.Fatal("no upload started")
	return uploadStartMsg{}
}

func TestForm_CtrlCCancelsUpload(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))

	up := blockingUploader{canceled: make(chan struct{})}
	m := newFormModel(up, stubCopier{})
	require.True(t, m.selectFile(p))

	m, submitCmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, m.state.IsLoading())
	require.NotNil(t, m.cancelFn)

	// 上传 goroutine 尚未启动时按下 ctrl+c 也能取消，且不会退出
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.True(t, m.state.IsLoading())

	start := uploadStart(t, submitCmd)
	m, cmd = update(t, m, start)
	require.NotNil(t, cmd)
	done, ok := cmd().(uploadDoneMsg)
	require.True(t, ok)

	select {
	case <-up.canceled:
	case <-time.After(time.Second):
		t.Fatal("upload context was not canceled")
	}

	m, _ = update(t, m, done)
	assert.Equal(t, actions.PhaseFailed, m.state.Phase)
	assert.False(t, m.state.IsLoading())
	assert.ErrorIs(t, m.state.Err, context.Canceled)
	assert.Nil(t, m.cancelFn)

	// 上传结束后 ctrl+c 退出程序
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestForm_StaleCopyResultIgnored(t *testing.T) {
	m := newFormModel(stubUploader{}, stubCopier{})
	m.state = actions.FormState{Phase: actions.PhaseSucceeded, Result: &lib.PutBlobResult{Url: "https://x/2.png"}}

	m, _ = update(t, m, copyDoneMsg{url: "https://x/1.png", outcome: lib.CopyOutcome{Strategy: meta.ClipboardSystem, Copied: true}})
	assert.False(t, m.state.Copied)
	assert.NotContains(t, m.View(), "Copied!")
}

func TestPathCompletion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cat-1.png", "cat-2.png", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "cats"), 0o755))

	typed := filepath.Join(dir, "cat")
	matches, gotDir := findPathCompletions(typed)
	assert.Equal(t, ensureTrailingSep(dir), gotDir)
	assert.Equal(t, []string{
		filepath.Join(dir, "cat-1.png"),
		filepath.Join(dir, "cat-2.png"),
		filepath.Join(dir, "cats"),
	}, matches)
	assert.Equal(t, "", buildCompletionSuggestion(typed, matches))

	typed = filepath.Join(dir, "cat-")
	matches, _ = findPathCompletions(typed)
	assert.Len(t, matches, 2)
	assert.Equal(t, "", buildCompletionSuggestion(typed, matches))

	typed = filepath.Join(dir, "n")
	matches, _ = findPathCompletions(typed)
	assert.Empty(t, matches)

	assert.Equal(t, filepath.Join(dir, "cat-1.png"), buildCompletionSuggestion(filepath.Join(dir, "cat-1"), []string{filepath.Join(dir, "cat-1.png")}))
}
