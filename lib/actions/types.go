package actions

import (
	"context"
	"errors"

	"github.com/siliconflow/imgup-cli/lib"
)

// Phase 表单状态机：idle → submitting → {succeeded, failed}
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// SelectedFile 用户选中的本地文件，提交时才读取内容
type SelectedFile struct {
	Path string
	Name string
	Size int64
}

// FormEvent 表单状态的唯一输入
type FormEvent interface {
	isFormEvent()
}

// FileSelected 选择（或清空）文件
type FileSelected struct {
	File *SelectedFile
}

// SubmitStarted 用户提交表单
type SubmitStarted struct{}

// UploadResolved 上传结束（成功或失败）
type UploadResolved struct {
	Result *lib.PutBlobResult
	Err    error
}

// CopyResolved 剪贴板策略链执行结束，URL 为被复制的地址
type CopyResolved struct {
	URL     string
	Outcome lib.CopyOutcome
	Err     error
}

func (FileSelected) isFormEvent()   {}
func (SubmitStarted) isFormEvent()  {}
func (UploadResolved) isFormEvent() {}
func (CopyResolved) isFormEvent()   {}

// Uploader 表单依赖的上传客户端
type Uploader interface {
	Upload(ctx context.Context, file SelectedFile, progress lib.ProgressCallback) (*lib.PutBlobResult, error)
}

// Copier 表单依赖的剪贴板，lib.ClipboardChain 即为实现
type Copier interface {
	Copy(ctx context.Context, text string) (lib.CopyOutcome, error)
}

var (
	// ErrUploadInFlight 上传进行中时再次提交
	ErrUploadInFlight = errors.New("an upload is already in progress")
	// ErrNotSubmitting 没有进行中的上传却收到了上传结果
	ErrNotSubmitting = errors.New("no upload in progress")
	// ErrStaleCopy 复制结果不属于当前的上传结果
	ErrStaleCopy = errors.New("copy result does not match the current upload")
)
