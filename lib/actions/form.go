package actions

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/siliconflow/imgup-cli/lib"
	"github.com/siliconflow/imgup-cli/meta"
)

// FormState 上传表单的全部视图状态，只通过 Apply 变更
type FormState struct {
	SelectedFile *SelectedFile
	Result       *lib.PutBlobResult
	Phase        Phase
	Copied       bool
	CopyManual   bool
	CopyError    string
	ErrMessage   string
	ErrStep      string
	Err          error // 原始错误，用于映射退出码
}

// IsLoading 仅在提交与上传结束之间为 true
func (s FormState) IsLoading() bool { return s.Phase == PhaseSubmitting }

// ResultURL 上传成功后的公开地址
func (s FormState) ResultURL() string {
	if s.Result == nil {
		return ""
	}
	return s.Result.Url
}

// Apply 唯一的状态更新函数；返回错误时状态保持不变
func (s FormState) Apply(ev FormEvent) (FormState, error) {
	switch e := ev.(type) {
	case FileSelected:
		s.SelectedFile = e.File
		return s, nil

	case SubmitStarted:
		if s.Phase == PhaseSubmitting {
			return s, ErrUploadInFlight
		}
		s.Result = nil
		s.ErrMessage = ""
		s.ErrStep = ""
		s.Err = nil
		s.Copied = false
		s.CopyManual = false
		s.CopyError = ""
		if s.SelectedFile == nil {
			s.Phase = PhaseFailed
			s.ErrMessage = meta.MsgNoFileSelected
			s.Err = lib.NewValidationError(meta.MsgNoFileSelected)
			return s, nil
		}
		s.Phase = PhaseSubmitting
		return s, nil

	case UploadResolved:
		if s.Phase != PhaseSubmitting {
			return s, ErrNotSubmitting
		}
		if e.Err == nil && (e.Result == nil || e.Result.Url == "") {
			e.Err = fmt.Errorf("upload returned no url")
		}
		if e.Err != nil {
			s.Phase = PhaseFailed
			s.Result = nil
			s.ErrStep = lib.GetStep(e.Err)
			s.ErrMessage = errorMessage(e.Err)
			s.Err = e.Err
			return s, nil
		}
		s.Phase = PhaseSucceeded
		s.Result = e.Result
		s.ErrMessage = ""
		s.ErrStep = ""
		s.Err = nil
		return s, nil

	case CopyResolved:
		if s.Phase != PhaseSucceeded || e.URL != s.ResultURL() {
			return s, ErrStaleCopy
		}
		s.Copied = e.Err == nil && e.Outcome.Copied
		s.CopyManual = e.Err == nil && e.Outcome.Manual
		s.CopyError = ""
		if e.Err != nil {
			s.CopyError = e.Err.Error()
		}
		return s, nil
	}
	return s, fmt.Errorf("unknown form event %T", ev)
}

// errorMessage 取错误原文，为空时使用通用提示
func errorMessage(err error) string {
	msg := strings.TrimSpace(lib.Cause(err).Error())
	if msg == "" {
		return meta.MsgUploadFailed
	}
	return msg
}

// NewSelectedFile 路径为空时返回 nil（未选择文件）
func NewSelectedFile(path string) (*SelectedFile, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if err := lib.ValidatePath(path); err != nil {
		return nil, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &SelectedFile{Path: path, Name: filepath.Base(path), Size: st.Size()}, nil
}

// Submit 同步执行一次提交：开始 → 上传 → 结束
func Submit(ctx context.Context, s FormState, up Uploader, progress lib.ProgressCallback) (FormState, error) {
	s, err := s.Apply(SubmitStarted{})
	if err != nil {
		return s, err
	}
	if s.Phase != PhaseSubmitting {
		return s, nil
	}

	result, uerr := up.Upload(ctx, *s.SelectedFile, progress)
	if uerr != nil {
		logs.Debugf("upload of %s failed: %v\n", s.SelectedFile.Name, uerr)
	}
	return s.Apply(UploadResolved{Result: result, Err: uerr})
}

// Copy 复制上传结果地址；没有结果时不做任何事
func Copy(ctx context.Context, s FormState, c Copier) FormState {
	url := s.ResultURL()
	if url == "" {
		return s
	}
	outcome, err := c.Copy(ctx, url)
	s, _ = s.Apply(CopyResolved{URL: url, Outcome: outcome, Err: err})
	return s
}
