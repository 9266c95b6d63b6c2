package lib

import (
	"errors"
	"fmt"

	"github.com/siliconflow/imgup-cli/meta"
	"github.com/urfave/cli/v2"
)

// StepError 包含步骤信息的错误类型
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("[%s] %v", e.Step, e.Err)
	}
	return e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// WithStep 为错误添加步骤信息
func WithStep(step string, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{
		Step: step,
		Err:  err,
	}
}

// GetStep 从错误中提取步骤信息（取最外层）
func GetStep(err error) string {
	if err == nil {
		return ""
	}
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step
	}
	return ""
}

// Cause 去掉所有步骤包装，返回面向用户的原始错误
func Cause(err error) error {
	for {
		var stepErr *StepError
		if !errors.As(err, &stepErr) || stepErr.Err == nil {
			return err
		}
		err = stepErr.Err
	}
}

// ValidationError 参数或输入校验失败
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidationError 判断是否为校验错误
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	// ErrManualCopy 表示剪贴板回退到了手动复制提示，无法确认是否复制成功
	ErrManualCopy = errors.New("manual copy required")
	// ErrNoClipboardStrategy 剪贴板策略链为空
	ErrNoClipboardStrategy = errors.New("no clipboard strategy configured")
)

// ExitCode 取错误链上的退出码；校验错误为 LoadError，其余默认 ServerError
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	if IsValidationError(err) {
		return meta.LoadError
	}
	return meta.ServerError
}
