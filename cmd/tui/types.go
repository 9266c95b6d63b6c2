package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/siliconflow/imgup-cli/lib"
)

// 表单焦点
type formFocus int

const (
	focusPicker formFocus = iota
	focusPath
	focusSubmit
)

func (f formFocus) next() formFocus { return (f + 1) % 3 }

// 消息类型
type uploadStartMsg struct {
	ch <-chan tea.Msg
}

type uploadProgMsg struct {
	consumed int64
	total    int64
}

type uploadDoneMsg struct {
	result *lib.PutBlobResult
	err    error
}

type copyDoneMsg struct {
	url     string
	outcome lib.CopyOutcome
	err     error
}

type openDoneMsg struct {
	err error
}

type clearNoticeMsg struct{}
