package lib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/siliconflow/imgup-cli/meta"
)

// ClipboardStrategy 一种复制到剪贴板的方式
type ClipboardStrategy interface {
	Name() string
	Copy(ctx context.Context, text string) error
}

// CopyOutcome 剪贴板策略链的执行结果
type CopyOutcome struct {
	Strategy string // 最终生效的策略，空表示未执行
	Copied   bool   // 策略确认复制成功
	Manual   bool   // 回退到了手动复制提示
}

// ClipboardChain 按顺序尝试各策略，首个成功即停止
type ClipboardChain struct {
	Strategies []ClipboardStrategy
}

func (c ClipboardChain) Copy(ctx context.Context, text string) (CopyOutcome, error) {
	if text == "" {
		return CopyOutcome{}, nil
	}
	if len(c.Strategies) == 0 {
		return CopyOutcome{}, ErrNoClipboardStrategy
	}

	var errs []error
	for _, s := range c.Strategies {
		if err := ctx.Err(); err != nil {
			return CopyOutcome{}, err
		}
		err := s.Copy(ctx, text)
		if err == nil {
			logs.Debugf("copied via %s clipboard strategy\n", s.Name())
			return CopyOutcome{Strategy: s.Name(), Copied: true}, nil
		}
		if errors.Is(err, ErrManualCopy) {
			return CopyOutcome{Strategy: s.Name(), Manual: true}, nil
		}
		logs.Warnf("clipboard strategy %s failed: %v\n", s.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}
	return CopyOutcome{}, errors.Join(errs...)
}

// NewClipboardChain 按名称组装策略链，out 用于 osc52 与手动提示的输出
func NewClipboardChain(names []string, out io.Writer) (ClipboardChain, error) {
	if len(names) == 0 {
		names = meta.DefaultClipboardOrder
	}
	chain := ClipboardChain{}
	for _, name := range names {
		switch name {
		case meta.ClipboardSystem:
			chain.Strategies = append(chain.Strategies, SystemClipboard{})
		case meta.ClipboardOSC52:
			chain.Strategies = append(chain.Strategies, OSC52Clipboard{Out: out})
		case meta.ClipboardPrompt:
			chain.Strategies = append(chain.Strategies, PromptClipboard{Out: out})
		default:
			return ClipboardChain{}, NewValidationError(fmt.Sprintf("unknown clipboard strategy: %s", name))
		}
	}
	return chain, nil
}

// SystemClipboard 系统剪贴板（pbcopy / xclip / xsel / wl-copy / Windows API）
type SystemClipboard struct {
	// WriteAll 为空时使用 atotto/clipboard
	WriteAll func(text string) error
}

func (SystemClipboard) Name() string { return meta.ClipboardSystem }

func (s SystemClipboard) Copy(_ context.Context, text string) error {
	if s.WriteAll != nil {
		return s.WriteAll(text)
	}
	if clipboard.Unsupported {
		return errors.New("system clipboard is unavailable")
	}
	return clipboard.WriteAll(text)
}

// OSC52Clipboard 通过终端转义序列复制，SSH 会话中同样可用
type OSC52Clipboard struct {
	Out io.Writer
}

func (OSC52Clipboard) Name() string { return meta.ClipboardOSC52 }

func (o OSC52Clipboard) Copy(_ context.Context, text string) error {
	out := o.Out
	if out == nil {
		out = os.Stderr
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if os.Getenv("STY") != "" {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(out)
	return err
}

// PromptClipboard 展示文本让用户手动复制，无法确认结果
type PromptClipboard struct {
	Out io.Writer
}

func (PromptClipboard) Name() string { return meta.ClipboardPrompt }

func (p PromptClipboard) Copy(_ context.Context, text string) error {
	if p.Out != nil {
		if _, err := fmt.Fprintf(p.Out, "Copy this URL manually: %s\n", text); err != nil {
			return err
		}
	}
	return ErrManualCopy
}
