package lib

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/siliconflow/imgup-cli/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	name  string
	err   error
	calls *[]string
}

func (f fakeStrategy) Name() string { return f.name }

func (f fakeStrategy) Copy(_ context.Context, text string) error {
	*f.calls = append(*f.calls, f.name+":"+text)
	return f.err
}

func TestClipboardChain_StopsAtFirstSuccess(t *testing.T) {
	var calls []string
	chain := ClipboardChain{Strategies: []ClipboardStrategy{
		fakeStrategy{name: "a", err: errors.New("no display"), calls: &calls},
		fakeStrategy{name: "b", calls: &calls},
		fakeStrategy{name: "c", calls: &calls},
	}}

	out, err := chain.Copy(context.Background(), "https://x/y.png")
	require.NoError(t, err)
	assert.Equal(t, CopyOutcome{Strategy: "b", Copied: true}, out)
	assert.Equal(t, []string{"a:https://x/y.png", "b:https://x/y.png"}, calls)
}

func TestClipboardChain_ManualIsNotConfirmed(t *testing.T) {
	var calls []string
	chain := ClipboardChain{Strategies: []ClipboardStrategy{
		fakeStrategy{name: "a", err: errors.New("fail"), calls: &calls},
		fakeStrategy{name: "prompt", err: ErrManualCopy, calls: &calls},
	}}

	out, err := chain.Copy(context.Background(), "u")
	require.NoError(t, err)
	assert.False(t, out.Copied)
	assert.True(t, out.Manual)
	assert.Equal(t, "prompt", out.Strategy)
}

func TestClipboardChain_AllFail(t *testing.T) {
	var calls []string
	errA, errB := errors.New("a broke"), errors.New("b broke")
	chain := ClipboardChain{Strategies: []ClipboardStrategy{
		fakeStrategy{name: "a", err: errA, calls: &calls},
		fakeStrategy{name: "b", err: errB, calls: &calls},
	}}

	out, err := chain.Copy(context.Background(), "u")
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, CopyOutcome{}, out)
	assert.Len(t, calls, 2)
}

func TestClipboardChain_EmptyText(t *testing.T) {
	var calls []string
	chain := ClipboardChain{Strategies: []ClipboardStrategy{fakeStrategy{name: "a", calls: &calls}}}

	out, err := chain.Copy(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, CopyOutcome{}, out)
	assert.Empty(t, calls)
}

func TestClipboardChain_Empty(t *testing.T) {
	_, err := ClipboardChain{}.Copy(context.Background(), "u")
	assert.ErrorIs(t, err, ErrNoClipboardStrategy)
}

func TestClipboardChain_CanceledContext(t *testing.T) {
	var calls []string
	chain := ClipboardChain{Strategies: []ClipboardStrategy{fakeStrategy{name: "a", calls: &calls}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := chain.Copy(ctx, "u")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}

func TestNewClipboardChain(t *testing.T) {
	chain, err := NewClipboardChain(nil, nil)
	require.NoError(t, err)
	names := make([]string, 0, len(chain.Strategies))
	for _, s := range chain.Strategies {
		names = append(names, s.Name())
	}
	assert.Equal(t, meta.DefaultClipboardOrder, names)

	chain, err = NewClipboardChain([]string{meta.ClipboardPrompt}, nil)
	require.NoError(t, err)
	require.Len(t, chain.Strategies, 1)
	assert.Equal(t, meta.ClipboardPrompt, chain.Strategies[0].Name())

	_, err = NewClipboardChain([]string{"carrier-pigeon"}, nil)
	assert.True(t, IsValidationError(err))
}

func TestSystemClipboard_UsesWriter(t *testing.T) {
	var got string
	s := SystemClipboard{WriteAll: func(text string) error { got = text; return nil }}
	require.NoError(t, s.Copy(context.Background(), "hello"))
	assert.Equal(t, "hello", got)
}

func TestOSC52Clipboard_WritesSequence(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("STY", "")
	var buf bytes.Buffer
	require.NoError(t, OSC52Clipboard{Out: &buf}.Copy(context.Background(), "hello"))
	// base64("hello") = aGVsbG8=
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b]52;c;"))
	assert.Contains(t, buf.String(), "aGVsbG8=")
}

func TestPromptClipboard(t *testing.T) {
	var buf bytes.Buffer
	err := PromptClipboard{Out: &buf}.Copy(context.Background(), "https://x/y.png")
	assert.ErrorIs(t, err, ErrManualCopy)
	assert.Equal(t, "Copy this URL manually: https://x/y.png\n", buf.String())
}
