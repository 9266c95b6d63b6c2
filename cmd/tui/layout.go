package tui

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	frameFrom = "#8B5CF6"
	frameTo   = "#EC4899"
)

// gradient 两色线性渐变
type gradient struct {
	r0, g0, b0 int
	r1, g1, b1 int
}

func newGradient(from, to string) gradient {
	r0, g0, b0 := hexToRGB(from)
	r1, g1, b1 := hexToRGB(to)
	return gradient{r0, g0, b0, r1, g1, b1}
}

// style 返回 t∈[0,1] 处颜色的前景样式
func (g gradient) style(t float64) lipgloss.Style {
	c := rgbToHex(lerpInt(g.r0, g.r1, t), lerpInt(g.g0, g.g1, t), lerpInt(g.b0, g.b1, t))
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// renderLines 逐行着色
func (g gradient) renderLines(s string, bold bool) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		t := 0.0
		if len(lines) > 1 {
			t = float64(i) / float64(len(lines)-1)
		}
		lines[i] = g.style(t).Bold(bold).Render(line)
	}
	return strings.Join(lines, "\n")
}

func (m *formModel) computeInnerSizeFor(totalW, totalH int) (int, int) {
	return max(totalW-2-m.framePadX*2, 1), max(totalH-2-m.framePadY*2, 1)
}

func (m *formModel) innerSize() (int, int) { return m.computeInnerSizeFor(m.width, m.height) }

func clipToWidth(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

func ensureTrailingSep(p string) string {
	sep := string(filepath.Separator)
	if strings.HasSuffix(p, sep) {
		return p
	}
	return p + sep
}

// 全屏渐变外框
func (m *formModel) renderFrame(inner string) string {
	w, h := m.width, m.height
	if w < 2 || h < 2 {
		return inner
	}
	iw, ih := m.innerSize()
	g := newGradient(frameFrom, frameTo)

	lines := strings.Split(inner, "\n")
	blank := strings.Repeat(" ", w-2)
	pad := strings.Repeat(" ", m.framePadX)

	var b strings.Builder
	b.WriteString(g.style(0).Render("╭" + strings.Repeat("─", w-2) + "╮"))
	b.WriteString("\n")
	for y := 1; y <= h-2; y++ {
		s := g.style(float64(y) / float64(h-1))
		middle := blank
		if row := y - 1 - m.framePadY; row >= 0 && row < ih {
			line := ""
			if row < len(lines) {
				line = lines[row]
			}
			middle = pad + clipToWidth(line, iw) + pad
		}
		b.WriteString(s.Render("│") + middle + s.Render("│"))
		b.WriteString("\n")
	}
	b.WriteString(g.style(1).Render("╰" + strings.Repeat("─", w-2) + "╯"))
	return b.String()
}

func rgbToHex(r, g, b int) string { return "#" + toHex(r) + toHex(g) + toHex(b) }

func toHex(v int) string {
	h := strconv.FormatInt(int64(v), 16)
	if len(h) == 1 {
		h = "0" + h
	}
	return strings.ToUpper(h)
}

func hexToRGB(hex string) (int, int, int) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 255, 255, 255
	}
	r, _ := strconv.ParseInt(s[0:2], 16, 0)
	g, _ := strconv.ParseInt(s[2:4], 16, 0)
	b, _ := strconv.ParseInt(s[4:6], 16, 0)
	return int(r), int(g), int(b)
}

func lerpInt(a, b int, t float64) int {
	return int(math.Round(math.Min(math.Max(float64(a)+(float64(b)-float64(a))*t, 0), 255)))
}
