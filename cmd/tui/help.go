package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/siliconflow/imgup-cli/lib"
)

const helpMarkdown = `# imgup

Pick an image and upload it. The blob url is shown once the upload succeeds.

| Key | Action |
|---|---|
| Tab / Shift+Tab | switch between picker, path and button |
| Enter | choose file / upload |
| Ctrl+S | upload the selected file |
| c | copy the blob url |
| o | open the blob url in the browser |
| Ctrl+C | cancel upload / quit |

Supported formats: %s

When no clipboard is reachable the url is shown for manual copy.
`

// renderHelp 渲染帮助面板，渲染失败时退回原始 markdown
func renderHelp(width int) string {
	md := fmt.Sprintf(helpMarkdown, lib.GetSupportedImageFormats())
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
