package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cloudwego/hertz/cmd/hz/util/logs"
	"github.com/dustin/go-humanize"
	"github.com/siliconflow/imgup-cli/config"
	"github.com/siliconflow/imgup-cli/lib"
	"github.com/siliconflow/imgup-cli/lib/actions"
	"github.com/siliconflow/imgup-cli/meta"
)

type formModel struct {
	state    actions.FormState
	uploader actions.Uploader
	copier   actions.Copier
	openURL  func(string) error

	focus  formFocus
	width  int
	height int

	inpPath    textinput.Model
	filepicker filepicker.Model
	suggestion string
	matchCount int

	sp         spinner.Model
	progress   progress.Model
	uploadCh   <-chan tea.Msg
	uploadProg uploadProgMsg
	cancelFn   func()

	notice   string
	showHelp bool
	help     string

	titleStyle  lipgloss.Style
	hintStyle   lipgloss.Style
	panelStyle  lipgloss.Style
	btnStyle    lipgloss.Style
	idleBtn     lipgloss.Style
	errStyle    lipgloss.Style
	okStyle     lipgloss.Style
	urlStyle    lipgloss.Style
	framePadX   int
	framePadY   int
	smallLogo   string
	logoPainter gradient
}

func newFormModel(up actions.Uploader, copier actions.Copier) formModel {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = "."
	}

	inPath := textinput.New()
	inPath.Placeholder = "Path of the image to upload"
	inPath.SetValue(ensureTrailingSep(homeDir))

	fp := filepicker.New()
	fp.CurrentDirectory = homeDir
	fp.AllowedTypes = meta.SupportedImageExts
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = false
	fp.SetHeight(10)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return formModel{
		uploader:   up,
		copier:     copier,
		openURL:    lib.OpenBrowser,
		focus:      focusPicker,
		inpPath:    inPath,
		filepicker: fp,
		sp:         sp,
		progress:   progress.New(progress.WithDefaultGradient()),
		titleStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#36A3F7")),
		hintStyle:  lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("244")),
		panelStyle: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(1, 2),
		btnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#04B575")).Padding(0, 1).Bold(true),
		idleBtn:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("240")).Padding(0, 1),
		errStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		okStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		urlStyle:   lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("#36A3F7")),
		framePadX:  2,
		framePadY:  1,
		smallLogo: strings.Join([]string{
			"▀█▀ █▀▄▀█ █▀▀ █ █ █▀█",
			" █  █ ▀ █ █▄█ █▄█ █▀▀",
		}, "\n"),
		logoPainter: newGradient(frameFrom, frameTo),
	}
}

func (m formModel) Init() tea.Cmd { return tea.Batch(m.sp.Tick, m.filepicker.Init()) }

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		innerW, innerH := m.computeInnerSizeFor(msg.Width, msg.Height)
		m.inpPath.Width = max(innerW-10, 20)
		m.progress.Width = max(innerW-10, 10)
		m.filepicker.SetHeight(max(innerH-22, 5))
		m.help = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case uploadStartMsg:
		m.uploadCh = msg.ch
		return m, waitForUploadEvent(m.uploadCh)

	case uploadProgMsg:
		m.uploadProg = msg
		var cmds []tea.Cmd
		if msg.total > 0 {
			cmds = append(cmds, m.progress.SetPercent(float64(msg.consumed)/float64(msg.total)))
		}
		cmds = append(cmds, waitForUploadEvent(m.uploadCh))
		return m, tea.Batch(cmds...)

	case uploadDoneMsg:
		next, err := m.state.Apply(actions.UploadResolved{Result: msg.result, Err: msg.err})
		m.uploadCh = nil
		m.cancelFn = nil
		if err != nil {
			logs.Debugf("stale upload result: %v\n", err)
			return m, nil
		}
		m.state = next
		if next.Phase == actions.PhaseSucceeded {
			m.focus = focusSubmit
			m.inpPath.Blur()
			return m, m.progress.SetPercent(1)
		}
		return m, nil

	case copyDoneMsg:
		next, err := m.state.Apply(actions.CopyResolved{URL: msg.url, Outcome: msg.outcome, Err: msg.err})
		if err != nil {
			logs.Debugf("stale copy result: %v\n", err)
			return m, nil
		}
		m.state = next
		return m, nil

	case openDoneMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Open browser failed: %v", msg.err)
			return m, clearNoticeAfter(4 * time.Second)
		}
		return m, nil

	case clearNoticeMsg:
		m.notice = ""
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.sp, cmd = m.sp.Update(msg)
	cmds = append(cmds, cmd)
	if pModel, pCmd := m.progress.Update(msg); pModel != nil {
		if pm, ok := pModel.(progress.Model); ok {
			m.progress = pm
		}
		cmds = append(cmds, pCmd)
	}
	// filepicker 读目录的结果等内部消息
	m.filepicker, cmd = m.filepicker.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m formModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		if m.state.IsLoading() {
			// 取消后仍由上传结果消息把状态推到失败
			if m.cancelFn != nil {
				m.cancelFn()
			}
			return m, nil
		}
		return m, tea.Quit
	}
	// 上传中表单禁用
	if m.state.IsLoading() {
		return m, nil
	}

	if m.showHelp {
		if key == "?" || key == "esc" || key == "q" {
			m.showHelp = false
		}
		return m, nil
	}

	if key == "ctrl+s" {
		return m.submit()
	}
	if key == "shift+tab" {
		return m.setFocus(m.focus.next())
	}

	if m.focus == focusPath {
		return m.handlePathKey(msg)
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		if m.help == "" {
			innerW, _ := m.innerSize()
			m.help = renderHelp(max(innerW-4, 40) - 6)
		}
		return m, nil
	case "tab":
		return m.setFocus(m.focus.next())
	case "c":
		if url := m.state.ResultURL(); url != "" {
			return m, runCopy(m.copier, url)
		}
		return m, nil
	case "o":
		if url := m.state.ResultURL(); url != "" {
			return m, runOpen(m.openURL, url)
		}
		return m, nil
	}

	if m.focus == focusSubmit {
		if key == "enter" {
			return m.submit()
		}
		return m, nil
	}

	// focusPicker
	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)
	if ok, path := m.filepicker.DidSelectFile(msg); ok {
		m.selectFile(path)
		m.inpPath.SetValue(path)
		next, focusCmd := m.setFocus(focusSubmit)
		return next, tea.Batch(cmd, focusCmd)
	}
	if ok, path := m.filepicker.DidSelectDisabledFile(msg); ok {
		m.notice = fmt.Sprintf("%s is not a supported image (%s)", path, lib.GetSupportedImageFormats())
		return m, tea.Batch(cmd, clearNoticeAfter(4*time.Second))
	}
	return m, cmd
}

func (m formModel) handlePathKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.suggestion != "" {
			return m, m.applyPathCompletion()
		}
		return m.setFocus(m.focus.next())
	case "esc":
		return m.setFocus(focusPicker)
	case "enter":
		path := strings.TrimSpace(m.inpPath.Value())
		if st, err := os.Stat(path); err == nil && st.IsDir() {
			m.filepicker.CurrentDirectory = path
			next, cmd := m.setFocus(focusPicker)
			return next, tea.Batch(cmd, m.filepicker.Init())
		}
		if !m.selectFile(path) {
			return m, clearNoticeAfter(4 * time.Second)
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inpPath, cmd = m.inpPath.Update(msg)
	return m, tea.Batch(cmd, m.updatePathCompletion(m.inpPath.Value()))
}

// selectFile 选择文件；路径为空时清空选择，路径无效时保留原选择并提示
func (m *formModel) selectFile(path string) bool {
	file, err := actions.NewSelectedFile(path)
	if err != nil {
		m.notice = err.Error()
		return false
	}
	m.state, _ = m.state.Apply(actions.FileSelected{File: file})
	m.notice = ""
	return true
}

func (m formModel) submit() (tea.Model, tea.Cmd) {
	next, err := m.state.Apply(actions.SubmitStarted{})
	if err != nil {
		m.notice = err.Error()
		return m, clearNoticeAfter(4 * time.Second)
	}
	m.state = next
	if next.Phase != actions.PhaseSubmitting {
		return m, nil
	}
	m.notice = ""
	m.uploadProg = uploadProgMsg{}
	m.inpPath.Blur()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelFn = cancel
	return m, tea.Batch(m.sp.Tick, m.progress.SetPercent(0), runUpload(ctx, cancel, m.uploader, *next.SelectedFile))
}

func (m formModel) setFocus(f formFocus) (formModel, tea.Cmd) {
	m.focus = f
	if f == focusPath {
		return m, m.inpPath.Focus()
	}
	m.inpPath.Blur()
	m.suggestion = ""
	m.matchCount = 0
	return m, nil
}

// updatePathCompletion 更新路径补全建议，目录变化时同步文件选择器
func (m *formModel) updatePathCompletion(typed string) tea.Cmd {
	matches, dir := findPathCompletions(typed)
	m.suggestion = buildCompletionSuggestion(typed, matches)
	m.matchCount = len(matches)
	if dir != "" && absPath(dir) != absPath(m.filepicker.CurrentDirectory) {
		if st, err := os.Stat(dir); err == nil && st.IsDir() {
			m.filepicker.CurrentDirectory = dir
			return m.filepicker.Init()
		}
	}
	return nil
}

// applyPathCompletion 应用补全建议，补全到目录时自动追加分隔符
func (m *formModel) applyPathCompletion() tea.Cmd {
	suggestion := m.suggestion
	if st, err := os.Stat(suggestion); err == nil && st.IsDir() {
		suggestion = ensureTrailingSep(suggestion)
	}
	m.inpPath.SetValue(suggestion)
	m.inpPath.CursorEnd()
	return m.updatePathCompletion(suggestion)
}

func (m formModel) View() string {
	innerW, _ := m.innerSize()
	panelW := max(innerW-4, 40)
	panel := m.panelStyle.Width(panelW)
	header := lipgloss.PlaceHorizontal(innerW, lipgloss.Left, m.logoPainter.renderLines(m.smallLogo, true))

	if m.showHelp {
		return m.renderFrame(header + "\n" + panel.Render(m.help+"\n\n"+m.hintStyle.Render(m.contextualHint())))
	}

	var b strings.Builder
	b.WriteString(m.titleStyle.Render("Upload an image"))
	b.WriteString("\n\n")

	var fileLabel string
	if f := m.state.SelectedFile; f != nil {
		fileLabel = fmt.Sprintf("%s (%s)", f.Name, humanize.IBytes(uint64(max(f.Size, 0))))
	}
	b.WriteString("File: " + dash(fileLabel) + "\n\n")

	b.WriteString(m.inpPath.View())
	b.WriteString("\n")
	if m.focus == focusPath && m.suggestion != "" {
		s := "Suggestion: " + m.suggestion
		if m.matchCount > 1 {
			s += fmt.Sprintf(" (%d matches)", m.matchCount)
		}
		b.WriteString(m.hintStyle.Render(s))
	}
	b.WriteString("\n")
	b.WriteString(m.filepicker.View())
	b.WriteString("\n")

	b.WriteString(m.renderSubmit())
	b.WriteString("\n")

	switch m.state.Phase {
	case actions.PhaseFailed:
		b.WriteString("\n")
		if m.state.ErrStep != "" {
			b.WriteString(m.errStyle.Render("Step: " + m.state.ErrStep))
			b.WriteString("\n")
		}
		b.WriteString(m.errStyle.Render("Error: " + m.state.ErrMessage))
		b.WriteString("\n")
	case actions.PhaseSucceeded:
		b.WriteString("\n")
		b.WriteString("Blob url: " + m.urlStyle.Render(m.state.ResultURL()))
		b.WriteString("\n")
		b.WriteString(m.renderCopyStatus())
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.errStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.hintStyle.Render(m.contextualHint()))

	return m.renderFrame(header + "\n" + panel.Render(b.String()))
}

func (m formModel) renderSubmit() string {
	if m.state.IsLoading() {
		var b strings.Builder
		b.WriteString(m.btnStyle.Render(m.sp.View() + " Uploading…"))
		b.WriteString("\n\n")
		b.WriteString(m.progress.View())
		if m.uploadProg.total > 0 {
			b.WriteString(fmt.Sprintf("\n%s / %s", humanize.IBytes(uint64(m.uploadProg.consumed)), humanize.IBytes(uint64(m.uploadProg.total))))
		}
		return b.String()
	}
	if m.focus == focusSubmit {
		return m.btnStyle.Render("Upload")
	}
	return m.idleBtn.Render("Upload")
}

func (m formModel) renderCopyStatus() string {
	switch {
	case m.state.Copied:
		return m.okStyle.Render("Copied!") + "\n"
	case m.state.CopyManual:
		return m.panelStyle.Render("Copy this URL manually:\n"+m.state.ResultURL()) + "\n"
	case m.state.CopyError != "":
		return m.errStyle.Render("Copy failed: "+m.state.CopyError) + "\n"
	}
	return ""
}

// MainTUI 启动上传表单
func MainTUI(args *config.Argument) error {
	if !args.Verbose {
		// 避免日志打乱全屏界面
		logs.SetLevel(logs.LevelError)
	}
	chain, err := lib.NewClipboardChain(args.Clipboard, nil)
	if err != nil {
		return err
	}
	m := newFormModel(actions.NewBlobUploaderFromArgs(args), chain)
	if args.Path != "" {
		m.selectFile(args.Path)
		m.inpPath.SetValue(args.Path)
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
