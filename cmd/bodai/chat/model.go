// Package chat provides the interactive TUI chat screen for bodai.
package chat

import (
	"context"
	"strings"

	"bodai/cmd/bodai/ui"
	"bodai/internal/kv"
	"bodai/internal/logging"
	"bodai/internal/prefs"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const (
	headerHeight = 1
	statusHeight = 1
	inputHeight  = 3 // one line plus border
	footerHeight = 1
)

// New builds the chat model: it loads preferences, applies the theme and
// greets the user once per session.
func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Local == nil {
		opts.Local = kv.Nop()
	}
	if opts.Session == nil {
		opts.Session = kv.Nop()
	}

	ta := textarea.New()
	ta.Placeholder = "Scrie un mesaj..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 4000
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		textarea:      ta,
		viewport:      viewport.New(80, 20),
		spinner:       sp,
		toastDuration: opts.UI.GetToastDuration(),
		markdown:      opts.UI.Markdown,
		width:         80,
		api:           opts.API,
		local:         opts.Local,
		session:       opts.Session,
		ctx:           opts.Context,
	}

	p := prefs.Load(opts.Local)
	m.applyTheme(ui.ThemeFor(p.Theme))

	if greeting, ok := greetOnce(opts.Session, p); ok {
		m.history = append(m.history, greeting)
	}
	m.refreshViewport()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// History returns a copy of the conversation.
func (m Model) History() []Message {
	out := make([]Message, len(m.history))
	copy(out, m.history)
	return out
}

// Theme returns the active palette name.
func (m Model) Theme() prefs.Theme {
	return m.styles.Theme.Name
}

// Typing reports whether the typing indicator is visible.
func (m Model) Typing() bool {
	return m.typing
}

// Toast returns the visible notice, empty when hidden.
func (m Model) Toast() string {
	return m.toast
}

func (m *Model) appendMessage(msg Message) {
	m.history = append(m.history, msg)
	m.refreshViewport()
}

// refreshViewport re-renders the history and scrolls to the newest message.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m *Model) applyTheme(theme ui.Theme) {
	m.styles = ui.NewStyles(theme)
	m.spinner.Style = m.styles.Typing
	m.renderer = m.newRenderer()
}

func (m *Model) newRenderer() *glamour.TermRenderer {
	if !m.markdown {
		return nil
	}
	wrap := m.width - 12
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.styles.Theme.GlamourStyle()),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		logging.Get(logging.CategoryUI).Warn("markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}

func (m *Model) resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m.width, m.height = width, height
	m.ready = true

	vpHeight := height - headerHeight - statusHeight - inputHeight - footerHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = max(width-2, 1)
	m.viewport.Height = vpHeight
	m.textarea.SetWidth(max(width-4, 1))

	m.renderer = m.newRenderer()
	m.refreshViewport()
}

// htmlEscaper keeps angle brackets and entities literal under markdown.
var htmlEscaper = strings.NewReplacer("<", `\<`, ">", `\>`, "&", `\&`)

// safeRenderMarkdown renders markdown with panic recovery. Raw HTML is
// escaped first so text such as "<tine minte>" is never swallowed.
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(htmlEscaper.Replace(content))
		if err == nil {
			return strings.Trim(rendered, "\n")
		}
	}
	return content
}
