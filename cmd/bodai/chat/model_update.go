package chat

import (
	"strings"
	"time"

	"bodai/cmd/bodai/ui"
	"bodai/internal/client"
	"bodai/internal/logging"
	"bodai/internal/prefs"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ClearedNotice is the toast shown after the conversation is cleared.
const ClearedNotice = "Chat curatat"

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit(m.textarea.Value())
		case tea.KeyCtrlT:
			return m.toggleTheme()
		case tea.KeyCtrlL:
			return m.clear()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case replyMsg:
		return m.handleReply(msg)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case spinner.TickMsg:
		// Stop ticking once nothing is in flight.
		if !m.Typing() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// submit appends the user's message and starts sending it. Blank input is
// ignored and left in the input box.
func (m Model) submit(raw string) (Model, tea.Cmd) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return m, nil
	}

	m.appendMessage(Message{Text: text, Sender: SenderUser, Time: time.Now()})
	m.textarea.Reset()

	return m.send(text)
}

// send starts one request. Sends are not queued: a second submit while a
// reply is pending issues a second concurrent request.
func (m Model) send(text string) (Model, tea.Cmd) {
	id := m.nextSendID
	m.nextSendID++

	cmds := []tea.Cmd{sendCmd(m, id, text)}
	if !m.typing {
		cmds = append(cmds, m.spinner.Tick)
	}
	m.typing = true

	logging.Get(logging.CategoryUI).Debug("send %d started", id)
	return m, tea.Batch(cmds...)
}

func sendCmd(m Model, id int, text string) tea.Cmd {
	api, ctx := m.api, m.ctx
	return func() tea.Msg {
		if api == nil {
			return replyMsg{id: id, err: client.ErrTransport}
		}
		reply, err := api.Send(ctx, text)
		if err != nil {
			logging.Get(logging.CategoryAPI).
				With("send_id", id, "request_id", reply.RequestID).
				Error("send failed: %v", err)
		}
		return replyMsg{id: id, reply: reply, err: err}
	}
}

// handleReply shows the reply, or the fallback text, and hides the typing
// indicator. Any reply hides it, even while another send is still out.
func (m Model) handleReply(msg replyMsg) (Model, tea.Cmd) {
	m.typing = false
	logging.Get(logging.CategoryUI).Debug("send %d settled", msg.id)
	m.appendMessage(Message{
		Text:   client.ReplyText(msg.reply, msg.err),
		Sender: SenderBot,
		Time:   time.Now(),
	})
	return m, nil
}

// toggleTheme flips the palette and persists the choice. A failed write
// leaves the new palette on screen.
func (m Model) toggleTheme() (Model, tea.Cmd) {
	next := m.Theme().Toggle()
	m.applyTheme(ui.ThemeFor(next))
	m.refreshViewport()

	if err := prefs.SetTheme(m.local, next); err != nil {
		logging.Get(logging.CategoryPrefs).Warn("failed to persist theme: %v", err)
	}
	return m, nil
}

// clear empties the conversation and shows a short-lived notice.
func (m Model) clear() (Model, tea.Cmd) {
	m.history = nil
	m.refreshViewport()
	return m.showToast(ClearedNotice)
}

func (m Model) showToast(text string) (Model, tea.Cmd) {
	m.toast = text
	m.toastSeq++
	seq := m.toastSeq
	return m, tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}
