package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

const (
	userAvatar = "👤"
	botAvatar  = "🤖"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.styles.Content.Render(m.viewport.View()),
		m.renderStatus(),
		m.styles.Input.Render(m.textarea.View()),
		m.renderFooter(),
	)
}

func (m Model) renderHistory() string {
	rows := lo.Map(m.history, func(msg Message, _ int) string {
		return m.renderMessage(msg)
	})
	return strings.Join(rows, "\n")
}

// renderMessage draws one bubble: bot messages on the left with their
// avatar first, user messages right-aligned with the avatar last.
func (m Model) renderMessage(msg Message) string {
	maxBubble := max(m.viewport.Width*3/4, 10)

	if msg.Sender == SenderUser {
		style := m.styles.UserBubble
		if lipgloss.Width(msg.Text)+2 > maxBubble {
			style = style.Width(maxBubble)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, style.Render(msg.Text), m.styles.Avatar.Render(userAvatar))
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, row)
	}

	content := m.safeRenderMarkdown(msg.Text)
	style := m.styles.BotBubble
	if lipgloss.Width(content)+4 > maxBubble {
		style = style.Width(maxBubble)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Avatar.Render(botAvatar), style.Render(content))
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("BODAI")
	badge := m.styles.Badge.Render(string(m.styles.Theme.Name))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge)
}

// renderStatus shows the typing indicator and the toast on one line.
func (m Model) renderStatus() string {
	var parts []string
	if m.Typing() {
		parts = append(parts, m.spinner.View()+m.styles.Typing.Render(" BODAI scrie..."))
	}
	if m.toast != "" {
		parts = append(parts, m.styles.Toast.Render(m.toast))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Render("enter trimite • ctrl+t tema • ctrl+l sterge • pgup/pgdn derulare • esc iesire")
}
