package chat

import (
	"context"
	"time"

	"bodai/cmd/bodai/ui"
	"bodai/internal/client"
	"bodai/internal/config"
	"bodai/internal/kv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// =============================================================================
// CORE TYPES
// =============================================================================

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry of the conversation. Messages are appended and
// never edited.
type Message struct {
	Text   string
	Sender Sender
	Time   time.Time
}

// ChatAPI is the backend the model sends user input to.
type ChatAPI interface {
	Send(ctx context.Context, text string) (client.Reply, error)
}

// Options wires the model to its collaborators. Nil stores become no-op
// stores; a nil Context becomes context.Background().
type Options struct {
	API     ChatAPI
	Local   kv.Store // survives restarts: preferences
	Session kv.Store // lives as long as the process: greeting flag
	UI      config.UIConfig
	Context context.Context
}

// Model is the Bubble Tea model of the chat screen.
type Model struct {
	// UI Components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	// Conversation
	history []Message

	// typing is set when a send starts and cleared when any reply arrives.
	typing     bool
	nextSendID int

	// Transient notice and the sequence number of the timer that hides it.
	toast         string
	toastSeq      int
	toastDuration time.Duration

	markdown bool
	width    int
	height   int
	ready    bool

	api     ChatAPI
	local   kv.Store
	session kv.Store
	ctx     context.Context
}

// =============================================================================
// MESSAGES
// =============================================================================

// replyMsg carries the outcome of one send back into Update.
type replyMsg struct {
	id    int
	reply client.Reply
	err   error
}

// toastExpiredMsg hides the toast if no newer toast replaced it.
type toastExpiredMsg struct {
	seq int
}
