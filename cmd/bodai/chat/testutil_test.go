// Package chat provides test utilities for TUI testing.
package chat

import (
	"context"
	"sync"
	"testing"

	"bodai/internal/client"
	"bodai/internal/config"
	"bodai/internal/kv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// =============================================================================
// STUB BACKEND
// =============================================================================

// stubAPI answers every Send through respond and records the texts sent.
type stubAPI struct {
	mu      sync.Mutex
	calls   []string
	respond func(text string) (client.Reply, error)
}

func replyingWith(text string) *stubAPI {
	return &stubAPI{respond: func(string) (client.Reply, error) {
		return client.Reply{Text: text}, nil
	}}
}

func failingWith(err error) *stubAPI {
	return &stubAPI{respond: func(string) (client.Reply, error) {
		return client.Reply{}, err
	}}
}

func (s *stubAPI) Send(_ context.Context, text string) (client.Reply, error) {
	s.mu.Lock()
	s.calls = append(s.calls, text)
	s.mu.Unlock()
	return s.respond(text)
}

func (s *stubAPI) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// =============================================================================
// FIXTURES
// =============================================================================

var ignoreTime = cmpopts.IgnoreFields(Message{}, "Time")

type modelOption func(*Options)

func withLocal(s kv.Store) modelOption   { return func(o *Options) { o.Local = s } }
func withSession(s kv.Store) modelOption { return func(o *Options) { o.Session = s } }

// newTestModel builds a model with markdown off and a short toast.
func newTestModel(t *testing.T, api ChatAPI, opts ...modelOption) Model {
	t.Helper()
	o := Options{
		API: api,
		UI:  config.UIConfig{ToastDuration: "10ms", Markdown: false},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return New(o)
}

func memStore(t *testing.T) kv.Store {
	t.Helper()
	s, err := kv.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// greetedSession returns a session store whose greeting already happened.
func greetedSession(t *testing.T) kv.Store {
	t.Helper()
	s := memStore(t)
	if err := s.Set(greetKey, []byte("1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	return s
}

// =============================================================================
// DRIVING THE MODEL
// =============================================================================

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeAndSubmit(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(text)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

// runCmd executes cmd, expanding batches, and returns every produced message.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func repliesIn(msgs []tea.Msg) []replyMsg {
	var out []replyMsg
	for _, msg := range msgs {
		if r, ok := msg.(replyMsg); ok {
			out = append(out, r)
		}
	}
	return out
}
