package client

import (
	"errors"
	"fmt"
)

// User-facing fallbacks shown in place of a bot reply.
const (
	InvalidReplyText = "[Eroare: raspuns invalid]"
	NetworkErrorText = "[Eroare de retea]"
)

var (
	// ErrEmptyMessage is returned for blank input; nothing is sent.
	ErrEmptyMessage = errors.New("empty message")

	// ErrTransport covers every failure to obtain a usable JSON response.
	ErrTransport = errors.New("chat transport failure")

	// ErrDecode means the response body was not JSON.
	ErrDecode = fmt.Errorf("%w: response is not valid JSON", ErrTransport)

	// ErrInvalidReply means the response was JSON but had no usable reply.
	ErrInvalidReply = errors.New("response has no reply")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat backend returned status %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets errors.Is(err, ErrTransport) match status failures.
func (e *StatusError) Unwrap() error { return ErrTransport }

// ReplyText maps the outcome of Send to the text shown as the bot message.
func ReplyText(reply Reply, err error) string {
	switch {
	case err == nil:
		return reply.Text
	case errors.Is(err, ErrInvalidReply):
		return InvalidReplyText
	default:
		return NetworkErrorText
	}
}
