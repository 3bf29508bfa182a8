package chat

import (
	"fmt"
	"time"

	"bodai/internal/kv"
	"bodai/internal/logging"
	"bodai/internal/prefs"
)

// greetKey marks the session as already greeted.
const greetKey = "bodai:greet"

// Greeting returns the welcome line, personalized when name is non-empty.
func Greeting(name string) string {
	if name == "" {
		return "Salut! Eu sunt BODAI. Cu ce te pot ajuta astazi?"
	}
	return fmt.Sprintf("Salut, %s! Eu sunt BODAI. Cu ce te pot ajuta astazi?", name)
}

// greetOnce returns the greeting message the first time it is called for a
// session store. An unreadable store counts as a fresh session.
func greetOnce(session kv.Store, p prefs.Preferences) (Message, bool) {
	log := logging.Get(logging.CategorySession)

	_, seen, err := session.Get(greetKey)
	if err != nil {
		log.Warn("could not read greeting flag: %v", err)
	}
	if seen {
		return Message{}, false
	}

	if err := session.Set(greetKey, []byte("1")); err != nil {
		log.Warn("could not store greeting flag: %v", err)
	}

	return Message{
		Text:   Greeting(p.DisplayName()),
		Sender: SenderBot,
		Time:   time.Now(),
	}, true
}
