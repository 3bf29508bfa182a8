// Package prefs persists the user's display preferences.
package prefs

import (
	"encoding/json"
	"fmt"
	"strings"

	"bodai/internal/kv"
	"bodai/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Key is the storage key the preferences record lives under.
const Key = "bodai:prefs"

// MaxNameLength is the longest display name kept, in characters.
const MaxNameLength = 64

// Theme is the colour scheme of the chat view.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme. Anything that is not dark toggles to dark.
func (t Theme) Toggle() Theme {
	return lo.Ternary(t == ThemeDark, ThemeLight, ThemeDark)
}

// Preferences is the persisted preferences record. An empty Theme means
// the user never chose one.
type Preferences struct {
	Theme Theme  `json:"theme,omitempty" validate:"omitempty,oneof=light dark"`
	Name  string `json:"name,omitempty" validate:"max=64"`
}

var validate = validator.New()

// Validate checks the record before it is written.
func (p Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	return nil
}

// DisplayName returns the trimmed name, empty when unset.
func (p Preferences) DisplayName() string {
	return strings.TrimSpace(p.Name)
}

// Load reads the preferences record. A missing, unreadable or corrupt
// record yields the zero value. Any theme other than light reads as dark,
// and an overlong name is cut so the record can always be written back.
func Load(store kv.Store) Preferences {
	log := logging.Get(logging.CategoryPrefs)

	data, ok, err := store.Get(Key)
	if err != nil {
		log.Warn("failed to read preferences: %v", err)
		return Preferences{}
	}
	if !ok {
		return Preferences{}
	}

	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn("discarding corrupt preferences record: %v", err)
		return Preferences{}
	}
	if p.Theme != "" && p.Theme != ThemeLight {
		p.Theme = ThemeDark
	}
	if name := []rune(p.Name); len(name) > MaxNameLength {
		log.Warn("truncating stored name of %d characters", len(name))
		p.Name = string(name[:MaxNameLength])
	}
	return p
}

// Save validates and writes the whole record.
func Save(store kv.Store, p Preferences) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := store.Set(Key, data); err != nil {
		return err
	}
	logging.Get(logging.CategoryPrefs).Debug("saved preferences theme=%q name=%q", p.Theme, p.Name)
	return nil
}

// SetTheme stores theme, keeping every other field of the stored record.
func SetTheme(store kv.Store, theme Theme) error {
	p := Load(store)
	p.Theme = theme
	return Save(store, p)
}

// SetName stores the display name used by the greeting.
func SetName(store kv.Store, name string) error {
	p := Load(store)
	p.Name = strings.TrimSpace(name)
	return Save(store, p)
}

// Toggle flips the stored theme and returns the new value. When no theme
// was ever stored, current is taken as the theme being flipped.
func Toggle(store kv.Store, current Theme) (Theme, error) {
	p := Load(store)
	base := lo.Ternary(p.Theme != "", p.Theme, current)
	next := base.Toggle()
	p.Theme = next
	if err := Save(store, p); err != nil {
		return base, err
	}
	return next, nil
}
