package config

import "time"

// UIConfig holds terminal UI configuration.
type UIConfig struct {
	// ToastDuration is how long transient notices stay visible.
	ToastDuration string `yaml:"toast_duration"`

	// Markdown renders bot replies through glamour. Off by default so the
	// bubble shows the reply text exactly as received.
	Markdown bool `yaml:"markdown"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		ToastDuration: "1500ms",
		Markdown:      false,
	}
}

// GetToastDuration parses ToastDuration, falling back to 1.5s.
func (c UIConfig) GetToastDuration() time.Duration {
	d, err := time.ParseDuration(c.ToastDuration)
	if err != nil || d <= 0 {
		return 1500 * time.Millisecond
	}
	return d
}
