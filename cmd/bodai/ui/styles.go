// Package ui provides the visual styling for the bodai terminal chat.
// Two palettes exist, light and dark, mirroring the persisted theme choice.
package ui

import (
	"os"
	"strconv"
	"strings"

	"bodai/internal/prefs"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light Mode Colors
	LightBackground = lipgloss.Color("#f6f7fb")
	LightForeground = lipgloss.Color("#1c2233")
	LightPrimary    = lipgloss.Color("#3454d1")
	LightAccent     = lipgloss.Color("#12a4a4")
	LightUserBubble = lipgloss.Color("#dfe6ff")
	LightBotBubble  = lipgloss.Color("#ffffff")
	LightMuted      = lipgloss.Color("#8a93a8")
	LightBorder     = lipgloss.Color("#d3d8e6")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#10131c")
	DarkForeground = lipgloss.Color("#e8ebf4")
	DarkPrimary    = lipgloss.Color("#7c95ff")
	DarkAccent     = lipgloss.Color("#2cc7c7")
	DarkUserBubble = lipgloss.Color("#26315a")
	DarkBotBubble  = lipgloss.Color("#1b2030")
	DarkMuted      = lipgloss.Color("#5d6683")
	DarkBorder     = lipgloss.Color("#2c3349")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#43a047")
)

// Theme holds the current color scheme
type Theme struct {
	Name       prefs.Theme
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	UserBubble lipgloss.Color
	BotBubble  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Name:       prefs.ThemeLight,
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		UserBubble: LightUserBubble,
		BotBubble:  LightBotBubble,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Name:       prefs.ThemeDark,
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		UserBubble: DarkUserBubble,
		BotBubble:  DarkBotBubble,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ThemeFor returns the palette for a stored theme. An unset theme falls
// back to terminal detection.
func ThemeFor(t prefs.Theme) Theme {
	switch t {
	case prefs.ThemeDark:
		return DarkTheme()
	case prefs.ThemeLight:
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background from COLORFGBG, then
// BODAI_DARK_MODE, and defaults to dark.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		// Format is usually "foreground;background"
		parts := strings.Split(colorTerm, ";")
		if bgIdx, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
				return DarkTheme()
			}
			return LightTheme()
		}
	}

	if v := os.Getenv("BODAI_DARK_MODE"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil && !on {
			return LightTheme()
		}
	}

	return DarkTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Input   lipgloss.Style

	// Conversation
	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	Avatar     lipgloss.Style

	// Status
	Typing lipgloss.Style
	Toast  lipgloss.Style
	Error  lipgloss.Style
	Badge  lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 1),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 1),

		UserBubble: lipgloss.NewStyle().
			Background(theme.UserBubble).
			Foreground(theme.Foreground).
			Padding(0, 1),

		BotBubble: lipgloss.NewStyle().
			Background(theme.BotBubble).
			Foreground(theme.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Avatar: lipgloss.NewStyle().
			Padding(0, 1),

		Typing: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Italic(true),

		Toast: lipgloss.NewStyle().
			Background(Success).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}
}

// GlamourStyle names the glamour standard style matching the theme.
func (t Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}
