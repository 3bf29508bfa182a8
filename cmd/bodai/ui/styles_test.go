package ui

import (
	"testing"

	"bodai/internal/prefs"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")

	t.Setenv("BODAI_DARK_MODE", "0")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme when BODAI_DARK_MODE=0")
	}

	t.Setenv("BODAI_DARK_MODE", "")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme by default")
	}
}

func TestDetectTheme_COLORFGBG(t *testing.T) {
	t.Setenv("BODAI_DARK_MODE", "")

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Error("background 0 should be dark")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Error("background 15 should be light")
	}
}

func TestThemeFor(t *testing.T) {
	if got := ThemeFor(prefs.ThemeDark); got.Name != prefs.ThemeDark || !got.IsDark {
		t.Errorf("ThemeFor(dark) = %+v", got)
	}
	if got := ThemeFor(prefs.ThemeLight); got.Name != prefs.ThemeLight || got.IsDark {
		t.Errorf("ThemeFor(light) = %+v", got)
	}
}

func TestGlamourStyle(t *testing.T) {
	if DarkTheme().GlamourStyle() != "dark" {
		t.Error("dark theme should map to glamour dark")
	}
	if LightTheme().GlamourStyle() != "light" {
		t.Error("light theme should map to glamour light")
	}
}

func TestNewStyles_FollowsTheme(t *testing.T) {
	s := NewStyles(LightTheme())
	if s.Theme.Name != prefs.ThemeLight {
		t.Errorf("styles carry wrong theme %q", s.Theme.Name)
	}
	if s.UserBubble.GetBackground() != LightUserBubble {
		t.Error("user bubble should use the light palette")
	}
}
