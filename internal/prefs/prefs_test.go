package prefs

import (
	"strings"
	"testing"

	"bodai/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memStore(t *testing.T) kv.Store {
	t.Helper()
	s, err := kv.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeDark, Theme("").Toggle())
}

func TestLoad_Missing(t *testing.T) {
	assert.Equal(t, Preferences{}, Load(memStore(t)))
	assert.Equal(t, Preferences{}, Load(kv.Nop()))
}

func TestLoad_Corrupt(t *testing.T) {
	s := memStore(t)
	require.NoError(t, s.Set(Key, []byte("{not json")))
	assert.Equal(t, Preferences{}, Load(s))
}

func TestLoad_UnknownThemeReadsAsDark(t *testing.T) {
	s := memStore(t)
	require.NoError(t, s.Set(Key, []byte(`{"theme":"sepia","name":"Ana"}`)))

	p := Load(s)
	assert.Equal(t, ThemeDark, p.Theme)
	assert.Equal(t, "Ana", p.Name)

	require.NoError(t, s.Set(Key, []byte(`{"theme":"","name":"Ana"}`)))
	assert.Equal(t, Theme(""), Load(s).Theme, "empty theme stays unset")
}

func TestSetTheme_OverlongStoredName(t *testing.T) {
	s := memStore(t)
	long := strings.Repeat("ă", MaxNameLength+10)
	require.NoError(t, s.Set(Key, []byte(`{"theme":"dark","name":"`+long+`"}`)))

	require.NoError(t, SetTheme(s, ThemeLight), "toggle persists despite the stored name")

	p := Load(s)
	assert.Equal(t, ThemeLight, p.Theme)
	assert.Equal(t, strings.Repeat("ă", MaxNameLength), p.Name)

	next, err := Toggle(s, ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, next)
}

func TestSaveLoad(t *testing.T) {
	s := memStore(t)
	require.NoError(t, Save(s, Preferences{Theme: ThemeDark, Name: "Ana"}))

	assert.Equal(t, Preferences{Theme: ThemeDark, Name: "Ana"}, Load(s))

	raw, ok, err := s.Get(Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"theme":"dark","name":"Ana"}`, string(raw))
}

func TestSave_Validation(t *testing.T) {
	s := memStore(t)
	assert.Error(t, Save(s, Preferences{Theme: "sepia"}))
	assert.Error(t, Save(s, Preferences{Name: strings.Repeat("x", 65)}))
}

func TestSetThemeKeepsName(t *testing.T) {
	s := memStore(t)
	require.NoError(t, SetName(s, "  Ana  "))
	require.NoError(t, SetTheme(s, ThemeLight))

	p := Load(s)
	assert.Equal(t, ThemeLight, p.Theme)
	assert.Equal(t, "Ana", p.Name)
}

func TestToggleTwiceRestoresStoredValue(t *testing.T) {
	s := memStore(t)
	require.NoError(t, Save(s, Preferences{Theme: ThemeLight, Name: "Ana"}))
	before, _, err := s.Get(Key)
	require.NoError(t, err)

	next, err := Toggle(s, ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, next)

	next, err = Toggle(s, ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, next)

	after, _, err := s.Get(Key)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestToggle_UnsetUsesCurrent(t *testing.T) {
	s := memStore(t)
	next, err := Toggle(s, ThemeDark)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, next)
	assert.Equal(t, ThemeLight, Load(s).Theme)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "", Preferences{Name: "   "}.DisplayName())
	assert.Equal(t, "Ana", Preferences{Name: " Ana "}.DisplayName())
}
