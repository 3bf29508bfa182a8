package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"bodai/internal/client"
	"bodai/internal/config"
	"bodai/internal/prefs"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupCLI points the global config at a temp data dir and a test backend.
func setupCLI(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	logger = zap.NewNop()

	cfg = config.DefaultConfig()
	cfg.Storage.DataDir = t.TempDir()
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		cfg.Server.BaseURL = srv.URL
	}
	t.Cleanup(func() { cfg = nil })
}

func run(t *testing.T, fn func(*cobra.Command, []string) error, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	err := fn(cmd, args)
	return buf.String(), err
}

func TestAsk_PrintsReply(t *testing.T) {
	var got string
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Path
		_, _ = w.Write([]byte(`{"reply":"Salut!"}`))
	})

	out, err := run(t, runAsk, "buna", "ziua")
	require.NoError(t, err)
	assert.Equal(t, "/chat", got)
	assert.Contains(t, out, "BODAI:")
	assert.Contains(t, out, "Salut!")
}

func TestAsk_FallbackOnServerError(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	out, err := run(t, runAsk, "buna")
	require.NoError(t, err, "fallbacks are printed, not returned")
	assert.Contains(t, out, client.NetworkErrorText)
}

func TestAsk_FallbackOnMissingReply(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	out, err := run(t, runAsk, "buna")
	require.NoError(t, err)
	assert.Contains(t, out, client.InvalidReplyText)
}

func TestAsk_BlankMessage(t *testing.T) {
	setupCLI(t, nil)
	_, err := run(t, runAsk, "   ")
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","version":"2.0"}`))
	})

	out, err := run(t, runHealth)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "version=2.0")
}

func TestHealth_Unreachable(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := run(t, runHealth)
	assert.ErrorIs(t, err, client.ErrTransport)
}

func TestPrefsCommands(t *testing.T) {
	setupCLI(t, nil)

	_, err := run(t, runPrefsSetName, "Ana")
	require.NoError(t, err)

	out, err := run(t, runPrefsTheme, "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "theme set to dark")

	out, err = run(t, runPrefsTheme, "toggle")
	require.NoError(t, err)
	assert.Contains(t, out, "theme set to light")

	out, err = run(t, runPrefsShow)
	require.NoError(t, err)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, string(prefs.ThemeLight))

	_, err = run(t, runPrefsTheme, "sepia")
	assert.Error(t, err)
}

func TestOpenStores(t *testing.T) {
	setupCLI(t, nil)

	local, session := openStores(t.Context())
	defer local.Close()
	defer session.Close()

	require.NoError(t, local.Set("k", []byte("v")))
	_, ok, err := local.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContextCommands(t *testing.T) {
	var calls []string
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"context":[{"role":"user","text":"salut"},{"role":"bot","text":"Salut!"}]}`))
		case http.MethodDelete:
			_, _ = w.Write([]byte(`{"status":"cleared"}`))
		}
	})

	out, err := run(t, runContextShow)
	require.NoError(t, err)
	assert.Contains(t, out, "salut")
	assert.Contains(t, out, "Salut!")

	out, err = run(t, runContextClear)
	require.NoError(t, err)
	assert.Contains(t, out, "context cleared")

	assert.Equal(t, []string{"GET /context", "DELETE /context"}, calls)
}

func TestProfileCommands(t *testing.T) {
	var calls []string
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodGet {
			_, _ = w.Write([]byte(`{"profile":[{"id":1,"category":"loc","info":"Iasi"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	out, err := run(t, runProfileList)
	require.NoError(t, err)
	assert.Contains(t, out, "Iasi")
	assert.Contains(t, out, "loc")

	out, err = run(t, runProfileSet, "1", "Cluj", "Napoca")
	require.NoError(t, err)
	assert.Contains(t, out, "profile entry 1 updated")

	out, err = run(t, runProfileRm, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "profile entry 1 deleted")

	_, err = run(t, runProfileRm, "unu")
	assert.Error(t, err)

	assert.Equal(t, []string{"GET /profile", "PUT /profile/1", "DELETE /profile/1"}, calls)
}

func TestProfileCommands_BackendDown(t *testing.T) {
	setupCLI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := run(t, runProfileList)
	assert.ErrorIs(t, err, client.ErrTransport)
}

func TestConfigInit(t *testing.T) {
	t.Setenv("BODAI_URL", "")
	t.Setenv("BODAI_TIMEOUT", "")
	setupCLI(t, nil)
	prev := configPath
	configPath = filepath.Join(t.TempDir(), "config.yaml")
	t.Cleanup(func() {
		configPath = prev
		configForce = false
	})

	out, err := run(t, runConfigInit)
	require.NoError(t, err)
	assert.Contains(t, out, configPath)

	loaded, err := config.Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Server, loaded.Server)

	_, err = run(t, runConfigInit)
	assert.Error(t, err, "existing file is kept without --force")

	configForce = true
	_, err = run(t, runConfigInit)
	assert.NoError(t, err)
}
