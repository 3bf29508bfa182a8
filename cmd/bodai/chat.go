package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"bodai/cmd/bodai/chat"
	"bodai/internal/client"
	"bodai/internal/kv"
	"bodai/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// storeDir is where the persistent preference store lives.
func storeDir() string {
	return filepath.Join(cfg.Storage.DataDir, "store")
}

// runChat launches the interactive chat interface.
func runChat(cmd *cobra.Command, _ []string) error {
	if err := logging.Initialize(cfg.Storage.DataDir, cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: %v\n", err)
	}
	defer logging.CloseAll()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	local, session := openStores(ctx)
	defer local.Close()
	defer session.Close()

	api := client.New(cfg.Server)
	defer api.Close()

	logging.Get(logging.CategoryBoot).Info("chat backend: %s", cfg.Server.ChatURL())

	p := tea.NewProgram(
		chat.New(chat.Options{
			API:     api,
			Local:   local,
			Session: session,
			UI:      cfg.UI,
			Context: ctx,
		}),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	if logging.IsDebugMode() {
		fmt.Fprintf(cmd.ErrOrStderr(), "debug logs: %s\n", filepath.Join(cfg.Storage.DataDir, "logs"))
	}
	return err
}

// openStores opens the preference and session stores concurrently. A store
// that fails to open is replaced by a no-op store.
func openStores(ctx context.Context) (local, session kv.Store) {
	boot := logging.Get(logging.CategoryBoot)
	local, session = kv.Nop(), kv.Nop()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := kv.OpenDisk(storeDir())
		if err != nil {
			boot.Warn("preferences unavailable: %v", err)
			return nil
		}
		local = s
		return nil
	})
	g.Go(func() error {
		s, err := kv.OpenMemory()
		if err != nil {
			boot.Warn("session store unavailable: %v", err)
			return nil
		}
		session = s
		return nil
	})
	_ = g.Wait()

	return local, session
}
