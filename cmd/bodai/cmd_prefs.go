package main

import (
	"fmt"

	"bodai/cmd/bodai/ui"
	"bodai/internal/kv"
	"bodai/internal/prefs"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// prefsCmd groups the preference commands
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change stored preferences",
	Long: `Preferences are the theme and display name kept between runs.

The interactive chat holds the preference store open; run these commands
while it is closed.`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print stored preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsSetNameCmd = &cobra.Command{
	Use:   "set-name [name]",
	Short: "Set the name used in the greeting (empty clears it)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPrefsSetName,
}

var prefsThemeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Set or toggle the stored theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE:      runPrefsTheme,
}

func withPrefsStore(fn func(kv.Store) error) error {
	store, err := kv.OpenDisk(storeDir())
	if err != nil {
		return fmt.Errorf("preference store unavailable (is bodai already running?): %w", err)
	}
	defer store.Close()
	return fn(store)
}

func runPrefsShow(cmd *cobra.Command, _ []string) error {
	return withPrefsStore(func(store kv.Store) error {
		p := prefs.Load(store)

		theme := string(p.Theme)
		if theme == "" {
			theme = fmt.Sprintf("(unset, detected %s)", ui.DetectTheme().Name)
		}
		name := p.DisplayName()
		if name == "" {
			name = "(unset)"
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Preference", "Value"})
		table.Append([]string{"theme", theme})
		table.Append([]string{"name", name})
		table.Render()
		return nil
	})
}

func runPrefsSetName(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	return withPrefsStore(func(store kv.Store) error {
		if err := prefs.SetName(store, name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "name set to %q\n", prefs.Load(store).DisplayName())
		return nil
	})
}

func runPrefsTheme(cmd *cobra.Command, args []string) error {
	return withPrefsStore(func(store kv.Store) error {
		var next prefs.Theme
		switch args[0] {
		case "light":
			next = prefs.ThemeLight
		case "dark":
			next = prefs.ThemeDark
		case "toggle":
			t, err := prefs.Toggle(store, ui.DetectTheme().Name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", t)
			return nil
		default:
			return fmt.Errorf("unknown theme %q (want light, dark or toggle)", args[0])
		}

		if err := prefs.SetTheme(store, next); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", next)
		return nil
	})
}
