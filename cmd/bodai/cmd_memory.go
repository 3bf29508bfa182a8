package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"bodai/internal/client"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// contextCmd groups the conversation-context commands
var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Inspect or reset what the backend remembers of the conversation",
}

var contextShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the remembered conversation turns",
	Args:  cobra.NoArgs,
	RunE:  runContextShow,
}

var contextClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Make the backend forget the conversation",
	Args:  cobra.NoArgs,
	RunE:  runContextClear,
}

// profileCmd groups the user-profile commands
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage what the backend has noted about you",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profile entries",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileSetCmd = &cobra.Command{
	Use:   "set <id> <info...>",
	Short: "Replace the info of a profile entry",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runProfileSet,
}

var profileRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a profile entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileRm,
}

// withAPI runs fn with a client and a context bounded by --timeout.
func withAPI(fn func(context.Context, *client.Client) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	api := client.New(cfg.Server)
	defer api.Close()

	if err := fn(ctx, api); err != nil {
		logger.Warn("backend call failed", zap.String("url", cfg.Server.BaseURL), zap.Error(err))
		return err
	}
	return nil
}

func runContextShow(cmd *cobra.Command, _ []string) error {
	return withAPI(func(ctx context.Context, api *client.Client) error {
		entries, err := api.Context(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "context is empty")
			return nil
		}
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"#", "Role", "Text"})
		table.SetAutoWrapText(true)
		for i, e := range entries {
			table.Append([]string{strconv.Itoa(i + 1), e.Role, e.Text})
		}
		table.Render()
		return nil
	})
}

func runContextClear(cmd *cobra.Command, _ []string) error {
	return withAPI(func(ctx context.Context, api *client.Client) error {
		if err := api.ClearContext(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "context cleared")
		return nil
	})
}

func runProfileList(cmd *cobra.Command, _ []string) error {
	return withAPI(func(ctx context.Context, api *client.Client) error {
		entries, err := api.Profile(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "profile is empty")
			return nil
		}
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"ID", "Category", "Info"})
		for _, e := range entries {
			table.Append([]string{strconv.Itoa(e.ID), e.Category, e.Info})
		}
		table.Render()
		return nil
	})
}

func runProfileSet(cmd *cobra.Command, args []string) error {
	id, err := parseProfileID(args[0])
	if err != nil {
		return err
	}
	info := strings.TrimSpace(strings.Join(args[1:], " "))
	if info == "" {
		return fmt.Errorf("info is empty")
	}
	return withAPI(func(ctx context.Context, api *client.Client) error {
		if err := api.UpdateProfile(ctx, id, info); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "profile entry %d updated\n", id)
		return nil
	})
}

func runProfileRm(cmd *cobra.Command, args []string) error {
	id, err := parseProfileID(args[0])
	if err != nil {
		return err
	}
	return withAPI(func(ctx context.Context, api *client.Client) error {
		if err := api.DeleteProfile(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "profile entry %d deleted\n", id)
		return nil
	})
}

func parseProfileID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid profile id %q", s)
	}
	return id, nil
}
