package main

import (
	"context"
	"fmt"

	"bodai/internal/client"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// healthCmd checks that the chat backend is reachable
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the chat backend health endpoint",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	api := client.New(cfg.Server)
	defer api.Close()

	hs, err := api.Health(ctx)
	if err != nil {
		logger.Error("health check failed", zap.String("url", cfg.Server.HealthURL()), zap.Error(err))
		fmt.Fprintln(cmd.OutOrStdout(), errorStyle().Render("unreachable"), cfg.Server.BaseURL)
		return fmt.Errorf("backend unreachable at %s: %w", cfg.Server.HealthURL(), err)
	}

	status := color.Green.Sprint(hs.Status)
	if hs.Status != "OK" {
		status = errorStyle().Render(hs.Status)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  status=%s version=%s\n", cfg.Server.BaseURL, status, hs.Version)
	return nil
}
