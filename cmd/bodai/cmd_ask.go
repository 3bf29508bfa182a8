package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bodai/cmd/bodai/ui"
	"bodai/internal/client"

	"github.com/charmbracelet/lipgloss"
	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// askCmd sends one message without starting the interactive UI
var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send a single message and print the reply",
	Long: `Sends one message to the chat backend and prints the reply.

A failed request prints the same fallback text the interactive chat shows.

Example:
  bodai ask "Cum te cheama?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// errorStyle is the failure style of the detected terminal theme.
func errorStyle() lipgloss.Style {
	return ui.NewStyles(ui.DetectTheme()).Error
}

func runAsk(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return errors.New("message is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	api := client.New(cfg.Server)
	defer api.Close()

	reply, err := api.Send(ctx, text)
	if err != nil {
		logger.Warn("send failed", zap.String("request_id", reply.RequestID), zap.Error(err))
	}

	out := cmd.OutOrStdout()
	answer := client.ReplyText(reply, err)
	if err != nil {
		fmt.Fprintln(out, errorStyle().Render("❌ BODAI:"), answer)
		return nil
	}
	fmt.Fprintln(out, color.Cyan.Sprint("🤖 BODAI:"), answer)
	return nil
}
