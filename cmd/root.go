// Package cmd provides the CLI commands for Haven.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/havenchat/haven/internal/config"
	"github.com/havenchat/haven/internal/conversation"
	"github.com/havenchat/haven/internal/db"
	"github.com/havenchat/haven/internal/debug"
	"github.com/havenchat/haven/internal/gemini"
	"github.com/havenchat/haven/internal/pubsub"
	"github.com/havenchat/haven/internal/session"
	"github.com/havenchat/haven/internal/tui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "haven",
		Short: "A quiet corner of your terminal",
		Long: `Haven is a supportive chat companion for students.

Talk through what's on your mind, keep separate chats for separate
worries, and reach for the built-in tools when words aren't enough:
a focus timer, a guided breathing exercise, and a study planner.`,
		RunE: runTUI,
	}

	cmd.Flags().Bool("debug", false, "Enable debug logging")
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	debugMode, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("getting debug flag: %w", err)
	}

	if config.IsFirstRun() {
		if err := config.WriteDefault(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to write default config: %v\n", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if debugMode || (cfg.Options != nil && cfg.Options.Debug) {
		logPath := config.DebugLogPath()
		if debugErr := debug.Enable(logPath); debugErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to enable debug logging: %v\n", debugErr)
		} else {
			defer debug.Disable()
			fmt.Fprintf(os.Stderr, "Debug: %s\n", logPath)
		}
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("no API key configured: set GEMINI_API_KEY or edit %s", config.GlobalConfigPath())
	}

	ctx := context.Background()

	// Open the session database and run migrations.
	database, err := db.Open(filepath.Join(cfg.DataDir(), "haven.db"))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	hub := pubsub.NewHub()
	defer hub.Shutdown()

	store := session.NewSQLiteStore(database.Conn())
	sessionSvc := session.NewService(store, hub.Session)
	if err := sessionSvc.Hydrate(ctx); err != nil {
		return fmt.Errorf("loading sessions: %w", err)
	}

	client, err := gemini.New(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("creating Gemini client: %w", err)
	}

	controller := conversation.NewController(client, sessionSvc, hub)

	return tui.Run(cfg, controller, sessionSvc, hub)
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
