// ABOUTME: Root Cobra command for habits CLI.
// ABOUTME: Opens config, logger, backend and habit store in PersistentPreRunE.
package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/kv"
	"github.com/spf13/cobra"
)

// skipStore marks commands that run without opening the habit store.
const skipStore = "skip-store"

var (
	cfg      *config.Config
	logger   *log.Logger
	backend  kv.Store
	store    *habits.Store
	closeLog func() error

	flagDebug   bool
	flagBackend string
	flagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "habits",
	Short: "Personal habit tracker with streaks",
	Long: `Habits is a CLI tool for building daily habits and keeping streaks alive.

QUICK START:

  $ habits add "Drink water" --icon 💧 --category health
  $ habits list                     # Today's habits with streaks
  $ habits done 1a2b3c4d            # Mark done today (run again to undo)
  $ habits done 1a2b --date 2025-03-09
  $ habits history 1a2b             # Month calendar for one habit
  $ habits stats                    # Overview (and progress on premium)

PLANS:

  Free     up to 5 habits
  Premium  unlimited habits, integrations, advanced stats,
           reminders, export, themes

  $ habits plan             # Show the active plan
  $ habits plan upgrade     # Switch to premium

STORAGE:

  The backend is chosen in ~/.config/habits/config.json:
    sqlite   ~/.local/share/habits/habits.db (default)
    badger   ~/.local/share/habits/badger/
    charm    Charm KV with E2E-encrypted sync ('habits sync link')

  $ habits config set backend charm

MCP INTEGRATION:

  Run 'habits mcp' to start the Model Context Protocol server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipStore] != "" || cmd.Name() == "help" {
			return nil
		}
		return openStore()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	return c, nil
}

func openStore() error {
	if err := closeStore(); err != nil {
		return err
	}

	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err = cfg.NewLogger(flagDebug)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}

	backend, err = cfg.OpenStorage(logger)
	if err != nil {
		backend = nil
		return fmt.Errorf("failed to open %s backend: %w", cfg.GetBackend(), err)
	}

	store, err = habits.Open(backend, habits.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	logger.Debug("store ready", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
	return nil
}

func closeStore() error {
	var errs []error
	if backend != nil {
		errs = append(errs, backend.Close())
		backend = nil
	}
	if closeLog != nil {
		errs = append(errs, closeLog())
		closeLog = nil
	}
	return errors.Join(errs...)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "mirror logs to stderr at debug level")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend override (sqlite, badger, charm)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory override")
}
