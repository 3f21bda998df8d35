// ABOUTME: CLI commands for viewing and changing configuration.
// ABOUTME: Reads and writes ~/.config/habits/config.json.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show configuration",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		fmt.Printf("Config:    %s\n", config.GetConfigPath())
		fmt.Printf("Backend:   %s\n", c.GetBackend())
		fmt.Printf("Data dir:  %s\n", c.GetDataDir())
		fmt.Printf("Log file:  %s\n", faint.Sprintf("%s/habits.log", c.LogDir()))
		level := c.LogLevel
		if level == "" {
			level = "warn"
		}
		fmt.Printf("Log level: %s\n", level)
		if c.CharmHost != "" {
			fmt.Printf("Charm:     %s\n", c.CharmHost)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

KEYS:

  backend      sqlite, badger or charm
  data_dir     data directory (~ is expanded)
  log_level    debug, info, warn or error
  charm_host   Charm server for the charm backend

EXAMPLES:

  habits config set backend charm
  habits config set log_level debug`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := c.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ %s = %s", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file path",
	Annotations: map[string]string{skipStore: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.GetConfigPath())
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
