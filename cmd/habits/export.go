// ABOUTME: CLI commands for exporting and importing habit data.
// ABOUTME: Supports JSON, YAML, and Markdown export and JSON/YAML import.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export habit data (premium)",
	Long: `Export habit data in various formats. Requires the premium plan.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable, also importable)
  markdown   Summary tables (for documentation/sharing)

EXAMPLES:

  habits export json                  # Export all data as JSON
  habits export json -o backup.json   # Save to file
  habits export markdown`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return fmt.Errorf("%w (use json, yaml, or markdown)", err)
		}

		all, plan, err := store.Snapshot()
		if err != nil {
			return friendly(fmt.Errorf("export failed: %w", err))
		}

		now := time.Now()
		data, err := export.Encode(export.New(all, plan, now), format, now)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported %d habits to %s", len(all), exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import habits from a JSON or YAML export",
	Long: `Import habits from a previously exported JSON or YAML file.

Habits whose ID already exists are skipped. The plan's habit limit
applies to the combined collection. The plan stored in the file is
informational and is not applied.

EXAMPLES:

  habits import backup.json
  habits import backup.txt --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		var format export.Format
		var err error
		if importFormat != "" {
			format, err = export.ParseFormat(importFormat)
		} else {
			format, err = export.DetectFormat(filename)
		}
		if err != nil {
			return fmt.Errorf("%w (use --format json or yaml)", err)
		}

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		data, err := export.Decode(raw, format)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		added, err := store.Import(data.ToHabits())
		if err != nil {
			return friendly(fmt.Errorf("import failed: %w", err))
		}

		color.Green("✓ Imported %d habits from %s", added, filename)
		if skipped := len(data.Habits) - added; skipped > 0 {
			fmt.Printf("  %d already present, skipped\n", skipped)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	importCmd.Flags().StringVar(&importFormat, "format", "", "json or yaml (default: from extension)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
