// ABOUTME: CLI command for moving habit data between storage backends.
// ABOUTME: Copies the habits and plan keys from the active backend to another one.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/kv"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy habits to another storage backend",
	Long: `Copy all habit data from the active backend to another backend.

The source is left untouched. The target must be empty unless --force
is given. With --switch the config is updated to use the target afterwards.

USAGE:

  habits migrate --to charm --dry-run   # Preview what would be copied
  habits migrate --to charm --switch    # Copy and start using Charm sync
  habits --backend badger migrate --to sqlite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateTo == "" {
			return fmt.Errorf("--to is required (sqlite, badger or charm)")
		}
		if migrateTo == cfg.GetBackend() {
			return fmt.Errorf("already using the %s backend", migrateTo)
		}

		entries, err := readEntries(backend)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("Nothing to migrate.")
			return nil
		}

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()
		}
		fmt.Printf("%s → %s\n", cfg.GetBackend(), migrateTo)
		fmt.Printf("  Habits: %d\n", len(store.ListHabits()))
		for _, e := range entries {
			fmt.Printf("  %s (%d bytes)\n", e.key, len(e.value))
		}
		if migrateDryRun {
			return nil
		}

		target := *cfg
		target.Backend = migrateTo
		dst, err := target.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open %s backend: %w", migrateTo, err)
		}
		defer dst.Close()

		if err := copyEntries(dst, entries, migrateForce); err != nil {
			return err
		}
		color.Green("✓ Copied habits to %s", migrateTo)

		if migrateSwitch {
			if err := target.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			color.Green("✓ Now using the %s backend", migrateTo)
		}
		return nil
	},
}

type entry struct {
	key   string
	value []byte
}

func readEntries(src kv.Store) ([]entry, error) {
	var out []entry
	for _, key := range []string{habits.HabitsKey, habits.PlanKey} {
		v, err := src.Get(key)
		if errors.Is(err, kv.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		out = append(out, entry{key: key, value: v})
	}
	return out, nil
}

func copyEntries(dst kv.Store, entries []entry, force bool) error {
	if !force {
		if _, err := dst.Get(habits.HabitsKey); err == nil {
			return fmt.Errorf("target already holds habits; use --force to overwrite")
		} else if !errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("check target: %w", err)
		}
	}
	for _, e := range entries {
		if err := dst.Set(e.key, e.value); err != nil {
			return fmt.Errorf("write %s: %w", e.key, err)
		}
	}
	return nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (sqlite, badger, charm)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite habits already in the target")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "use the target backend from now on")
	rootCmd.AddCommand(migrateCmd)
}
