// ABOUTME: CLI command for editing habits.
// ABOUTME: Only flags that were passed are applied.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:     "edit <id>",
	Aliases: []string{"e", "update"},
	Short:   "Edit a habit",
	Long: `Edit a habit's details. Completions and streaks are never changed here.

EXAMPLES:

  habits edit 1a2b --name "Drink 2L water"
  habits edit 1a2b --category health --icon 💧
  habits edit 1a2b --reminder ""          # clear the reminder`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := store.FindHabit(args[0])
		if err != nil {
			return friendly(err)
		}

		u, err := updateFromFlags(cmd)
		if err != nil {
			return err
		}
		if u == (habits.HabitUpdate{}) {
			return fmt.Errorf("nothing to change: pass at least one of --name, --icon, --color, --category, --frequency, --notes, --reminder")
		}

		if err := store.UpdateHabit(h.ID, u); err != nil {
			return friendly(fmt.Errorf("failed to update habit: %w", err))
		}

		updated, err := store.GetHabit(h.ID)
		if err != nil {
			return err
		}
		color.Green("✓ Updated %s %s", updated.Icon, updated.Name)
		return nil
	},
}

func updateFromFlags(cmd *cobra.Command) (habits.HabitUpdate, error) {
	var u habits.HabitUpdate
	flags := cmd.Flags()

	str := func(name string) (*string, error) {
		if !flags.Changed(name) {
			return nil, nil
		}
		v, err := flags.GetString(name)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}

	var err error
	if u.Name, err = str("name"); err != nil {
		return u, err
	}
	if u.Icon, err = str("icon"); err != nil {
		return u, err
	}
	if u.Color, err = str("color"); err != nil {
		return u, err
	}
	if u.Notes, err = str("notes"); err != nil {
		return u, err
	}
	if u.Reminder, err = str("reminder"); err != nil {
		return u, err
	}

	cat, err := str("category")
	if err != nil {
		return u, err
	}
	if cat != nil {
		c := models.Category(*cat)
		u.Category = &c
	}

	freq, err := str("frequency")
	if err != nil {
		return u, err
	}
	if freq != nil {
		f := models.Frequency(*freq)
		u.Frequency = &f
	}
	return u, nil
}

func init() {
	editCmd.Flags().String("name", "", "new name")
	editCmd.Flags().String("icon", "", "new icon")
	editCmd.Flags().String("color", "", "new color")
	editCmd.Flags().StringP("category", "c", "", "new category")
	editCmd.Flags().StringP("frequency", "f", "", "new frequency")
	editCmd.Flags().String("notes", "", "new notes")
	editCmd.Flags().String("reminder", "", "new reminder HH:MM (premium), empty to clear")
	rootCmd.AddCommand(editCmd)
}
