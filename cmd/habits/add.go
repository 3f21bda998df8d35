// ABOUTME: CLI command for creating habits.
// ABOUTME: Builds a draft from flags and enforces the plan quota through the store.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var (
	addIcon        string
	addColor       string
	addCategory    string
	addFrequency   string
	addNotes       string
	addReminder    string
	addIntegration string
	addGoal        float64
)

var addCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"a", "new"},
	Short:   "Create a habit",
	Long: `Create a new habit. Multiple words are joined into one name.

CATEGORIES:

  productivity, health, personal (default), fitness, mindfulness, learning

PREMIUM OPTIONS:

  --reminder     Reminder time as HH:MM
  --integration  steps, sleep, water, exercise, location, screen-time
  --goal         Target value for the integration

EXAMPLES:

  habits add Meditate --icon 🧘 --category mindfulness
  habits add "Read 20 pages" --category learning --notes "before bed"
  habits add Walk --integration steps --goal 8000`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := models.HabitDraft{
			Name:      strings.Join(args, " "),
			Icon:      addIcon,
			Color:     addColor,
			Frequency: models.Frequency(addFrequency),
			Category:  models.Category(addCategory),
			Notes:     addNotes,
			Reminder:  addReminder,
		}
		if addIntegration != "" {
			draft.Integration = &models.Integration{
				Type:    models.IntegrationType(addIntegration),
				Enabled: true,
			}
			if cmd.Flags().Changed("goal") {
				goal := addGoal
				draft.Integration.Goal = &goal
			}
		}

		h, err := store.CreateHabit(draft)
		if err != nil {
			return friendly(fmt.Errorf("failed to create habit: %w", err))
		}

		color.Green("✓ Added %s %s", h.Icon, h.Name)
		fmt.Printf("  %s %s · %s\n",
			color.New(color.Faint).Sprint(shortID(h)),
			h.Category, h.Frequency)

		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addIcon, "icon", "✅", "emoji icon")
	addCmd.Flags().StringVar(&addColor, "color", "from-purple-500 to-pink-500", "display color")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", string(models.CategoryPersonal), "habit category")
	addCmd.Flags().StringVarP(&addFrequency, "frequency", "f", string(models.FrequencyDaily), "daily or weekly")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes for the habit")
	addCmd.Flags().StringVar(&addReminder, "reminder", "", "reminder time HH:MM (premium)")
	addCmd.Flags().StringVar(&addIntegration, "integration", "", "sensor integration type (premium)")
	addCmd.Flags().Float64Var(&addGoal, "goal", 0, "integration goal value")
	rootCmd.AddCommand(addCmd)
}
