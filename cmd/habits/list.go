// ABOUTME: CLI command for listing habits.
// ABOUTME: Shows today's state, streaks and the plan quota.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var listCategory string

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List habits",
	Long: `List habits with today's completion state.

OUTPUT FORMAT:

  Each line shows: ID  STATE  ICON  NAME  🔥STREAK  (best N)

  ✓ means done today, ○ means still open. The ID is an 8-character
  prefix you can pass to done, edit, history and delete.

EXAMPLES:

  habits list
  habits list --category fitness`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if listCategory != "" && !models.Category(listCategory).IsValid() {
			return fmt.Errorf("unknown category: %s", listCategory)
		}

		today := store.Today()
		all := store.ListHabits()

		shown := 0
		for _, h := range all {
			if listCategory != "" && string(h.Category) != listCategory {
				continue
			}
			printHabit(h, today)
			shown++
		}

		if shown == 0 {
			fmt.Println("No habits found. Create one with 'habits add <name>'.")
			return nil
		}

		plan := store.GetPlan()
		faint := color.New(color.Faint)
		if plan.IsUnlimited() {
			faint.Printf("\n%d habits · %s plan\n", len(all), plan.Type)
		} else {
			faint.Printf("\n%d/%d habits · %s plan\n", len(all), plan.HabitsLimit, plan.Type)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "filter by category")
	rootCmd.AddCommand(listCmd)
}
