// ABOUTME: CLI commands for viewing and switching plans.
// ABOUTME: Upgrade and downgrade switch between the free and premium tables.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the active plan",
	Long: `Show the active plan, how many habits it allows and which features it unlocks.

COMMANDS:

  upgrade     Switch to premium
  downgrade   Switch back to free (existing habits are kept)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printPlan(store.GetPlan(), len(store.ListHabits()))
		return nil
	},
}

var planUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Switch to the premium plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.SetPlan(models.PlanPremium); err != nil {
			return fmt.Errorf("failed to upgrade: %w", err)
		}
		color.Green("✓ Premium unlocked")
		printPlan(store.GetPlan(), len(store.ListHabits()))
		return nil
	},
}

var planDowngradeCmd = &cobra.Command{
	Use:   "downgrade",
	Short: "Switch to the free plan",
	Long: `Switch to the free plan.

Existing habits, integrations and reminders are kept. If you have more than
5 habits you cannot add new ones until you are back under the limit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.SetPlan(models.PlanFree); err != nil {
			return fmt.Errorf("failed to downgrade: %w", err)
		}
		color.Yellow("Switched to the free plan")

		count := len(store.ListHabits())
		if count > models.FreeHabitsLimit {
			color.Yellow("⚠ You have %d habits; new habits are blocked above %d", count, models.FreeHabitsLimit)
		}
		return nil
	},
}

func printPlan(p models.UserPlan, count int) {
	fmt.Printf("Plan: %s\n", color.New(color.Bold).Sprint(p.Type))
	if p.IsUnlimited() {
		fmt.Printf("Habits: %d (unlimited)\n", count)
	} else {
		fmt.Printf("Habits: %d/%d\n", count, p.HabitsLimit)
	}
	fmt.Println()

	features := []struct {
		name string
		on   bool
	}{
		{"Unlimited habits", p.Features.UnlimitedHabits},
		{"Integrations", p.Features.Integrations},
		{"Advanced stats", p.Features.AdvancedStats},
		{"Custom reminders", p.Features.CustomReminders},
		{"Export data", p.Features.ExportData},
		{"Themes", p.Features.Themes},
	}
	for _, f := range features {
		if f.on {
			fmt.Printf("  %s %s\n", color.GreenString("✓"), f.name)
		} else {
			fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint("✗"), f.name)
		}
	}
}

func init() {
	planCmd.AddCommand(planUpgradeCmd)
	planCmd.AddCommand(planDowngradeCmd)
	rootCmd.AddCommand(planCmd)
}
