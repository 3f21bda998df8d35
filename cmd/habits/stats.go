// ABOUTME: CLI command for habit statistics.
// ABOUTME: Overview for every plan, weekly progress for premium.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"progress"},
	Short:   "Show habit statistics",
	Long: `Show totals for today. On the premium plan this also shows the
30-day completion rate, the last four weeks, the best habit and a
per-habit breakdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := store.Overview()
		bold := color.New(color.Bold)

		bold.Println("Today")
		fmt.Printf("  Habits            %d\n", o.TotalHabits)
		fmt.Printf("  Completed today   %d/%d\n", o.CompletedToday, o.TotalHabits)
		fmt.Printf("  Streak days       %d\n", o.TotalStreak)
		fmt.Printf("  Total completions %d\n", o.TotalCompletions)

		p, err := store.Progress()
		if errors.Is(err, habits.ErrFeatureLocked) {
			color.New(color.Faint).Println("\nUpgrade with 'habits plan upgrade' for detailed progress.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Println()
		printProgress(p)
		return nil
	},
}

func printProgress(p stats.Progress) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	bold.Println("Progress")
	fmt.Printf("  Last 30 days      %d%%\n", p.Last30DaysRate)
	if p.BestHabit != nil {
		fmt.Printf("  Best habit        %s (%d day streak)\n", p.BestHabit.Name, p.BestHabit.Streak)
	}
	fmt.Println()

	bold.Println("Weekly")
	for _, w := range p.Weeks {
		bar := strings.Repeat("█", w.Rate/5)
		fmt.Printf("  %s %s %3d%% %s\n", w.Label, faint.Sprintf("%s..%s", w.From[5:], w.To[5:]), w.Rate, color.MagentaString(bar))
	}

	if len(p.Habits) == 0 {
		return
	}
	fmt.Println()
	bold.Println("Habits")
	for _, h := range p.Habits {
		var week strings.Builder
		for _, done := range h.LastSevenDays {
			if done {
				week.WriteString(color.GreenString("■"))
			} else {
				week.WriteString(faint.Sprint("·"))
			}
		}
		fmt.Printf("  %s %s month %3d%% · streak %d · best %d · longest %d\n",
			padRight(truncate(h.Name, 20), 20), week.String(),
			h.MonthRate, h.Streak, h.BestStreak, h.LongestRun)
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
