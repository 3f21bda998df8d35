// ABOUTME: Read-only progress projections over a habit collection.
// ABOUTME: Overview is free; Progress backs the premium advanced stats.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/streak"
)

// Overview is the dashboard summary shown to every plan.
type Overview struct {
	TotalHabits      int `json:"total_habits"`
	CompletedToday   int `json:"completed_today"`
	TotalStreak      int `json:"total_streak"`
	TotalCompletions int `json:"total_completions"`
}

// WeekRate is the completion rate of one 7-day window.
type WeekRate struct {
	Label string `json:"label"`
	From  string `json:"from"`
	To    string `json:"to"`
	Rate  int    `json:"rate"`
}

// HabitProgress summarizes a single habit.
type HabitProgress struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Streak           int       `json:"streak"`
	BestStreak       int       `json:"best_streak"`
	LongestRun       int       `json:"longest_run"`
	MonthRate        int       `json:"month_rate"`
	TotalCompletions int       `json:"total_completions"`
	LastSevenDays    []bool    `json:"last_seven_days"`
}

// Progress is the advanced statistics view.
type Progress struct {
	Last30DaysRate   int             `json:"last_30_days_rate"`
	Weeks            []WeekRate      `json:"weeks"`
	BestHabit        *HabitProgress  `json:"best_habit,omitempty"`
	TotalCompletions int             `json:"total_completions"`
	LastSevenDays    []string        `json:"last_seven_days"`
	Habits           []HabitProgress `json:"habits"`
}

// ComputeOverview summarizes habits for the given day.
func ComputeOverview(habits []*models.Habit, today time.Time) Overview {
	key := models.DateKey(today)
	o := Overview{TotalHabits: len(habits)}
	for _, h := range habits {
		if h.IsCompleted(key) {
			o.CompletedToday++
		}
		o.TotalStreak += h.Streak()
		o.TotalCompletions += h.CompletionCount()
	}
	return o
}

// ComputeProgress builds the advanced statistics for the given day.
func ComputeProgress(habits []*models.Habit, today time.Time) Progress {
	p := Progress{
		Last30DaysRate: Rate(habits, models.LastDays(today, 30)),
		LastSevenDays:  models.LastDays(today, 7),
		Habits:         make([]HabitProgress, 0, len(habits)),
	}

	y, m, d := today.Date()
	loc := today.Location()
	for i := 3; i >= 0; i-- {
		end := time.Date(y, m, d-i*7, 0, 0, 0, 0, loc)
		days := models.LastDays(end, 7)
		p.Weeks = append(p.Weeks, WeekRate{
			Label: fmt.Sprintf("Week %d", 4-i),
			From:  days[0],
			To:    days[len(days)-1],
			Rate:  Rate(habits, days),
		})
	}

	for _, h := range habits {
		hp := HabitProgress{
			ID:               h.ID,
			Name:             h.Name,
			Streak:           h.Streak(),
			BestStreak:       h.BestStreak(),
			LongestRun:       streak.Longest(h.Completions()),
			MonthRate:        MonthRate(h, today),
			TotalCompletions: h.CompletionCount(),
		}
		for _, key := range p.LastSevenDays {
			hp.LastSevenDays = append(hp.LastSevenDays, h.IsCompleted(key))
		}
		p.TotalCompletions += hp.TotalCompletions
		p.Habits = append(p.Habits, hp)
	}

	// Highest current streak wins; the first habit breaks ties.
	for i := range p.Habits {
		if p.BestHabit == nil || p.Habits[i].Streak > p.BestHabit.Streak {
			p.BestHabit = &p.Habits[i]
		}
	}

	return p
}

// Rate is the percentage of (habit, day) pairs completed, rounded.
// It is zero when there are no habits or no days.
func Rate(habits []*models.Habit, days []string) int {
	possible := len(habits) * len(days)
	if possible == 0 {
		return 0
	}
	completed := 0
	for _, h := range habits {
		for _, key := range days {
			if h.IsCompleted(key) {
				completed++
			}
		}
	}
	return percent(completed, possible)
}

// MonthRate is the share of days in today's calendar month that are completed.
func MonthRate(h *models.Habit, today time.Time) int {
	y, m, _ := today.Date()
	daysInMonth := time.Date(y, m+1, 0, 0, 0, 0, 0, today.Location()).Day()
	completed := 0
	for day := 1; day <= daysInMonth; day++ {
		if h.IsCompleted(models.DateKey(time.Date(y, m, day, 0, 0, 0, 0, today.Location()))) {
			completed++
		}
	}
	return percent(completed, daysInMonth)
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}
