// ABOUTME: Tests for progress projections.
// ABOUTME: Covers overview counts, rates, weekly windows and best-habit selection.
package stats

import (
	"testing"
	"time"

	"github.com/harperreed/habits/internal/models"
)

var today = time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)

func habit(name string, offsets ...int) *models.Habit {
	h := models.NewHabit(models.HabitDraft{
		Name:      name,
		Frequency: models.FrequencyDaily,
		Category:  models.CategoryHealth,
	}, today)
	for _, off := range offsets {
		h.Toggle(models.DateKey(today.AddDate(0, 0, -off)))
	}
	h.Recalculate(today)
	return h
}

func TestComputeOverview(t *testing.T) {
	habits := []*models.Habit{
		habit("water", 0, 1, 2),
		habit("run", 1),
		habit("read"),
	}

	got := ComputeOverview(habits, today)
	want := Overview{TotalHabits: 3, CompletedToday: 1, TotalStreak: 3, TotalCompletions: 4}
	if got != want {
		t.Errorf("ComputeOverview() = %+v, want %+v", got, want)
	}
}

func TestRate(t *testing.T) {
	habits := []*models.Habit{habit("a", 0, 1), habit("b", 0)}
	days := models.LastDays(today, 3)

	// 3 of 6 (habit, day) pairs completed.
	if got := Rate(habits, days); got != 50 {
		t.Errorf("Rate() = %d, want 50", got)
	}
	if got := Rate(nil, days); got != 0 {
		t.Errorf("Rate(nil) = %d, want 0", got)
	}
	if got := Rate(habits, nil); got != 0 {
		t.Errorf("Rate(no days) = %d, want 0", got)
	}
}

func TestMonthRate(t *testing.T) {
	// March has 31 days; 0,1,...,9 days back from the 10th are all in March.
	h := habit("a", 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	if got := MonthRate(h, today); got != 32 {
		t.Errorf("MonthRate() = %d, want 32", got)
	}
}

func TestComputeProgress(t *testing.T) {
	habits := []*models.Habit{
		habit("water", 0, 1),
		habit("run", 0, 1, 2, 3),
		habit("read", 20),
	}

	p := ComputeProgress(habits, today)

	if len(p.Weeks) != 4 {
		t.Fatalf("len(Weeks) = %d, want 4", len(p.Weeks))
	}
	last := p.Weeks[3]
	if last.Label != "Week 4" || last.To != models.DateKey(today) {
		t.Errorf("last week = %+v, want Week 4 ending today", last)
	}
	if p.Weeks[0].To != models.DateKey(today.AddDate(0, 0, -21)) {
		t.Errorf("first week ends %s, want three weeks back", p.Weeks[0].To)
	}
	// Last week: 6 of 21 pairs.
	if last.Rate != 29 {
		t.Errorf("last week rate = %d, want 29", last.Rate)
	}

	if p.BestHabit == nil || p.BestHabit.Name != "run" {
		t.Errorf("BestHabit = %+v, want run", p.BestHabit)
	}
	if p.TotalCompletions != 7 {
		t.Errorf("TotalCompletions = %d, want 7", p.TotalCompletions)
	}
	if len(p.LastSevenDays) != 7 || p.LastSevenDays[6] != models.DateKey(today) {
		t.Errorf("LastSevenDays = %v", p.LastSevenDays)
	}
	// 7 of 90 pairs over the last 30 days.
	if p.Last30DaysRate != 8 {
		t.Errorf("Last30DaysRate = %d, want 8", p.Last30DaysRate)
	}
}

func TestComputeProgressEmpty(t *testing.T) {
	p := ComputeProgress(nil, today)
	if p.BestHabit != nil {
		t.Errorf("BestHabit = %+v, want nil", p.BestHabit)
	}
	if p.Last30DaysRate != 0 || p.TotalCompletions != 0 {
		t.Errorf("empty progress = %+v", p)
	}
}
