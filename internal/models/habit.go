// ABOUTME: Habit model with completion map and cached streak values.
// ABOUTME: Derived fields are unexported so only this package can change them.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/streak"
)

// ErrInvalidHabit is returned when a draft or update carries unusable values.
var ErrInvalidHabit = errors.New("invalid habit")

// Frequency is how often a habit is meant to be performed.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// IsValid reports whether f is a known frequency.
func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Category groups habits for display.
type Category string

const (
	CategoryProductivity Category = "productivity"
	CategoryHealth       Category = "health"
	CategoryPersonal     Category = "personal"
	CategoryFitness      Category = "fitness"
	CategoryMindfulness  Category = "mindfulness"
	CategoryLearning     Category = "learning"
)

// AllCategories returns all valid categories.
var AllCategories = []Category{
	CategoryProductivity, CategoryHealth, CategoryPersonal,
	CategoryFitness, CategoryMindfulness, CategoryLearning,
}

// IsValid reports whether c is one of AllCategories.
func (c Category) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IntegrationType is the sensor kind an integration declares.
type IntegrationType string

const (
	IntegrationSteps      IntegrationType = "steps"
	IntegrationSleep      IntegrationType = "sleep"
	IntegrationWater      IntegrationType = "water"
	IntegrationExercise   IntegrationType = "exercise"
	IntegrationLocation   IntegrationType = "location"
	IntegrationScreenTime IntegrationType = "screen-time"
)

// AllIntegrationTypes returns all valid integration types.
var AllIntegrationTypes = []IntegrationType{
	IntegrationSteps, IntegrationSleep, IntegrationWater,
	IntegrationExercise, IntegrationLocation, IntegrationScreenTime,
}

// IsValid reports whether t is one of AllIntegrationTypes.
func (t IntegrationType) IsValid() bool {
	for _, known := range AllIntegrationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Integration is a declared link between a habit and a sensor source.
// Nothing consumes sensor data yet; AutoComplete is stored as intent only.
type Integration struct {
	Type         IntegrationType `json:"type" yaml:"type"`
	Enabled      bool            `json:"enabled" yaml:"enabled"`
	AutoComplete bool            `json:"autoComplete,omitempty" yaml:"auto_complete,omitempty"`
	Goal         *float64        `json:"goal,omitempty" yaml:"goal,omitempty"`
}

// HabitDraft holds the caller-supplied fields for a new habit.
type HabitDraft struct {
	Name        string
	Icon        string
	Color       string
	Frequency   Frequency
	Category    Category
	Notes       string
	Reminder    string
	Integration *Integration
}

var reminderPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validate checks the draft for values the store will not accept.
func (d HabitDraft) Validate() error {
	return validateFields(d.Name, d.Frequency, d.Category, d.Reminder, d.Integration)
}

func validateFields(name string, f Frequency, c Category, reminder string, in *Integration) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidHabit)
	}
	if !f.IsValid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidHabit, f)
	}
	if !c.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidHabit, c)
	}
	if err := ValidateReminder(reminder); err != nil {
		return err
	}
	if in != nil && !in.Type.IsValid() {
		return fmt.Errorf("%w: unknown integration type %q", ErrInvalidHabit, in.Type)
	}
	return nil
}

// ValidateReminder accepts an empty string or a 24h "HH:MM" time.
func ValidateReminder(s string) error {
	if s != "" && !reminderPattern.MatchString(s) {
		return fmt.Errorf("%w: reminder must be HH:MM, got %q", ErrInvalidHabit, s)
	}
	return nil
}

// Habit is a tracked habit. Completions and streak values change only
// through Toggle and Recalculate.
type Habit struct {
	ID          uuid.UUID
	Name        string
	Icon        string
	Color       string
	Frequency   Frequency
	Category    Category
	CreatedAt   time.Time
	Notes       string
	Reminder    string
	Integration *Integration

	completions map[string]bool
	streak      int
	bestStreak  int
	isPremium   bool
}

// NewHabit creates a Habit from a draft with a generated UUID and zeroed streaks.
// CreatedAt is stored in UTC; date keys, not timestamps, carry the local calendar.
func NewHabit(d HabitDraft, now time.Time) *Habit {
	h := &Habit{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(d.Name),
		Icon:        d.Icon,
		Color:       d.Color,
		Frequency:   d.Frequency,
		Category:    d.Category,
		CreatedAt:   now.UTC(),
		Notes:       d.Notes,
		Reminder:    d.Reminder,
		completions: map[string]bool{},
	}
	if d.Integration != nil {
		in := *d.Integration
		h.Integration = &in
		h.isPremium = true
	}
	return h
}

// Validate applies the draft checks to an existing habit and also
// requires a non-nil ID. Used for habits that arrive from outside the store.
func (h *Habit) Validate() error {
	if h.ID == uuid.Nil {
		return fmt.Errorf("%w: missing id", ErrInvalidHabit)
	}
	return validateFields(h.Name, h.Frequency, h.Category, h.Reminder, h.Integration)
}

// Streak is the number of consecutive completed days ending today,
// as of the last recalculation.
func (h *Habit) Streak() int { return h.streak }

// BestStreak is the highest streak this habit has reached.
func (h *Habit) BestStreak() int { return h.bestStreak }

// IsPremium reports whether the habit carries an integration.
func (h *Habit) IsPremium() bool { return h.isPremium }

// IsCompleted reports whether the given date key is marked complete.
func (h *Habit) IsCompleted(dateKey string) bool { return h.completions[dateKey] }

// CompletionCount returns the number of completed days.
func (h *Habit) CompletionCount() int { return len(h.completions) }

// Completions returns a copy of the completion set.
func (h *Habit) Completions() map[string]bool {
	out := make(map[string]bool, len(h.completions))
	for k := range h.completions {
		out[k] = true
	}
	return out
}

// Toggle marks dateKey complete, or removes the mark if already present.
// It returns true when the day ends up completed. Streaks are not touched;
// callers follow up with Recalculate.
func (h *Habit) Toggle(dateKey string) bool {
	if h.completions == nil {
		h.completions = map[string]bool{}
	}
	if h.completions[dateKey] {
		delete(h.completions, dateKey)
		return false
	}
	h.completions[dateKey] = true
	return true
}

// Recalculate derives the current streak for today and raises BestStreak if needed.
func (h *Habit) Recalculate(today time.Time) {
	h.streak = streak.Current(h.completions, today)
	h.bestStreak = streak.Best(h.bestStreak, h.streak)
}

// Clone returns a deep copy.
func (h *Habit) Clone() *Habit {
	c := *h
	c.completions = h.Completions()
	if h.Integration != nil {
		in := *h.Integration
		if in.Goal != nil {
			g := *in.Goal
			in.Goal = &g
		}
		c.Integration = &in
	}
	return &c
}

// HabitRecord is the persisted shape of a habit, using the field names the
// original web app wrote to local storage.
type HabitRecord struct {
	ID          uuid.UUID       `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Icon        string          `json:"icon" yaml:"icon"`
	Color       string          `json:"color" yaml:"color"`
	Frequency   Frequency       `json:"frequency" yaml:"frequency"`
	Category    Category        `json:"category" yaml:"category"`
	CreatedAt   time.Time       `json:"createdAt" yaml:"created_at"`
	Completions map[string]bool `json:"completions" yaml:"completions"`
	Streak      int             `json:"streak" yaml:"streak"`
	BestStreak  int             `json:"bestStreak" yaml:"best_streak"`
	IsPremium   bool            `json:"isPremium,omitempty" yaml:"is_premium,omitempty"`
	Integration *Integration    `json:"integration,omitempty" yaml:"integration,omitempty"`
	Notes       string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	Reminder    string          `json:"reminder,omitempty" yaml:"reminder,omitempty"`
}

// Record converts the habit to its persisted shape.
func (h *Habit) Record() HabitRecord {
	return HabitRecord{
		ID:          h.ID,
		Name:        h.Name,
		Icon:        h.Icon,
		Color:       h.Color,
		Frequency:   h.Frequency,
		Category:    h.Category,
		CreatedAt:   h.CreatedAt,
		Completions: h.Completions(),
		Streak:      h.streak,
		BestStreak:  h.bestStreak,
		IsPremium:   h.isPremium,
		Integration: h.Integration,
		Notes:       h.Notes,
		Reminder:    h.Reminder,
	}
}

// Habit rebuilds a habit from a record. False completion entries are dropped,
// isPremium follows the integration and bestStreak is never below streak.
func (r HabitRecord) Habit() *Habit {
	completions := make(map[string]bool, len(r.Completions))
	for k, v := range r.Completions {
		if v {
			completions[k] = true
		}
	}
	return &Habit{
		ID:          r.ID,
		Name:        r.Name,
		Icon:        r.Icon,
		Color:       r.Color,
		Frequency:   r.Frequency,
		Category:    r.Category,
		CreatedAt:   r.CreatedAt,
		Notes:       r.Notes,
		Reminder:    r.Reminder,
		Integration: r.Integration,
		completions: completions,
		streak:      max(r.Streak, 0),
		bestStreak:  max(r.BestStreak, r.Streak, 0),
		isPremium:   r.Integration != nil,
	}
}

// MarshalJSON encodes the habit including its derived fields.
func (h Habit) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Record())
}

// UnmarshalJSON decodes a habit written by MarshalJSON or the web app.
func (h *Habit) UnmarshalJSON(data []byte) error {
	var r HabitRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*h = *r.Habit()
	return nil
}
