// ABOUTME: Habit store: the single owner of the habit collection and the plan.
// ABOUTME: Every mutation validates, builds the next state, persists it, then commits.
package habits

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/kv"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
)

// Keys used in the key-value store. They match the web app's localStorage keys
// so exported browser data can be loaded as-is.
const (
	HabitsKey = "habitify_habits"
	PlanKey   = "habitify_user_plan"
)

// Store owns the habit collection and the active plan. All methods are safe
// for concurrent use; one mutex guards both so quota checks see a consistent view.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	habits []*models.Habit
	plan   models.UserPlan
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of "now". Its location defines the local calendar.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for mutation tracing.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Open loads the habit collection and plan from backend.
// Missing keys mean an empty collection on the free plan.
func Open(backend kv.Store, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     backend,
		plan:   models.FreePlan,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := backend.Get(HabitsKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("%w: load habits: %w", ErrPersistence, err)
	default:
		if err := json.Unmarshal(data, &s.habits); err != nil {
			return nil, fmt.Errorf("%w: decode habits: %w", ErrPersistence, err)
		}
		for i, h := range s.habits {
			if h == nil {
				return nil, fmt.Errorf("%w: decode habits: null entry at index %d", ErrPersistence, i)
			}
		}
	}

	data, err = backend.Get(PlanKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("%w: load plan: %w", ErrPersistence, err)
	default:
		if err := json.Unmarshal(data, &s.plan); err != nil {
			return nil, fmt.Errorf("%w: decode plan: %w", ErrPersistence, err)
		}
	}

	s.logger.Debug("store opened", "habits", len(s.habits), "plan", s.plan.Type)
	return s, nil
}

// Today returns the current local date key.
func (s *Store) Today() string {
	return models.DateKey(s.now())
}

// ListHabits returns copies of all habits in insertion order with streaks
// derived for today. The refresh is not persisted.
func (s *Store) ListHabits() []*models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// GetHabit returns a copy of the habit with the given id.
func (s *Store) GetHabit(id uuid.UUID) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	h := s.habits[i].Clone()
	h.Recalculate(s.now())
	return h, nil
}

// FindHabit resolves a full id or a unique id prefix.
func (s *Store) FindHabit(idOrPrefix string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idOrPrefix = strings.ToLower(strings.TrimSpace(idOrPrefix))
	if idOrPrefix == "" {
		return nil, fmt.Errorf("%w: empty id", ErrNotFound)
	}

	var match *models.Habit
	for _, h := range s.habits {
		if !strings.HasPrefix(h.ID.String(), idOrPrefix) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
		}
		match = h
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	h := match.Clone()
	h.Recalculate(s.now())
	return h, nil
}

// CanCreateHabit reports whether the current plan allows another habit.
func (s *Store) CanCreateHabit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan.CanCreate(len(s.habits))
}

// CreateHabit validates the draft against the live quota and plan, then
// appends and persists the new habit.
func (s *Store) CreateHabit(draft models.HabitDraft) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.plan.CanCreate(len(s.habits)) {
		return nil, fmt.Errorf("%w: %d of %d", ErrQuotaExceeded, len(s.habits), s.plan.HabitsLimit)
	}
	if draft.Integration != nil && !s.plan.Features.Integrations {
		return nil, fmt.Errorf("%w: integrations", ErrFeatureLocked)
	}
	if draft.Reminder != "" && !s.plan.Features.CustomReminders {
		return nil, fmt.Errorf("%w: custom reminders", ErrFeatureLocked)
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	h := models.NewHabit(draft, s.now())
	next := append(s.cloneHabitsLocked(), h)
	if err := s.persistHabitsLocked(next); err != nil {
		return nil, err
	}

	s.logger.Debug("habit created", "id", h.ID, "name", h.Name, "count", len(next))
	return h.Clone(), nil
}

// HabitUpdate lists the editable fields. Nil fields are left unchanged.
// Identity, timestamps, completions and streaks cannot be expressed here.
type HabitUpdate struct {
	Name      *string
	Icon      *string
	Color     *string
	Frequency *models.Frequency
	Category  *models.Category
	Notes     *string
	Reminder  *string
}

// UpdateHabit merges the non-nil fields of u into the habit.
func (s *Store) UpdateHabit(id uuid.UUID, u HabitUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	h := s.habits[i].Clone()
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return fmt.Errorf("%w: name is required", models.ErrInvalidHabit)
		}
		h.Name = name
	}
	if u.Icon != nil {
		h.Icon = *u.Icon
	}
	if u.Color != nil {
		h.Color = *u.Color
	}
	if u.Frequency != nil {
		if !u.Frequency.IsValid() {
			return fmt.Errorf("%w: unknown frequency %q", models.ErrInvalidHabit, *u.Frequency)
		}
		h.Frequency = *u.Frequency
	}
	if u.Category != nil {
		if !u.Category.IsValid() {
			return fmt.Errorf("%w: unknown category %q", models.ErrInvalidHabit, *u.Category)
		}
		h.Category = *u.Category
	}
	if u.Notes != nil {
		h.Notes = *u.Notes
	}
	if u.Reminder != nil {
		if *u.Reminder != "" && !s.plan.Features.CustomReminders {
			return fmt.Errorf("%w: custom reminders", ErrFeatureLocked)
		}
		if err := models.ValidateReminder(*u.Reminder); err != nil {
			return err
		}
		h.Reminder = *u.Reminder
	}

	next := s.cloneHabitsLocked()
	next[i] = h
	if err := s.persistHabitsLocked(next); err != nil {
		return err
	}

	s.logger.Debug("habit updated", "id", id)
	return nil
}

// DeleteHabit removes the habit. Deleting an unknown id is not an error.
func (s *Store) DeleteHabit(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil
	}

	next := make([]*models.Habit, 0, len(s.habits)-1)
	next = append(next, s.habits[:i]...)
	next = append(next, s.habits[i+1:]...)
	if err := s.persistHabitsLocked(next); err != nil {
		return err
	}

	s.logger.Debug("habit deleted", "id", id, "count", len(next))
	return nil
}

// ToggleCompletion marks dateKey complete or clears it, recalculates the
// streak for today, persists, and returns the updated habit.
func (s *Store) ToggleCompletion(id uuid.UUID, dateKey string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if _, err := models.ParseDateKey(dateKey, now.Location()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDateKey, err)
	}

	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	h := s.habits[i].Clone()
	done := h.Toggle(dateKey)
	h.Recalculate(now)

	next := s.cloneHabitsLocked()
	next[i] = h
	if err := s.persistHabitsLocked(next); err != nil {
		return nil, err
	}

	s.logger.Debug("completion toggled", "id", id, "date", dateKey, "done", done,
		"streak", h.Streak(), "best", h.BestStreak())
	return h.Clone(), nil
}

// GetPlan returns the active plan.
func (s *Store) GetPlan() models.UserPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plan
}

// SetPlan replaces the active plan. Existing habits are left untouched.
func (s *Store) SetPlan(t models.PlanType) error {
	if !t.IsValid() {
		return fmt.Errorf("unknown plan: %q", t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plan := models.PlanFor(t)
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := s.kv.Set(PlanKey, data); err != nil {
		return fmt.Errorf("%w: save plan: %w", ErrPersistence, err)
	}
	s.plan = plan

	s.logger.Info("plan changed", "plan", t)
	return nil
}

// Overview returns the dashboard summary for today.
func (s *Store) Overview() stats.Overview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.ComputeOverview(s.snapshotLocked(), s.now())
}

// Progress returns advanced statistics. It requires the advancedStats feature.
func (s *Store) Progress() (stats.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.plan.Features.AdvancedStats {
		return stats.Progress{}, fmt.Errorf("%w: advanced stats", ErrFeatureLocked)
	}
	return stats.ComputeProgress(s.snapshotLocked(), s.now()), nil
}

// Snapshot returns copies of all habits and the plan for export.
// It requires the exportData feature.
func (s *Store) Snapshot() ([]*models.Habit, models.UserPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.plan.Features.ExportData {
		return nil, s.plan, fmt.Errorf("%w: export", ErrFeatureLocked)
	}
	return s.snapshotLocked(), s.plan, nil
}

// Import appends habits from an export. Habits whose id already exists are
// skipped. New habits pass the same checks and feature gates as CreateHabit,
// and the plan quota applies to the resulting collection as a whole.
// It returns the number of habits added.
func (s *Store) Import(habits []*models.Habit) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cloneHabitsLocked()
	added := 0
	for _, h := range habits {
		if h == nil {
			return 0, fmt.Errorf("%w: empty habit entry", models.ErrInvalidHabit)
		}
		if s.indexLocked(h.ID) >= 0 || containsID(next[len(s.habits):], h.ID) {
			continue
		}
		if err := h.Validate(); err != nil {
			return 0, fmt.Errorf("import %q: %w", h.Name, err)
		}
		if h.Integration != nil && !s.plan.Features.Integrations {
			return 0, fmt.Errorf("%w: integrations (habit %q)", ErrFeatureLocked, h.Name)
		}
		if h.Reminder != "" && !s.plan.Features.CustomReminders {
			return 0, fmt.Errorf("%w: custom reminders (habit %q)", ErrFeatureLocked, h.Name)
		}
		c := h.Clone()
		c.Recalculate(s.now())
		next = append(next, c)
		added++
	}
	if !s.plan.IsUnlimited() && len(next) > s.plan.HabitsLimit {
		return 0, fmt.Errorf("%w: import would hold %d of %d", ErrQuotaExceeded, len(next), s.plan.HabitsLimit)
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.persistHabitsLocked(next); err != nil {
		return 0, err
	}

	s.logger.Info("habits imported", "added", added, "count", len(next))
	return added, nil
}

// persistHabitsLocked writes next and commits it to memory only on success.
func (s *Store) persistHabitsLocked(next []*models.Habit) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode habits: %w", err)
	}
	if err := s.kv.Set(HabitsKey, data); err != nil {
		s.logger.Error("persist habits failed", "err", err)
		return fmt.Errorf("%w: save habits: %w", ErrPersistence, err)
	}
	s.habits = next
	return nil
}

// cloneHabitsLocked returns a new slice sharing the habit pointers. Mutations
// must replace an element with a clone rather than modify it in place.
func (s *Store) cloneHabitsLocked() []*models.Habit {
	next := make([]*models.Habit, len(s.habits), len(s.habits)+1)
	copy(next, s.habits)
	return next
}

func (s *Store) snapshotLocked() []*models.Habit {
	now := s.now()
	out := make([]*models.Habit, len(s.habits))
	for i, h := range s.habits {
		c := h.Clone()
		c.Recalculate(now)
		out[i] = c
	}
	return out
}

func (s *Store) indexLocked(id uuid.UUID) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func containsID(habits []*models.Habit, id uuid.UUID) bool {
	for _, h := range habits {
		if h.ID == id {
			return true
		}
	}
	return false
}
