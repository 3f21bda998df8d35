// ABOUTME: MCP tool implementations for habits.
// ABOUTME: Provides habit CRUD, completion toggling, plan changes and stats.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List all habits with today's completion state and streaks",
	}, s.handleListHabits)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_habit",
		Description: "Create a new habit (free plan allows 5)",
	}, s.handleCreateHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_habit",
		Description: "Change a habit's name, icon, color, category, frequency, notes or reminder",
	}, s.handleUpdateHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_habit",
		Description: "Delete a habit by ID or ID prefix",
	}, s.handleDeleteHabit)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "toggle_completion",
		Description: "Mark a habit done for a day, or undo it if already done",
	}, s.handleToggleCompletion)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_plan",
		Description: "Show the active plan, its habit limit and features",
	}, s.handleGetPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_plan",
		Description: "Switch between the free and premium plan",
	}, s.handleSetPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Overview numbers, plus detailed progress on premium",
	}, s.handleGetStats)
}

// Tool input/output types

type listHabitsInput struct {
	Category string `json:"category,omitempty" jsonschema:"Only list habits in this category"`
}

type habitOutput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Icon           string `json:"icon,omitempty"`
	Category       string `json:"category"`
	Frequency      string `json:"frequency"`
	Streak         int    `json:"streak"`
	BestStreak     int    `json:"best_streak"`
	CompletedToday bool   `json:"completed_today"`
	Completions    int    `json:"completions"`
	Notes          string `json:"notes,omitempty"`
	Reminder       string `json:"reminder,omitempty"`
	Integration    string `json:"integration,omitempty"`
}

type listHabitsOutput struct {
	Date   string        `json:"date"`
	Habits []habitOutput `json:"habits"`
}

type createHabitInput struct {
	Name        string   `json:"name" jsonschema:"Habit name"`
	Icon        string   `json:"icon,omitempty" jsonschema:"Emoji icon"`
	Color       string   `json:"color,omitempty" jsonschema:"Display color"`
	Frequency   string   `json:"frequency,omitempty" jsonschema:"daily (default) or weekly"`
	Category    string   `json:"category,omitempty" jsonschema:"productivity, health, personal (default), fitness, mindfulness or learning"`
	Notes       string   `json:"notes,omitempty" jsonschema:"Free-form notes"`
	Reminder    string   `json:"reminder,omitempty" jsonschema:"Reminder time HH:MM (premium)"`
	Integration string   `json:"integration,omitempty" jsonschema:"Sensor integration type (premium): steps, sleep, water, exercise, location, screen-time"`
	Goal        *float64 `json:"goal,omitempty" jsonschema:"Integration goal value"`
}

type updateHabitInput struct {
	ID        string  `json:"id" jsonschema:"Habit ID or prefix"`
	Name      *string `json:"name,omitempty" jsonschema:"New name"`
	Icon      *string `json:"icon,omitempty" jsonschema:"New icon"`
	Color     *string `json:"color,omitempty" jsonschema:"New color"`
	Frequency *string `json:"frequency,omitempty" jsonschema:"New frequency"`
	Category  *string `json:"category,omitempty" jsonschema:"New category"`
	Notes     *string `json:"notes,omitempty" jsonschema:"New notes"`
	Reminder  *string `json:"reminder,omitempty" jsonschema:"New reminder HH:MM, empty to clear"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"Habit ID or prefix"`
}

type toggleInput struct {
	ID   string `json:"id" jsonschema:"Habit ID or prefix"`
	Date string `json:"date,omitempty" jsonschema:"Day as YYYY-MM-DD, defaults to today"`
}

type toggleOutput struct {
	Habit     habitOutput `json:"habit"`
	Date      string      `json:"date"`
	Completed bool        `json:"completed"`
	Message   string      `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type emptyInput struct{}

type planOutput struct {
	Type        string          `json:"type"`
	HabitsLimit int             `json:"habits_limit"`
	Unlimited   bool            `json:"unlimited"`
	Habits      int             `json:"habits"`
	Features    models.Features `json:"features"`
}

type setPlanInput struct {
	Plan string `json:"plan" jsonschema:"free or premium"`
}

type statsOutput struct {
	Overview stats.Overview `json:"overview"`
	Progress any            `json:"progress,omitempty"`
	Message  string         `json:"message,omitempty"`
}

func toHabitOutput(h *models.Habit, today string) habitOutput {
	out := habitOutput{
		ID:             h.ID.String(),
		Name:           h.Name,
		Icon:           h.Icon,
		Category:       string(h.Category),
		Frequency:      string(h.Frequency),
		Streak:         h.Streak(),
		BestStreak:     h.BestStreak(),
		CompletedToday: h.IsCompleted(today),
		Completions:    h.CompletionCount(),
		Notes:          h.Notes,
		Reminder:       h.Reminder,
	}
	if h.Integration != nil {
		out.Integration = string(h.Integration.Type)
	}
	return out
}

// Tool handlers

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, listHabitsOutput, error) {
	today := s.store.Today()
	out := listHabitsOutput{Date: today, Habits: []habitOutput{}}
	for _, h := range s.store.ListHabits() {
		if input.Category != "" && string(h.Category) != input.Category {
			continue
		}
		out.Habits = append(out.Habits, toHabitOutput(h, today))
	}
	return nil, out, nil
}

func (s *Server) handleCreateHabit(ctx context.Context, req *mcp.CallToolRequest, input createHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	draft := models.HabitDraft{
		Name:      input.Name,
		Icon:      input.Icon,
		Color:     input.Color,
		Frequency: models.Frequency(input.Frequency),
		Category:  models.Category(input.Category),
		Notes:     input.Notes,
		Reminder:  input.Reminder,
	}
	if draft.Icon == "" {
		draft.Icon = "✅"
	}
	if draft.Frequency == "" {
		draft.Frequency = models.FrequencyDaily
	}
	if draft.Category == "" {
		draft.Category = models.CategoryPersonal
	}
	if input.Integration != "" {
		draft.Integration = &models.Integration{
			Type:    models.IntegrationType(input.Integration),
			Enabled: true,
			Goal:    input.Goal,
		}
	}

	h, err := s.store.CreateHabit(draft)
	if err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to create habit: %w", err)
	}
	return nil, toHabitOutput(h, s.store.Today()), nil
}

func (s *Server) handleUpdateHabit(ctx context.Context, req *mcp.CallToolRequest, input updateHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	h, err := s.store.FindHabit(input.ID)
	if err != nil {
		return nil, habitOutput{}, err
	}

	u := habits.HabitUpdate{
		Name:     input.Name,
		Icon:     input.Icon,
		Color:    input.Color,
		Notes:    input.Notes,
		Reminder: input.Reminder,
	}
	if input.Frequency != nil {
		f := models.Frequency(*input.Frequency)
		u.Frequency = &f
	}
	if input.Category != nil {
		c := models.Category(*input.Category)
		u.Category = &c
	}

	if err := s.store.UpdateHabit(h.ID, u); err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to update habit: %w", err)
	}
	updated, err := s.store.GetHabit(h.ID)
	if err != nil {
		return nil, habitOutput{}, err
	}
	return nil, toHabitOutput(updated, s.store.Today()), nil
}

func (s *Server) handleDeleteHabit(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, simpleOutput, error) {
	h, err := s.store.FindHabit(input.ID)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.store.DeleteHabit(h.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted habit %q (%s)", h.Name, h.ID.String()[:8]),
	}, nil
}

func (s *Server) handleToggleCompletion(ctx context.Context, req *mcp.CallToolRequest, input toggleInput) (*mcp.CallToolResult, toggleOutput, error) {
	h, err := s.store.FindHabit(input.ID)
	if err != nil {
		return nil, toggleOutput{}, err
	}

	date := input.Date
	if date == "" {
		date = s.store.Today()
	}

	updated, err := s.store.ToggleCompletion(h.ID, date)
	if err != nil {
		return nil, toggleOutput{}, fmt.Errorf("failed to toggle completion: %w", err)
	}

	done := updated.IsCompleted(date)
	verb := "Unmarked"
	if done {
		verb = "Completed"
	}
	return nil, toggleOutput{
		Habit:     toHabitOutput(updated, s.store.Today()),
		Date:      date,
		Completed: done,
		Message:   fmt.Sprintf("%s %q for %s (streak %d)", verb, updated.Name, date, updated.Streak()),
	}, nil
}

func (s *Server) planOutput() planOutput {
	p := s.store.GetPlan()
	return planOutput{
		Type:        string(p.Type),
		HabitsLimit: p.HabitsLimit,
		Unlimited:   p.IsUnlimited(),
		Habits:      len(s.store.ListHabits()),
		Features:    p.Features,
	}
}

func (s *Server) handleGetPlan(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, planOutput, error) {
	return nil, s.planOutput(), nil
}

func (s *Server) handleSetPlan(ctx context.Context, req *mcp.CallToolRequest, input setPlanInput) (*mcp.CallToolResult, planOutput, error) {
	t, err := models.ParsePlanType(input.Plan)
	if err != nil {
		return nil, planOutput{}, err
	}
	if err := s.store.SetPlan(t); err != nil {
		return nil, planOutput{}, fmt.Errorf("failed to set plan: %w", err)
	}
	return nil, s.planOutput(), nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, statsOutput, error) {
	out := statsOutput{Overview: s.store.Overview()}

	progress, err := s.store.Progress()
	switch {
	case err == nil:
		out.Progress = progress
	case errors.Is(err, habits.ErrFeatureLocked):
		out.Message = "Detailed progress requires the premium plan."
	default:
		return nil, statsOutput{}, err
	}
	return nil, out, nil
}
