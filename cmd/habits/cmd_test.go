// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Runs commands end to end against a temp sqlite data directory.
package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/habits/internal/config"
	"github.com/harperreed/habits/internal/habits"
	"github.com/harperreed/habits/internal/kv"
	"github.com/harperreed/habits/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty", input: "", want: "2025-03-01"},
		{name: "today", input: "today", want: "2025-03-01"},
		{name: "yesterday crosses month", input: "yesterday", want: "2025-02-28"},
		{name: "explicit", input: "2025-02-14", want: "2025-02-14"},
		{name: "impossible day", input: "2025-02-30", wantErr: true},
		{name: "wrong layout", input: "14/02/2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveDate(tt.input, "2025-03-01")
			if tt.wantErr {
				if err == nil {
					t.Errorf("resolveDate(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveDate(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("resolveDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long habit name", 10, "this is..."},
		{"Méditation du matin", 10, "Méditat..."},
		{"日本語の勉強をする", 10, "日本語..."},
		{"🏃🏃🏃🏃🏃🏃", 7, "🏃🏃..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("abc", 6); got != "abc   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not cut, got %q", got)
	}
	if got := padRight("日本", 6); got != "日本  " {
		t.Errorf("padRight should count wide runes as two columns, got %q", got)
	}
	if got := padRight("café", 6); got != "café  " {
		t.Errorf("padRight should count runes, not bytes, got %q", got)
	}
}

func TestRootCmd(t *testing.T) {
	if rootCmd.Use != "habits" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "habits")
	}
	for _, name := range []string{"debug", "backend", "data-dir"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"add", "list", "edit", "delete", "done", "history", "plan", "stats",
		"export", "import", "mcp", "sync", "migrate", "config", "version", "install-skill",
	}
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, n := range want {
		if !names[n] {
			t.Errorf("Expected %s command to be registered", n)
		}
	}
}

func TestDoneCmdAliases(t *testing.T) {
	for _, alias := range []string{"d", "toggle", "check"} {
		found := false
		for _, a := range doneCmd.Aliases {
			if a == alias {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected alias %q on done command", alias)
		}
	}
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupTestCLI points config and data at temp directories.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	dataHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", dataHome)

	resetFlags(rootCmd)
	t.Cleanup(func() {
		_ = closeStore()
		resetFlags(rootCmd)
	})
	return filepath.Join(dataHome, "habits")
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func mustRun(t *testing.T, args ...string) {
	t.Helper()
	if err := run(t, args...); err != nil {
		t.Fatalf("habits %s failed: %v", strings.Join(args, " "), err)
	}
}

// captureStdout returns what fn printed with fmt to stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	_ = w.Close()
	out, _ := io.ReadAll(r)
	return string(out)
}

func onlyHabit(t *testing.T) *models.Habit {
	t.Helper()
	all := store.ListHabits()
	if len(all) != 1 {
		t.Fatalf("Expected 1 habit, got %d", len(all))
	}
	return all[0]
}

func TestAddCmd(t *testing.T) {
	dataDir := setupTestCLI(t)

	mustRun(t, "add", "Read", "20", "pages", "--category", "learning", "--icon", "📚", "--notes", "before bed")

	h := onlyHabit(t)
	if h.Name != "Read 20 pages" {
		t.Errorf("Name = %q, want joined args", h.Name)
	}
	if h.Category != models.CategoryLearning || h.Icon != "📚" || h.Notes != "before bed" {
		t.Errorf("unexpected habit: %+v", h)
	}
	if h.Frequency != models.FrequencyDaily {
		t.Errorf("Frequency = %q, want daily default", h.Frequency)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "habits.db")); err != nil {
		t.Errorf("Expected sqlite database: %v", err)
	}
}

func TestAddCmdInvalidCategory(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "add", "Nap", "--category", "sleepy")
	if !errors.Is(err, models.ErrInvalidHabit) {
		t.Errorf("err = %v, want ErrInvalidHabit", err)
	}
}

func TestAddCmdQuota(t *testing.T) {
	setupTestCLI(t)

	for i := 0; i < models.FreeHabitsLimit; i++ {
		mustRun(t, "add", "habit")
	}
	err := run(t, "add", "one", "too", "many")
	if !errors.Is(err, habits.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
	if !strings.Contains(err.Error(), "plan upgrade") {
		t.Errorf("Expected upgrade hint in %q", err.Error())
	}

	mustRun(t, "plan", "upgrade")
	mustRun(t, "add", "one", "too", "many")
	if n := len(store.ListHabits()); n != models.FreeHabitsLimit+1 {
		t.Errorf("Expected %d habits after upgrade, got %d", models.FreeHabitsLimit+1, n)
	}
}

func TestAddCmdPremiumOptions(t *testing.T) {
	setupTestCLI(t)

	err := run(t, "add", "Walk", "--integration", "steps", "--goal", "8000")
	if !errors.Is(err, habits.ErrFeatureLocked) {
		t.Fatalf("err = %v, want ErrFeatureLocked", err)
	}

	mustRun(t, "plan", "upgrade")
	mustRun(t, "add", "Walk", "--integration", "steps", "--goal", "8000", "--reminder", "07:30")

	h := onlyHabit(t)
	if h.Integration == nil || h.Integration.Goal == nil || *h.Integration.Goal != 8000 {
		t.Fatalf("unexpected integration: %+v", h.Integration)
	}
	if !h.IsPremium() || h.Reminder != "07:30" {
		t.Errorf("IsPremium = %v, Reminder = %q", h.IsPremium(), h.Reminder)
	}
}

func TestDoneCmd(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "add", "Floss")
	id := onlyHabit(t).ID.String()[:8]

	mustRun(t, "done", id)
	h := onlyHabit(t)
	if !h.IsCompleted(store.Today()) || h.Streak() != 1 {
		t.Fatalf("after done: completed=%v streak=%d", h.IsCompleted(store.Today()), h.Streak())
	}

	mustRun(t, "done", id, "--date", "yesterday")
	h = onlyHabit(t)
	if h.Streak() != 2 || h.BestStreak() != 2 {
		t.Errorf("after back-fill: streak=%d best=%d, want 2/2", h.Streak(), h.BestStreak())
	}

	mustRun(t, "done", id)
	h = onlyHabit(t)
	if h.IsCompleted(store.Today()) || h.Streak() != 0 || h.BestStreak() != 2 {
		t.Errorf("after undo: completed=%v streak=%d best=%d", h.IsCompleted(store.Today()), h.Streak(), h.BestStreak())
	}
}

func TestDoneCmdErrors(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "add", "Floss")
	id := onlyHabit(t).ID.String()[:8]

	if err := run(t, "done", id, "--date", "2025-13-01"); err == nil {
		t.Error("Expected error for invalid date")
	}
	if err := run(t, "done", "ffffffff-no"); !errors.Is(err, habits.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEditCmd(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "add", "Run")
	id := onlyHabit(t).ID.String()

	mustRun(t, "edit", id, "--name", "Morning run", "--category", "fitness")
	h := onlyHabit(t)
	if h.Name != "Morning run" || h.Category != models.CategoryFitness {
		t.Errorf("unexpected habit after edit: %+v", h)
	}
	if h.Icon != "✅" {
		t.Errorf("Icon changed to %q without --icon", h.Icon)
	}

	if err := run(t, "edit", id); err == nil {
		t.Error("Expected error when no fields are given")
	}
	if err := run(t, "edit", id, "--reminder", "06:00"); !errors.Is(err, habits.ErrFeatureLocked) {
		t.Errorf("err = %v, want ErrFeatureLocked", err)
	}
}

func TestDeleteCmd(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "add", "Run")
	id := onlyHabit(t).ID.String()[:8]

	mustRun(t, "delete", id)
	if n := len(store.ListHabits()); n != 0 {
		t.Errorf("Expected 0 habits, got %d", n)
	}
	if err := run(t, "delete", id); !errors.Is(err, habits.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListCmdOutput(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "add", "Read")
	mustRun(t, "add", "Squats", "--category", "fitness")

	out := captureStdout(t, func() { mustRun(t, "list", "--category", "fitness") })
	if !strings.Contains(out, "Squats") || strings.Contains(out, "Read") {
		t.Errorf("unexpected filtered list:\n%s", out)
	}

	if err := run(t, "list", "--category", "nope"); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestPlanCmd(t *testing.T) {
	setupTestCLI(t)

	out := captureStdout(t, func() { mustRun(t, "plan") })
	if !strings.Contains(out, "Habits: 0/5") {
		t.Errorf("unexpected plan output:\n%s", out)
	}

	mustRun(t, "plan", "upgrade")
	if store.GetPlan().Type != models.PlanPremium {
		t.Errorf("plan = %s, want premium", store.GetPlan().Type)
	}

	mustRun(t, "plan", "downgrade")
	if store.GetPlan() != models.FreePlan {
		t.Errorf("plan = %+v, want free", store.GetPlan())
	}
}

func TestStatsCmd(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "add", "Read")
	mustRun(t, "done", onlyHabit(t).ID.String()[:8])

	out := captureStdout(t, func() { mustRun(t, "stats") })
	if !strings.Contains(out, "Completed today   1/1") {
		t.Errorf("unexpected stats output:\n%s", out)
	}

	mustRun(t, "plan", "upgrade")
	out = captureStdout(t, func() { mustRun(t, "stats") })
	if !strings.Contains(out, "Last 30 days") || !strings.Contains(out, "Week 4") {
		t.Errorf("premium stats missing progress:\n%s", out)
	}
}

func TestExportImportCmd(t *testing.T) {
	setupTestCLI(t)
	mustRun(t, "add", "Read")
	h := onlyHabit(t)
	mustRun(t, "done", h.ID.String()[:8])

	path := filepath.Join(t.TempDir(), "backup.yaml")
	if err := run(t, "export", "yaml", "-o", path); !errors.Is(err, habits.ErrFeatureLocked) {
		t.Fatalf("err = %v, want ErrFeatureLocked on free plan", err)
	}

	mustRun(t, "plan", "upgrade")
	mustRun(t, "export", "yaml", "-o", path)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	mustRun(t, "delete", h.ID.String())
	mustRun(t, "import", path)

	got := onlyHabit(t)
	if got.ID != h.ID || !got.IsCompleted(store.Today()) || got.Streak() != 1 {
		t.Errorf("imported habit mismatch: %+v streak=%d", got, got.Streak())
	}

	mustRun(t, "import", path)
	if n := len(store.ListHabits()); n != 1 {
		t.Errorf("re-import should skip existing ids, got %d habits", n)
	}
}

func TestExportInvalidFormat(t *testing.T) {
	setupTestCLI(t)
	if err := run(t, "export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestMigrateCmd(t *testing.T) {
	dataDir := setupTestCLI(t)
	mustRun(t, "add", "Read")
	want := onlyHabit(t).ID

	mustRun(t, "migrate", "--to", "badger", "--switch")

	dst, err := kv.OpenBadger(filepath.Join(dataDir, "badger"), nil)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	migrated, err := habits.Open(dst)
	if err != nil {
		t.Fatalf("open migrated store: %v", err)
	}
	got := migrated.ListHabits()
	if len(got) != 1 || got[0].ID != want {
		t.Errorf("migrated habits = %v", got)
	}
	if err := dst.Close(); err != nil {
		t.Fatalf("close badger: %v", err)
	}

	c, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.Backend != "badger" {
		t.Errorf("config backend = %q, want badger after --switch", c.Backend)
	}

	mustRun(t, "list")
	if n := len(store.ListHabits()); n != 1 {
		t.Errorf("Expected habits on badger backend, got %d", n)
	}
	if err := run(t, "migrate", "--to", "badger"); err == nil {
		t.Error("Expected error when migrating to the active backend")
	}
}

func TestConfigSetCmd(t *testing.T) {
	setupTestCLI(t)

	mustRun(t, "config", "set", "log_level", "debug")
	c, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", c.LogLevel)
	}

	if err := run(t, "config", "set", "backend", "postgres"); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestRenderMonth(t *testing.T) {
	h := models.NewHabit(models.HabitDraft{
		Name: "Read", Frequency: models.FrequencyDaily, Category: models.CategoryLearning,
	}, time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local))
	h.Toggle("2025-03-09")
	h.Toggle("2025-03-10")

	first := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	out := renderMonth(h, first, "2025-03-10")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "March 2025" {
		t.Errorf("header = %q", lines[0])
	}
	// March 2025 starts on a Saturday.
	if !strings.HasPrefix(lines[2], strings.Repeat("     ", 6)+"  1 ") {
		t.Errorf("first week = %q", lines[2])
	}
	if !strings.Contains(out, "[ 9] ") || !strings.Contains(out, "[10]*") {
		t.Errorf("completed days not marked:\n%s", out)
	}
	if len(lines) != 8 {
		t.Errorf("Expected 6 week rows plus 2 header lines, got %d lines", len(lines))
	}

	completed, days := monthCount(h, first)
	if completed != 2 || days != 31 {
		t.Errorf("monthCount = %d/%d, want 2/31", completed, days)
	}
}

func TestOpenStoreFailureLeavesNothingToClose(t *testing.T) {
	dataDir := setupTestCLI(t)
	// A directory where the database file should be makes sqlite fail to open.
	if err := os.MkdirAll(filepath.Join(dataDir, "habits.db"), 0750); err != nil {
		t.Fatal(err)
	}

	if err := run(t, "list"); err == nil {
		t.Fatal("expected list to fail when the database cannot be opened")
	}
	if backend != nil {
		t.Errorf("backend = %#v after failed open, want nil", backend)
	}
	if err := closeStore(); err != nil {
		t.Errorf("closeStore() after failed open = %v", err)
	}
}
