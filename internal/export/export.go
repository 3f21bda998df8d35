// ABOUTME: Export and import of habit data.
// ABOUTME: Supports JSON, YAML, and Markdown export and JSON/YAML import.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/habits/internal/models"
	"github.com/harperreed/habits/internal/stats"
	"gopkg.in/yaml.v3"
)

// Version is the export document version.
const Version = "1.0"

// Tool identifies the program that wrote an export.
const Tool = "habits"

// ErrUnknownFormat is returned for formats other than json, yaml and markdown.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export file format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts json, yaml/yml and markdown/md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// DetectFormat guesses the format from a file name's extension.
func DetectFormat(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Data is the full export document.
type Data struct {
	Version    string               `json:"version" yaml:"version"`
	ExportedAt time.Time            `json:"exported_at" yaml:"exported_at"`
	Tool       string               `json:"tool" yaml:"tool"`
	Plan       models.PlanType      `json:"plan" yaml:"plan"`
	Habits     []models.HabitRecord `json:"habits" yaml:"habits"`
}

// New builds an export document from store snapshots.
func New(habits []*models.Habit, plan models.UserPlan, now time.Time) *Data {
	d := &Data{
		Version:    Version,
		ExportedAt: now.UTC(),
		Tool:       Tool,
		Plan:       plan.Type,
		Habits:     make([]models.HabitRecord, 0, len(habits)),
	}
	for _, h := range habits {
		d.Habits = append(d.Habits, h.Record())
	}
	return d
}

// ToHabits converts the exported records back into habits.
func (d *Data) ToHabits() []*models.Habit {
	out := make([]*models.Habit, 0, len(d.Habits))
	for _, r := range d.Habits {
		out = append(out, r.Habit())
	}
	return out
}

// Encode writes d in the requested format. Markdown is rendered for today.
func Encode(d *Data, format Format, today time.Time) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case FormatYAML:
		return yaml.Marshal(d)
	case FormatMarkdown:
		return []byte(Markdown(d.ToHabits(), today)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Decode parses an export document. Markdown is output only.
func Decode(data []byte, format Format) (*Data, error) {
	var d Data
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("unmarshal YAML: %w", err)
		}
	case FormatMarkdown:
		return nil, fmt.Errorf("%w: markdown cannot be imported", ErrUnknownFormat)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	for i, r := range d.Habits {
		if r.ID == uuid.Nil {
			return nil, fmt.Errorf("habit %d (%q) has no id", i, r.Name)
		}
	}
	return &d, nil
}

// Markdown renders a summary table plus the last seven days per habit.
func Markdown(habits []*models.Habit, today time.Time) string {
	var sb strings.Builder
	days := models.LastDays(today, 7)

	sb.WriteString(fmt.Sprintf("# Habits Export - %s\n\n", models.DateKey(today)))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", today.Format(time.RFC3339)))

	if len(habits) == 0 {
		sb.WriteString("No habits yet.\n")
		return sb.String()
	}

	sb.WriteString("| Habit | Category | Frequency | Streak | Best | Month | Total |\n")
	sb.WriteString("|-------|----------|-----------|--------|------|-------|-------|\n")
	for _, h := range habits {
		sb.WriteString(fmt.Sprintf("| %s %s | %s | %s | %d | %d | %d%% | %d |\n",
			h.Icon, h.Name, h.Category, h.Frequency,
			h.Streak(), h.BestStreak(), stats.MonthRate(h, today), h.CompletionCount()))
	}

	sb.WriteString("\n## Last 7 Days\n\n")
	sb.WriteString("| Habit |")
	for _, d := range days {
		sb.WriteString(" " + d[5:] + " |")
	}
	sb.WriteString("\n|-------|")
	for range days {
		sb.WriteString("-------|")
	}
	sb.WriteString("\n")
	for _, h := range habits {
		sb.WriteString("| " + h.Name + " |")
		for _, d := range days {
			mark := " "
			if h.IsCompleted(d) {
				mark = "x"
			}
			sb.WriteString(" " + mark + " |")
		}
		sb.WriteString("\n")
	}

	var notes []*models.Habit
	for _, h := range habits {
		if h.Notes != "" {
			notes = append(notes, h)
		}
	}
	if len(notes) > 0 {
		sb.WriteString("\n## Notes\n\n")
		for _, h := range notes {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", h.Name, h.Notes))
		}
	}

	return sb.String()
}
