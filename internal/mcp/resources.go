// ABOUTME: MCP resource implementations for habits.
// ABOUTME: Provides habits://today and habits://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI   = "habits://today"
	summaryURI = "habits://summary"
)

func (s *Server) registerResources() {
	// habits://today - every habit with today's state
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today's Habits",
		Description: "All habits with today's completion state and current streaks",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// habits://summary - overview numbers plus the plan
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Habit Summary Dashboard",
		Description: "Overview totals, the active plan, and the habits still open today",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.store.Today()

	var done, open []habitOutput
	for _, h := range s.store.ListHabits() {
		out := toHabitOutput(h, today)
		if out.CompletedToday {
			done = append(done, out)
		} else {
			open = append(open, out)
		}
	}

	result := map[string]interface{}{
		"date":      today,
		"completed": done,
		"pending":   open,
		"counts": map[string]int{
			"completed": len(done),
			"pending":   len(open),
		},
	}
	return jsonResource(todayURI, result)
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.store.Today()

	var pending []string
	for _, h := range s.store.ListHabits() {
		if !h.IsCompleted(today) {
			pending = append(pending, h.Name)
		}
	}

	result := map[string]interface{}{
		"date":     today,
		"overview": s.store.Overview(),
		"plan":     s.planOutput(),
		"pending":  pending,
	}
	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
