package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

func TestStatusCell(t *testing.T) {
	tests := []struct {
		status model.Status
		want   string
	}{
		{model.StatusOpen, "◷ OPEN"},
		{model.StatusInProgress, "⚠ IN PROGRESS"},
		{model.StatusClosed, "✓ CLOSED"},
		{model.Status("BLOCKED"), "BLOCKED"},
	}
	for _, tt := range tests {
		if got := statusCell(tt.status); got != tt.want {
			t.Errorf("statusCell(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{48 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := relativeTime(now.Add(-tt.ago), now); got != tt.want {
			t.Errorf("relativeTime(-%s) = %q, want %q", tt.ago, got, tt.want)
		}
	}
	if got := relativeTime(time.Time{}, now); got != "" {
		t.Errorf("zero time = %q, want empty", got)
	}
	if got := relativeTime(now.Add(-90*24*time.Hour), now); !strings.HasPrefix(got, "2025-") {
		t.Errorf("old time = %q, want a date", got)
	}
}

func TestPrintIssueListTable(t *testing.T) {
	page := &model.IssuePage{
		Issues: []*model.Issue{
			{ID: "iss-1", Title: "Short", Status: model.StatusOpen, Assignee: "ada"},
			{ID: "iss-2", Title: strings.Repeat("x", 80), Status: model.StatusClosed},
		},
		Total:    45,
		Page:     2,
		PageSize: 20,
	}
	var buf bytes.Buffer
	printIssueListTable(&buf, page)
	out := buf.String()

	for _, want := range []string{"ID", "STATUS", "iss-1", "◷ OPEN", "ada", "✓ CLOSED", "2 issues (45 total), page 2 of 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("x", 51)) {
		t.Errorf("long title not truncated:\n%s", out)
	}
}

func TestPrintIssueTable(t *testing.T) {
	issue := &model.Issue{
		ID:          "iss-1",
		Title:       "Fix login",
		Description: "Users cannot log in",
		Status:      model.StatusInProgress,
		Assignee:    "grace",
		CreatedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	var buf bytes.Buffer
	printIssueTable(&buf, issue)
	out := buf.String()
	for _, want := range []string{"ID:          iss-1", "Fix login", "IN PROGRESS", "grace", "Created At:", "Users cannot log in"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Updated At:") {
		t.Errorf("zero UpdatedAt should be omitted:\n%s", out)
	}
}

func TestPrintSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	printSummaryTable(&buf, &model.Summary{Open: 3, InProgress: 2, Closed: 7})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	for i, want := range []string{"OPEN", "IN PROGRESS", "CLOSED", "TOTAL"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
	if !strings.HasSuffix(lines[3], "12") {
		t.Errorf("total line = %q, want 12", lines[3])
	}
}

func TestPrintEventsTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	printEventsTable(&buf, nil)
	if strings.TrimSpace(buf.String()) != "no events" {
		t.Errorf("got %q", buf.String())
	}
}
