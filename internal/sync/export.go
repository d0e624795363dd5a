// Package sync exports the issue table as JSONL to backup destinations.
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alfredjeanlab/issueboard/internal/model"
	"github.com/alfredjeanlab/issueboard/internal/store"
)

// FormatVersion is written into every export header.
const FormatVersion = "1"

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version    string        `json:"version"`
	Type       string        `json:"type"`
	Timestamp  time.Time     `json:"timestamp"`
	IssueCount int           `json:"issue_count"`
	Summary    model.Summary `json:"summary"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string       `json:"type"`
	Data *model.Issue `json:"data"`
}

// ExportJSONL writes every issue in the store as JSONL to w, sorted by id
// and preceded by a header carrying per-status counts.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	issues, _, err := s.ListIssues(ctx, model.IssueFilter{Sort: "created_at"})
	if err != nil {
		return fmt.Errorf("list issues: %w", err)
	}

	sort.Slice(issues, func(i, j int) bool {
		return issues[i].ID < issues[j].ID
	})

	var sum model.Summary
	for _, issue := range issues {
		sum.Add(issue.Status, 1)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:    FormatVersion,
		Type:       "header",
		Timestamp:  time.Now().UTC(),
		IssueCount: len(issues),
		Summary:    sum,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, issue := range issues {
		if err := enc.Encode(record{Type: "issue", Data: issue}); err != nil {
			return fmt.Errorf("encode issue %s: %w", issue.ID, err)
		}
	}
	return nil
}
