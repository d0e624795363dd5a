package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/alfredjeanlab/issueboard/internal/board"
	"github.com/alfredjeanlab/issueboard/internal/model"
	"github.com/alfredjeanlab/issueboard/internal/ui"
)

const (
	timeFormat    = "2006-01-02 15:04:05"
	maxTitleWidth = 50
)

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// statusCell is the uncolored status label used inside tab-aligned tables,
// where escape sequences would break column widths.
func statusCell(s model.Status) string {
	label := s.Label()
	if g := board.Classify(s).Icon.Glyph(); g != "" {
		label = g + " " + label
	}
	return label
}

func printIssueTable(w io.Writer, issue *model.Issue) {
	fmt.Fprintf(w, "ID:          %s\n", issue.ID)
	fmt.Fprintf(w, "Title:       %s\n", issue.Title)
	fmt.Fprintf(w, "Status:      %s\n", ui.RenderStatus(issue.Status))
	if issue.Assignee != "" {
		fmt.Fprintf(w, "Assignee:    %s\n", issue.Assignee)
	}
	if issue.AssigneeImage != "" {
		fmt.Fprintf(w, "Avatar:      %s\n", issue.AssigneeImage)
	}
	if !issue.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created At:  %s\n", issue.CreatedAt.Local().Format(timeFormat))
	}
	if !issue.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "Updated At:  %s\n", issue.UpdatedAt.Local().Format(timeFormat))
	}
	if issue.Description != "" {
		fmt.Fprintf(w, "\n%s\n", ansi.Wordwrap(issue.Description, 80, ""))
	}
}

func printIssueListTable(w io.Writer, page *model.IssuePage) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tASSIGNEE\tUPDATED")
	for _, i := range page.Issues {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			i.ID,
			statusCell(i.Status),
			ansi.Truncate(i.Title, maxTitleWidth, "..."),
			i.Assignee,
			relativeTime(i.UpdatedAt, time.Now()),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d issues (%d total), page %d of %d\n", len(page.Issues), page.Total, page.Page, page.Pages())
}

func printSummaryTable(w io.Writer, s *model.Summary) {
	counts := map[model.Status]int{
		model.StatusOpen:       s.Open,
		model.StatusInProgress: s.InProgress,
		model.StatusClosed:     s.Closed,
	}
	width := 0
	for _, st := range model.Statuses {
		width = max(width, ansi.StringWidth(statusCell(st)))
	}
	for _, st := range model.Statuses {
		pad := strings.Repeat(" ", width-ansi.StringWidth(statusCell(st)))
		fmt.Fprintf(w, "%s%s  %d\n", ui.RenderStatus(st), pad, counts[st])
	}
	fmt.Fprintf(w, "%s  %d\n", ui.RenderMuted("TOTAL"+strings.Repeat(" ", max(0, width-5))), s.Total())
}

func printEventsTable(w io.Writer, evts []*model.Event) {
	if len(evts) == 0 {
		fmt.Fprintln(w, "no events")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTOPIC\tACTOR")
	for _, e := range evts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.CreatedAt.Local().Format(timeFormat), e.Topic, e.Actor)
	}
	tw.Flush()
}

// relativeTime renders t as "5m ago" style text relative to now.
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	return t.Local().Format("2006-01-02")
}
