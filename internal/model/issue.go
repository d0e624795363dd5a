package model

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an issue. The set is closed.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusClosed     Status = "CLOSED"
)

// Statuses lists every status in board column order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusClosed}

// String returns the wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Label returns a human-readable form, e.g. "IN PROGRESS".
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ParseStatus accepts the wire value in any case, with '-' or ' ' in place of '_'.
func ParseStatus(v string) (Status, bool) {
	norm := strings.ToUpper(strings.TrimSpace(v))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	s := Status(norm)
	return s, s.IsValid()
}

// Issue is the tracked work item.
type Issue struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        Status    `json:"status"`
	Assignee      string    `json:"assignee,omitempty"`
	AssigneeImage string    `json:"assignee_image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Clone returns a shallow copy; Issue holds no reference fields.
func (i *Issue) Clone() *Issue {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Summary holds per-status issue counts for the dashboard.
type Summary struct {
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Closed     int `json:"closed"`
}

// Total returns the sum of all counts.
func (s Summary) Total() int {
	return s.Open + s.InProgress + s.Closed
}

// Add increments the counter for status st. Unknown statuses are ignored.
func (s *Summary) Add(st Status, n int) {
	switch st {
	case StatusOpen:
		s.Open += n
	case StatusInProgress:
		s.InProgress += n
	case StatusClosed:
		s.Closed += n
	}
}
