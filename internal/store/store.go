// Package store defines the persistence boundary for issues and their events.
package store

import (
	"context"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// Store defines the persistence interface for issues.
// Lookups of unknown ids return sql.ErrNoRows.
type Store interface {
	// Issue CRUD
	CreateIssue(ctx context.Context, issue *model.Issue) error
	GetIssue(ctx context.Context, id string) (*model.Issue, error)
	ListIssues(ctx context.Context, filter model.IssueFilter) ([]*model.Issue, int, error) // returns issues, total count, error
	UpdateIssue(ctx context.Context, issue *model.Issue) error
	DeleteIssue(ctx context.Context, id string) error

	// Dashboard
	GetSummary(ctx context.Context) (*model.Summary, error)

	// Events
	RecordEvent(ctx context.Context, event *model.Event) error
	GetEvents(ctx context.Context, issueID string) ([]*model.Event, error)

	// Transaction support. Within fn, GetIssue locks the row until commit.
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
