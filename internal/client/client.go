// Package client provides the interface CLI commands and the board use to
// talk to the issue service, plus its HTTP/JSON implementation.
package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// IssueClient is the interface that all CLI commands and the board use to
// communicate with the issue server.
type IssueClient interface {
	// Issue CRUD
	CreateIssue(ctx context.Context, req *CreateIssueRequest) (*model.Issue, error)
	GetIssue(ctx context.Context, id string) (*model.Issue, error)
	ListIssues(ctx context.Context, req *ListIssuesRequest) ([]*model.Issue, error)
	ListIssuesPage(ctx context.Context, req *ListIssuesRequest, page, pageSize int) (*model.IssuePage, error)
	UpdateIssue(ctx context.Context, id string, req *UpdateIssueRequest) (*model.Issue, error)
	UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Issue, error)
	DeleteIssue(ctx context.Context, id string) error

	// Views
	Summary(ctx context.Context) (*model.Summary, error)
	GetEvents(ctx context.Context, issueID string) ([]*model.Event, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateIssueRequest holds parameters for creating an issue.
type CreateIssueRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status,omitempty"`
	Assignee      string `json:"assignee,omitempty"`
	AssigneeImage string `json:"assignee_image,omitempty"`
}

// UpdateIssueRequest holds a partial update; nil fields are left unchanged.
type UpdateIssueRequest struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Status        *string `json:"status,omitempty"`
	Assignee      *string `json:"assignee,omitempty"`
	AssigneeImage *string `json:"assignee_image,omitempty"`
}

// ListIssuesRequest holds list criteria.
type ListIssuesRequest struct {
	Status   []string
	Assignee string
	Search   string
	Sort     string
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
