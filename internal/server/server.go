// Package server exposes the issue store over HTTP/JSON and gRPC.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alfredjeanlab/issueboard/internal/cache"
	"github.com/alfredjeanlab/issueboard/internal/events"
	"github.com/alfredjeanlab/issueboard/internal/idgen"
	"github.com/alfredjeanlab/issueboard/internal/model"
	"github.com/alfredjeanlab/issueboard/internal/store"
)

// IssueServer holds the transport-agnostic issue operations.
type IssueServer struct {
	store     store.Store
	publisher events.Publisher
	cache     cache.Cache
}

// NewIssueServer returns a new IssueServer backed by the given store,
// publisher and summary cache.
func NewIssueServer(s store.Store, p events.Publisher, c cache.Cache) *IssueServer {
	if c == nil {
		c = cache.NoopCache{}
	}
	return &IssueServer{store: s, publisher: p, cache: c}
}

// inputError indicates invalid user input.
// Transport layers map this to 400 / InvalidArgument.
type inputError string

func (e inputError) Error() string { return string(e) }

// recordAndPublish persists an event to the store and publishes it to NATS.
// Both operations are best-effort; failures are logged but do not block the caller.
func (s *IssueServer) recordAndPublish(ctx context.Context, topic, issueID, actor string, event any) {
	env, err := events.NewEnvelope(topic, issueID, actor, event)
	if err != nil {
		slog.Warn("failed to encode event", "topic", topic, "issue_id", issueID, "error", err)
		return
	}
	if err := s.store.RecordEvent(ctx, env.Record()); err != nil {
		slog.Warn("failed to record event", "topic", topic, "issue_id", issueID, "error", err)
	}
	if err := s.publisher.PublishIssueEvent(ctx, env); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "issue_id", issueID, "error", err)
	}
}

func (s *IssueServer) invalidateSummary(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate summary cache", "error", err)
	}
}

// createIssueInput holds parameters for creating an issue.
type createIssueInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Status        string `json:"status,omitempty"`
	Assignee      string `json:"assignee,omitempty"`
	AssigneeImage string `json:"assignee_image,omitempty"`
}

func (s *IssueServer) createIssue(ctx context.Context, actor string, in createIssueInput) (*model.Issue, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, inputError("title is required")
	}

	id, err := idgen.NewIssueID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate ID: %w", err)
	}

	now := time.Now().UTC()
	issue := &model.Issue{
		ID:            id,
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		Status:        model.StatusOpen,
		Assignee:      in.Assignee,
		AssigneeImage: in.AssigneeImage,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Status != "" {
		issue.Status = model.Status(in.Status)
	}

	if err := model.ValidateIssue(issue); err != nil {
		return nil, inputError("invalid issue: " + err.Error())
	}

	if err := s.store.CreateIssue(ctx, issue); err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicIssueCreated, issue.ID, actor, events.IssueCreated{Issue: issue})
	s.invalidateSummary(ctx)
	return issue, nil
}

// updateIssueInput holds parameters for a partial update.
// Pointer fields indicate optionality: nil means "don't change".
type updateIssueInput struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Status        *string `json:"status,omitempty"`
	Assignee      *string `json:"assignee,omitempty"`
	AssigneeImage *string `json:"assignee_image,omitempty"`
}

// updateIssue applies partial updates to an existing issue, persists them,
// and publishes events. A status change additionally emits
// TopicIssueStatusChanged. Returns inputError for validation failures and
// sql.ErrNoRows for unknown ids.
// updateIssue applies the patch under a row lock so concurrent patches to
// the same issue serialize instead of reverting each other's fields.
func (s *IssueServer) updateIssue(ctx context.Context, id, actor string, in updateIssueInput) (*model.Issue, error) {
	var (
		issue      *model.Issue
		prevStatus model.Status
		changes    map[string]any
	)
	err := s.store.RunInTransaction(ctx, func(tx store.Store) error {
		cur, err := tx.GetIssue(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return sql.ErrNoRows
		}

		prevStatus = cur.Status
		changes = applyUpdate(cur, in)

		if err := model.ValidateIssue(cur); err != nil {
			return inputError("invalid issue: " + err.Error())
		}
		if err := tx.UpdateIssue(ctx, cur); err != nil {
			return err
		}
		issue = cur
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAndPublish(ctx, events.TopicIssueUpdated, issue.ID, actor, events.IssueUpdated{Issue: issue, Changes: changes})
	if issue.Status != prevStatus {
		s.recordAndPublish(ctx, events.TopicIssueStatusChanged, issue.ID, actor, events.IssueStatusChanged{
			IssueID: issue.ID,
			From:    prevStatus,
			To:      issue.Status,
		})
		s.invalidateSummary(ctx)
	}
	return issue, nil
}

// applyUpdate copies the set fields of in onto issue and reports what changed.
func applyUpdate(issue *model.Issue, in updateIssueInput) map[string]any {
	prevStatus := issue.Status
	changes := make(map[string]any)

	if in.Title != nil {
		issue.Title = strings.TrimSpace(*in.Title)
		changes["title"] = issue.Title
	}
	if in.Description != nil {
		issue.Description = *in.Description
		changes["description"] = issue.Description
	}
	if in.Status != nil {
		issue.Status = model.Status(*in.Status)
		if issue.Status != prevStatus {
			changes["status"] = issue.Status
		}
	}
	if in.Assignee != nil {
		issue.Assignee = *in.Assignee
		changes["assignee"] = issue.Assignee
	}
	if in.AssigneeImage != nil {
		issue.AssigneeImage = *in.AssigneeImage
		changes["assignee_image"] = issue.AssigneeImage
	}
	return changes
}

func (s *IssueServer) deleteIssue(ctx context.Context, id, actor string) error {
	if err := s.store.DeleteIssue(ctx, id); err != nil {
		return err
	}
	s.recordAndPublish(ctx, events.TopicIssueDeleted, id, actor, events.IssueDeleted{IssueID: id})
	s.invalidateSummary(ctx)
	return nil
}

// summary serves the dashboard counts from the cache, falling back to the store.
func (s *IssueServer) summary(ctx context.Context) (*model.Summary, error) {
	sum, err := s.cache.Summary(ctx)
	if err == nil {
		return sum, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("summary cache read failed", "error", err)
	}

	sum, err = s.store.GetSummary(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetSummary(ctx, sum); err != nil {
		slog.Warn("summary cache write failed", "error", err)
	}
	return sum, nil
}
