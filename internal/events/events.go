// Package events carries issue lifecycle notifications over NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// Event topic constants.
const (
	TopicIssueCreated       = "issues.issue.created"
	TopicIssueUpdated       = "issues.issue.updated"
	TopicIssueStatusChanged = "issues.issue.status_changed"
	TopicIssueDeleted       = "issues.issue.deleted"

	// TopicAll matches every issue topic.
	TopicAll = "issues.>"
)

// Message headers carried alongside the JSON payload.
const (
	HeaderIssueID = "Issueboard-Issue-Id"
	HeaderActor   = "Issueboard-Actor"
)

// Event payloads

type IssueCreated struct {
	Issue *model.Issue `json:"issue"`
}

type IssueUpdated struct {
	Issue   *model.Issue   `json:"issue"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type IssueStatusChanged struct {
	IssueID string       `json:"issue_id"`
	From    model.Status `json:"from"`
	To      model.Status `json:"to"`
}

type IssueDeleted struct {
	IssueID string `json:"issue_id"`
}

// Envelope is one issue event with its routing metadata. The payload is
// encoded once and shared by the audit log and the bus.
type Envelope struct {
	Topic   string
	IssueID string
	Actor   string
	Payload json.RawMessage
}

// NewEnvelope encodes payload for topic.
func NewEnvelope(topic, issueID, actor string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshaling %s payload: %w", topic, err)
	}
	return Envelope{Topic: topic, IssueID: issueID, Actor: actor, Payload: data}, nil
}

// Record converts the envelope into the persisted audit row.
func (e Envelope) Record() *model.Event {
	return &model.Event{
		Topic:   e.Topic,
		IssueID: e.IssueID,
		Actor:   e.Actor,
		Payload: e.Payload,
	}
}

// Publisher emits issue events.
type Publisher interface {
	PublishIssueEvent(ctx context.Context, env Envelope) error
	Close() error
}

// NoopPublisher drops every event; used when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishIssueEvent(context.Context, Envelope) error { return nil }
func (NoopPublisher) Close() error                                     { return nil }
