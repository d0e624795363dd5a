package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanIssue scans a single row into a model.Issue.
// The row must contain columns in the order defined by issueColumns.
func scanIssue(row scannable) (*model.Issue, error) {
	var i model.Issue
	var assignee, image sql.NullString
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Status,
		&assignee,
		&image,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	i.Assignee = assignee.String
	i.AssigneeImage = image.String
	return &i, nil
}

// scanIssueWithTotal scans a row that has a leading total_count column
// followed by the standard issue columns.
func scanIssueWithTotal(row scannable) (*model.Issue, int, error) {
	var total int
	var i model.Issue
	var assignee, image sql.NullString
	err := row.Scan(
		&total,
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Status,
		&assignee,
		&image,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, 0, err
	}
	i.Assignee = assignee.String
	i.AssigneeImage = image.String
	return &i, total, nil
}

// scanEvent scans a single row into a model.Event.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		actor   sql.NullString
		payload []byte
	)
	err := row.Scan(&e.ID, &e.Topic, &e.IssueID, &actor, &payload, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Actor = actor.String
	if len(payload) > 0 {
		e.Payload = json.RawMessage(payload)
	}
	return &e, nil
}

// scanEvents scans multiple rows into a slice of model.Event pointers.
func scanEvents(rows *sql.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// jsonbBytes converts json.RawMessage to a []byte suitable for JSONB columns.
// Empty payloads are stored as an empty object.
func jsonbBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return []byte("{}")
	}
	return []byte(m)
}
