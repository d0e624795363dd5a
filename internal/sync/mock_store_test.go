package sync

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alfredjeanlab/issueboard/internal/model"
	"github.com/alfredjeanlab/issueboard/internal/store"
)

// mockStore is a minimal in-memory store for export tests.
type mockStore struct {
	issues  map[string]*model.Issue
	listErr error
}

var _ store.Store = (*mockStore)(nil)

func newMockStore() *mockStore {
	return &mockStore{issues: make(map[string]*model.Issue)}
}

func (m *mockStore) CreateIssue(_ context.Context, issue *model.Issue) error {
	m.issues[issue.ID] = issue
	return nil
}

func (m *mockStore) GetIssue(_ context.Context, id string) (*model.Issue, error) {
	issue, ok := m.issues[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return issue, nil
}

// ListIssues ignores the filter; map order is random so callers must sort.
func (m *mockStore) ListIssues(_ context.Context, _ model.IssueFilter) ([]*model.Issue, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	out := make([]*model.Issue, 0, len(m.issues))
	for _, issue := range m.issues {
		out = append(out, issue)
	}
	return out, len(out), nil
}

func (m *mockStore) UpdateIssue(_ context.Context, issue *model.Issue) error {
	if _, ok := m.issues[issue.ID]; !ok {
		return sql.ErrNoRows
	}
	m.issues[issue.ID] = issue
	return nil
}

func (m *mockStore) DeleteIssue(_ context.Context, id string) error {
	if _, ok := m.issues[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.issues, id)
	return nil
}

func (m *mockStore) GetSummary(_ context.Context) (*model.Summary, error) {
	var s model.Summary
	for _, issue := range m.issues {
		s.Add(issue.Status, 1)
	}
	return &s, nil
}

func (m *mockStore) RecordEvent(_ context.Context, _ *model.Event) error {
	return errors.New("not implemented")
}

func (m *mockStore) GetEvents(_ context.Context, _ string) ([]*model.Event, error) {
	return nil, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
