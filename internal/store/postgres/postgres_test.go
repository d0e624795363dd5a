package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/alfredjeanlab/issueboard/internal/model"
	"github.com/alfredjeanlab/issueboard/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// issueRowColumns is the column list for scanIssue results.
var issueRowColumns = []string{
	"id", "title", "description", "status", "assignee", "assignee_image", "created_at", "updated_at",
}

// issueWithTotalColumns is the column list for queryListIssues results.
var issueWithTotalColumns = append([]string{"total_count"}, issueRowColumns...)

func TestParseSortClause(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  string
	}{
		{"", "created_at ASC, id ASC"},
		{"title", "title ASC, id ASC"},
		{"-updated_at", "updated_at DESC, id ASC"},
		{"status", "status ASC, id ASC"},
		{"evil_column; DROP TABLE issues", "created_at ASC, id ASC"},
		{"-evil_column", "created_at ASC, id ASC"},
	} {
		if got := parseSortClause(tc.input); got != tc.want {
			t.Errorf("parseSortClause(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestScanHelpers(t *testing.T) {
	if nullString("").Valid {
		t.Error("nullString(\"\") should be invalid")
	}
	if ns := nullString("ada"); !ns.Valid || ns.String != "ada" {
		t.Errorf("nullString(\"ada\") = %v", ns)
	}
	if string(jsonbBytes(nil)) != "{}" {
		t.Errorf("jsonbBytes(nil) = %s, want {}", jsonbBytes(nil))
	}
	input := json.RawMessage(`{"key":"value"}`)
	if string(jsonbBytes(input)) != `{"key":"value"}` {
		t.Errorf("jsonbBytes = %s", jsonbBytes(input))
	}
}

func TestQueryCreateIssue(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	issue := &model.Issue{
		ID: "iss-a1", Title: "Broken login", Description: "500 on submit",
		Status: model.StatusOpen, Assignee: "ada", CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectExec("INSERT INTO issues").
		WithArgs("iss-a1", "Broken login", "500 on submit", "OPEN", "ada", nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryCreateIssue(context.Background(), db, issue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryGetIssue(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows(issueRowColumns).
		AddRow("iss-a1", "Broken login", "", "IN_PROGRESS", "ada", "https://example.com/ada.png", now, now)
	mock.ExpectQuery("SELECT .+ FROM issues WHERE id = \\$1").WithArgs("iss-a1").WillReturnRows(rows)

	issue, err := queryGetIssue(context.Background(), db, "iss-a1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue.ID != "iss-a1" || issue.Status != model.StatusInProgress {
		t.Fatalf("got id=%q status=%q", issue.ID, issue.Status)
	}
	if issue.Assignee != "ada" || issue.AssigneeImage != "https://example.com/ada.png" {
		t.Fatalf("got assignee=%q image=%q", issue.Assignee, issue.AssigneeImage)
	}
}

func TestQueryGetIssue_NullAssignee(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows(issueRowColumns).
		AddRow("iss-a2", "Unassigned", "", "OPEN", nil, nil, now, now)
	mock.ExpectQuery("SELECT .+ FROM issues WHERE id = \\$1").WithArgs("iss-a2").WillReturnRows(rows)

	issue, err := queryGetIssue(context.Background(), db, "iss-a2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue.Assignee != "" || issue.AssigneeImage != "" {
		t.Fatalf("expected empty assignee, got %q/%q", issue.Assignee, issue.AssigneeImage)
	}
}

func TestQueryGetIssue_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM issues WHERE id = \\$1").WithArgs("nonexistent").WillReturnError(sql.ErrNoRows)

	_, err := queryGetIssue(context.Background(), db, "nonexistent")
	if err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryUpdateIssue(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	issue := &model.Issue{ID: "iss-a1", Title: "Broken login", Status: model.StatusClosed}
	mock.ExpectQuery("UPDATE issues SET").
		WithArgs("iss-a1", "Broken login", "", "CLOSED", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))

	if err := queryUpdateIssue(context.Background(), db, issue); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !issue.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt = %v, want %v", issue.UpdatedAt, now)
	}
}

func TestQueryUpdateIssue_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	issue := &model.Issue{ID: "nonexistent", Title: "x", Status: model.StatusOpen}
	mock.ExpectQuery("UPDATE issues SET").WillReturnError(sql.ErrNoRows)

	if err := queryUpdateIssue(context.Background(), db, issue); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryDeleteIssue(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM issues WHERE id = \\$1").WithArgs("iss-del").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryDeleteIssue(context.Background(), db, "iss-del"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryDeleteIssue_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM issues WHERE id = \\$1").WithArgs("nonexistent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := queryDeleteIssue(context.Background(), db, "nonexistent"); err != sql.ErrNoRows {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestQueryListIssues(t *testing.T) {
	now := time.Now().UTC()

	for _, tc := range []struct {
		name      string
		filter    model.IssueFilter
		queryPat  string
		args      []driver.Value
		rows      int
		wantTotal int
	}{
		{
			name:      "NoFilter",
			filter:    model.IssueFilter{},
			queryPat:  "SELECT COUNT\\(\\*\\) OVER\\(\\) AS total_count, .+ FROM issues ORDER BY created_at ASC, id ASC",
			rows:      3,
			wantTotal: 3,
		},
		{
			name:      "FilterByStatus",
			filter:    model.IssueFilter{Status: []model.Status{model.StatusOpen, model.StatusClosed}},
			queryPat:  "SELECT .+ FROM issues WHERE status IN \\(\\$1, \\$2\\) ORDER BY",
			args:      []driver.Value{"OPEN", "CLOSED"},
			rows:      2,
			wantTotal: 2,
		},
		{
			name:      "FilterByAssignee",
			filter:    model.IssueFilter{Assignee: "ada"},
			queryPat:  "SELECT .+ FROM issues WHERE assignee = \\$1 ORDER BY",
			args:      []driver.Value{"ada"},
			rows:      1,
			wantTotal: 1,
		},
		{
			name:      "Search",
			filter:    model.IssueFilter{Search: "login"},
			queryPat:  "SELECT .+ FROM issues WHERE \\(title ILIKE .+ OR description ILIKE .+\\) ORDER BY",
			args:      []driver.Value{"login"},
			rows:      1,
			wantTotal: 1,
		},
		{
			name:      "Paginated",
			filter:    model.IssueFilter{Sort: "-updated_at", Limit: 10, Offset: 10},
			queryPat:  "SELECT .+ FROM issues ORDER BY updated_at DESC, id ASC LIMIT \\$1 OFFSET \\$2",
			args:      []driver.Value{10, 10},
			rows:      2,
			wantTotal: 12,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			rows := sqlmock.NewRows(issueWithTotalColumns)
			for i := 0; i < tc.rows; i++ {
				rows.AddRow(tc.wantTotal, "iss-"+string(rune('a'+i)), "t", "", "OPEN", nil, nil, now, now)
			}
			q := mock.ExpectQuery(tc.queryPat)
			if len(tc.args) > 0 {
				q = q.WithArgs(tc.args...)
			}
			q.WillReturnRows(rows)

			issues, total, err := queryListIssues(context.Background(), db, tc.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(issues) != tc.rows {
				t.Fatalf("expected %d issues, got %d", tc.rows, len(issues))
			}
			if total != tc.wantTotal {
				t.Fatalf("expected total=%d, got %d", tc.wantTotal, total)
			}
		})
	}
}

func TestQueryListIssues_PastLastPage(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) OVER\\(\\) .+ WHERE status IN \\(\\$1\\) .+ LIMIT \\$2 OFFSET \\$3").
		WithArgs("OPEN", 10, 50).
		WillReturnRows(sqlmock.NewRows(issueWithTotalColumns))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM issues WHERE status IN \\(\\$1\\)").
		WithArgs("OPEN").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	issues, total, err := queryListIssues(context.Background(), db, model.IssueFilter{
		Status: []model.Status{model.StatusOpen}, Limit: 10, Offset: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 0 || total != 7 {
		t.Fatalf("got %d issues total=%d, want 0/7", len(issues), total)
	}
}

func TestQueryListIssues_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	if _, _, err := queryListIssues(context.Background(), db, model.IssueFilter{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestQueryGetSummary(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FILTER .+ FROM issues").
		WillReturnRows(sqlmock.NewRows([]string{"open", "in_progress", "closed"}).AddRow(5, 3, 10))

	s, err := queryGetSummary(context.Background(), db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Open != 5 || s.InProgress != 3 || s.Closed != 10 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestQueryRecordEvent(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	event := &model.Event{
		Topic: "issues.issue.created", IssueID: "iss-a", Actor: "ada",
		Payload: json.RawMessage(`{"issue":{"id":"iss-a"}}`),
	}
	mock.ExpectQuery("INSERT INTO events").
		WithArgs("issues.issue.created", "iss-a", "ada", []byte(`{"issue":{"id":"iss-a"}}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	if err := queryRecordEvent(context.Background(), db, event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.ID != 1 {
		t.Fatalf("expected id=1, got %d", event.ID)
	}
}

func TestQueryGetEvents(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "topic", "issue_id", "actor", "payload", "created_at"}).
		AddRow(1, "issues.issue.created", "iss-a", "ada", []byte(`{}`), now).
		AddRow(2, "issues.issue.status_changed", "iss-a", nil, []byte(`{}`), now)
	mock.ExpectQuery("SELECT .+ FROM events WHERE issue_id = \\$1").WithArgs("iss-a").WillReturnRows(rows)

	evts, err := queryGetEvents(context.Background(), db, "iss-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(evts) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evts))
	}
	if evts[0].Actor != "ada" || evts[1].Actor != "" {
		t.Fatalf("got actors=%q %q", evts[0].Actor, evts[1].Actor)
	}
}

func TestRunInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewWithDB(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE issues SET").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectQuery("INSERT INTO events").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(9, now))
	mock.ExpectCommit()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		issue := &model.Issue{ID: "iss-a", Title: "t", Status: model.StatusClosed}
		if err := tx.UpdateIssue(context.Background(), issue); err != nil {
			return err
		}
		return tx.RecordEvent(context.Background(), &model.Event{Topic: "issues.issue.updated", IssueID: "iss-a"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunInTransaction_Rollback(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewWithDB(db)

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE issues SET").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		return tx.UpdateIssue(context.Background(), &model.Issue{ID: "missing", Title: "t", Status: model.StatusOpen})
	})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestRunInTransaction_GetIssueLocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewWithDB(db)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM issues WHERE id = \\$1 FOR UPDATE").WithArgs("iss-a").
		WillReturnRows(sqlmock.NewRows(issueRowColumns).AddRow("iss-a", "t", "", "OPEN", nil, nil, now, now))
	mock.ExpectQuery("UPDATE issues SET").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectCommit()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		issue, err := tx.GetIssue(context.Background(), "iss-a")
		if err != nil {
			return err
		}
		issue.Status = model.StatusClosed
		return tx.UpdateIssue(context.Background(), issue)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPostgresStore_GetIssueDoesNotLock(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewWithDB(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM issues WHERE id = \\$1$").WithArgs("iss-a").
		WillReturnRows(sqlmock.NewRows(issueRowColumns).AddRow("iss-a", "t", "", "OPEN", nil, nil, now, now))

	if _, err := s.GetIssue(context.Background(), "iss-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
