package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// issueColumns is the column list used for SELECT statements on the issues table.
const issueColumns = `id, title, description, status, assignee, assignee_image, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateIssue(ctx context.Context, db executor, i *model.Issue) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO issues (
			id, title, description, status, assignee, assignee_image, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		i.ID,
		i.Title,
		i.Description,
		string(i.Status),
		nullString(i.Assignee),
		nullString(i.AssigneeImage),
		i.CreatedAt,
		i.UpdatedAt,
	)
	return err
}

func queryGetIssue(ctx context.Context, db executor, id string) (*model.Issue, error) {
	row := db.QueryRowContext(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	return scanIssue(row)
}

// queryGetIssueForUpdate reads an issue and holds its row lock until the
// surrounding transaction ends.
func queryGetIssueForUpdate(ctx context.Context, db executor, id string) (*model.Issue, error) {
	row := db.QueryRowContext(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1 FOR UPDATE`, id)
	return scanIssue(row)
}

func queryListIssues(ctx context.Context, db executor, filter model.IssueFilter) ([]*model.Issue, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.Assignee != "" {
		whereClauses = append(whereClauses, "assignee = "+nextArg())
		args = append(args, filter.Assignee)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(title ILIKE '%%' || %s || '%%' OR description ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + issueColumns + " FROM issues" + whereSQL + " ORDER BY " + parseSortClause(filter.Sort)

	if filter.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var issues []*model.Issue
	var total int
	for rows.Next() {
		i, t, err := scanIssueWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan issues: %w", err)
		}
		total = t
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan issues: %w", err)
	}

	// An offset past the end yields no rows, so the window count is lost.
	if len(issues) == 0 && filter.Offset > 0 {
		countArgs := args[:len(args)-countPagingArgs(filter)]
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM issues"+whereSQL, countArgs...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count issues: %w", err)
		}
	}

	return issues, total, nil
}

func countPagingArgs(filter model.IssueFilter) int {
	n := 0
	if filter.Limit > 0 {
		n++
	}
	if filter.Offset > 0 {
		n++
	}
	return n
}

// queryUpdateIssue writes every mutable column and refreshes UpdatedAt.
func queryUpdateIssue(ctx context.Context, db executor, i *model.Issue) error {
	return db.QueryRowContext(ctx, `
		UPDATE issues SET
			title = $2,
			description = $3,
			status = $4,
			assignee = $5,
			assignee_image = $6,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		i.ID,
		i.Title,
		i.Description,
		string(i.Status),
		nullString(i.Assignee),
		nullString(i.AssigneeImage),
	).Scan(&i.UpdatedAt)
}

func queryDeleteIssue(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryGetSummary(ctx context.Context, db executor) (*model.Summary, error) {
	var s model.Summary
	err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'OPEN'),
			COUNT(*) FILTER (WHERE status = 'IN_PROGRESS'),
			COUNT(*) FILTER (WHERE status = 'CLOSED')
		FROM issues`,
	).Scan(&s.Open, &s.InProgress, &s.Closed)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return &s, nil
}

func queryRecordEvent(ctx context.Context, db executor, e *model.Event) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO events (topic, issue_id, actor, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		e.Topic, e.IssueID, nullString(e.Actor), jsonbBytes(e.Payload),
	).Scan(&e.ID, &e.CreatedAt)
}

func queryGetEvents(ctx context.Context, db executor, issueID string) ([]*model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, topic, issue_id, actor, payload, created_at
		FROM events
		WHERE issue_id = $1
		ORDER BY created_at ASC, id ASC`,
		issueID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// parseSortClause maps a user sort key onto a whitelisted ORDER BY clause.
// id is always the final tiebreaker so pagination is stable.
func parseSortClause(sort string) string {
	const def = "created_at ASC, id ASC"
	if sort == "" {
		return def
	}
	desc := strings.HasPrefix(sort, "-")
	col := strings.TrimPrefix(sort, "-")
	allowed := map[string]bool{
		"created_at": true, "updated_at": true, "title": true, "status": true,
	}
	if !allowed[col] {
		return def
	}
	if desc {
		return col + " DESC, id ASC"
	}
	return col + " ASC, id ASC"
}
