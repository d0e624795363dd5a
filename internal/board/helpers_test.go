package board

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// columnGrid lays the three columns side by side, each 10 cells wide and
// 20 tall, with a card region stacked on top inside each column.
type columnGrid struct{}

func (columnGrid) RegionsAt(p Point) []Region {
	var out []Region
	for i, s := range model.Statuses {
		col := Rect{X: i * 10, Y: 0, W: 10, H: 20}
		if !col.Contains(p) {
			continue
		}
		card := Rect{X: col.X + 1, Y: 1, W: 8, H: 3}
		if card.Contains(p) {
			out = append(out, Region{Bounds: card})
		}
		out = append(out, Region{Bounds: col, Column: s, Tagged: true})
	}
	return out
}

// columnCenter returns a point inside the column for s.
func columnCenter(s model.Status) Point {
	for i, st := range model.Statuses {
		if st == s {
			return Point{X: i*10 + 5, Y: 10}
		}
	}
	return Point{X: -1, Y: -1}
}

var outside = Point{X: 100, Y: 100}

func mouse(kind PointerKind, p Point) PointerEvent {
	return PointerEvent{Kind: kind, Source: SourceMouse, X: p.X, Y: p.Y}
}

// fakeUpdater answers UpdateStatus from a scripted error list; every call
// is recorded.
type fakeUpdater struct {
	calls []Mutation
	fail  map[model.Status]bool
}

var errServer = errors.New("server error")

func (f *fakeUpdater) UpdateStatus(_ context.Context, id string, status model.Status) (*model.Issue, error) {
	f.calls = append(f.calls, Mutation{IssueID: id, To: status})
	if f.fail[status] {
		return nil, errServer
	}
	return &model.Issue{ID: id, Title: "stored " + id, Status: status}, nil
}

func sampleIssues() []*model.Issue {
	return []*model.Issue{
		{ID: "1", Title: "A", Status: model.StatusOpen},
		{ID: "2", Title: "B", Status: model.StatusInProgress},
		{ID: "3", Title: "C", Status: model.StatusClosed},
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBoard(u StatusUpdater) (*Board, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New(u, columnGrid{},
		WithClock(clock.Now),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return b, clock
}

func loadedBoard(u StatusUpdater) (*Board, *fakeClock) {
	b, clock := newTestBoard(u)
	b.ApplyFetch(b.BeginFetch(), sampleIssues())
	return b, clock
}

// drag performs a full down/move/up gesture for id through the board.
func drag(b *Board, id string, from, to Point) bool {
	if !b.BeginDrag(id, mouse(PointerDown, from)) {
		return false
	}
	b.Dispatch(mouse(PointerMove, to))
	b.Dispatch(mouse(PointerUp, to))
	return true
}

// settle executes and resolves every pending mutation until the outbox is empty.
func settle(b *Board) (refetches int) {
	for {
		ms := b.TakeMutations()
		if len(ms) == 0 {
			return refetches
		}
		for _, m := range ms {
			if b.Resolve(b.Execute(context.Background(), m)) {
				refetches++
			}
		}
	}
}

func statusOf(b *Board, id string) model.Status {
	if issue := b.Issue(id); issue != nil {
		return issue.Status
	}
	return ""
}

func columnIDs(c Column) []string {
	ids := make([]string, 0, len(c.Issues))
	for _, issue := range c.Issues {
		ids = append(ids, issue.ID)
	}
	return ids
}
