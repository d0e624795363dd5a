package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// MsgFetchFailed is the notification shown when the issue list cannot be loaded.
const MsgFetchFailed = "Could not fetch issues"

// PreviewAnchor is the offset from the pointer to the drag preview's
// top-left corner.
var PreviewAnchor = Point{X: -2, Y: -1}

// Column is one status lane of the board.
type Column struct {
	Status       model.Status
	Title        string
	Presentation Presentation
	Issues       []*model.Issue
}

// Count returns the number of issues in the column.
func (c Column) Count() int { return len(c.Issues) }

// Partition splits issues into one column per status in model.Statuses
// order, preserving input order within each column. Issues with an unknown
// status appear in no column.
func Partition(issues []*model.Issue) []Column {
	cols := make([]Column, len(model.Statuses))
	index := make(map[model.Status]int, len(model.Statuses))
	for i, s := range model.Statuses {
		cols[i] = Column{Status: s, Title: s.Label(), Presentation: Classify(s)}
		index[s] = i
	}
	for _, issue := range issues {
		if i, ok := index[issue.Status]; ok {
			cols[i].Issues = append(cols[i].Issues, issue)
		}
	}
	return cols
}

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	State   LoadState
	Err     error
	Columns []Column

	DraggedID string
	Hovered   model.Status
	HasHover  bool
	Preview   *model.Issue
	PreviewAt Point

	Notifications []Notification
}

// Board ties the collection, drag session and mutation client together.
type Board struct {
	coll      *Collection
	hub       *InputHub
	session   *Session
	mutations *MutationClient
	notifier  *Notifier
	logger    *slog.Logger

	outbox []*Mutation
	closed bool
}

// Option configures a Board.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *slog.Logger
}

// WithClock overrides the notification clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger for mutation and fetch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New returns a board that persists through updater and resolves drop
// targets with hit.
func New(updater StatusUpdater, hit HitTester, opts ...Option) *Board {
	o := options{now: time.Now, logger: slog.Default()}
	for _, fn := range opts {
		fn(&o)
	}
	b := &Board{
		coll:     NewCollection(),
		hub:      NewInputHub(),
		notifier: NewNotifier(o.now),
		logger:   o.logger,
	}
	b.mutations = NewMutationClient(b.coll, updater, b.notifier, o.logger)
	b.session = NewSession(b.hub, hit, b.drop, b.coll.Status)
	return b
}

func (b *Board) drop(d Drop) {
	b.logger.Debug("issue dropped", "issue", d.IssueID, "from", d.From, "to", d.To)
	b.enqueue(b.mutations.UpdateStatus(d.IssueID, d.To))
}

func (b *Board) enqueue(m *Mutation) {
	if m != nil {
		b.outbox = append(b.outbox, m)
	}
}

// BeginFetch returns the sequence number to tag the next fetch with.
func (b *Board) BeginFetch() uint64 { return b.coll.BeginFetch() }

// ApplyFetch installs a fetch response; stale responses are ignored.
func (b *Board) ApplyFetch(seq uint64, issues []*model.Issue) bool {
	if b.closed {
		return false
	}
	return b.coll.ApplyFetch(seq, issues)
}

// FailFetch records a fetch failure and raises an error notification.
func (b *Board) FailFetch(seq uint64, err error) bool {
	if b.closed || !b.coll.FailFetch(seq, err) {
		return false
	}
	b.logger.Warn("issue fetch failed", "err", err)
	b.notifier.Error(MsgFetchFailed)
	return true
}

// BeginDrag starts dragging issue id. It returns false when the id is
// unknown, a drag is already active or the board is closed.
func (b *Board) BeginDrag(id string, ev PointerEvent) bool {
	if b.closed {
		return false
	}
	issue := b.coll.Get(id)
	if issue == nil {
		return false
	}
	return b.session.Begin(issue, ev)
}

// Dispatch routes a pointer event to the active session, if any.
func (b *Board) Dispatch(ev PointerEvent) { b.hub.Dispatch(ev) }

// Dragging reports whether a drag is active.
func (b *Board) Dragging() bool { return b.session.State() == Dragging }

// Cancel aborts the active drag without changing anything.
func (b *Board) Cancel() { b.session.Cancel() }

// Move requests a status change outside of dragging (keyboard moves).
func (b *Board) Move(id string, to model.Status) {
	if b.closed {
		return
	}
	b.enqueue(b.mutations.UpdateStatus(id, to))
}

// TakeMutations returns and clears the mutations awaiting execution.
func (b *Board) TakeMutations() []*Mutation {
	out := b.outbox
	b.outbox = nil
	return out
}

// Execute performs m; safe to call from any goroutine.
func (b *Board) Execute(ctx context.Context, m *Mutation) MutationResult {
	return b.mutations.Execute(ctx, m)
}

// Resolve settles a mutation result. Any follow-up mutation is added to
// the outbox. It reports whether the issue list should be refetched.
func (b *Board) Resolve(res MutationResult) bool {
	if b.closed {
		return false
	}
	next, refetch := b.mutations.Resolve(res)
	b.enqueue(next)
	return refetch
}

// Issue returns the local copy of id, or nil.
func (b *Board) Issue(id string) *model.Issue { return b.coll.Get(id) }

// Listeners returns the number of live pointer subscriptions.
func (b *Board) Listeners() int { return b.hub.Len() }

// Dismiss hides a notification before it expires.
func (b *Board) Dismiss(id uint64) { b.notifier.Dismiss(id) }

// Snapshot returns the current render state.
func (b *Board) Snapshot() Snapshot {
	snap := Snapshot{
		State:         b.coll.State(),
		Err:           b.coll.Err(),
		Columns:       Partition(b.coll.Issues()),
		Notifications: b.notifier.Active(),
	}
	if dragged := b.session.Dragged(); dragged != nil {
		preview := dragged
		if cur := b.coll.Get(dragged.ID); cur != nil {
			preview = cur
		}
		snap.DraggedID = dragged.ID
		snap.Preview = preview
		snap.PreviewAt = b.session.Position().Add(PreviewAnchor)
		snap.Hovered, snap.HasHover = b.session.Hovered()
	}
	return snap
}

// Close cancels any drag and stops accepting input. Pending mutations are
// dropped from the outbox.
func (b *Board) Close() {
	if b.closed {
		return
	}
	b.session.Cancel()
	b.outbox = nil
	b.closed = true
}
