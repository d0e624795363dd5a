package board

import (
	"context"
	"log/slog"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

// Notification messages shown after a status change settles.
const (
	MsgStatusUpdated      = "Issue status updated"
	MsgStatusUpdateFailed = "Could not update issue status"
)

// StatusUpdater persists a status change and returns the stored issue.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Issue, error)
}

// Mutation is one requested status change. From is the status to roll
// back to if the change fails.
type Mutation struct {
	IssueID string
	From    model.Status
	To      model.Status
}

// MutationResult is the outcome of executing a Mutation.
type MutationResult struct {
	Mutation *Mutation
	Issue    *model.Issue
	Err      error
}

// MutationClient applies status changes optimistically and keeps at most
// one request in flight per issue. Later changes for the same issue wait
// in a queue and are dispatched in order as earlier ones settle.
type MutationClient struct {
	coll     *Collection
	updater  StatusUpdater
	notifier *Notifier
	logger   *slog.Logger

	inflight map[string]*Mutation
	queued   map[string][]*Mutation
}

// NewMutationClient returns a client that updates coll locally and persists
// through updater.
func NewMutationClient(coll *Collection, updater StatusUpdater, notifier *Notifier, logger *slog.Logger) *MutationClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &MutationClient{
		coll:     coll,
		updater:  updater,
		notifier: notifier,
		logger:   logger,
		inflight: make(map[string]*Mutation),
		queued:   make(map[string][]*Mutation),
	}
}

// UpdateStatus moves issue id to status to in the local collection and
// returns the mutation the caller must Execute. It returns nil when the
// issue is unknown, already shows to, or when the change was queued behind
// an in-flight request for the same issue.
func (c *MutationClient) UpdateStatus(id string, to model.Status) *Mutation {
	cur, ok := c.coll.Status(id)
	if !ok || cur == to {
		return nil
	}
	m := &Mutation{IssueID: id, From: cur, To: to}
	c.coll.SetStatus(id, to)
	c.coll.SetPending(id, to)

	if _, busy := c.inflight[id]; busy {
		c.queued[id] = append(c.queued[id], m)
		c.logger.Debug("status change queued", "issue", id, "to", to, "depth", len(c.queued[id]))
		return nil
	}
	c.inflight[id] = m
	return m
}

// Execute sends m to the server. It reads no local state and may run on
// any goroutine.
func (c *MutationClient) Execute(ctx context.Context, m *Mutation) MutationResult {
	issue, err := c.updater.UpdateStatus(ctx, m.IssueID, m.To)
	return MutationResult{Mutation: m, Issue: issue, Err: err}
}

// Resolve settles an executed mutation. On success it merges the stored
// issue and asks for a refetch. On failure it rolls the local status back
// when nothing newer is queued, and never retries. It returns the next
// queued mutation for the same issue, which the caller must Execute.
func (c *MutationClient) Resolve(res MutationResult) (next *Mutation, refetch bool) {
	m := res.Mutation
	if m == nil || c.inflight[m.IssueID] != m {
		return nil, false
	}
	id := m.IssueID
	delete(c.inflight, id)

	queue := c.queued[id]
	if len(queue) > 0 {
		next = queue[0]
		if len(queue) == 1 {
			delete(c.queued, id)
		} else {
			c.queued[id] = queue[1:]
		}
		c.inflight[id] = next
	}

	if res.Err != nil {
		c.logger.Warn("status change failed", "issue", id, "from", m.From, "to", m.To, "err", res.Err)
		if next != nil {
			next.From = m.From
		} else {
			c.coll.ClearPending(id)
			if cur, ok := c.coll.Status(id); ok && cur == m.To {
				c.coll.SetStatus(id, m.From)
			}
		}
		c.notifier.Error(MsgStatusUpdateFailed)
		return next, false
	}

	if next == nil {
		c.coll.ClearPending(id)
	}
	c.coll.Merge(res.Issue)
	c.notifier.Success(MsgStatusUpdated)
	return next, true
}

// Busy reports whether id has a mutation in flight.
func (c *MutationClient) Busy(id string) bool {
	_, ok := c.inflight[id]
	return ok
}

// InFlight returns the number of issues with a request in flight.
func (c *MutationClient) InFlight() int { return len(c.inflight) }
