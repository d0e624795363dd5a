package board

import "github.com/alfredjeanlab/issueboard/internal/model"

// LoadState is the collection's fetch state.
type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "loading"
}

// Collection is the board's local copy of the issue list. Fetch responses
// are tagged with sequence numbers and only the newest one is applied.
type Collection struct {
	issues []*model.Issue
	byID   map[string]*model.Issue
	state  LoadState
	err    error
	seq    uint64

	// pending holds optimistic targets that the server has not confirmed.
	pending map[string]model.Status
}

// NewCollection returns an empty collection in the loading state.
func NewCollection() *Collection {
	return &Collection{
		byID:    make(map[string]*model.Issue),
		pending: make(map[string]model.Status),
	}
}

// BeginFetch issues a new sequence number for an outgoing fetch.
func (c *Collection) BeginFetch() uint64 {
	c.seq++
	return c.seq
}

// ApplyFetch replaces the list with the response for seq. Responses older
// than the latest BeginFetch are dropped and ApplyFetch returns false.
// Pending optimistic targets are re-applied over the fresh data.
func (c *Collection) ApplyFetch(seq uint64, issues []*model.Issue) bool {
	if seq != c.seq {
		return false
	}
	c.issues = make([]*model.Issue, 0, len(issues))
	c.byID = make(map[string]*model.Issue, len(issues))
	for _, in := range issues {
		if in == nil {
			continue
		}
		issue := in.Clone()
		if to, ok := c.pending[issue.ID]; ok {
			issue.Status = to
		}
		c.issues = append(c.issues, issue)
		c.byID[issue.ID] = issue
	}
	c.state = StateReady
	c.err = nil
	return true
}

// FailFetch records a failed fetch for seq. Stale failures are dropped.
func (c *Collection) FailFetch(seq uint64, err error) bool {
	if seq != c.seq {
		return false
	}
	c.state = StateFailed
	c.err = err
	return true
}

func (c *Collection) State() LoadState { return c.state }
func (c *Collection) Err() error       { return c.err }

// Issues returns the issues in fetch order. The slice must not be modified.
func (c *Collection) Issues() []*model.Issue { return c.issues }

// Get returns the issue with id, or nil.
func (c *Collection) Get(id string) *model.Issue { return c.byID[id] }

// Status returns the local status of id.
func (c *Collection) Status(id string) (model.Status, bool) {
	if issue, ok := c.byID[id]; ok {
		return issue.Status, true
	}
	return "", false
}

// SetStatus changes the local status of id and reports whether it exists.
func (c *Collection) SetStatus(id string, s model.Status) bool {
	issue, ok := c.byID[id]
	if !ok {
		return false
	}
	issue.Status = s
	return true
}

// Merge replaces the local copy of an issue with an authoritative one,
// keeping a pending optimistic status if one is set. Unknown issues are
// ignored.
func (c *Collection) Merge(in *model.Issue) {
	if in == nil {
		return
	}
	issue, ok := c.byID[in.ID]
	if !ok {
		return
	}
	*issue = *in
	if to, ok := c.pending[in.ID]; ok {
		issue.Status = to
	}
}

// SetPending marks to as the unconfirmed target for id.
func (c *Collection) SetPending(id string, to model.Status) { c.pending[id] = to }

// ClearPending removes the unconfirmed target for id.
func (c *Collection) ClearPending(id string) { delete(c.pending, id) }

// Pending reports whether id has an unconfirmed status change.
func (c *Collection) Pending(id string) bool {
	_, ok := c.pending[id]
	return ok
}
