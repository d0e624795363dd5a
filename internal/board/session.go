package board

import "github.com/alfredjeanlab/issueboard/internal/model"

// SessionState is the drag state machine's state.
type SessionState int

const (
	Idle SessionState = iota
	Dragging
)

func (s SessionState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Drop is a completed drag that changes an issue's status.
type Drop struct {
	IssueID string
	From    model.Status
	To      model.Status
}

// DropHandler receives drops. It is called at most once per session.
type DropHandler func(Drop)

// StatusLookup returns the current local status of an issue.
type StatusLookup func(id string) (model.Status, bool)

// Session is the drag state machine. At most one drag is active at a time.
type Session struct {
	hub      *InputHub
	resolver *Resolver
	onDrop   DropHandler
	status   StatusLookup

	tracker  Tracker
	sub      *Subscription
	hovered  model.Status
	hasHover bool
}

// NewSession wires a session to the hub it listens on while dragging, the
// hit tester used to resolve targets, and the drop handler. status may be
// nil, in which case the dragged issue's own status is used.
func NewSession(hub *InputHub, hit HitTester, onDrop DropHandler, status StatusLookup) *Session {
	return &Session{
		hub:      hub,
		resolver: NewResolver(hit),
		onDrop:   onDrop,
		status:   status,
	}
}

// State returns Dragging while a drag is active.
func (s *Session) State() SessionState {
	if s.tracker.Dragging() {
		return Dragging
	}
	return Idle
}

// Begin starts dragging issue. It is ignored, returning false, while a drag
// is already active or when ev carries no position.
func (s *Session) Begin(issue *model.Issue, ev PointerEvent) bool {
	if s.tracker.Dragging() {
		return false
	}
	if !s.tracker.Begin(issue, ev) {
		return false
	}
	s.sub = s.hub.Acquire(s.handle)
	s.hovered, s.hasHover = s.resolver.Resolve(s.tracker.Position())
	return true
}

func (s *Session) handle(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		s.Move(ev)
	case PointerUp:
		s.Release(ev)
	}
}

// Move follows the pointer and updates the hovered column.
func (s *Session) Move(ev PointerEvent) {
	if !s.tracker.Dragging() {
		return
	}
	s.tracker.Move(ev)
	s.hovered, s.hasHover = s.resolver.Resolve(s.tracker.Position())
}

// Release ends the drag. When the final target exists and differs from the
// issue's current status, exactly one Drop is handed to the drop handler.
func (s *Session) Release(ev PointerEvent) {
	if !s.tracker.Dragging() {
		return
	}
	p, ok := ev.Position()
	if !ok {
		p = s.tracker.Position()
	}
	target, found := s.resolver.Final(p)
	issue := s.tracker.Issue()
	from := s.currentStatus(issue)
	s.end()

	if found && target != from && s.onDrop != nil {
		s.onDrop(Drop{IssueID: issue.ID, From: from, To: target})
	}
}

// Cancel ends the drag without a drop.
func (s *Session) Cancel() {
	if !s.tracker.Dragging() {
		return
	}
	s.end()
}

func (s *Session) currentStatus(issue *model.Issue) model.Status {
	if s.status != nil {
		if st, ok := s.status(issue.ID); ok {
			return st
		}
	}
	return issue.Status
}

func (s *Session) end() {
	s.sub.Release()
	s.sub = nil
	s.tracker.Reset()
	s.resolver.Reset()
	s.hovered, s.hasHover = "", false
}

// Dragged returns the issue being dragged, or nil.
func (s *Session) Dragged() *model.Issue { return s.tracker.Issue() }

// Hovered returns the column currently under the pointer, if any.
func (s *Session) Hovered() (model.Status, bool) { return s.hovered, s.hasHover }

// Position returns the last known pointer position.
func (s *Session) Position() Point { return s.tracker.Position() }
