package board

import "github.com/alfredjeanlab/issueboard/internal/model"

// PointerKind is the phase of a pointer interaction.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return "unknown"
}

// PointerSource distinguishes mouse input from touch input.
type PointerSource int

const (
	SourceMouse PointerSource = iota
	SourceTouch
)

// Point is a position in screen cells.
type Point struct {
	X, Y int
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// PointerEvent is one mouse or touch event. Mouse events carry X/Y; touch
// events carry the active touch list and, on release, the changed touches.
type PointerEvent struct {
	Kind           PointerKind
	Source         PointerSource
	X, Y           int
	Touches        []Point
	ChangedTouches []Point

	// PreventDefault, when set, suppresses the host's default handling
	// (text selection, scrolling).
	PreventDefault func()
}

// Position returns the coordinates the event refers to. Touch releases use
// the first changed touch since the lifted finger is no longer in Touches.
// It reports false for a touch event with an empty list.
func (e PointerEvent) Position() (Point, bool) {
	if e.Source == SourceMouse {
		return Point{X: e.X, Y: e.Y}, true
	}
	list := e.Touches
	if e.Kind == PointerUp {
		list = e.ChangedTouches
	}
	if len(list) == 0 {
		return Point{}, false
	}
	return list[0], true
}

// Tracker follows the pointer while an issue is being dragged.
type Tracker struct {
	issue    *model.Issue
	start    Point
	pos      Point
	dragging bool
}

// Begin records the issue and the start coordinates, suppresses the
// default gesture handling and marks the tracker dragging. It returns
// false, changing nothing, when the event has no usable position.
func (t *Tracker) Begin(issue *model.Issue, ev PointerEvent) bool {
	p, ok := ev.Position()
	if !ok || issue == nil {
		return false
	}
	if ev.PreventDefault != nil {
		ev.PreventDefault()
	}
	t.issue = issue
	t.start = p
	t.pos = p
	t.dragging = true
	return true
}

// Move updates the current coordinates. It is a no-op when not dragging.
func (t *Tracker) Move(ev PointerEvent) {
	if !t.dragging {
		return
	}
	if p, ok := ev.Position(); ok {
		t.pos = p
	}
}

// Reset forgets the issue and stops dragging.
func (t *Tracker) Reset() { *t = Tracker{} }

func (t *Tracker) Dragging() bool      { return t.dragging }
func (t *Tracker) Issue() *model.Issue { return t.issue }
func (t *Tracker) Start() Point        { return t.start }
func (t *Tracker) Position() Point     { return t.pos }
