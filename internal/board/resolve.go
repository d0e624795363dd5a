package board

import "github.com/alfredjeanlab/issueboard/internal/model"

// Rect is a cell rectangle; X/Y is the top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Region is one hit-testable element. Column containers are Tagged with
// the status they accept.
type Region struct {
	Bounds Rect
	Column model.Status
	Tagged bool
}

// HitTester lists the regions under a point, topmost first.
type HitTester interface {
	RegionsAt(p Point) []Region
}

// Resolver maps pointer positions to drop-target columns and remembers the
// last column it found for the duration of one drag session.
type Resolver struct {
	hit     HitTester
	last    model.Status
	hasLast bool
}

// NewResolver returns a resolver backed by hit.
func NewResolver(hit HitTester) *Resolver {
	return &Resolver{hit: hit}
}

func (r *Resolver) lookup(p Point) (model.Status, bool) {
	if r.hit == nil {
		return "", false
	}
	for _, reg := range r.hit.RegionsAt(p) {
		if reg.Tagged {
			return reg.Column, true
		}
	}
	return "", false
}

// Resolve returns the column under p. A hit is remembered as the last known
// target; a miss leaves the previous hit in place.
func (r *Resolver) Resolve(p Point) (model.Status, bool) {
	s, ok := r.lookup(p)
	if ok {
		r.last, r.hasLast = s, true
	}
	return s, ok
}

// Final returns the column under p, falling back to the last recorded
// target when nothing is under p.
func (r *Resolver) Final(p Point) (model.Status, bool) {
	if s, ok := r.lookup(p); ok {
		return s, true
	}
	return r.last, r.hasLast
}

// Reset clears the remembered target.
func (r *Resolver) Reset() {
	r.last, r.hasLast = "", false
}
