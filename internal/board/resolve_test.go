package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alfredjeanlab/issueboard/internal/model"
)

func TestResolverResolve(t *testing.T) {
	r := NewResolver(columnGrid{})

	// A card sits above the column; the column is still found.
	s, ok := r.Resolve(Point{X: 2, Y: 2})
	assert.True(t, ok)
	assert.Equal(t, model.StatusOpen, s)

	s, ok = r.Resolve(columnCenter(model.StatusClosed))
	assert.True(t, ok)
	assert.Equal(t, model.StatusClosed, s)

	_, ok = r.Resolve(outside)
	assert.False(t, ok)
}

func TestResolverFinalFallsBackToLast(t *testing.T) {
	r := NewResolver(columnGrid{})
	r.Resolve(columnCenter(model.StatusInProgress))

	s, ok := r.Final(outside)
	assert.True(t, ok)
	assert.Equal(t, model.StatusInProgress, s)

	// Live result wins over memory.
	s, ok = r.Final(columnCenter(model.StatusClosed))
	assert.True(t, ok)
	assert.Equal(t, model.StatusClosed, s)
}

func TestResolverMissKeepsLastHit(t *testing.T) {
	r := NewResolver(columnGrid{})
	r.Resolve(columnCenter(model.StatusInProgress))

	_, ok := r.Resolve(outside)
	assert.False(t, ok, "live result is still a miss")

	s, ok := r.Final(outside)
	assert.True(t, ok, "a miss does not erase the last column")
	assert.Equal(t, model.StatusInProgress, s)
}

func TestResolverMemoryFollowsLastHit(t *testing.T) {
	r := NewResolver(columnGrid{})
	r.Resolve(columnCenter(model.StatusInProgress))
	r.Resolve(outside)
	r.Resolve(columnCenter(model.StatusClosed))
	r.Resolve(outside)

	s, ok := r.Final(outside)
	assert.True(t, ok)
	assert.Equal(t, model.StatusClosed, s)
}

func TestResolverFinalWithoutAnyHit(t *testing.T) {
	r := NewResolver(columnGrid{})
	r.Resolve(outside)

	_, ok := r.Final(outside)
	assert.False(t, ok)
}

func TestResolverReset(t *testing.T) {
	r := NewResolver(columnGrid{})
	r.Resolve(columnCenter(model.StatusClosed))
	r.Reset()

	_, ok := r.Final(outside)
	assert.False(t, ok)
}

func TestResolverNilHitTester(t *testing.T) {
	r := NewResolver(nil)
	_, ok := r.Resolve(Point{})
	assert.False(t, ok)
}
