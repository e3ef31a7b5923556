package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLayout serves fixed boxes; handles missing from the map are detached.
type fakeLayout map[Handle]Rect

func (f fakeLayout) BoundingBox(h Handle) (Rect, bool) {
	r, ok := f[h]
	return r, ok
}

func TestObserveFirstReadingIsChanged(t *testing.T) {
	layout := fakeLayout{1: rect(0, 0, 10, 10), 2: rect(50, 0, 60, 10)}
	a := &Arrow{From: 1, To: 2}

	changed, hidden := a.observe(layout)
	assert.True(t, changed)
	assert.False(t, hidden)
	require.NotNil(t, a.observed)
	assert.Equal(t, edges{0, 10, 10, 0, 0, 60, 10, 50}, *a.observed)
}

func TestObserveDetectsMovement(t *testing.T) {
	layout := fakeLayout{1: rect(0, 0, 10, 10), 2: rect(50, 0, 60, 10)}
	a := &Arrow{From: 1, To: 2}
	a.observe(layout)

	changed, _ := a.observe(layout)
	assert.False(t, changed)

	layout[2] = rect(50, 0.5, 60, 10.5)
	changed, _ = a.observe(layout)
	assert.True(t, changed)
	assert.Equal(t, rect(50, 0.5, 60, 10.5), a.observed.to())

	changed, _ = a.observe(layout)
	assert.False(t, changed)
}

func TestObserveZeroBoxIsHidden(t *testing.T) {
	layout := fakeLayout{1: rect(0, 0, 10, 10), 2: {}}
	a := &Arrow{From: 1, To: 2}

	changed, hidden := a.observe(layout)
	assert.True(t, changed)
	assert.True(t, hidden)
	assert.True(t, a.Hidden())
}

func TestObserveBoxTouchingOriginIsNotHidden(t *testing.T) {
	layout := fakeLayout{1: rect(0, 0, 10, 10), 2: rect(0, 0, 0, 5)}
	a := &Arrow{From: 1, To: 2}

	_, hidden := a.observe(layout)
	assert.False(t, hidden)
}

func TestObserveDetachedEndpointIsHidden(t *testing.T) {
	layout := fakeLayout{1: rect(0, 0, 10, 10), 2: rect(50, 0, 60, 10)}
	a := &Arrow{From: 1, To: 2}
	a.observe(layout)

	delete(layout, 1)
	changed, hidden := a.observe(layout)
	assert.True(t, changed)
	assert.True(t, hidden)
	assert.Equal(t, Rect{}, a.observed.from())

	// Reappearing is a change again.
	layout[1] = rect(0, 0, 10, 10)
	changed, hidden = a.observe(layout)
	assert.True(t, changed)
	assert.False(t, hidden)
}
