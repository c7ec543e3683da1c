package motion

import (
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

// quarter second segments keep every step exact in float32.
const segment = 250 * time.Millisecond

var route = []geometry.Vector2D{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 40}, {X: -20, Y: 40}}

func TestNewScript_Invalid(t *testing.T) {
	_, err := NewScript(nil, segment, ease.Linear)
	assert.ErrorIs(t, err, ErrEmptyScript)

	_, err = NewScript(route, 0, ease.Linear)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestScript_OneWaypointPerSegment(t *testing.T) {
	s, err := NewScript(route, segment, nil)
	require.NoError(t, err)
	assert.Equal(t, 3*segment, s.Duration())
	assert.Equal(t, route[0], s.Position())

	for k := 1; k < len(route); k++ {
		pos, done := s.Update(segment.Seconds())
		assert.Equal(t, route[k], pos, "segment %d", k)
		assert.Equal(t, k == len(route)-1, done)
	}
	assert.True(t, s.Done())

	pos, done := s.Update(1)
	assert.True(t, done)
	assert.Equal(t, route[len(route)-1], pos)
}

func TestScript_Interpolates(t *testing.T) {
	s, err := NewScript(route, segment, ease.Linear)
	require.NoError(t, err)

	pos, done := s.Update(0.125)
	assert.False(t, done)
	assert.InDelta(t, 50, pos.X, 1e-3)
	assert.InDelta(t, 0, pos.Y, 1e-3)
	assert.Equal(t, 1, s.Waypoint())

	// crossing a waypoint carries the leftover into the next move
	pos, _ = s.Update(0.25)
	assert.Equal(t, 2, s.Waypoint())
	assert.InDelta(t, 100, pos.X, 1e-3)
	assert.InDelta(t, 20, pos.Y, 1e-3)
}

func TestScript_LongFrameFinishes(t *testing.T) {
	s, err := NewScript(route, segment, ease.InOutQuad)
	require.NoError(t, err)

	pos, done := s.Update(10)
	assert.True(t, done)
	assert.Equal(t, route[3], pos)
}

func TestScript_SinglePointIsDone(t *testing.T) {
	s, err := NewScript(route[:1], segment, nil)
	require.NoError(t, err)
	assert.True(t, s.Done())
	assert.Zero(t, s.Duration())
	pos, done := s.Update(0.1)
	assert.True(t, done)
	assert.Equal(t, route[0], pos)
}

func TestScript_IgnoresBadDt(t *testing.T) {
	s, err := NewScript(route, segment, nil)
	require.NoError(t, err)
	s.Update(-1)
	s.Update(0)
	assert.Equal(t, route[0], s.Position())
	assert.Equal(t, 1, s.Waypoint())
}

func TestEasing(t *testing.T) {
	fn, err := Easing("")
	require.NoError(t, err)
	assert.NotNil(t, fn)

	fn, err = Easing("outCubic")
	require.NoError(t, err)
	assert.NotNil(t, fn)

	_, err = Easing("bounce-bounce")
	assert.ErrorIs(t, err, ErrUnknownEasing)
}

func TestMover_IgnoresRequestsWhileMoving(t *testing.T) {
	var m Mover
	_, ok := m.Update(0.1)
	assert.False(t, ok, "idle")

	first, err := NewScript(route[:2], segment, nil)
	require.NoError(t, err)
	second, err := NewScript([]geometry.Vector2D{{X: 0, Y: 0}, {X: 0, Y: 500}}, segment, nil)
	require.NoError(t, err)

	assert.True(t, m.Start(first))
	assert.True(t, m.Moving())
	assert.False(t, m.Start(second), "already moving")
	assert.False(t, m.Start(nil))

	pos, ok := m.Update(0.125)
	assert.True(t, ok)
	assert.InDelta(t, 50, pos.X, 1e-3)

	pos, ok = m.Update(0.125)
	assert.True(t, ok, "the finishing frame still reports the final point")
	assert.Equal(t, route[1], pos)
	assert.False(t, m.Moving())

	assert.True(t, m.Start(second))
	m.Stop()
	assert.False(t, m.Moving())
}
