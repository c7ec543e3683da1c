package steering

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAgent(t *testing.T, pos geometry.Vector2D, p Params) *Agent {
	t.Helper()
	a, err := NewAgent(pos, p)
	require.NoError(t, err)
	return a
}

func TestNewAgent_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"negative speed", Params{MaxSpeed: -1, MaxAcceleration: 1, Mass: 1}},
		{"negative acceleration", Params{MaxSpeed: 1, MaxAcceleration: -1, Mass: 1}},
		{"NaN mass", Params{MaxSpeed: 1, MaxAcceleration: 1, Mass: math.NaN()}},
		{"zero mass", Params{MaxSpeed: 1, MaxAcceleration: 1}},
		{"infinite speed", Params{MaxSpeed: math.Inf(1), MaxAcceleration: 1, Mass: 1}},
		{"negative radius", Params{MaxSpeed: 1, MaxAcceleration: 1, Mass: 1, Radius: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAgent(geometry.Vector2D{}, tt.params)
			assert.ErrorIs(t, err, ErrInvalidParams)
			assert.Nil(t, a)
		})
	}

	_, err := NewAgent(geometry.NewVector(math.NaN(), 0), DefaultParams())
	assert.ErrorIs(t, err, ErrInvalidParams)

	a, err := NewAgent(geometry.NewVector(3, 4), DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), a.Params())
	assert.Equal(t, geometry.NewVector(3, 4), a.Pos)
	assert.True(t, a.Vel.IsZero())
}

func TestStep_ZeroWeightGoalsKeepAgentStill(t *testing.T) {
	a := newAgent(t, geometry.Vector2D{}, DefaultParams())
	a.AddGoal(NewSeek(Point{X: 100, Y: 0}), 0)
	a.AddGoal(Flee{Target: Point{X: -100, Y: 0}}, 0)

	for i := 0; i < 60; i++ {
		a.Step(1.0 / 60)
	}
	assert.True(t, a.Vel.IsZero())
	assert.True(t, a.Pos.IsZero())
}

func TestStep_SeekStationaryTargetApproaches(t *testing.T) {
	a := newAgent(t, geometry.Vector2D{}, Params{MaxSpeed: 10, MaxAcceleration: 5, Mass: 1})
	target := geometry.NewVector(100, 0)
	a.AddGoal(NewSeek(Point(target)), 1)

	prev := a.DistanceTo(target)
	for i := 0; i < 50; i++ {
		a.Step(0.1)
		d := a.DistanceTo(target)
		require.Less(t, d, prev, "step %d", i)
		prev = d
	}
	assert.InDelta(t, 10, a.Speed(), 1e-9, "reached max speed")
	assert.InDelta(t, 0, a.Orientation, 1e-12)
}

func TestStep_Integration(t *testing.T) {
	// mass 2 halves the desired acceleration of 4
	a := newAgent(t, geometry.Vector2D{}, Params{MaxSpeed: 100, MaxAcceleration: 4, Mass: 2})
	a.AddGoal(NewSeek(Point{X: 0, Y: 1000}), 1)

	a.Step(0.5)
	// semi-implicit: velocity first, then position with the new velocity
	assert.InDelta(t, 1.0, a.Vel.Y, 1e-12)
	assert.InDelta(t, 0.5, a.Pos.Y, 1e-12)
	assert.InDelta(t, math.Pi/2, a.Orientation, 1e-12)
}

func TestStep_ClampsAccelerationAndSpeed(t *testing.T) {
	p := DefaultParams()
	a := newAgent(t, geometry.Vector2D{}, p)
	a.AddGoal(NewSeek(Point{X: 1e9, Y: 1e9}), 10)

	a.Step(1.0 / 60)
	assert.InDelta(t, p.MaxAcceleration/60, a.Speed(), 1e-9, "mass 0.1 would give 10x without the clamp")

	for i := 0; i < 600; i++ {
		a.Step(1.0 / 60)
		require.LessOrEqual(t, a.Speed(), p.MaxSpeed+1e-9)
	}
	assert.InDelta(t, p.MaxSpeed, a.Speed(), 1e-6)
}

func TestStep_UnresolvedTargetContributesNothing(t *testing.T) {
	a := newAgent(t, geometry.Vector2D{}, DefaultParams())
	a.AddGoal(NewSeek(TargetFunc(func() (geometry.Vector2D, bool) { return geometry.Vector2D{}, false })), 1)
	a.AddGoal(NewSeek(nil), 1)
	a.AddGoal(NewSeek(TargetFunc(nil)), 1)

	a.Step(1.0 / 60)
	assert.True(t, a.Vel.IsZero())
}

func TestStep_MovingTargetIsReadEachStep(t *testing.T) {
	target := geometry.NewVector(100, 0)
	a := newAgent(t, geometry.Vector2D{}, Params{MaxSpeed: 10, MaxAcceleration: 10, Mass: 1})
	a.AddGoal(NewSeek(TargetFunc(func() (geometry.Vector2D, bool) { return target, true })), 1)

	a.Step(0.1)
	assert.Greater(t, a.Vel.X, 0.0)

	target = geometry.NewVector(a.Pos.X, -100)
	a.Step(0.1)
	assert.Less(t, a.Vel.Y, 0.0)
}

func TestStep_Deterministic(t *testing.T) {
	run := func() *Agent {
		a := newAgent(t, geometry.NewVector(5, -7), DefaultParams())
		a.AddGoal(NewSeek(Point{X: 300, Y: 200}), 1)
		a.AddGoal(Flee{Target: Point{X: 0, Y: 0}}, 0.25)
		for _, dt := range []float64{1.0 / 60, 1.0 / 120, 1.0 / 30, 1.0 / 60} {
			a.Step(dt)
		}
		return a
	}
	a, b := run(), run()
	assert.Equal(t, a.Pos, b.Pos)
	assert.Equal(t, a.Vel, b.Vel)
	assert.Equal(t, a.Orientation, b.Orientation)
}

func TestStep_IgnoresBadDt(t *testing.T) {
	a := newAgent(t, geometry.Vector2D{}, DefaultParams())
	a.AddGoal(NewSeek(Point{X: 1, Y: 0}), 1)
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		a.Step(dt)
	}
	assert.True(t, a.Pos.IsZero())
}

func TestSetGoalWeight(t *testing.T) {
	a := newAgent(t, geometry.Vector2D{}, DefaultParams())
	i, err := a.AddGoal(NewSeek(Point{X: 1, Y: 0}), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, a.Goals())

	assert.ErrorIs(t, a.SetGoalWeight(3, 1), ErrGoalNotFound)
	assert.ErrorIs(t, a.SetGoalWeight(i, math.NaN()), ErrInvalidParams)
	require.NoError(t, a.SetGoalWeight(i, 1))

	a.Step(0.01)
	assert.Greater(t, a.Vel.X, 0.0)

	a.ClearGoals()
	assert.Zero(t, a.Goals())
	v := a.Vel
	a.Step(0.01)
	assert.Equal(t, v, a.Vel, "no goals means no acceleration")
}

func TestAddGoal_RejectsBadWeight(t *testing.T) {
	a := newAgent(t, geometry.Vector2D{}, DefaultParams())
	for _, w := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := a.AddGoal(NewSeek(Point{X: 1, Y: 0}), w)
		assert.ErrorIs(t, err, ErrInvalidParams, "weight %v", w)
	}
	_, err := a.AddGoal(nil, 1)
	assert.ErrorIs(t, err, ErrInvalidParams)
	assert.Zero(t, a.Goals(), "rejected goals are not kept")

	a.Step(0.01)
	assert.True(t, a.Pos.IsZero())
	assert.False(t, math.IsNaN(a.Vel.X))
}

func TestSetParams_ClampsVelocity(t *testing.T) {
	a := newAgent(t, geometry.Vector2D{}, DefaultParams())
	a.Vel = geometry.NewVector(300, 400)
	require.NoError(t, a.SetParams(Params{MaxSpeed: 50, MaxAcceleration: 1, Mass: 1}))
	assert.InDelta(t, 50, a.Speed(), 1e-9)
	assert.ErrorIs(t, a.SetParams(Params{}), ErrInvalidParams)
}

func TestSetBounds(t *testing.T) {
	a := newAgent(t, geometry.NewVector(50, 50), Params{MaxSpeed: 1000, MaxAcceleration: 1000, Mass: 1, Radius: 5})
	a.SetBounds(geometry.NewRect(0, 0, 100, 100))
	a.AddGoal(NewSeek(Point{X: 1000, Y: 50}), 1)

	for i := 0; i < 120; i++ {
		a.Step(1.0 / 60)
	}
	assert.InDelta(t, 95, a.Pos.X, 1e-9)
	assert.InDelta(t, 50, a.Pos.Y, 1e-9)
	assert.Zero(t, a.Vel.X, "velocity into the wall is dropped")

	a.SetBounds(geometry.Rect{})
	a.Step(1.0 / 60)
	assert.Greater(t, a.Pos.X, 95.0)
}

func BenchmarkStep(b *testing.B) {
	a, _ := NewAgent(geometry.Vector2D{}, DefaultParams())
	a.AddGoal(NewSeek(Point{X: 1000, Y: 1000}), 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Step(1.0 / 60)
	}
}
