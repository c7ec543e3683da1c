// Package steering moves kinematic agents by blending weighted goals into an
// acceleration and integrating it with semi-implicit Euler.
package steering

import (
	"errors"
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
)

var (
	ErrInvalidParams = errors.New("invalid agent parameters")
	ErrGoalNotFound  = errors.New("goal not found")
)

// Params are the kinematic limits of an agent.
type Params struct {
	MaxSpeed        float64 `json:"maxSpeed"`
	MaxAcceleration float64 `json:"maxAcceleration"`
	Mass            float64 `json:"mass"`
	Radius          float64 `json:"radius"`
}

// DefaultParams are the limits used for a fast homing missile.
func DefaultParams() Params {
	return Params{MaxSpeed: 4000, MaxAcceleration: 4000, Mass: 0.1}
}

// Validate rejects negative or non finite limits and a zero mass.
func (p Params) Validate() error {
	check := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s is %v", ErrInvalidParams, name, v)
		}
		return nil
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"maxSpeed", p.MaxSpeed},
		{"maxAcceleration", p.MaxAcceleration},
		{"mass", p.Mass},
		{"radius", p.Radius},
	} {
		if err := check(f.name, f.v); err != nil {
			return err
		}
	}
	if p.Mass == 0 {
		return fmt.Errorf("%w: mass must be positive", ErrInvalidParams)
	}
	return nil
}

type weightedGoal struct {
	goal   Goal
	weight float64
}

// Agent is a point mass with a heading. Pos, Vel and Orientation are
// exported so synchronisation code can copy them in and out.
type Agent struct {
	Pos         geometry.Vector2D
	Vel         geometry.Vector2D
	Orientation float64

	params Params
	goals  []weightedGoal
	bounds *geometry.Rect
}

// NewAgent creates an agent at rest at pos.
func NewAgent(pos geometry.Vector2D, params Params) (*Agent, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if !pos.IsFinite() {
		return nil, fmt.Errorf("%w: position %s", ErrInvalidParams, pos)
	}
	return &Agent{Pos: pos, params: params}, nil
}

// Params returns the agent's limits.
func (a *Agent) Params() Params {
	return a.params
}

// SetParams replaces the limits. The current velocity is clamped to the new
// max speed.
func (a *Agent) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	a.params = p
	a.Vel = a.Vel.ClampLen(p.MaxSpeed)
	return nil
}

// AddGoal appends g and returns its index. Goals are blended in the order
// they were added. The weight must be finite.
func (a *Agent) AddGoal(g Goal, weight float64) (int, error) {
	if g == nil {
		return 0, fmt.Errorf("%w: nil goal", ErrInvalidParams)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return 0, fmt.Errorf("%w: goal weight %v", ErrInvalidParams, weight)
	}
	a.goals = append(a.goals, weightedGoal{goal: g, weight: weight})
	return len(a.goals) - 1, nil
}

// SetGoalWeight changes the weight of the goal at index i.
func (a *Agent) SetGoalWeight(i int, weight float64) error {
	if i < 0 || i >= len(a.goals) {
		return fmt.Errorf("%w: index %d of %d", ErrGoalNotFound, i, len(a.goals))
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: goal weight %v", ErrInvalidParams, weight)
	}
	a.goals[i].weight = weight
	return nil
}

// ClearGoals drops every goal. The agent keeps coasting at its velocity.
func (a *Agent) ClearGoals() {
	a.goals = nil
}

// Goals returns the number of goals.
func (a *Agent) Goals() int {
	return len(a.goals)
}

// SetBounds keeps the agent's body inside r. A zero Rect removes the bounds.
func (a *Agent) SetBounds(r geometry.Rect) {
	if r == (geometry.Rect{}) {
		a.bounds = nil
		return
	}
	a.bounds = &r
}

// Step advances the agent by dt seconds. Non positive or non finite dt is
// ignored.
func (a *Agent) Step(dt float64) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return
	}

	var sum geometry.Vector2D
	for _, g := range a.goals {
		if g.weight == 0 || g.goal == nil {
			continue
		}
		sum = sum.Add(g.goal.Desired(a).Mul(g.weight))
	}
	acc := sum.Mul(1 / a.params.Mass).ClampLen(a.params.MaxAcceleration)

	a.Vel = a.Vel.Add(acc.Mul(dt)).ClampLen(a.params.MaxSpeed)
	a.Pos = a.Pos.Add(a.Vel.Mul(dt))
	a.keepInBounds()

	if a.Vel.Len() > geometry.Epsilon {
		a.Orientation = a.Vel.Angle()
	}
}

// Speed returns the length of the velocity.
func (a *Agent) Speed() float64 {
	return a.Vel.Len()
}

// DistanceTo gives the cartesian distance from this agent to p.
func (a *Agent) DistanceTo(p geometry.Vector2D) float64 {
	return a.Pos.DistanceTo(p)
}

func (a *Agent) keepInBounds() {
	if a.bounds == nil {
		return
	}
	inner := a.bounds.Expand(-a.params.Radius)
	if inner.Width < 0 || inner.Height < 0 {
		inner = geometry.Rect{X: a.bounds.Center().X, Y: a.bounds.Center().Y}
	}
	min, max := inner.Min(), inner.Max()

	if a.Pos.X < min.X {
		a.Pos.X = min.X
		a.Vel.X = math.Max(a.Vel.X, 0)
	} else if a.Pos.X > max.X {
		a.Pos.X = max.X
		a.Vel.X = math.Min(a.Vel.X, 0)
	}
	if a.Pos.Y < min.Y {
		a.Pos.Y = min.Y
		a.Vel.Y = math.Max(a.Vel.Y, 0)
	} else if a.Pos.Y > max.Y {
		a.Pos.Y = max.Y
		a.Vel.Y = math.Min(a.Vel.Y, 0)
	}
}
