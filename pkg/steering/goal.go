package steering

import "github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"

// Target is a non-owning lookup of something an agent can steer toward.
// Position reports false when the target no longer exists.
type Target interface {
	Position() (geometry.Vector2D, bool)
}

// Point is a fixed target.
type Point geometry.Vector2D

func (p Point) Position() (geometry.Vector2D, bool) {
	return geometry.Vector2D(p), true
}

// TargetFunc adapts a plain function to Target.
type TargetFunc func() (geometry.Vector2D, bool)

func (f TargetFunc) Position() (geometry.Vector2D, bool) {
	if f == nil {
		return geometry.Vector2D{}, false
	}
	return f()
}

// Goal produces the acceleration an agent would like to apply this step,
// before weighting, mass and clamping.
type Goal interface {
	Desired(a *Agent) geometry.Vector2D
}

// Seek accelerates at full strength toward the target's current position.
type Seek struct {
	Target Target
}

// NewSeek returns a Seek goal toward t.
func NewSeek(t Target) Seek {
	return Seek{Target: t}
}

func (s Seek) Desired(a *Agent) geometry.Vector2D {
	dir, ok := towards(a, s.Target)
	if !ok {
		return geometry.Vector2D{}
	}
	return dir.Mul(a.params.MaxAcceleration)
}

// Flee is Seek with the direction reversed.
type Flee struct {
	Target Target
}

func (f Flee) Desired(a *Agent) geometry.Vector2D {
	dir, ok := towards(a, f.Target)
	if !ok {
		return geometry.Vector2D{}
	}
	return dir.Neg().Mul(a.params.MaxAcceleration)
}

// towards returns the unit vector from the agent to the target. It reports
// false when the target is gone or already reached.
func towards(a *Agent, t Target) (geometry.Vector2D, bool) {
	if t == nil {
		return geometry.Vector2D{}, false
	}
	pos, ok := t.Position()
	if !ok || !pos.IsFinite() {
		return geometry.Vector2D{}, false
	}
	d := pos.Sub(a.Pos)
	if d.Len() <= geometry.Epsilon {
		return geometry.Vector2D{}, false
	}
	return d.Normalize(), true
}
