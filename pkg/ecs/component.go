package ecs

import (
	"image/color"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/steering"
)

// Kind names a component kind and the system that owns it.
type Kind uint8

const (
	KindTargeting Kind = iota
	KindRender
)

func (k Kind) String() string {
	switch k {
	case KindTargeting:
		return "targeting"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// Transform is the presentation side position and rotation of an entity.
type Transform struct {
	Pos      geometry.Vector2D
	Rotation float64
}

// Shape selects how the view draws an entity.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeArrow
)

// Render holds what the view needs to draw an entity. Anything may write
// Transform between frames; the sync adapters carry it to the agent.
type Render struct {
	Transform
	Shape  Shape
	Radius float64
	Color  color.RGBA
	Layer  int
	Hidden bool
}

// Targeting gives an entity a steering agent.
type Targeting struct {
	Agent *steering.Agent

	// Targets lists the entities the agent seeks, in goal order.
	Targets []Entity
}

// NewTargeting wraps an agent.
func NewTargeting(a *steering.Agent) *Targeting {
	return &Targeting{Agent: a}
}
