package ecs

import (
	"errors"
	"fmt"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/steering"
)

var (
	ErrEntityNotAlive   = errors.New("entity is not alive")
	ErrMissingComponent = errors.New("missing component")
)

// Registry owns entities and routes each component to the system of its
// kind. An entity holds at most one component per kind.
type Registry struct {
	entities  entityStore
	targeting *TargetingSystem
	render    *RenderSystem
}

// NewRegistry creates an empty registry with one system per component kind.
func NewRegistry() *Registry {
	return &Registry{
		targeting: NewTargetingSystem(),
		render:    NewRenderSystem(),
	}
}

// CreateEntity allocates a new entity without components.
func (r *Registry) CreateEntity() Entity {
	return r.entities.create()
}

// DestroyEntity removes e from every system and invalidates its handle.
func (r *Registry) DestroyEntity(e Entity) error {
	if !r.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", ErrEntityNotAlive, e)
	}
	r.targeting.components.remove(e)
	r.render.remove(e)
	r.entities.destroy(e)
	return nil
}

// IsAlive reports whether e is a live handle.
func (r *Registry) IsAlive(e Entity) bool {
	return r.entities.isAlive(e)
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return r.entities.alive()
}

// AddTargeting attaches c to e, replacing any previous targeting component.
func (r *Registry) AddTargeting(e Entity, c *Targeting) error {
	if !r.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", ErrEntityNotAlive, e)
	}
	if c == nil || c.Agent == nil {
		return fmt.Errorf("%w: targeting without agent", ErrMissingComponent)
	}
	r.targeting.components.set(e, c)
	return nil
}

// AddRender attaches c to e, replacing any previous render component.
func (r *Registry) AddRender(e Entity, c *Render) error {
	if !r.entities.isAlive(e) {
		return fmt.Errorf("%w: %s", ErrEntityNotAlive, e)
	}
	if c == nil {
		return fmt.Errorf("%w: nil render", ErrMissingComponent)
	}
	r.render.add(e, c)
	return nil
}

func (r *Registry) Targeting(e Entity) (*Targeting, bool) {
	if !r.entities.isAlive(e) {
		return nil, false
	}
	return r.targeting.components.get(e)
}

func (r *Registry) Render(e Entity) (*Render, bool) {
	if !r.entities.isAlive(e) {
		return nil, false
	}
	return r.render.components.get(e)
}

func (r *Registry) RemoveTargeting(e Entity) bool {
	return r.targeting.components.remove(e)
}

func (r *Registry) RemoveRender(e Entity) bool {
	return r.render.remove(e)
}

// TargetingSystem returns the system owning targeting components.
func (r *Registry) TargetingSystem() *TargetingSystem {
	return r.targeting
}

// RenderSystem returns the system owning render components.
func (r *Registry) RenderSystem() *RenderSystem {
	return r.render
}

// Systems returns the systems in update order: targeting, then render.
func (r *Registry) Systems() []System {
	return []System{r.targeting, r.render}
}

// ResolveTarget returns a steering target that looks e up on every read.
func (r *Registry) ResolveTarget(e Entity) steering.Target {
	return entityTarget{registry: r, entity: e}
}

// Seek adds a seek goal toward target to e's agent and returns the goal
// index. The target is resolved each step, so a destroyed target simply
// stops pulling.
func (r *Registry) Seek(e, target Entity, weight float64) (int, error) {
	if !r.entities.isAlive(target) {
		return 0, fmt.Errorf("%w: target %s", ErrEntityNotAlive, target)
	}
	c, ok := r.Targeting(e)
	if !ok {
		if !r.entities.isAlive(e) {
			return 0, fmt.Errorf("%w: %s", ErrEntityNotAlive, e)
		}
		return 0, fmt.Errorf("%w: %s has no %s component", ErrMissingComponent, e, KindTargeting)
	}
	i, err := c.Agent.AddGoal(steering.NewSeek(r.ResolveTarget(target)), weight)
	if err != nil {
		return 0, err
	}
	c.Targets = append(c.Targets, target)
	return i, nil
}

// Position reports where e currently is: its agent when it has one, its
// render transform otherwise.
func (r *Registry) Position(e Entity) (geometry.Vector2D, bool) {
	if c, ok := r.Targeting(e); ok {
		return c.Agent.Pos, true
	}
	if c, ok := r.Render(e); ok {
		return c.Pos, true
	}
	return geometry.Vector2D{}, false
}

type entityTarget struct {
	registry *Registry
	entity   Entity
}

func (t entityTarget) Position() (geometry.Vector2D, bool) {
	return t.registry.Position(t.entity)
}
