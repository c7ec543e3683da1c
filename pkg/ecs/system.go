package ecs

import "sort"

// System updates the components of one kind once per frame.
type System interface {
	Kind() Kind
	Update(dt float64)
	Len() int
}

// TargetingSystem steps every agent in registration order.
type TargetingSystem struct {
	components *store[*Targeting]
}

func NewTargetingSystem() *TargetingSystem {
	return &TargetingSystem{components: newStore[*Targeting]()}
}

func (s *TargetingSystem) Kind() Kind { return KindTargeting }

func (s *TargetingSystem) Len() int { return s.components.len() }

func (s *TargetingSystem) Update(dt float64) {
	s.components.each(func(_ Entity, c *Targeting) bool {
		if c.Agent != nil {
			c.Agent.Step(dt)
		}
		return true
	})
}

// Entities returns the member entities in registration order.
func (s *TargetingSystem) Entities() []Entity {
	return append([]Entity(nil), s.components.entities...)
}

// RenderSystem keeps the draw order of render components: ascending Layer,
// registration order within a layer, hidden entities left out.
type RenderSystem struct {
	components *store[*Render]
	drawList   []Entity
	stale      bool // members changed since drawList was built
	frames     uint64
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{components: newStore[*Render](), stale: true}
}

func (s *RenderSystem) add(e Entity, c *Render) {
	s.components.set(e, c)
	s.stale = true
}

func (s *RenderSystem) remove(e Entity) bool {
	if !s.components.remove(e) {
		return false
	}
	s.stale = true
	return true
}

func (s *RenderSystem) Kind() Kind { return KindRender }

func (s *RenderSystem) Len() int { return s.components.len() }

func (s *RenderSystem) Update(float64) {
	s.rebuild()
	s.frames++
}

func (s *RenderSystem) rebuild() {
	s.drawList = s.Order()
	s.stale = false
}

// Order computes the current draw order without touching the cached one.
func (s *RenderSystem) Order() []Entity {
	order := make([]Entity, 0, s.components.len())
	layers := make(map[Entity]int, s.components.len())
	s.components.each(func(e Entity, c *Render) bool {
		if !c.Hidden {
			order = append(order, e)
			layers[e] = c.Layer
		}
		return true
	})
	sort.SliceStable(order, func(i, j int) bool {
		return layers[order[i]] < layers[order[j]]
	})
	return order
}

// DrawList returns the draw order computed by the last Update. It is built
// again first when render components were added or removed since, so a
// paused scene still lists new entities. Layer or Hidden changes show up on
// the next Update.
func (s *RenderSystem) DrawList() []Entity {
	if s.stale {
		s.rebuild()
	}
	return append([]Entity(nil), s.drawList...)
}

// Frames counts Update calls.
func (s *RenderSystem) Frames() uint64 {
	return s.frames
}

// Entities returns the member entities in registration order.
func (s *RenderSystem) Entities() []Entity {
	return append([]Entity(nil), s.components.entities...)
}
