package ecs

// Phase is the point in a frame at which an adapter runs.
type Phase uint8

const (
	// PreStep runs before any system; presentation state flows into agents.
	PreStep Phase = iota
	// PostStep runs after every system; agent state flows back out.
	PostStep
)

func (p Phase) String() string {
	if p == PostStep {
		return "post-step"
	}
	return "pre-step"
}

// Adapter copies state between the simulation and the presentation side.
// Sync is called once per phase per frame.
type Adapter interface {
	Sync(phase Phase)
}

// Expirer is implemented by adapters that can go stale. The scheduler drops
// an expired adapter before the next frame.
type Expirer interface {
	Expired() bool
}

// AgentTransformSync mirrors an entity's Render transform and its agent: the
// transform is pushed into the agent before the step and the agent's result
// pulled back after it. Rotation follows only when SyncRotation is set.
type AgentTransformSync struct {
	Registry     *Registry
	Entity       Entity
	SyncRotation bool
}

// NewAgentTransformSync returns the adapter for e.
func NewAgentTransformSync(r *Registry, e Entity, syncRotation bool) *AgentTransformSync {
	return &AgentTransformSync{Registry: r, Entity: e, SyncRotation: syncRotation}
}

func (s *AgentTransformSync) Sync(phase Phase) {
	t, ok := s.Registry.Targeting(s.Entity)
	if !ok {
		return
	}
	r, ok := s.Registry.Render(s.Entity)
	if !ok {
		return
	}

	switch phase {
	case PreStep:
		t.Agent.Pos = r.Pos
		if s.SyncRotation {
			t.Agent.Orientation = r.Rotation
		}
	case PostStep:
		r.Pos = t.Agent.Pos
		if s.SyncRotation {
			r.Rotation = t.Agent.Orientation
		}
	}
}

// Expired reports whether the entity was destroyed.
func (s *AgentTransformSync) Expired() bool {
	return !s.Registry.IsAlive(s.Entity)
}
