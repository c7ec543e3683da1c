// Package scene wires the navigation graph, steering agents and the entity
// registry into one interactive world, and exposes it to the game loop
// either directly or through an actor.
package scene

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/ecs"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/motion"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/navgraph"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/steering"
	"github.com/tanema/gween/ease"
	golog "github.com/tochemey/goakt/v3/log"
)

// ErrMoving is returned by MovePlayer while a previous move is playing.
var ErrMoving = errors.New("entity is already moving")

const agentArrowLength = 12.0

var (
	playerColor  = color.RGBA{R: 50, G: 100, B: 255, A: 255}
	missileColor = color.RGBA{R: 255, G: 50, B: 50, A: 255}
)

// Item is one drawable entity in a Snapshot.
type Item struct {
	Entity   ecs.Entity
	Pos      geometry.Vector2D
	Rotation float64
	Shape    ecs.Shape
	Radius   float64
	Color    color.RGBA
}

// Snapshot is an immutable copy of what the view needs for one frame.
type Snapshot struct {
	Frame     uint64
	Elapsed   float64
	Paused    bool
	Moving    bool
	Items     []Item
	Obstacles []geometry.Polygon
	Buffered  []geometry.Polygon
	Path      []geometry.Vector2D
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger routes scene, graph and scheduler logs to logger.
func WithLogger(logger golog.Logger) Option {
	return func(s *Scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scene is single threaded: callers serialise access, which SceneActor does
// for concurrent use.
type Scene struct {
	cfg    *Config
	policy navgraph.InsidePolicy
	easing ease.TweenFunc

	registry  *ecs.Registry
	scheduler *ecs.Scheduler

	obstacles []geometry.Polygon
	graph     *navgraph.Graph
	lastPath  []geometry.Vector2D

	movers map[ecs.Entity]*motion.Mover

	logger golog.Logger
}

// New creates an empty scene with the obstacles of cfg. A nil cfg is
// DefaultConfig.
func New(cfg *Config, opts ...Option) (*Scene, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, _ := cfg.policy()
	easing, _ := motion.Easing(cfg.MoveEasing)

	s := &Scene{
		cfg:      cfg,
		policy:   policy,
		easing:   easing,
		registry: ecs.NewRegistry(),
		movers:   make(map[ecs.Entity]*motion.Mover),
		logger:   golog.DiscardLogger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.scheduler = ecs.NewScheduler(s.registry.Systems()...)
	s.scheduler.SetLogger(s.logger)
	if err := s.scheduler.SetMaxStep(cfg.MaxStep); err != nil {
		return nil, fmt.Errorf("failed to configure scheduler: %w", err)
	}
	s.SetObstacleRects(cfg.Obstacles)
	return s, nil
}

// Config returns the configuration the scene was built from.
func (s *Scene) Config() *Config {
	return s.cfg
}

// Registry exposes the entity registry.
func (s *Scene) Registry() *ecs.Registry {
	return s.registry
}

// SetObstacles replaces the obstacles. The graph is rebuilt on the next
// path request.
func (s *Scene) SetObstacles(obstacles []geometry.Polygon) {
	s.obstacles = append([]geometry.Polygon(nil), obstacles...)
	s.graph = nil
}

// SetObstacleRects is SetObstacles for rectangular bounds; empty rectangles
// are dropped with a warning.
func (s *Scene) SetObstacleRects(rects []geometry.Rect) {
	obstacles := make([]geometry.Polygon, 0, len(rects))
	for i, r := range rects {
		p, err := r.Polygon()
		if err != nil {
			s.logger.Warnf("scene: skipping obstacle %d: %v", i, err)
			continue
		}
		obstacles = append(obstacles, p)
	}
	s.SetObstacles(obstacles)
}

// Graph returns the visibility graph of the current obstacles, building it
// on first use.
func (s *Scene) Graph() *navgraph.Graph {
	if s.graph == nil {
		s.graph = navgraph.Build(s.obstacles, s.cfg.Clearance(),
			navgraph.WithInsidePolicy(s.policy),
			navgraph.WithLogger(s.logger))
		s.logger.Infof("scene: navigation graph ready with %d nodes", len(s.graph.Nodes()))
	}
	return s.graph
}

// RequestMove returns the shortest obstacle free path from from to to. An
// empty path means the goal cannot be reached.
func (s *Scene) RequestMove(from, to geometry.Vector2D) navgraph.Path {
	path := s.Graph().Route(from, to)
	s.lastPath = path.Points()
	if path.Empty() {
		s.logger.Debugf("scene: no path from %s to %s", from, to)
	}
	return path
}

// ClearPath forgets the last requested path. Moves in progress continue.
func (s *Scene) ClearPath() {
	s.lastPath = nil
}

// CreateAgent adds a steering entity that also renders, rotation included.
// The arrow is drawn params.Radius long, or agentArrowLength for a point
// agent.
func (s *Scene) CreateAgent(pos geometry.Vector2D, params steering.Params) (ecs.Entity, error) {
	length := params.Radius
	if length <= 0 {
		length = agentArrowLength
	}
	return s.spawn(pos, params, &ecs.Render{
		Transform: ecs.Transform{Pos: pos},
		Shape:     ecs.ShapeArrow,
		Radius:    length,
		Color:     missileColor,
		Layer:     1,
	}, true)
}

// CreatePlayer adds the entity the user moves. It carries an agent so that
// others can seek it, but only its position is synchronised.
func (s *Scene) CreatePlayer(pos geometry.Vector2D) (ecs.Entity, error) {
	params := steering.Params{MaxSpeed: 0, MaxAcceleration: 0, Mass: 1, Radius: s.cfg.PlayerRadius}
	return s.spawn(pos, params, &ecs.Render{
		Transform: ecs.Transform{Pos: pos},
		Shape:     ecs.ShapeCircle,
		Radius:    s.cfg.PlayerRadius,
		Color:     playerColor,
	}, false)
}

func (s *Scene) spawn(pos geometry.Vector2D, params steering.Params, render *ecs.Render, syncRotation bool) (ecs.Entity, error) {
	agent, err := steering.NewAgent(pos, params)
	if err != nil {
		return 0, fmt.Errorf("failed to create agent: %w", err)
	}
	agent.SetBounds(s.cfg.Bounds())

	e := s.registry.CreateEntity()
	if err := s.registry.AddTargeting(e, ecs.NewTargeting(agent)); err != nil {
		return 0, err
	}
	if err := s.registry.AddRender(e, render); err != nil {
		return 0, err
	}
	s.scheduler.AddAdapter(ecs.NewAgentTransformSync(s.registry, e, syncRotation))
	return e, nil
}

// Destroy removes e and anything driving it.
func (s *Scene) Destroy(e ecs.Entity) error {
	delete(s.movers, e)
	return s.registry.DestroyEntity(e)
}

// SetSeekTarget makes agent seek target with the given weight.
func (s *Scene) SetSeekTarget(agent, target ecs.Entity, weight float64) error {
	if _, err := s.registry.Seek(agent, target, weight); err != nil {
		return fmt.Errorf("failed to set seek target: %w", err)
	}
	return nil
}

// SetPosition writes p into e's render transform, the way a drag does. The
// next frame carries it into the agent before it steps.
func (s *Scene) SetPosition(e ecs.Entity, p geometry.Vector2D) error {
	r, err := s.render(e)
	if err != nil {
		return err
	}
	r.Pos = s.cfg.Bounds().Clamp(p)
	return nil
}

// MovePlayer finds a path from e's position to to and plays it back as a
// sequence of move-to actions. A request made while e is still moving is
// refused with ErrMoving. An empty path leaves e where it is.
func (s *Scene) MovePlayer(e ecs.Entity, to geometry.Vector2D) (navgraph.Path, error) {
	r, err := s.render(e)
	if err != nil {
		return navgraph.Path{}, err
	}
	m, ok := s.movers[e]
	if !ok {
		m = &motion.Mover{}
		s.movers[e] = m
	}
	if m.Moving() {
		return navgraph.Path{}, ErrMoving
	}

	path := s.RequestMove(r.Pos, to)
	if path.Len() < 2 {
		return path, nil
	}
	script, err := motion.NewScript(path.Points(), s.cfg.MoveSegment(), s.easing)
	if err != nil {
		return path, fmt.Errorf("failed to build move script: %w", err)
	}
	m.Start(script)
	return path, nil
}

// Moving reports whether e is playing a move.
func (s *Scene) Moving(e ecs.Entity) bool {
	m, ok := s.movers[e]
	return ok && m.Moving()
}

// Tick advances the scene by dt seconds, clamped to the max step, and
// returns the step taken. Move scripts write their transforms first, so the
// agents see them in the same frame.
func (s *Scene) Tick(dt float64) float64 {
	step := s.scheduler.Clamp(dt)
	if step == 0 {
		return 0
	}
	for e, m := range s.movers {
		pos, ok := m.Update(step)
		if !ok {
			continue
		}
		r, found := s.registry.Render(e)
		if !found {
			delete(s.movers, e)
			continue
		}
		r.Pos = pos
	}
	return s.scheduler.Tick(step)
}

// Advance reads the caller's clock and runs one frame for the time passed
// since the previous reading. The first reading, and the first after
// Resume, only sets the baseline, so a pause never reaches the agents.
func (s *Scene) Advance(now time.Duration) float64 {
	return s.Tick(s.scheduler.Since(now))
}

func (s *Scene) Pause() {
	s.scheduler.Pause()
}

func (s *Scene) Resume() {
	s.scheduler.Resume()
}

func (s *Scene) Paused() bool {
	return s.scheduler.Paused()
}

// Position returns where e is drawn.
func (s *Scene) Position(e ecs.Entity) (geometry.Vector2D, bool) {
	if r, ok := s.registry.Render(e); ok {
		return r.Pos, true
	}
	return s.registry.Position(e)
}

// Orientation returns e's heading in radians.
func (s *Scene) Orientation(e ecs.Entity) (float64, bool) {
	if r, ok := s.registry.Render(e); ok {
		return r.Rotation, true
	}
	if t, ok := s.registry.Targeting(e); ok {
		return t.Agent.Orientation, true
	}
	return 0, false
}

// Snapshot copies the drawable state.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:     s.scheduler.Frames(),
		Elapsed:   s.scheduler.Elapsed(),
		Paused:    s.scheduler.Paused(),
		Obstacles: append([]geometry.Polygon(nil), s.obstacles...),
		Buffered:  s.Graph().Obstacles(),
		Path:      append([]geometry.Vector2D(nil), s.lastPath...),
	}
	for _, e := range s.registry.RenderSystem().DrawList() {
		r, _ := s.registry.Render(e)
		snap.Items = append(snap.Items, Item{
			Entity:   e,
			Pos:      r.Pos,
			Rotation: r.Rotation,
			Shape:    r.Shape,
			Radius:   r.Radius,
			Color:    r.Color,
		})
		if s.Moving(e) {
			snap.Moving = true
		}
	}
	return snap
}

func (s *Scene) render(e ecs.Entity) (*ecs.Render, error) {
	if !s.registry.IsAlive(e) {
		return nil, fmt.Errorf("%w: %s", ecs.ErrEntityNotAlive, e)
	}
	r, ok := s.registry.Render(e)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s component", ecs.ErrMissingComponent, e, ecs.KindRender)
	}
	return r, nil
}
