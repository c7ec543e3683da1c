package view

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/internal/scene"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/ecs"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func newGame(t *testing.T, mode Mode) *Game {
	t.Helper()
	ctx := context.Background()

	system, err := actor.NewActorSystem("ViewTest", actor.WithLogger(golog.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() { _ = system.Stop(ctx) })

	cfg := scene.DefaultConfig()
	cfg.Obstacles = []geometry.Rect{{X: 200, Y: 200, Width: 100, Height: 100}}
	s, err := scene.New(cfg)
	require.NoError(t, err)
	player, err := s.CreatePlayer(geometry.NewVector(150, 250))
	require.NoError(t, err)

	g, err := NewGame(ctx, system, s, player, mode)
	require.NoError(t, err)
	return g
}

func (g *Game) waitFor(t *testing.T, ok func(*scene.Snapshot) bool) *scene.Snapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-g.snapshotCh:
			if ok(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("no matching snapshot")
			return nil
		}
	}
}

func TestGame_TapRoutesPlayer(t *testing.T) {
	g := newGame(t, ModeNavigate)

	g.handlePointer(350, 250, true, true)
	g.tell(scene.TickMessage(0))
	g.tell(scene.TickMessage(time.Second / 60))

	snap := g.waitFor(t, func(s *scene.Snapshot) bool { return len(s.Path) > 0 })
	assert.Len(t, snap.Path, 4)
	assert.True(t, snap.Moving)
}

func TestGame_ToolbarTakesTaps(t *testing.T) {
	g := newGame(t, ModeNavigate)
	x, y, _, _ := g.pause.Bounds()

	g.handlePointer(x+2, y+2, true, true)
	assert.True(t, g.pause.Value)

	snap := g.waitFor(t, func(s *scene.Snapshot) bool { return s.Paused })
	assert.Empty(t, snap.Path, "a toolbar tap is not a move")
}

func TestGame_DragMovesPlayer(t *testing.T) {
	g := newGame(t, ModePursuit)

	g.handlePointer(600, 600, true, true)
	assert.True(t, g.dragging)
	g.tell(scene.TickMessage(0))
	g.tell(scene.TickMessage(time.Second / 60))

	snap := g.waitFor(t, func(s *scene.Snapshot) bool { return s.Frame == 1 })
	require.Len(t, snap.Items, 1)
	assert.Equal(t, geometry.NewVector(600, 600), snap.Items[0].Pos)

	g.handlePointer(600, 600, false, false)
	assert.False(t, g.dragging)
}

func TestGame_TickScalesWallTime(t *testing.T) {
	g := newGame(t, ModePursuit)
	g.timeScale.Value = 0.5

	start := time.Now()
	g.tick(start)
	assert.Zero(t, g.clock)
	g.tick(start.Add(time.Second / 30))
	assert.Equal(t, time.Second/60, g.clock)

	snap := g.waitFor(t, func(s *scene.Snapshot) bool { return s.Frame == 1 })
	assert.InDelta(t, 1.0/60, snap.Elapsed, 1e-9)
}

func TestArrowVertices(t *testing.T) {
	item := scene.Item{Pos: geometry.NewVector(100, 100), Rotation: math.Pi / 2, Shape: ecs.ShapeArrow}
	vs := arrowVertices(item)
	require.Len(t, vs, 3)
	assert.InDelta(t, 100, vs[0].DstX, 1e-4)
	assert.InDelta(t, 100+arrowLength, vs[0].DstY, 1e-4, "tip points along the rotation")
	assert.Less(t, vs[1].DstY, vs[0].DstY)
	assert.Less(t, vs[2].DstY, vs[0].DstY)
}

func TestFanTriangles(t *testing.T) {
	r := geometry.NewRect(0, 0, 10, 10)
	p, err := r.Polygon()
	require.NoError(t, err)

	vs, is := fanTriangles(p, obstacleColor)
	assert.Len(t, vs, 4)
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, is)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "navigate", ModeNavigate.String())
	assert.Equal(t, "pursuit", ModePursuit.String())
}
