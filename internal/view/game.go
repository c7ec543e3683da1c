// Package view is the ebiten front end of a scene. It owns no simulation
// state: every frame it sends a tick to the scene actor, turns pointer input
// into move or drag messages and draws the latest snapshot it was pushed.
package view

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/internal/scene"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/ecs"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/proto"
)

// Mode selects what a pointer does on the scene.
type Mode int

const (
	// ModeNavigate routes the player to each tap.
	ModeNavigate Mode = iota
	// ModePursuit drags the player while the pointer is held.
	ModePursuit
)

func (m Mode) String() string {
	if m == ModePursuit {
		return "pursuit"
	}
	return "navigate"
}

const toolbarHeight = 32

var (
	backgroundColor = color.RGBA{R: 20, G: 22, B: 28, A: 255}
	obstacleColor   = color.RGBA{R: 110, G: 110, B: 120, A: 255}
	bufferColor     = color.RGBA{R: 255, G: 200, B: 0, A: 120}
	pathColor       = color.RGBA{R: 100, G: 255, B: 120, A: 255}
)

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	scenePID   *actor.PID
	snapshotCh chan *scene.Snapshot
	lastState  *scene.Snapshot

	cfg  *scene.Config
	mode Mode

	// UI Controls
	toolbar    *ui.Toolbar
	pause      *ui.Checkbox
	showBuffer *ui.Checkbox
	timeScale  *ui.Slider
	dragging   bool

	lastTick time.Time
	clock    time.Duration

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64
}

// NewGame spawns the actor for s and returns the game driving it. Pointer
// input applies to player.
func NewGame(ctx context.Context, system actor.ActorSystem, s *scene.Scene, player ecs.Entity, mode Mode) (*Game, error) {
	snapshotCh := make(chan *scene.Snapshot, 10)

	pid, err := system.Spawn(ctx, "scene", scene.NewSceneActor(s, player, snapshotCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn scene: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		scenePID:   pid,
		snapshotCh: snapshotCh,
		lastState:  &scene.Snapshot{},
		cfg:        s.Config(),
		mode:       mode,
	}

	g.toolbar = ui.NewToolbar(0, 0, s.Config().WorldWidth, toolbarHeight)
	g.pause = ui.NewCheckbox("Pause", false, g.setPaused)
	g.toolbar.Add(g.pause)
	g.showBuffer = ui.NewCheckbox("Buffer", true, nil)
	g.toolbar.Add(g.showBuffer)
	g.timeScale = ui.NewSlider("Speed", 0.1, 2, 1, nil)
	g.toolbar.Add(g.timeScale)
	if mode == ModeNavigate {
		g.toolbar.Add(ui.NewButton("Clear path", g.clearPath))
	}
	return g, nil
}

func (g *Game) setPaused(paused bool) {
	g.tell(scene.PauseMessage(paused))
}

func (g *Game) clearPath() {
	g.tell(scene.ClearPathMessage())
}

func (g *Game) tell(msg proto.Message) {
	if err := actor.Tell(g.ctx, g.scenePID, msg); err != nil {
		g.System.Logger().Warnf("view: message %T dropped: %v", msg, err)
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// Retrieve latest state (non-blocking)
	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.pause.Set(!g.pause.Value)
		g.setPaused(g.pause.Value)
	}

	mx, my := ebiten.CursorPosition()
	g.handlePointer(float64(mx), float64(my),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		g.handlePointer(float64(tx), float64(ty), true, true)
	}

	g.tick(start)
	return nil
}

// handlePointer feeds the toolbar first; input it does not take becomes a
// move (on press) or a drag (while held).
func (g *Game) handlePointer(x, y float64, justPressed, pressed bool) {
	if g.toolbar.Handle(x, y, pressed) && !g.dragging {
		return
	}
	switch g.mode {
	case ModeNavigate:
		if justPressed {
			g.tell(scene.MoveMessage(g.cfg.Bounds().Clamp(pointer(x, y))))
		}
	case ModePursuit:
		g.dragging = pressed
		if pressed {
			g.tell(scene.DragMessage(pointer(x, y)))
		}
	}
}

// tick sends the scene clock: wall time since the first frame, scaled by the
// speed slider. The scene advances by the difference between readings and
// clamps long frames.
func (g *Game) tick(now time.Time) {
	if !g.lastTick.IsZero() {
		g.clock += time.Duration(float64(now.Sub(g.lastTick)) * g.timeScale.Value)
	}
	g.lastTick = now
	g.tell(scene.TickMessage(g.clock))
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)
	snap := g.lastState

	for _, o := range snap.Obstacles {
		drawPolygon(screen, o, obstacleColor)
	}
	if g.showBuffer.Value {
		for _, b := range snap.Buffered {
			strokePolygon(screen, b, bufferColor)
		}
	}
	drawPath(screen, snap.Path, pathColor)
	for _, item := range snap.Items {
		drawItem(screen, item)
	}

	g.toolbar.Draw(screen)

	status := fmt.Sprintf("%s | frame %d | %.1fs", g.mode, snap.Frame, snap.Elapsed)
	if snap.Paused {
		status += " | PAUSED"
	}
	if snap.Moving {
		status += " | moving"
	}
	ebitenutil.DebugPrintAt(screen, status, 10, toolbarHeight+6)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.updateAvg, g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, int(g.cfg.WorldWidth)-150, toolbarHeight+6)
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(g.cfg.WorldWidth), int(g.cfg.WorldHeight)
}
