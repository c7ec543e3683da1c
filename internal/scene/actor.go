package scene

import (
	"errors"
	"time"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/ecs"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// SceneActor owns a Scene and serialises every mutation through its
// mailbox. After each tick it pushes a Snapshot to the UI channel.
type SceneActor struct {
	scene      *Scene
	player     ecs.Entity
	snapshotCh chan<- *Snapshot

	// --- Benchmark Stats ---
	ticks       int
	moves       int
	lastLogTime time.Time
}

// NewSceneActor creates the actor. Move and drag messages apply to player.
func NewSceneActor(s *Scene, player ecs.Entity, snapshotCh chan<- *Snapshot) *SceneActor {
	return &SceneActor{
		scene:       s,
		player:      player,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (a *SceneActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Scene is loading %d obstacles...", len(a.scene.obstacles))
	return nil
}

func (a *SceneActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("Scene started. Navigation graph has %d nodes", len(a.scene.Graph().Nodes()))
		a.pushSnapshot()

	case *durationpb.Duration:
		a.logRate(ctx)
		a.scene.Advance(msg.AsDuration())
		a.ticks++
		a.pushSnapshot()

	case *wrapperspb.BoolValue:
		if msg.GetValue() {
			a.scene.Pause()
		} else {
			a.scene.Resume()
		}
		a.pushSnapshot()

	case *emptypb.Empty:
		a.scene.ClearPath()
		a.pushSnapshot()

	case *structpb.Struct:
		if p, ok := pointFrom(msg, fieldDragX, fieldDragY); ok {
			if err := a.scene.SetPosition(a.player, p); err != nil {
				ctx.Logger().Warnf("drag ignored: %v", err)
			}
			return
		}
		if p, ok := pointFrom(msg, fieldX, fieldY); ok {
			path, err := a.scene.MovePlayer(a.player, p)
			switch {
			case errors.Is(err, ErrMoving):
				ctx.Logger().Debugf("move to %s ignored: still moving", p)
			case err != nil:
				ctx.Logger().Warnf("move to %s failed: %v", p, err)
			default:
				a.moves++
			}
			ctx.Response(WaypointsMessage(path))
			return
		}
		ctx.Unhandled()

	default:
		ctx.Unhandled()
	}
}

func (a *SceneActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("Scene is shutdown...")
	return nil
}

func (a *SceneActor) pushSnapshot() {
	if a.snapshotCh == nil {
		return
	}
	snap := a.scene.Snapshot()
	select {
	case a.snapshotCh <- &snap:
	default:
		// UI busy, skip frame
	}
}

func (a *SceneActor) logRate(ctx *actor.ReceiveContext) {
	if time.Since(a.lastLogTime) >= time.Second {
		ctx.Logger().Infof("TICK RATE: %d/sec | Moves: %d | Entities: %d",
			a.ticks, a.moves, a.scene.registry.Len())
		a.ticks = 0
		a.moves = 0
		a.lastLogTime = time.Now()
	}
}

var _ actor.Actor = (*SceneActor)(nil)
