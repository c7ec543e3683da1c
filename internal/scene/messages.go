package scene

import (
	"time"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/navgraph"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Field names of the structpb messages understood by SceneActor.
const (
	fieldX         = "x"
	fieldY         = "y"
	fieldDragX     = "drag_x"
	fieldDragY     = "drag_y"
	fieldWaypoints = "waypoints"
)

// TickMessage carries a reading of the sender's clock. The actor advances
// the scene by the time passed since the previous reading.
func TickMessage(now time.Duration) *durationpb.Duration {
	return durationpb.New(now)
}

// MoveMessage asks the actor to route the player to p. The reply carries
// the waypoints.
func MoveMessage(p geometry.Vector2D) *structpb.Struct {
	return pointStruct(fieldX, fieldY, p)
}

// DragMessage asks the actor to put the player at p.
func DragMessage(p geometry.Vector2D) *structpb.Struct {
	return pointStruct(fieldDragX, fieldDragY, p)
}

// PauseMessage pauses the scene when paused is true and resumes it otherwise.
func PauseMessage(paused bool) *wrapperspb.BoolValue {
	return wrapperspb.Bool(paused)
}

// ClearPathMessage asks the actor to drop the displayed path.
func ClearPathMessage() *emptypb.Empty {
	return &emptypb.Empty{}
}

// WaypointsMessage encodes a path as {"waypoints": [{"x":..,"y":..}, ...]}.
func WaypointsMessage(path navgraph.Path) *structpb.Struct {
	points := path.Points()
	values := make([]*structpb.Value, 0, len(points))
	for _, p := range points {
		values = append(values, structpb.NewStructValue(pointStruct(fieldX, fieldY, p)))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		fieldWaypoints: structpb.NewListValue(&structpb.ListValue{Values: values}),
	}}
}

// Waypoints decodes a WaypointsMessage. Malformed entries are skipped.
func Waypoints(msg *structpb.Struct) []geometry.Vector2D {
	list := msg.GetFields()[fieldWaypoints].GetListValue()
	points := make([]geometry.Vector2D, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		if p, ok := pointFrom(v.GetStructValue(), fieldX, fieldY); ok {
			points = append(points, p)
		}
	}
	return points
}

func pointStruct(kx, ky string, p geometry.Vector2D) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		kx: structpb.NewNumberValue(p.X),
		ky: structpb.NewNumberValue(p.Y),
	}}
}

func pointFrom(msg *structpb.Struct, kx, ky string) (geometry.Vector2D, bool) {
	x, okX := msg.GetFields()[kx].GetKind().(*structpb.Value_NumberValue)
	y, okY := msg.GetFields()[ky].GetKind().(*structpb.Value_NumberValue)
	if !okX || !okY {
		return geometry.Vector2D{}, false
	}
	return geometry.Vector2D{X: x.NumberValue, Y: y.NumberValue}, true
}
