// Package motion plays a path back as a sequence of timed move-to actions.
package motion

import (
	"errors"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultSegmentDuration is the time spent on each move-to.
const DefaultSegmentDuration = 300 * time.Millisecond

var (
	ErrEmptyScript     = errors.New("script has no waypoints")
	ErrInvalidDuration = errors.New("segment duration must be positive")
	ErrUnknownEasing   = errors.New("unknown easing")
)

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
}

// Easing returns the easing function registered under name. An empty name
// is linear.
func Easing(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// Script moves from the first point through every following one, spending
// one segment duration on each move. It ends exactly on the last point.
type Script struct {
	points   []geometry.Vector2D
	segment  time.Duration
	duration float32
	easing   ease.TweenFunc

	index   int
	elapsed float32
	tweenX  *gween.Tween
	tweenY  *gween.Tween

	pos  geometry.Vector2D
	done bool
}

// NewScript builds a script over points. A nil easing is linear.
func NewScript(points []geometry.Vector2D, segment time.Duration, easing ease.TweenFunc) (*Script, error) {
	if len(points) == 0 {
		return nil, ErrEmptyScript
	}
	if segment <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, segment)
	}
	if easing == nil {
		easing = ease.Linear
	}
	s := &Script{
		points:   append([]geometry.Vector2D(nil), points...),
		segment:  segment,
		duration: float32(segment.Seconds()),
		easing:   easing,
		pos:      points[0],
	}
	s.next()
	return s, nil
}

// Update advances the script by dt seconds and returns the current position
// and whether the script has finished. Time left over at the end of a
// segment carries into the next one.
func (s *Script) Update(dt float64) (geometry.Vector2D, bool) {
	if s.done || !(dt > 0) {
		return s.pos, s.done
	}

	remaining := float32(dt)
	for remaining > 0 && !s.done {
		left := s.duration - s.elapsed
		step := remaining
		if step >= left {
			step = left
		}
		x, _ := s.tweenX.Update(step)
		y, _ := s.tweenY.Update(step)
		remaining -= step

		if step == left {
			s.pos = s.points[s.index]
			s.next()
			continue
		}
		s.elapsed += step
		s.pos = geometry.Vector2D{X: float64(x), Y: float64(y)}
	}
	return s.pos, s.done
}

// Position returns where the script currently is.
func (s *Script) Position() geometry.Vector2D {
	return s.pos
}

// Done reports whether the last point was reached.
func (s *Script) Done() bool {
	return s.done
}

// Waypoint returns the index of the point currently moved toward.
func (s *Script) Waypoint() int {
	return s.index
}

// Duration returns the total play time.
func (s *Script) Duration() time.Duration {
	return time.Duration(len(s.points)-1) * s.segment
}

// next starts the move toward the following point.
func (s *Script) next() {
	s.index++
	if s.index >= len(s.points) {
		s.index = len(s.points) - 1
		s.done = true
		return
	}
	to := s.points[s.index]
	s.elapsed = 0
	s.tweenX = gween.New(float32(s.pos.X), float32(to.X), s.duration, s.easing)
	s.tweenY = gween.New(float32(s.pos.Y), float32(to.Y), s.duration, s.easing)
}
