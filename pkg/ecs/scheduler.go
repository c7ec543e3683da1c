package ecs

import (
	"fmt"
	"math"
	"time"

	golog "github.com/tochemey/goakt/v3/log"
)

// DefaultMaxStep is the longest simulated step, in seconds.
const DefaultMaxStep = 1.0 / 60

// Scheduler drives one frame: PreStep adapters, every system in
// registration order, then PostStep adapters. Frame time is clamped to
// MaxStep so a long stall never produces a huge jump.
type Scheduler struct {
	systems  []System
	adapters []Adapter

	maxStep float64
	paused  bool

	last    time.Duration
	hasLast bool

	frames  uint64
	elapsed float64

	logger golog.Logger
}

// NewScheduler creates a scheduler running systems in the given order.
func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{
		maxStep: DefaultMaxStep,
		logger:  golog.DiscardLogger,
	}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

// Add appends a system to the update order.
func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Systems returns the systems in update order.
func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}

// AddAdapter appends a sync adapter. Adapters run in the order added.
func (s *Scheduler) AddAdapter(a Adapter) {
	if a == nil {
		return
	}
	s.adapters = append(s.adapters, a)
}

// Adapters returns the number of registered adapters.
func (s *Scheduler) Adapters() int {
	return len(s.adapters)
}

// SetLogger routes scheduler logs to logger.
func (s *Scheduler) SetLogger(logger golog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetMaxStep changes the clamp, in seconds.
func (s *Scheduler) SetMaxStep(step float64) error {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return fmt.Errorf("max step must be a positive number of seconds, got %v", step)
	}
	s.maxStep = step
	return nil
}

// MaxStep returns the clamp in seconds.
func (s *Scheduler) MaxStep() float64 {
	return s.maxStep
}

// Tick runs one frame of dt seconds, clamped to MaxStep, and returns the
// step actually simulated. Nothing runs while paused or for a non positive
// dt.
func (s *Scheduler) Tick(dt float64) float64 {
	dt = s.Clamp(dt)
	if dt > 0 {
		s.step(dt)
	}
	return dt
}

// Clamp returns the step Tick would simulate for dt: 0 while paused or for
// a non positive dt, at most MaxStep otherwise.
func (s *Scheduler) Clamp(dt float64) float64 {
	if s.paused || !(dt > 0) {
		return 0
	}
	return math.Min(dt, s.maxStep)
}

// Advance runs a frame for the time elapsed since the previous call. The
// first call after creation or Resume only sets the baseline.
func (s *Scheduler) Advance(now time.Duration) float64 {
	return s.Tick(s.Since(now))
}

// Since moves the clock baseline to now and returns the seconds elapsed
// since the previous reading, unclamped. It returns 0 while paused and for
// the first reading after creation or Resume.
func (s *Scheduler) Since(now time.Duration) float64 {
	if s.paused {
		return 0
	}
	if !s.hasLast {
		s.last = now
		s.hasLast = true
		return 0
	}
	dt := (now - s.last).Seconds()
	s.last = now
	return dt
}

// Pause stops time. Frames requested while paused do nothing.
func (s *Scheduler) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.logger.Debugf("scheduler paused after %d frames", s.frames)
}

// Resume restarts time from a fresh baseline, so the paused interval never
// reaches the systems.
func (s *Scheduler) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	s.hasLast = false
	s.logger.Debug("scheduler resumed")
}

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Frames returns the number of frames run.
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// Elapsed returns the simulated time in seconds.
func (s *Scheduler) Elapsed() float64 {
	return s.elapsed
}

func (s *Scheduler) step(dt float64) {
	s.pruneAdapters()

	for _, a := range s.adapters {
		a.Sync(PreStep)
	}
	for _, sys := range s.systems {
		sys.Update(dt)
	}
	for _, a := range s.adapters {
		a.Sync(PostStep)
	}

	s.frames++
	s.elapsed += dt
}

func (s *Scheduler) pruneAdapters() {
	kept := s.adapters[:0]
	for _, a := range s.adapters {
		if e, ok := a.(Expirer); ok && e.Expired() {
			continue
		}
		kept = append(kept, a)
	}
	for i := len(kept); i < len(s.adapters); i++ {
		s.adapters[i] = nil
	}
	s.adapters = kept
}
