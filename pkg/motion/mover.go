package motion

import "github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"

// Mover runs at most one script at a time. A request made while a script is
// still playing is ignored.
type Mover struct {
	script *Script
}

// Start begins s and reports whether it was accepted.
func (m *Mover) Start(s *Script) bool {
	if s == nil || m.Moving() {
		return false
	}
	m.script = s
	return true
}

// Moving reports whether a script is playing.
func (m *Mover) Moving() bool {
	return m.script != nil
}

// Update advances the running script. It reports false when idle. The frame
// on which the script finishes still reports true, with the final point.
func (m *Mover) Update(dt float64) (geometry.Vector2D, bool) {
	if m.script == nil {
		return geometry.Vector2D{}, false
	}
	pos, done := m.script.Update(dt)
	if done {
		m.script = nil
	}
	return pos, true
}

// Stop abandons the running script where it is.
func (m *Mover) Stop() {
	m.script = nil
}
