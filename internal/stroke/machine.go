// Package stroke owns the draw/idle state machine that turns per-frame
// gesture signals into drawing commands. Stroke starts are immediate;
// stroke stops are debounced through a single cancelable timer so one
// flickering detection frame does not break stroke continuity.
package stroke

import (
	"sync"
	"time"
)

// DefaultStopDelay is how long the draw gesture must stay released before
// a stroke actually ends. False starts are visually harmless, false stops
// split strokes, so starting is instant and stopping is delayed.
const DefaultStopDelay = 30 * time.Millisecond

// State is the drawing state of the tracked hand.
type State int

const (
	// StateIdle means no stroke is in progress; the cursor hovers.
	StateIdle State = iota
	// StateDrawing means a stroke is in progress and each frame commits
	// one point to the ink layer.
	StateDrawing
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// CommandKind discriminates the two ink mutations a stroke can emit.
type CommandKind int

const (
	// CommandDot paints a filled circle at (X, Y). Emitted for the first
	// point of a stroke so an isolated tap still leaves a mark.
	CommandDot CommandKind = iota
	// CommandLine paints a segment from (FromX, FromY) to (X, Y).
	CommandLine
)

// Command is one drawing command emitted by Commit.
type Command struct {
	Kind         CommandKind
	X, Y         float64
	FromX, FromY float64 // segment start, only set for CommandLine
}

// session is the record of an in-progress stroke: the last committed point
// and whether the next commit starts a new stroke. It is reset on every
// idle transition and on a forced clear.
type session struct {
	lastX, lastY float64
	hasLast      bool
	newStroke    bool
}

func (s *session) reset() {
	s.hasLast = false
	s.newStroke = true
}

// Machine is the stroke state machine. Update drives one transition per
// detection frame; Commit records one point per drawing frame and reports
// what to paint.
//
// The stop timer fires on its own goroutine, so all state is guarded by a
// mutex. A generation counter makes a stale fire (one that lost the race
// with its own cancellation) a no-op. The onStart/onStop hooks run with
// the lock held and must not call back into the Machine.
type Machine struct {
	mu        sync.Mutex
	state     State
	sess      session
	stopDelay time.Duration
	stopTimer *time.Timer
	stopSeq   uint64
	onStart   func()
	onStop    func()
}

// NewMachine creates a Machine in the idle state. stopDelay <= 0 selects
// DefaultStopDelay. onStart runs on every idle->drawing transition and
// onStop on every drawing->idle transition (including forced clears);
// either may be nil. The orchestrator uses them to reset the smoothing
// filter at stroke boundaries.
func NewMachine(stopDelay time.Duration, onStart, onStop func()) *Machine {
	if stopDelay <= 0 {
		stopDelay = DefaultStopDelay
	}
	m := &Machine{
		state:     StateIdle,
		stopDelay: stopDelay,
		onStart:   onStart,
		onStop:    onStop,
	}
	m.sess.reset()
	return m
}

// Update drives one state transition from the per-frame draw signal and
// returns the state after the transition.
//
// drawing=true cancels any pending stop and, from idle, starts a stroke
// immediately. drawing=false while a stroke is in progress restarts the
// stop timer; the stroke only ends when the timer fires without an
// intervening draw frame.
func (m *Machine) Update(drawing bool) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if drawing {
		m.cancelStopLocked()
		if m.state == StateIdle {
			m.state = StateDrawing
			m.sess.reset()
			if m.onStart != nil {
				m.onStart()
			}
		}
		return m.state
	}

	if m.state == StateDrawing {
		m.scheduleStopLocked()
	}
	return m.state
}

// Commit records one smoothed point of the in-progress stroke and returns
// the drawing command for it. ok is false when no stroke is in progress,
// in which case nothing may be painted.
func (m *Machine) Commit(x, y float64) (cmd Command, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateDrawing {
		return Command{}, false
	}

	if !m.sess.newStroke && m.sess.hasLast {
		cmd = Command{
			Kind:  CommandLine,
			X:     x,
			Y:     y,
			FromX: m.sess.lastX,
			FromY: m.sess.lastY,
		}
	} else {
		// First point of the stroke, or the previous point went missing:
		// paint a dot either way.
		cmd = Command{Kind: CommandDot, X: x, Y: y}
	}

	m.sess.lastX = x
	m.sess.lastY = y
	m.sess.hasLast = true
	m.sess.newStroke = false

	return cmd, true
}

// ForceIdle aborts any in-progress stroke immediately, bypassing the stop
// debounce. Used when a fist clears the canvas: the session must come back
// in a fresh new-stroke condition regardless of pinch state.
func (m *Machine) ForceIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelStopLocked()
	wasDrawing := m.state == StateDrawing
	m.state = StateIdle
	m.sess.reset()
	if wasDrawing && m.onStop != nil {
		m.onStop()
	}
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Close cancels any pending stop timer. The machine stays usable but no
// deferred transition will fire after Close returns.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelStopLocked()
}

// cancelStopLocked invalidates and stops any pending stop timer.
func (m *Machine) cancelStopLocked() {
	m.stopSeq++
	if m.stopTimer != nil {
		m.stopTimer.Stop()
		m.stopTimer = nil
	}
}

// scheduleStopLocked (re)starts the stop timer. The previous timer is
// always cleared first so at most one pending timer exists at any time.
func (m *Machine) scheduleStopLocked() {
	m.cancelStopLocked()
	seq := m.stopSeq
	m.stopTimer = time.AfterFunc(m.stopDelay, func() {
		m.fireStop(seq)
	})
}

// fireStop ends the stroke when the stop timer elapses. A fire whose
// generation no longer matches lost a race with cancellation and does
// nothing.
func (m *Machine) fireStop(seq uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if seq != m.stopSeq || m.state != StateDrawing {
		return
	}

	m.state = StateIdle
	m.sess.reset()
	m.stopTimer = nil
	if m.onStop != nil {
		m.onStop()
	}
}
