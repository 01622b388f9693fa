package stroke

import (
	"sync/atomic"
	"testing"
	"time"
)

// shortDelay keeps the debounce tests fast while leaving a wide margin
// between "within the delay" and "past the delay" sleeps.
const shortDelay = 30 * time.Millisecond

func TestMachine_StartIsImmediate(t *testing.T) {
	var starts atomic.Int32
	m := NewMachine(shortDelay, func() { starts.Add(1) }, nil)
	defer m.Close()

	if got := m.Update(true); got != StateDrawing {
		t.Fatalf("Update(true) = %v, want drawing", got)
	}
	if starts.Load() != 1 {
		t.Errorf("onStart called %d times, want 1", starts.Load())
	}

	// Staying in the draw gesture does not restart the stroke.
	m.Update(true)
	m.Update(true)
	if starts.Load() != 1 {
		t.Errorf("onStart called %d times after repeated draw frames, want 1", starts.Load())
	}
}

func TestMachine_DebounceAbsorbsFlicker(t *testing.T) {
	var stops atomic.Int32
	m := NewMachine(shortDelay, nil, func() { stops.Add(1) })
	defer m.Close()

	m.Update(true)
	m.Update(false)
	time.Sleep(shortDelay / 3)
	m.Update(true) // re-enter before the timer fires

	time.Sleep(2 * shortDelay)

	if got := m.State(); got != StateDrawing {
		t.Errorf("state after flicker = %v, want drawing", got)
	}
	if stops.Load() != 0 {
		t.Errorf("onStop called %d times, want 0", stops.Load())
	}
}

func TestMachine_DebouncedStopFiresOnce(t *testing.T) {
	var stops atomic.Int32
	m := NewMachine(shortDelay, nil, func() { stops.Add(1) })
	defer m.Close()

	m.Update(true)
	m.Update(false)
	m.Update(false) // restarting the timer must not stack fires

	time.Sleep(3 * shortDelay)

	if got := m.State(); got != StateIdle {
		t.Errorf("state after held release = %v, want idle", got)
	}
	if stops.Load() != 1 {
		t.Errorf("onStop called %d times, want exactly 1", stops.Load())
	}
}

func TestMachine_StrokeContinuity(t *testing.T) {
	m := NewMachine(shortDelay, nil, nil)
	defer m.Close()

	m.Update(true)

	points := [][2]float64{{10, 10}, {12, 11}, {15, 13}, {20, 16}, {26, 20}}

	var dots, lines int
	prev := [2]float64{}
	for i, p := range points {
		cmd, ok := m.Commit(p[0], p[1])
		if !ok {
			t.Fatalf("Commit() not ok on frame %d", i)
		}

		switch cmd.Kind {
		case CommandDot:
			dots++
		case CommandLine:
			lines++
			if cmd.FromX != prev[0] || cmd.FromY != prev[1] {
				t.Errorf("frame %d: segment from (%f, %f), want (%f, %f)",
					i, cmd.FromX, cmd.FromY, prev[0], prev[1])
			}
		}
		if cmd.X != p[0] || cmd.Y != p[1] {
			t.Errorf("frame %d: command at (%f, %f), want (%f, %f)", i, cmd.X, cmd.Y, p[0], p[1])
		}
		prev = p
	}

	if dots != 1 {
		t.Errorf("committed %d dots, want exactly 1", dots)
	}
	if lines != len(points)-1 {
		t.Errorf("committed %d segments, want %d", lines, len(points)-1)
	}
}

func TestMachine_CommitWhileIdle(t *testing.T) {
	m := NewMachine(shortDelay, nil, nil)
	defer m.Close()

	if _, ok := m.Commit(5, 5); ok {
		t.Error("Commit() while idle must not emit a command")
	}
}

func TestMachine_NewStrokeAfterStop(t *testing.T) {
	m := NewMachine(shortDelay, nil, nil)
	defer m.Close()

	m.Update(true)
	m.Commit(10, 10)
	m.Commit(20, 20)

	m.Update(false)
	time.Sleep(3 * shortDelay)

	// Next stroke starts disconnected: a dot, not a segment back to (20, 20).
	m.Update(true)
	cmd, ok := m.Commit(100, 100)
	if !ok {
		t.Fatal("Commit() not ok after restart")
	}
	if cmd.Kind != CommandDot {
		t.Errorf("first commit of new stroke = %v, want dot", cmd.Kind)
	}
}

func TestMachine_ForceIdle(t *testing.T) {
	var stops atomic.Int32
	m := NewMachine(shortDelay, nil, func() { stops.Add(1) })
	defer m.Close()

	m.Update(true)
	m.Commit(10, 10)

	m.ForceIdle()

	if got := m.State(); got != StateIdle {
		t.Errorf("state after ForceIdle = %v, want idle", got)
	}
	if stops.Load() != 1 {
		t.Errorf("onStop called %d times, want 1", stops.Load())
	}
	if _, ok := m.Commit(11, 11); ok {
		t.Error("Commit() after ForceIdle must not emit a command")
	}

	// ForceIdle while already idle does not fire onStop again.
	m.ForceIdle()
	if stops.Load() != 1 {
		t.Errorf("onStop called %d times after idle ForceIdle, want 1", stops.Load())
	}
}

func TestMachine_StaleTimerIsNoOp(t *testing.T) {
	m := NewMachine(shortDelay, nil, nil)
	defer m.Close()

	m.Update(true)
	m.Update(false)
	m.Update(true) // cancels the pending stop

	time.Sleep(3 * shortDelay)

	if got := m.State(); got != StateDrawing {
		t.Errorf("state = %v after canceled stop elapsed, want drawing", got)
	}
}

func TestState_String(t *testing.T) {
	if StateIdle.String() != "idle" || StateDrawing.String() != "drawing" {
		t.Errorf("State strings = %q, %q", StateIdle.String(), StateDrawing.String())
	}
}
