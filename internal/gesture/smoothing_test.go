package gesture

import (
	"math"
	"testing"
)

func TestSmoother_FirstSampleUnchanged(t *testing.T) {
	s := NewSmoother(5)

	x, y := s.Smooth(123.0, 456.0)

	if x != 123.0 || y != 456.0 {
		t.Errorf("first Smooth() = (%f, %f), want exactly (123, 456)", x, y)
	}
}

func TestSmoother_ResetIndependence(t *testing.T) {
	s := NewSmoother(4)

	// Build up buffer and velocity state.
	s.Smooth(10, 10)
	s.Smooth(50, 80)
	s.Smooth(90, 160)

	s.Reset()

	x, y := s.Smooth(200.0, 300.0)
	if x != 200.0 || y != 300.0 {
		t.Errorf("Smooth() after Reset() = (%f, %f), want exactly (200, 300)", x, y)
	}
}

func TestSmoother_Convergence(t *testing.T) {
	for _, level := range []int{1, 3, 10} {
		s := NewSmoother(level)

		var x, y float64
		for i := 0; i < 50; i++ {
			x, y = s.Smooth(320.0, 240.0)
		}

		if math.Abs(x-320.0) > 1e-6 || math.Abs(y-240.0) > 1e-6 {
			t.Errorf("level %d: converged to (%f, %f), want (320, 240)", level, x, y)
		}
	}
}

func TestSmoother_MatchesReference(t *testing.T) {
	// Reference computation of the documented algorithm: bounded buffer,
	// arithmetic mean, velocity = 0.3*delta + 0.7*velocity, output =
	// avg + 0.2*velocity.
	const level = 3
	inputs := [][2]float64{
		{0, 0}, {10, 4}, {20, 8}, {30, 12}, {25, 10}, {15, 6},
	}

	s := NewSmoother(level)

	var buf [][2]float64
	var velX, velY, lastX, lastY float64
	seen := false

	for i, in := range inputs {
		if len(buf) >= level {
			buf = buf[1:]
		}
		buf = append(buf, in)

		var avgX, avgY float64
		for _, p := range buf {
			avgX += p[0]
			avgY += p[1]
		}
		avgX /= float64(len(buf))
		avgY /= float64(len(buf))

		wantX, wantY := avgX, avgY
		if seen {
			velX = 0.3*(avgX-lastX) + 0.7*velX
			velY = 0.3*(avgY-lastY) + 0.7*velY
			wantX = avgX + 0.2*velX
			wantY = avgY + 0.2*velY
		}
		lastX, lastY = wantX, wantY
		seen = true

		gotX, gotY := s.Smooth(in[0], in[1])
		if math.Abs(gotX-wantX) > 1e-12 || math.Abs(gotY-wantY) > 1e-12 {
			t.Fatalf("step %d: Smooth() = (%f, %f), want (%f, %f)", i, gotX, gotY, wantX, wantY)
		}
	}
}

func TestSmoother_LevelClamping(t *testing.T) {
	if got := NewSmoother(0).Level(); got != MinSmoothingLevel {
		t.Errorf("NewSmoother(0).Level() = %d, want %d", got, MinSmoothingLevel)
	}
	if got := NewSmoother(99).Level(); got != MaxSmoothingLevel {
		t.Errorf("NewSmoother(99).Level() = %d, want %d", got, MaxSmoothingLevel)
	}

	s := NewSmoother(5)
	s.SetLevel(-3)
	if s.Level() != MinSmoothingLevel {
		t.Errorf("SetLevel(-3) left level %d, want %d", s.Level(), MinSmoothingLevel)
	}
}

func TestSmoother_ShrinkEvictsOldest(t *testing.T) {
	s := NewSmoother(5)
	for i := 0; i < 5; i++ {
		s.Smooth(float64(i*10), 0)
	}

	// Shrink to 1: only the newest sample survives, so a constant input
	// now dominates the average immediately.
	s.SetLevel(1)
	x, _ := s.Smooth(40, 0)

	// Buffer holds only {40}; the averaged part is exactly 40, and any
	// difference comes from velocity damping alone.
	if math.Abs(x-40.0) > velocityGain*math.Abs(s.velX)+1e-9 {
		t.Errorf("Smooth() after shrink = %f, want 40 plus velocity term", x)
	}
}
