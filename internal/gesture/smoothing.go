package gesture

import "sync"

// Smoothing tuning constants. The moving average removes jitter but lags
// behind direction changes; blending in exponentially-decayed velocity
// restores responsiveness without reintroducing the raw noise.
const (
	velocityBlend = 0.3 // weight of the newest delta in the velocity update
	velocityDecay = 0.7 // weight of the carried-over velocity
	velocityGain  = 0.2 // how much velocity nudges the averaged output
)

// Smoothing level bounds. The level is the moving-average window size;
// larger values trade lag for stability and are live-tunable per frame.
const (
	MinSmoothingLevel = 1
	MaxSmoothingLevel = 10
)

type sample struct {
	x, y float64
}

// Smoother is a stateful moving-average filter with velocity damping,
// applied to the raw fingertip position once per drawing frame. It is
// reset on every stroke start and stroke stop so no momentum leaks
// between strokes.
//
// The mutex exists because Reset is invoked from the stroke stop timer,
// which fires on its own goroutine.
type Smoother struct {
	mu    sync.Mutex
	level int
	buf   []sample
	velX  float64
	velY  float64
	lastX float64
	lastY float64
	seen  bool
}

// NewSmoother creates a Smoother with the given moving-average window.
// Levels outside [MinSmoothingLevel, MaxSmoothingLevel] are clamped.
func NewSmoother(level int) *Smoother {
	s := &Smoother{level: MinSmoothingLevel}
	s.SetLevel(level)
	return s
}

// SetLevel changes the moving-average window size, clamping to the valid
// range. Shrinking the window evicts the oldest buffered samples.
func (s *Smoother) SetLevel(level int) {
	if level < MinSmoothingLevel {
		level = MinSmoothingLevel
	}
	if level > MaxSmoothingLevel {
		level = MaxSmoothingLevel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = level
	if len(s.buf) > level {
		s.buf = append(s.buf[:0], s.buf[len(s.buf)-level:]...)
	}
}

// Level returns the current moving-average window size.
func (s *Smoother) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Smooth folds one raw coordinate pair into the filter and returns the
// smoothed position. The first call after a reset returns the input
// unchanged (the average of a single sample, with zero velocity).
func (s *Smoother) Smooth(rawX, rawY float64) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Append, evicting the oldest sample on overflow.
	if len(s.buf) >= s.level {
		copy(s.buf, s.buf[1:])
		s.buf = s.buf[:s.level-1]
	}
	s.buf = append(s.buf, sample{x: rawX, y: rawY})

	var avgX, avgY float64
	for _, p := range s.buf {
		avgX += p.x
		avgY += p.y
	}
	avgX /= float64(len(s.buf))
	avgY /= float64(len(s.buf))

	outX, outY := avgX, avgY
	if s.seen {
		s.velX = velocityBlend*(avgX-s.lastX) + velocityDecay*s.velX
		s.velY = velocityBlend*(avgY-s.lastY) + velocityDecay*s.velY
		outX = avgX + velocityGain*s.velX
		outY = avgY + velocityGain*s.velY
	}

	s.lastX = outX
	s.lastY = outY
	s.seen = true

	return outX, outY
}

// Reset clears the sample buffer, the last output, and the velocity state.
// Called on every stroke start and stroke stop, never mid-stroke.
func (s *Smoother) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = s.buf[:0]
	s.velX = 0
	s.velY = 0
	s.lastX = 0
	s.lastY = 0
	s.seen = false
}
