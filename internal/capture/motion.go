package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Motion detection constants.
const (
	// blurKernelSize is the Gaussian blur kernel used to suppress sensor
	// noise before frame differencing.
	blurKernelSize = 21
	// diffThreshold is the per-pixel intensity delta that counts as change.
	diffThreshold = 25
)

// MotionDetector detects motion between consecutive frames with blurred
// frame differencing. The pipeline uses it as a cheap gate: the landmark
// detector only runs while something in front of the camera is moving.
type MotionDetector struct {
	threshold float64
	prevGray  gocv.Mat
	primed    bool
	mu        sync.Mutex
}

// NewMotionDetector creates a MotionDetector. The threshold is the
// percentage of pixels that must change for a frame to count as motion
// (1.0 means 1%).
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Detect compares the frame against the previous one and reports whether
// motion occurred along with the percentage of changed pixels. The first
// frame primes the baseline and never reports motion.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Pt(blurKernelSize, blurKernelSize), 0, 0, gocv.BorderDefault)

	if !m.primed {
		blurred.CopyTo(&m.prevGray)
		m.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, diffThreshold, 255, gocv.ThresholdBinary)

	changed := gocv.CountNonZero(thresh)
	total := thresh.Rows() * thresh.Cols()
	changePercent := float64(changed) / float64(total) * 100.0

	blurred.CopyTo(&m.prevGray)

	return changePercent > m.threshold, changePercent
}

// Reset discards the baseline frame so the next Detect call primes a new
// one.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.primed = false
}

// Close releases the detector's resources.
func (m *MotionDetector) Close() {
	m.Reset()
}

// SetThreshold updates the motion threshold. Non-positive values are
// ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.threshold = threshold
}
