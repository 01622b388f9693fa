package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to script the detection results frame by frame.
type MockDetector struct {
	hands []HandLandmarks
	queue [][]HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// QueueFrames sets a per-call sequence of results. Each Detect call consumes
// one entry; once the queue is drained Detect falls back to the SetHands
// value (or an empty result).
func (m *MockDetector) QueueFrames(frames ...[]HandLandmarks) {
	m.queue = append(m.queue, frames...)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		hands := m.queue[0]
		m.queue = m.queue[1:]
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// PinchLandmarks returns a preset hand pinching thumb and index fingertips
// together near the given normalized position. The remaining fingers are
// extended upward so the pose never classifies as a fist. On a 640x480
// canvas the pinch distance comes out to roughly 8 pixels.
func PinchLandmarks(x, y float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.96,
	}

	lm.Points[Wrist] = Point3D{X: x, Y: y + 0.35, Z: 0.0}

	// Thumb curls in to meet the index fingertip.
	lm.Points[ThumbCMC] = Point3D{X: x + 0.06, Y: y + 0.30, Z: 0.01}
	lm.Points[ThumbMCP] = Point3D{X: x + 0.05, Y: y + 0.20, Z: 0.01}
	lm.Points[ThumbIP] = Point3D{X: x + 0.03, Y: y + 0.10, Z: 0.01}
	lm.Points[ThumbTip] = Point3D{X: x + 0.01, Y: y + 0.01, Z: 0.01}

	// Index finger extended, tip at the requested position.
	lm.Points[IndexMCP] = Point3D{X: x + 0.02, Y: y + 0.25, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: x + 0.01, Y: y + 0.16, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: x + 0.01, Y: y + 0.08, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: x, Y: y, Z: 0.0}

	// Remaining fingers extended upward, clear of the wrist.
	lm.Points[MiddleMCP] = Point3D{X: x - 0.02, Y: y + 0.24, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: x - 0.03, Y: y + 0.14, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: x - 0.03, Y: y + 0.07, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: x - 0.03, Y: y + 0.01, Z: 0.0}

	lm.Points[RingMCP] = Point3D{X: x - 0.06, Y: y + 0.25, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: x - 0.07, Y: y + 0.16, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: x - 0.07, Y: y + 0.09, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: x - 0.07, Y: y + 0.03, Z: 0.0}

	lm.Points[PinkyMCP] = Point3D{X: x - 0.10, Y: y + 0.27, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: x - 0.11, Y: y + 0.20, Z: 0.0}
	lm.Points[PinkyDIP] = Point3D{X: x - 0.11, Y: y + 0.14, Z: 0.0}
	lm.Points[PinkyTip] = Point3D{X: x - 0.11, Y: y + 0.08, Z: 0.0}

	return lm
}

// FistLandmarks returns a preset closed fist: every non-thumb fingertip sits
// at or below the wrist, and thumb and index tips are far apart so the pose
// never reads as a pinch.
func FistLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.93,
	}

	lm.Points[Wrist] = Point3D{X: 0.5, Y: 0.5, Z: 0.0}

	lm.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.50, Z: 0.01}
	lm.Points[ThumbMCP] = Point3D{X: 0.60, Y: 0.52, Z: 0.02}
	lm.Points[ThumbIP] = Point3D{X: 0.63, Y: 0.54, Z: 0.02}
	lm.Points[ThumbTip] = Point3D{X: 0.66, Y: 0.56, Z: 0.02}

	lm.Points[IndexMCP] = Point3D{X: 0.54, Y: 0.46, Z: -0.01}
	lm.Points[IndexPIP] = Point3D{X: 0.54, Y: 0.50, Z: -0.04}
	lm.Points[IndexDIP] = Point3D{X: 0.52, Y: 0.54, Z: -0.04}
	lm.Points[IndexTip] = Point3D{X: 0.50, Y: 0.56, Z: -0.02}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.45, Z: -0.01}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.50, Z: -0.05}
	lm.Points[MiddleDIP] = Point3D{X: 0.48, Y: 0.55, Z: -0.05}
	lm.Points[MiddleTip] = Point3D{X: 0.46, Y: 0.58, Z: -0.02}

	lm.Points[RingMCP] = Point3D{X: 0.46, Y: 0.46, Z: -0.01}
	lm.Points[RingPIP] = Point3D{X: 0.46, Y: 0.51, Z: -0.05}
	lm.Points[RingDIP] = Point3D{X: 0.44, Y: 0.55, Z: -0.05}
	lm.Points[RingTip] = Point3D{X: 0.42, Y: 0.57, Z: -0.02}

	lm.Points[PinkyMCP] = Point3D{X: 0.42, Y: 0.48, Z: -0.01}
	lm.Points[PinkyPIP] = Point3D{X: 0.42, Y: 0.52, Z: -0.04}
	lm.Points[PinkyDIP] = Point3D{X: 0.40, Y: 0.55, Z: -0.04}
	lm.Points[PinkyTip] = Point3D{X: 0.38, Y: 0.56, Z: -0.02}

	return lm
}

// OpenHandLandmarks returns a preset open hand hovering at the given
// normalized index-tip position: all fingers extended above the wrist and
// thumb held wide, so the pose is neither a pinch nor a fist.
func OpenHandLandmarks(x, y float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: x, Y: y + 0.40, Z: 0.0}

	// Thumb extended wide to the side, far from the index tip.
	lm.Points[ThumbCMC] = Point3D{X: x + 0.06, Y: y + 0.35, Z: 0.02}
	lm.Points[ThumbMCP] = Point3D{X: x + 0.12, Y: y + 0.30, Z: 0.03}
	lm.Points[ThumbIP] = Point3D{X: x + 0.17, Y: y + 0.26, Z: 0.03}
	lm.Points[ThumbTip] = Point3D{X: x + 0.22, Y: y + 0.23, Z: 0.03}

	lm.Points[IndexMCP] = Point3D{X: x + 0.02, Y: y + 0.28, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: x + 0.01, Y: y + 0.18, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: x + 0.01, Y: y + 0.09, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: x, Y: y, Z: 0.0}

	lm.Points[MiddleMCP] = Point3D{X: x - 0.03, Y: y + 0.27, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: x - 0.03, Y: y + 0.16, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: x - 0.03, Y: y + 0.06, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: x - 0.03, Y: y - 0.03, Z: 0.0}

	lm.Points[RingMCP] = Point3D{X: x - 0.07, Y: y + 0.28, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: x - 0.08, Y: y + 0.18, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: x - 0.08, Y: y + 0.09, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: x - 0.08, Y: y + 0.01, Z: 0.0}

	lm.Points[PinkyMCP] = Point3D{X: x - 0.11, Y: y + 0.30, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: x - 0.12, Y: y + 0.22, Z: 0.0}
	lm.Points[PinkyDIP] = Point3D{X: x - 0.12, Y: y + 0.14, Z: 0.0}
	lm.Points[PinkyTip] = Point3D{X: x - 0.12, Y: y + 0.07, Z: 0.0}

	return lm
}
