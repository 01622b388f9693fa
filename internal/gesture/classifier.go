// Package gesture converts raw hand landmarks into the drawing signals
// consumed by the stroke state machine: a pinch distance, a draw/no-draw
// boolean, and a fist test. It also owns the jitter-reducing smoothing
// filter applied to fingertip positions while drawing.
package gesture

import (
	"math"

	"github.com/ayusman/airbrush/internal/detector"
)

// PinchThresholdPx is the pinch distance, in canvas pixels, below which the
// thumb and index fingertips count as a draw gesture. The comparison is
// strict: a distance of exactly 40 does not draw.
const PinchThresholdPx = 40.0

// MirrorToPixel maps a normalized landmark to canvas pixel coordinates,
// mirroring horizontally so the drawing matches a front-facing camera view.
func MirrorToPixel(p detector.Point3D, width, height int) (float64, float64) {
	return (1.0 - p.X) * float64(width), p.Y * float64(height)
}

// PinchDistance returns the Euclidean distance between the thumb tip and
// the index fingertip in canvas pixel space.
func PinchDistance(hand *detector.HandLandmarks, width, height int) float64 {
	tx, ty := MirrorToPixel(hand.Points[detector.ThumbTip], width, height)
	ix, iy := MirrorToPixel(hand.Points[detector.IndexTip], width, height)

	dx := tx - ix
	dy := ty - iy
	return math.Sqrt(dx*dx + dy*dy)
}

// IsDrawGesture reports whether the hand is pinching tightly enough to draw.
func IsDrawGesture(hand *detector.HandLandmarks, width, height int) bool {
	return PinchDistance(hand, width, height) < PinchThresholdPx
}

// IsFist reports whether the hand is a closed fist: every non-thumb
// fingertip sits at or below the wrist (screen y grows downward). A single
// extended finger disqualifies the fist.
func IsFist(hand *detector.HandLandmarks) bool {
	wristY := hand.Points[detector.Wrist].Y
	for _, idx := range detector.Fingertips {
		if hand.Points[idx].Y < wristY {
			return false
		}
	}
	return true
}
