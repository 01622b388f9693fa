// Package detector provides hand landmark detection interfaces and types
// for the Airbrush drawing pipeline.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Fingertips lists the landmark indices of the four non-thumb fingertips,
// the points inspected by the fist classifier.
var Fingertips = [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}

// Point3D is a single landmark position. X and Y are normalized to [0,1]
// relative to the source frame's width and height. Z is the depth estimate
// reported by the model; the drawing pipeline does not use it.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks holds the 21 landmarks of one detected hand.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}
