package detector

import "gocv.io/x/gocv"

// Detector defines the interface for hand detection implementations.
//
// Implementations must support at most one in-flight Detect call at a time;
// callers submit a new frame only after the previous submission has
// returned. Backpressure is call-discipline, not buffering.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// A zero-hand result is valid and returns an empty slice, not an error.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect. The drawing
	// pipeline only consumes the first hand, so the default is 1.
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        1,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}
