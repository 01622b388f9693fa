package canvas

import (
	"image/color"

	"github.com/ayusman/airbrush/internal/gesture"
)

// Brush size bounds in pixels.
const (
	MinBrushSize = 1
	MaxBrushSize = 20
)

// Eraser geometry is fixed regardless of the configured brush size.
const (
	EraserLineWidth = 20
	EraserDotRadius = 10
)

// Settings is the externally-configured drawing state, read by the pipeline
// once per frame and never mutated by it. Changes apply from the next frame
// onward; an in-flight stroke keeps the style each of its points was
// committed with.
type Settings struct {
	BrushSize      int        `json:"brush_size"`      // stroke width in pixels
	BrushColor     color.RGBA `json:"brush_color"`     // used when Eraser is false
	SmoothingLevel int        `json:"smoothing_level"` // moving-average window
	Eraser         bool       `json:"eraser"`
}

// DefaultSettings returns the settings used before any configuration is
// stored: a thin white brush with moderate smoothing.
func DefaultSettings() Settings {
	return Settings{
		BrushSize:      4,
		BrushColor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		SmoothingLevel: 5,
		Eraser:         false,
	}
}

// Clamp forces numeric fields into their valid ranges and returns the
// result. Clamping happens at every configuration boundary (API handlers,
// store loads); the pipeline itself assumes validated settings.
func (s Settings) Clamp() Settings {
	if s.BrushSize < MinBrushSize {
		s.BrushSize = MinBrushSize
	}
	if s.BrushSize > MaxBrushSize {
		s.BrushSize = MaxBrushSize
	}
	if s.SmoothingLevel < gesture.MinSmoothingLevel {
		s.SmoothingLevel = gesture.MinSmoothingLevel
	}
	if s.SmoothingLevel > gesture.MaxSmoothingLevel {
		s.SmoothingLevel = gesture.MaxSmoothingLevel
	}
	// Strokes are painted with direct pixel writes, so a translucent brush
	// color would not blend anyway; pin it opaque.
	s.BrushColor.A = 255
	return s
}

// strokeStyle is the effective per-commit style resolved from Settings.
type strokeStyle struct {
	color     color.RGBA
	lineWidth int
	dotRadius int
}

// style resolves the effective stroke style. The eraser writes fully
// transparent pixels with fixed geometry; the brush uses the configured
// size and color.
func (s Settings) style() strokeStyle {
	if s.Eraser {
		return strokeStyle{
			color:     color.RGBA{},
			lineWidth: EraserLineWidth,
			dotRadius: EraserDotRadius,
		}
	}

	radius := s.BrushSize / 2
	if radius < 1 {
		radius = 1
	}
	return strokeStyle{
		color:     s.BrushColor,
		lineWidth: s.BrushSize,
		dotRadius: radius,
	}
}
