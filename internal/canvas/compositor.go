// Package canvas owns the two raster layers of the drawing surface: the
// persistent ink layer, mutated only by stroke commits and full clears,
// and the ephemeral cursor layer, redrawn from scratch every frame.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ayusman/airbrush/internal/stroke"
)

// Cursor geometry.
const (
	CursorRadius       = 15
	EraserCursorRadius = 20
	cursorDotRadius    = 3
	cursorRingWidth    = 2
)

// ErrClosed is returned when exporting from a compositor whose layers have
// been released.
var ErrClosed = errors.New("compositor is closed")

// cursorRing is the translucent ring color; the center dot is solid white.
var cursorRing = color.RGBA{R: 255, G: 255, B: 255, A: 160}

// Compositor applies drawing commands to the ink layer and redraws the
// cursor overlay. Both layers are BGRA Mats of identical, fixed dimensions;
// transparent pixels are "empty". Because OpenCV drawing primitives write
// pixel values directly instead of alpha-blending, painting a fully
// transparent color is the erase operation.
type Compositor struct {
	mu     sync.Mutex
	width  int
	height int
	ink    gocv.Mat
	cursor gocv.Mat
	closed bool
}

// NewCompositor creates a compositor with empty ink and cursor layers of
// the given pixel dimensions.
func NewCompositor(width, height int) (*Compositor, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas dimensions %dx%d", width, height)
	}

	empty := gocv.NewScalar(0, 0, 0, 0)
	return &Compositor{
		width:  width,
		height: height,
		ink:    gocv.NewMatWithSizeFromScalar(empty, height, width, gocv.MatTypeCV8UC4),
		cursor: gocv.NewMatWithSizeFromScalar(empty, height, width, gocv.MatTypeCV8UC4),
	}, nil
}

// Width returns the layer width in pixels.
func (c *Compositor) Width() int { return c.width }

// Height returns the layer height in pixels.
func (c *Compositor) Height() int { return c.height }

// Apply paints one stroke command onto the ink layer using the style
// resolved from the given settings. This and ClearAll are the only
// operations that write ink pixels.
func (c *Compositor) Apply(cmd stroke.Command, s Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	st := s.style()

	switch cmd.Kind {
	case stroke.CommandDot:
		gocv.Circle(&c.ink, pixelPt(cmd.X, cmd.Y), st.dotRadius, st.color, -1)
	case stroke.CommandLine:
		from := pixelPt(cmd.FromX, cmd.FromY)
		to := pixelPt(cmd.X, cmd.Y)
		gocv.Line(&c.ink, from, to, st.color, st.lineWidth)
		// OpenCV thick lines have flat ends; cap both endpoints with
		// filled circles so consecutive segments join round.
		capRadius := st.lineWidth / 2
		if capRadius >= 1 {
			gocv.Circle(&c.ink, from, capRadius, st.color, -1)
			gocv.Circle(&c.ink, to, capRadius, st.color, -1)
		}
	}
}

// ClearAll wipes the entire ink layer back to transparent. Clearing an
// already-empty layer is a no-op with the same observable result.
func (c *Compositor) ClearAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.ink.SetTo(gocv.NewScalar(0, 0, 0, 0))
}

// RenderCursor redraws the cursor layer from scratch. While drawing, the
// layer stays empty; otherwise it shows a translucent ring (wider in
// eraser mode) with a small solid dot at the tracked fingertip.
func (c *Compositor) RenderCursor(x, y float64, drawing, eraser bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.cursor.SetTo(gocv.NewScalar(0, 0, 0, 0))
	if drawing {
		return
	}

	radius := CursorRadius
	if eraser {
		radius = EraserCursorRadius
	}

	center := pixelPt(x, y)
	gocv.Circle(&c.cursor, center, radius, cursorRing, cursorRingWidth)
	gocv.Circle(&c.cursor, center, cursorDotRadius, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
}

// ExportPNG flattens the ink layer onto an opaque black background and
// encodes it as a PNG with no alpha channel. The cursor layer is never
// included and the ink layer is left untouched, including on failure.
func (c *Compositor) ExportPNG() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}

	flat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), c.height, c.width, gocv.MatTypeCV8UC3)
	defer flat.Close()

	src, err := c.ink.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("read ink layer: %w", err)
	}
	dst, err := flat.DataPtrUint8()
	if err != nil {
		return nil, fmt.Errorf("access output buffer: %w", err)
	}

	// Composite over black: out = ink * alpha. The background contributes
	// nothing, so this is a straight premultiply.
	pixels := c.width * c.height
	for i := 0; i < pixels; i++ {
		a := uint16(src[i*4+3])
		dst[i*3+0] = uint8(uint16(src[i*4+0]) * a / 255)
		dst[i*3+1] = uint8(uint16(src[i*4+1]) * a / 255)
		dst[i*3+2] = uint8(uint16(src[i*4+2]) * a / 255)
	}

	buf, err := gocv.IMEncode(".png", flat)
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// InkBytes returns a copy of the raw BGRA ink layer contents.
func (c *Compositor) InkBytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	return c.ink.ToBytes()
}

// CursorBytes returns a copy of the raw BGRA cursor layer contents.
func (c *Compositor) CursorBytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	return c.cursor.ToBytes()
}

// Close releases both layers. Drawing operations on a closed compositor
// are silent no-ops; exports fail with ErrClosed.
func (c *Compositor) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.ink.Close()
	c.cursor.Close()
}

// pixelPt rounds a smoothed float position to the nearest pixel.
func pixelPt(x, y float64) image.Point {
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}
