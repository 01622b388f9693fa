package app

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/airbrush/internal/canvas"
	"github.com/ayusman/airbrush/internal/capture"
	"github.com/ayusman/airbrush/internal/detector"
	"github.com/ayusman/airbrush/internal/store"
	"github.com/ayusman/airbrush/internal/stroke"
)

// testStopDelay keeps the debounce short so stop-path tests stay fast.
const testStopDelay = 30 * time.Millisecond

func newTestApp(t *testing.T, s *store.Store) *App {
	t.Helper()

	a, err := New(Config{
		Store:     s,
		Detector:  detector.NewMockDetector(),
		Camera:    capture.NewMockCamera(nil, false),
		StopDelay: testStopDelay,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func emptyLayer(data []byte) bool {
	for _, b := range data {
		if b != 0 {
			return false
		}
	}
	return true
}

func TestApp_PinchDrawsStroke(t *testing.T) {
	a := newTestApp(t, nil)

	// Five pinch frames at slowly varying positions draw one
	// continuous stroke.
	positions := []float64{0.50, 0.51, 0.52, 0.53, 0.54}
	for i, x := range positions {
		hand := detector.PinchLandmarks(x, 0.4)
		a.ProcessHands([]detector.HandLandmarks{hand})

		if got := a.State(); got != stroke.StateDrawing {
			t.Fatalf("frame %d: state = %v, want drawing", i, got)
		}
		if !emptyLayer(a.comp.CursorBytes()) {
			t.Errorf("frame %d: cursor layer not empty while drawing", i)
		}
	}

	if emptyLayer(a.comp.InkBytes()) {
		t.Fatal("ink layer empty after five drawing frames")
	}

	// Release the pinch and let the debounce elapse: the stroke ends.
	open := detector.OpenHandLandmarks(0.54, 0.4)
	a.ProcessHands([]detector.HandLandmarks{open})
	time.Sleep(3 * testStopDelay)

	if got := a.State(); got != stroke.StateIdle {
		t.Fatalf("state after held release = %v, want idle", got)
	}

	// The next hover frame shows the cursor again; the ink survives.
	a.ProcessHands([]detector.HandLandmarks{open})
	if emptyLayer(a.comp.CursorBytes()) {
		t.Error("cursor layer empty while hovering")
	}
	if emptyLayer(a.comp.InkBytes()) {
		t.Error("ink layer lost after stroke ended")
	}
}

func TestApp_FlickerKeepsStroke(t *testing.T) {
	a := newTestApp(t, nil)

	pinch := detector.PinchLandmarks(0.5, 0.4)
	open := detector.OpenHandLandmarks(0.5, 0.4)

	a.ProcessHands([]detector.HandLandmarks{pinch})
	a.ProcessHands([]detector.HandLandmarks{open}) // one flickered frame
	a.ProcessHands([]detector.HandLandmarks{pinch})

	time.Sleep(3 * testStopDelay)

	if got := a.State(); got != stroke.StateDrawing {
		t.Errorf("state after single-frame flicker = %v, want drawing", got)
	}
}

func TestApp_FistClearsCanvas(t *testing.T) {
	a := newTestApp(t, nil)

	pinch := detector.PinchLandmarks(0.5, 0.4)
	a.ProcessHands([]detector.HandLandmarks{pinch})
	a.ProcessHands([]detector.HandLandmarks{pinch})

	if emptyLayer(a.comp.InkBytes()) {
		t.Fatal("setup: nothing drawn")
	}

	fist := detector.FistLandmarks()
	a.ProcessHands([]detector.HandLandmarks{fist})

	if !emptyLayer(a.comp.InkBytes()) {
		t.Error("ink layer not cleared by fist")
	}
	if got := a.State(); got != stroke.StateIdle {
		t.Errorf("state after fist = %v, want idle", got)
	}

	status := a.LastFrame()
	if !status.Fist {
		t.Error("frame status does not report the fist")
	}
}

func TestApp_ZeroHandFramePersistsState(t *testing.T) {
	a := newTestApp(t, nil)

	pinch := detector.PinchLandmarks(0.5, 0.4)
	a.ProcessHands([]detector.HandLandmarks{pinch})
	ink := a.comp.InkBytes()

	a.ProcessHands(nil)

	if got := a.State(); got != stroke.StateDrawing {
		t.Errorf("state after zero-hand frame = %v, want drawing (persisted)", got)
	}
	if !bytes.Equal(ink, a.comp.InkBytes()) {
		t.Error("ink layer changed on a zero-hand frame")
	}
}

func TestApp_ClearCanvasIdempotent(t *testing.T) {
	a := newTestApp(t, nil)

	pinch := detector.PinchLandmarks(0.5, 0.4)
	a.ProcessHands([]detector.HandLandmarks{pinch})

	a.ClearCanvas()
	once := a.comp.InkBytes()
	a.ClearCanvas()

	if !bytes.Equal(once, a.comp.InkBytes()) {
		t.Error("second ClearCanvas() produced a different layer state")
	}
	if !emptyLayer(once) {
		t.Error("canvas not empty after ClearCanvas()")
	}
}

func TestApp_SettingsClampedAndPersisted(t *testing.T) {
	s := newTestStore(t)
	a := newTestApp(t, s)

	applied := a.SetSettings(canvas.Settings{
		BrushSize:      999,
		SmoothingLevel: 0,
		Eraser:         true,
	})

	if applied.BrushSize != canvas.MaxBrushSize {
		t.Errorf("BrushSize = %d, want clamped to %d", applied.BrushSize, canvas.MaxBrushSize)
	}
	if applied.SmoothingLevel != 1 {
		t.Errorf("SmoothingLevel = %d, want clamped to 1", applied.SmoothingLevel)
	}

	// A fresh app over the same store comes back with the saved settings.
	b := newTestApp(t, s)
	got := b.Settings()
	if got.BrushSize != canvas.MaxBrushSize || !got.Eraser {
		t.Errorf("reloaded settings = %+v, want persisted values", got)
	}
}

func TestApp_SaveSnapshot(t *testing.T) {
	s := newTestStore(t)
	a := newTestApp(t, s)

	pinch := detector.PinchLandmarks(0.5, 0.4)
	a.ProcessHands([]detector.HandLandmarks{pinch})

	snap, err := a.SaveSnapshot("doodle")
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if snap.ID == "" {
		t.Error("snapshot has no ID")
	}
	if len(snap.PNG) == 0 {
		t.Error("snapshot has no PNG data")
	}

	stored, err := s.Snapshots().GetByID(snap.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !bytes.Equal(stored.PNG, snap.PNG) {
		t.Error("stored PNG differs from exported PNG")
	}
}

func TestApp_EraserModeCursor(t *testing.T) {
	a := newTestApp(t, nil)
	a.SetSettings(canvas.Settings{BrushSize: 4, SmoothingLevel: 5, Eraser: true})

	open := detector.OpenHandLandmarks(0.5, 0.4)
	a.ProcessHands([]detector.HandLandmarks{open})

	if emptyLayer(a.comp.CursorBytes()) {
		t.Error("cursor layer empty while hovering in eraser mode")
	}
}
