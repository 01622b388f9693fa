// Package app wires the Airbrush drawing pipeline together: camera frames
// go through the hand detector, the gesture classifier, the stroke state
// machine, and finally the raster compositor, once per frame in that order.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/airbrush/internal/canvas"
	"github.com/ayusman/airbrush/internal/capture"
	"github.com/ayusman/airbrush/internal/detector"
	"github.com/ayusman/airbrush/internal/gesture"
	"github.com/ayusman/airbrush/internal/store"
	"github.com/ayusman/airbrush/internal/stroke"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active tracking.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without motion before dropping back to the
	// idle frame rate.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64

	// Width and Height fix the canvas dimensions. Zero selects the
	// capture defaults (640x480).
	Width  int
	Height int

	// Camera and Detector override the real devices, used by tests.
	Camera   capture.Camera
	Detector detector.Detector

	// StopDelay overrides the stroke stop debounce; zero selects the
	// default 30ms.
	StopDelay time.Duration
}

// FrameStatus is a snapshot of the most recently processed detection
// frame, consumed by the WebSocket broadcast.
type FrameStatus struct {
	Hands         []detector.HandLandmarks `json:"hands"`
	State         string                   `json:"state"`
	CursorX       float64                  `json:"cursor_x"`
	CursorY       float64                  `json:"cursor_y"`
	PinchDistance float64                  `json:"pinch_distance"`
	Fist          bool                     `json:"fist"`
	Timestamp     int64                    `json:"timestamp"`
}

// App owns the full gesture-to-stroke pipeline and its cross-frame state.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	machine  *stroke.Machine
	smoother *gesture.Smoother
	comp     *canvas.Compositor
	width    int
	height   int

	mu        sync.RWMutex
	settings  canvas.Settings
	enabled   bool
	lastFrame FrameStatus
	stopCh    chan struct{}
}

// New creates the App. A nil Config.Detector selects the MediaPipe
// detector; if that fails to initialize the error is returned as-is so the
// operator sees it at startup (a broken detector is not retried).
func New(config Config) (*App, error) {
	width := config.Width
	if width <= 0 {
		width = capture.DefaultWidth
	}
	height := config.Height
	if height <= 0 {
		height = capture.DefaultHeight
	}

	comp, err := canvas.NewCompositor(width, height)
	if err != nil {
		return nil, fmt.Errorf("create canvas: %w", err)
	}

	settings := canvas.DefaultSettings()
	if config.Store != nil {
		persisted, err := config.Store.Settings().Load(settingsToStore(settings))
		if err != nil {
			log.Printf("Failed to load settings, using defaults: %v", err)
		} else {
			settings = settingsFromStore(persisted).Clamp()
		}
	}

	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}

	camera := config.Camera
	if camera == nil {
		camera = capture.NewCamera(config.CameraID)
	}

	det := config.Detector
	if det == nil {
		mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig())
		if err != nil {
			comp.Close()
			return nil, fmt.Errorf("initialize hand detector: %w", err)
		}
		det = mp
	}

	smoother := gesture.NewSmoother(settings.SmoothingLevel)

	a := &App{
		config:   config,
		camera:   camera,
		motion:   capture.NewMotionDetector(motionThreshold),
		detector: det,
		smoother: smoother,
		comp:     comp,
		width:    width,
		height:   height,
		settings: settings,
	}

	// The filter is reset at both stroke boundaries so no buffered
	// samples or momentum leak from one stroke into the next.
	a.machine = stroke.NewMachine(config.StopDelay, smoother.Reset, smoother.Reset)

	return a, nil
}

// Settings returns the current drawing settings.
func (a *App) Settings() canvas.Settings {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.settings
}

// SetSettings clamps, applies, and persists new drawing settings. They
// take effect on the next processed frame; the in-flight stroke is not
// repainted.
func (a *App) SetSettings(s canvas.Settings) canvas.Settings {
	s = s.Clamp()

	a.mu.Lock()
	a.settings = s
	a.mu.Unlock()

	if a.config.Store != nil {
		if err := a.config.Store.Settings().Save(settingsToStore(s)); err != nil {
			log.Printf("Failed to persist settings: %v", err)
		}
	}

	return s
}

// SetEnabled enables or disables frame processing.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether frame processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// LastFrame returns the most recent frame status snapshot.
func (a *App) LastFrame() FrameStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastFrame
}

// ClearCanvas wipes the ink layer and aborts any in-progress stroke. Safe
// to call at any time; clearing an empty canvas is a no-op.
func (a *App) ClearCanvas() {
	a.comp.ClearAll()
	a.machine.ForceIdle()
}

// ExportPNG flattens the ink layer over an opaque black background.
func (a *App) ExportPNG() ([]byte, error) {
	return a.comp.ExportPNG()
}

// SaveSnapshot exports the current canvas and stores it under a fresh ID.
func (a *App) SaveSnapshot(name string) (*store.Snapshot, error) {
	if a.config.Store == nil {
		return nil, fmt.Errorf("no store configured")
	}

	png, err := a.ExportPNG()
	if err != nil {
		return nil, fmt.Errorf("export canvas: %w", err)
	}

	snap := &store.Snapshot{
		ID:     uuid.NewString(),
		Name:   name,
		Width:  a.width,
		Height: a.height,
		PNG:    png,
	}
	if err := a.config.Store.Snapshots().Create(snap); err != nil {
		return nil, fmt.Errorf("store snapshot: %w", err)
	}

	return snap, nil
}

// Start opens the camera and begins the frame loop.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Drawing pipeline started")
	return nil
}

// Stop halts the frame loop and releases the capture and detection
// resources. The canvas stays available for export until Close.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	// No pending stroke stop may fire after teardown.
	a.machine.Close()

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if err := a.detector.Close(); err != nil {
		log.Printf("Error closing detector: %v", err)
	}

	log.Println("Drawing pipeline stopped")
}

// Close stops the pipeline and releases the canvas layers.
func (a *App) Close() {
	a.Stop()
	a.comp.Close()
}

// Store returns the backing store, nil when none is configured.
func (a *App) Store() *store.Store {
	return a.config.Store
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	return a.detector
}

// Compositor returns the canvas compositor.
func (a *App) Compositor() *canvas.Compositor {
	return a.comp
}

// State returns the current stroke state.
func (a *App) State() stroke.State {
	return a.machine.State()
}

// settingsFromStore converts persisted settings to canvas settings.
func settingsFromStore(s store.Settings) canvas.Settings {
	out := canvas.Settings{
		BrushSize:      s.BrushSize,
		SmoothingLevel: s.SmoothingLevel,
		Eraser:         s.Eraser,
	}
	out.BrushColor = canvas.ParseHexColor(s.BrushColor, canvas.DefaultSettings().BrushColor)
	return out
}

// settingsToStore converts canvas settings to their persisted form.
func settingsToStore(s canvas.Settings) store.Settings {
	return store.Settings{
		BrushSize:      s.BrushSize,
		BrushColor:     canvas.FormatHexColor(s.BrushColor),
		SmoothingLevel: s.SmoothingLevel,
		Eraser:         s.Eraser,
	}
}
