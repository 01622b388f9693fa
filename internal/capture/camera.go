// Package capture provides webcam frame capture for the drawing pipeline
// using GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"

	"gocv.io/x/gocv"
)

// Capture defaults. The canvas layers share these dimensions, so they are
// fixed for the lifetime of a session.
const (
	DefaultFPS    = 5
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ErrCameraNotOpen is returned when reading from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// Camera defines the interface for camera capture implementations.
type Camera interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// device captures frames from a physical camera via GoCV.
type device struct {
	deviceID int
	cap      *gocv.VideoCapture
	fps      int
	open     bool
	mu       sync.Mutex
}

// NewCamera creates a Camera for the given device ID. Capture starts at
// the idle frame rate; the pipeline raises it when motion is detected.
func NewCamera(deviceID int) Camera {
	return &device{
		deviceID: deviceID,
		fps:      DefaultFPS,
	}
}

// Open opens the camera and pins the capture resolution to the canvas
// dimensions.
func (d *device) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.open {
		return nil
	}

	cap, err := gocv.OpenVideoCapture(d.deviceID)
	if err != nil {
		return err
	}

	cap.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	cap.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)
	cap.Set(gocv.VideoCaptureFPS, float64(d.fps))

	d.cap = cap
	d.open = true
	return nil
}

// Close releases the camera device.
func (d *device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open || d.cap == nil {
		d.open = false
		return nil
	}

	err := d.cap.Close()
	d.cap = nil
	d.open = false
	return err
}

// ReadFrame reads a single frame. The caller owns the returned Mat and
// must Close it.
func (d *device) ReadFrame() (*gocv.Mat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open || d.cap == nil {
		return nil, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := d.cap.Read(&mat); !ok {
		mat.Close()
		return nil, errors.New("failed to read frame from camera")
	}
	if mat.Empty() {
		mat.Close()
		return nil, errors.New("captured frame is empty")
	}

	return &mat, nil
}

// SetFPS changes the capture frame rate. Non-positive values are ignored.
func (d *device) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.fps = fps
	if d.cap != nil {
		d.cap.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current capture frame rate.
func (d *device) FPS() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fps
}

// IsOpen reports whether the camera is open.
func (d *device) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}
