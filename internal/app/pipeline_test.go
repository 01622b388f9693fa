package app

import (
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/airbrush/internal/capture"
	"github.com/ayusman/airbrush/internal/detector"
	"github.com/ayusman/airbrush/internal/stroke"
)

// TestPipeline_EndToEnd runs the real frame loop over a scripted camera and
// detector: alternating frames keep the motion gate open, and the queued
// pinch landmarks drive the machine into the drawing state.
func TestPipeline_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("frame loop test uses real timers")
	}

	dark := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer dark.Close()
	bright := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(250, 250, 250, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer bright.Close()

	camera := capture.NewMockCamera([]*gocv.Mat{&dark, &bright}, true)

	det := detector.NewMockDetector()
	det.SetHands([]detector.HandLandmarks{detector.PinchLandmarks(0.5, 0.4)})

	a, err := New(Config{
		Camera:    camera,
		Detector:  det,
		Width:     160,
		Height:    120,
		StopDelay: testStopDelay,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	a.SetEnabled(true)

	deadline := time.After(3 * time.Second)
	for a.State() != stroke.StateDrawing {
		select {
		case <-deadline:
			t.Fatal("pipeline never reached the drawing state")
		case <-time.After(20 * time.Millisecond):
		}
	}

	status := a.LastFrame()
	if status.State != "drawing" {
		t.Errorf("LastFrame().State = %q, want drawing", status.State)
	}
	if len(status.Hands) != 1 {
		t.Errorf("LastFrame() carries %d hands, want 1", len(status.Hands))
	}
}

// TestPipeline_DisabledSkipsFrames verifies the enable gate: a disabled app
// consumes no camera frames and never touches the stroke machine.
func TestPipeline_DisabledSkipsFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("frame loop test uses real timers")
	}

	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(128, 128, 128, 0), 120, 160, gocv.MatTypeCV8UC3)
	defer frame.Close()

	camera := capture.NewMockCamera([]*gocv.Mat{&frame}, true)

	det := detector.NewMockDetector()
	det.SetHands([]detector.HandLandmarks{detector.PinchLandmarks(0.5, 0.4)})

	a, err := New(Config{
		Camera:    camera,
		Detector:  det,
		Width:     160,
		Height:    120,
		StopDelay: testStopDelay,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	time.Sleep(500 * time.Millisecond)

	if got := a.State(); got != stroke.StateIdle {
		t.Errorf("disabled pipeline state = %v, want idle", got)
	}
	if got := a.LastFrame(); got.Timestamp != 0 {
		t.Error("disabled pipeline processed a frame")
	}
}
