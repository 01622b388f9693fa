package capture

import (
	"errors"
	"testing"

	"gocv.io/x/gocv"
)

func solidFrame(t *testing.T, value float64) *gocv.Mat {
	t.Helper()

	mat := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(value, value, value, 0), 120, 160, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { mat.Close() })
	return &mat
}

func TestMockCamera_Playback(t *testing.T) {
	frames := []*gocv.Mat{solidFrame(t, 0), solidFrame(t, 128)}
	cam := NewMockCamera(frames, false)

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("ReadFrame() before Open error = %v, want ErrCameraNotOpen", err)
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for i := range frames {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		frame.Close()
	}

	if _, err := cam.ReadFrame(); err == nil {
		t.Error("ReadFrame() past the end should fail without loop")
	}
}

func TestMockCamera_Loop(t *testing.T) {
	cam := NewMockCamera([]*gocv.Mat{solidFrame(t, 64)}, true)
	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for i := 0; i < 5; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame() %d error = %v", i, err)
		}
		frame.Close()
	}
}

func TestMotionDetector_FirstFramePrimes(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	detected, percent := m.Detect(solidFrame(t, 0))
	if detected || percent != 0 {
		t.Errorf("first frame: detected=%v percent=%f, want false/0", detected, percent)
	}
}

func TestMotionDetector_StaticScene(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	m.Detect(solidFrame(t, 100))
	detected, percent := m.Detect(solidFrame(t, 100))

	if detected {
		t.Errorf("identical frames reported motion (%.2f%% changed)", percent)
	}
}

func TestMotionDetector_SceneChange(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	m.Detect(solidFrame(t, 0))
	detected, percent := m.Detect(solidFrame(t, 255))

	if !detected {
		t.Errorf("full-frame change not detected (%.2f%% changed)", percent)
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	m := NewMotionDetector(1.0)
	defer m.Close()

	m.Detect(solidFrame(t, 0))
	m.Reset()

	// After a reset the next frame primes again, so even a big scene
	// change must not report motion.
	detected, _ := m.Detect(solidFrame(t, 255))
	if detected {
		t.Error("frame right after Reset reported motion")
	}
}
