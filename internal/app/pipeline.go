package app

import (
	"log"
	"time"

	"github.com/ayusman/airbrush/internal/detector"
	"github.com/ayusman/airbrush/internal/gesture"
	"github.com/ayusman/airbrush/internal/stroke"
)

// runPipeline is the frame loop. It reads camera frames at the current
// rate, gates the landmark detector behind motion detection, and feeds
// each detection result through ProcessHands.
//
// Loop behavior:
// 1. Start in idle mode (IdleFPS)
// 2. On motion, switch to active mode (ActiveFPS)
// 3. In active mode, run hand detection and process the result
// 4. After 2s without motion, fall back to idle mode
//
// A detector error ends the loop: a broken detector instance is not
// retried, a fresh App must be constructed.
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				// Camera not ready yet, or a dropped frame. Expected at
				// startup; skip and resume on the next ready frame.
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()
				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			// One frame in flight at a time: Detect returns before the
			// next submission.
			hands, err := a.detector.Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Hand detection failed, stopping pipeline: %v", err)
				return
			}

			a.ProcessHands(hands)
		}
	}
}

// ProcessHands drives the gesture-to-stroke pipeline for one detection
// result. Data flows one way: raw landmarks, then the gesture signal, then
// the state transition, then the pixel mutation and cursor redraw.
//
// A zero-hand result is a valid frame: nothing fires and all state,
// including the ink layer, persists unchanged.
func (a *App) ProcessHands(hands []detector.HandLandmarks) {
	if len(hands) == 0 {
		return
	}

	// Only the first hand drives the pipeline; multi-hand drawing is out
	// of scope.
	hand := &hands[0]
	settings := a.Settings()

	// Live-tunable smoothing: the level applies from this frame on.
	a.smoother.SetLevel(settings.SmoothingLevel)

	cursorX, cursorY := gesture.MirrorToPixel(hand.Points[detector.IndexTip], a.width, a.height)
	pinch := gesture.PinchDistance(hand, a.width, a.height)
	drawing := gesture.IsDrawGesture(hand, a.width, a.height)

	state := a.machine.Update(drawing)

	if state == stroke.StateDrawing {
		smoothX, smoothY := a.smoother.Smooth(cursorX, cursorY)
		if cmd, ok := a.machine.Commit(smoothX, smoothY); ok {
			a.comp.Apply(cmd, settings)
		}
	}

	a.comp.RenderCursor(cursorX, cursorY, state == stroke.StateDrawing, settings.Eraser)

	// A fist wins over everything else this frame: wipe the ink layer,
	// drop back to a fresh idle session, and show the hover cursor.
	fist := gesture.IsFist(hand)
	if fist {
		a.comp.ClearAll()
		a.machine.ForceIdle()
		a.comp.RenderCursor(cursorX, cursorY, false, settings.Eraser)
		state = stroke.StateIdle
	}

	a.mu.Lock()
	a.lastFrame = FrameStatus{
		Hands:         hands,
		State:         state.String(),
		CursorX:       cursorX,
		CursorY:       cursorY,
		PinchDistance: pinch,
		Fist:          fist,
		Timestamp:     time.Now().UnixMilli(),
	}
	a.mu.Unlock()
}
