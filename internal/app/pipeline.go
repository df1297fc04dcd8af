package app

import (
	"fmt"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/annotate"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/handpose"
	"github.com/ayusman/mudra/internal/store"
)

// runPipeline is the main loop that processes frames from the camera.
//
// Per tick:
//  1. Read a frame, mirror and enhance it if configured.
//  2. Gate on gross scene motion: switch to active mode (15 FPS) when
//     something moves, back to idle (5 FPS) after 2s of stillness.
//  3. In active mode, detect hands and run them through the tracker.
//  4. Annotate the frame, log status changes, persist and fan out flip
//     events, push states to the hub and publisher.
func (a *App) runPipeline() {
	frameInterval := time.Second / time.Duration(IdleFPS)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			if newFPS := a.gateFrame(frame); newFPS != 0 {
				ticker.Reset(time.Second / time.Duration(newFPS))
			}

			if !a.isActive() {
				frame.Close()
				continue
			}

			a.processFrame(frame)
			frame.Close()
		}
	}
}

// gateFrame preprocesses the frame in place and updates the idle/active
// mode from gross scene motion. It returns the new FPS when the mode
// changed, 0 otherwise.
func (a *App) gateFrame(frame *gocv.Mat) int {
	if a.config.Mirror {
		capture.Mirror(frame)
	}
	if a.config.EnhanceLow {
		capture.EnhanceLowLight(frame)
	}

	motionDetected, _ := a.motion.Detect(frame)

	a.mu.Lock()
	defer a.mu.Unlock()

	if motionDetected {
		a.lastMotionTime = time.Now()
		if !a.activeMode {
			a.activeMode = true
			a.camera.SetFPS(ActiveFPS)
			log.Println("Switched to active mode")
			return ActiveFPS
		}
		return 0
	}

	if a.activeMode && time.Since(a.lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
		a.activeMode = false
		a.camera.SetFPS(IdleFPS)

		// Frames are not processed while idle, so the per-hand history
		// would be stale by the time tracking resumes.
		a.trackerMu.Lock()
		a.tracker.Reset()
		a.trackerMu.Unlock()

		log.Println("Switched to idle mode")
		return IdleFPS
	}

	return 0
}

func (a *App) isActive() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.activeMode
}

// processFrame runs detection and classification on one frame and fans
// the results out.
func (a *App) processFrame(frame *gocv.Mat) {
	hands, err := a.Detector().Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		return
	}

	a.trackerMu.Lock()
	states, events, err := a.tracker.Process(hands)
	a.trackerMu.Unlock()
	if err != nil {
		log.Printf("Dropping frame: %v", err)
		return
	}

	a.logStateChanges(states)
	a.annotateFrame(frame, states)

	if a.config.Broadcaster != nil {
		a.config.Broadcaster.BroadcastStates(states)
	}
	if a.config.Publisher != nil {
		if err := a.config.Publisher.PublishStates(states); err != nil {
			log.Printf("Error publishing hand states: %v", err)
		}
	}

	for _, event := range events {
		a.handleEvent(event)
	}
}

// logStateChanges prints a hand's record only when it differs from the
// previous frame's, keeping the log quiet while nothing changes.
func (a *App) logStateChanges(states []handpose.HandState) {
	a.mu.Lock()
	defer a.mu.Unlock()

	seen := make(map[detector.Handedness]bool, len(states))
	for i := range states {
		st := &states[i]

		side := "Palm showing"
		if st.DorsalSide {
			side = "Back showing"
		}
		summary := fmt.Sprintf("%s Hand: %d fingers, %s, %s", st.Handedness, st.FingerCount, side, st.MotionStatus)

		if a.lastSummary[st.Handedness] != summary {
			log.Println(summary)
			a.lastSummary[st.Handedness] = summary
		}
		seen[st.Handedness] = true
	}

	for id := range a.lastSummary {
		if !seen[id] {
			delete(a.lastSummary, id)
		}
	}
}

// annotateFrame draws the landmark overlays and keeps the encoded result
// as the latest snapshot.
func (a *App) annotateFrame(frame *gocv.Mat, states []handpose.HandState) {
	width, height := frame.Cols(), frame.Rows()
	for i := range states {
		st := &states[i]
		annotate.Fingertips(frame, &st.Landmarks, width, height)
		annotate.Knuckles(frame, st, width, height)
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return
	}
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	buf.Close()

	a.frameMu.Lock()
	a.lastFrame = data
	a.frameMu.Unlock()
}

// handleEvent persists a flip event and fans it out to the hub, the
// publisher and the hooks.
func (a *App) handleEvent(event handpose.FlipEvent) {
	log.Println(event.Message())

	if a.config.Store != nil {
		rec := &store.Event{
			Hand:      string(event.Hand),
			Direction: string(event.Direction),
			Velocity:  event.Velocity,
			Message:   event.Message(),
		}
		if err := a.config.Store.Events().Create(rec); err != nil {
			log.Printf("Error persisting flip event: %v", err)
		} else if err := a.config.Store.Events().Trim(EventLogSize); err != nil {
			log.Printf("Error trimming event log: %v", err)
		}
	}

	if a.config.Broadcaster != nil {
		a.config.Broadcaster.BroadcastEvent(event)
	}
	if a.config.Publisher != nil {
		if err := a.config.Publisher.PublishEvent(event); err != nil {
			log.Printf("Error publishing flip event: %v", err)
		}
	}

	a.mu.RLock()
	callback := a.onEvent
	a.mu.RUnlock()
	if callback != nil {
		callback(event)
	}

	// Hooks run external executables with their own timeout; keep them
	// off the frame path.
	go a.hooks.Dispatch(event)
}
