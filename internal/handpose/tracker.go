package handpose

import (
	"fmt"

	"github.com/ayusman/mudra/internal/detector"
)

// HandState is the per-hand classification result for one frame.
type HandState struct {
	Handedness   detector.Handedness    `json:"handedness"`
	FingerCount  int                    `json:"fingerCount"`
	Fingers      [NumFingers]bool       `json:"fingers"`
	PalmShowing  bool                   `json:"palmShowing"`
	DorsalSide   bool                   `json:"dorsalSide"`
	MotionStatus MotionStatus           `json:"motionStatus"`
	Landmarks    detector.HandLandmarks `json:"landmarks"`
}

// Tracker classifies pose and motion for the two tracked hand
// identities across frames. State is keyed by the closed Left/Right
// vocabulary and lives for the whole session.
//
// A Tracker is single-owner: frames must be processed one at a time.
// Callers that pipeline capture and classification must serialize access.
type Tracker struct {
	cfg   Config
	hands map[detector.Handedness]*handState
}

// NewTracker creates a Tracker with the given configuration.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		cfg: cfg,
		hands: map[detector.Handedness]*handState{
			detector.Left:  newHandState(cfg.HistorySize),
			detector.Right: newHandState(cfg.HistorySize),
		},
	}
}

// Process classifies one frame's detections. It returns one HandState
// per detected hand, in input order, plus any flip events emitted this
// frame. Identities absent from the frame have their history cleared and
// status reset to Unknown; cooldown timers keep decrementing for both
// identities every frame regardless of presence.
//
// A hand with an invalid handedness label fails the frame: guessing
// which identity's state to mutate would corrupt all later tracking.
func (t *Tracker) Process(hands []detector.HandLandmarks) ([]HandState, []FlipEvent, error) {
	states := make([]HandState, 0, len(hands))
	var events []FlipEvent
	var seen [2]bool

	for i := range hands {
		h := &hands[i]
		if err := h.Handedness.Validate(); err != nil {
			return nil, nil, fmt.Errorf("classify hand %d: %w", i, err)
		}
		if h.Handedness == detector.Left {
			seen[0] = true
		} else {
			seen[1] = true
		}

		palm := PalmShowing(h)
		count, fingers := CountFingers(h)

		st := t.hands[h.Handedness]
		st.history.push(sample{
			wrist:       h.Points[detector.Wrist],
			normal:      SurfaceNormal(h),
			palmShowing: palm,
			middleTip:   h.Points[detector.MiddleTip],
		})

		if ev := st.evaluate(t.cfg, h.Handedness); ev != nil {
			events = append(events, *ev)
		}

		states = append(states, HandState{
			Handedness:   h.Handedness,
			FingerCount:  count,
			Fingers:      fingers,
			PalmShowing:  palm,
			DorsalSide:   !palm,
			MotionStatus: st.status,
			Landmarks:    *h,
		})
	}

	for i, id := range [2]detector.Handedness{detector.Left, detector.Right} {
		st := t.hands[id]
		if !seen[i] && st.history.len() > 0 {
			st.history.clear()
			st.status = StatusUnknown
		}
		if st.cooldown > 0 {
			st.cooldown--
		}
	}

	return states, events, nil
}

// Status returns the current motion status for a hand identity.
func (t *Tracker) Status(id detector.Handedness) MotionStatus {
	if st, ok := t.hands[id]; ok {
		return st.status
	}
	return StatusUnknown
}

// Reset clears all per-hand state, including cooldown timers. Use it
// when starting an unrelated tracking session.
func (t *Tracker) Reset() {
	for _, st := range t.hands {
		st.history.clear()
		st.status = StatusUnknown
		st.cooldown = 0
	}
}
