package handpose

import (
	"fmt"
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// MotionStatus is the coarse per-hand motion classification.
type MotionStatus string

const (
	StatusUnknown  MotionStatus = "Unknown"
	StatusStable   MotionStatus = "Stable"
	StatusMoving   MotionStatus = "Moving"
	StatusRotating MotionStatus = "Rotating"
)

// FlippingStatus returns the motion status for a hand mid-flip.
func FlippingStatus(d FlipDirection) MotionStatus {
	return MotionStatus("Flipping: " + string(d))
}

// FlipDirection labels which way a hand flipped.
type FlipDirection string

const (
	PalmToBack FlipDirection = "Palm to Back"
	BackToPalm FlipDirection = "Back to Palm"
)

// FlipEvent is emitted when a hand reverses its palm orientation fast
// enough within the motion window.
type FlipEvent struct {
	Hand      detector.Handedness `json:"hand"`
	Direction FlipDirection       `json:"direction"`
	Velocity  float64             `json:"velocity"`
}

// Message renders the event in the log format consumed by callers.
func (e FlipEvent) Message() string {
	return fmt.Sprintf("%s Hand flipped: %s (velocity: %.4f)", e.Hand, e.Direction, e.Velocity)
}

// handState is the per-identity mutable state: sample history, current
// motion status and the flip cooldown counter.
type handState struct {
	history  *history
	status   MotionStatus
	cooldown int
}

func newHandState(historySize int) *handState {
	return &handState{
		history: newHistory(historySize),
		status:  StatusUnknown,
	}
}

// evaluate re-runs the flip and motion tests over the identity's history.
// It returns a flip event or nil. The status holds its previous value
// when fewer than FlipWindow samples exist or the cooldown is active;
// the cooldown itself is decremented by the frame-level driver, not here.
//
// A frame that emits a flip never also classifies Moving/Rotating/Stable:
// the flip test short-circuits the motion test.
func (s *handState) evaluate(cfg Config, hand detector.Handedness) *FlipEvent {
	if s.history.len() < cfg.FlipWindow {
		return nil
	}
	if s.cooldown > 0 {
		return nil
	}

	// Mean per-frame change of the normal's Z component across the
	// whole window. Shared by the flip and rotation tests.
	n := s.history.len()
	var avgChange float64
	for i := 0; i < n-1; i++ {
		avgChange += s.history.at(i+1).normal.Z - s.history.at(i).normal.Z
	}
	avgChange /= float64(n - 1)

	oldestPalm := s.history.oldest().palmShowing
	newestPalm := s.history.newest().palmShowing

	if oldestPalm != newestPalm {
		velocity := math.Abs(avgChange)
		if velocity > cfg.FlipVelocity {
			direction := BackToPalm
			if !newestPalm {
				direction = PalmToBack
			}
			s.status = FlippingStatus(direction)
			s.cooldown = cfg.CooldownFrames
			return &FlipEvent{Hand: hand, Direction: direction, Velocity: velocity}
		}
	}

	if n >= cfg.MotionWindow {
		displacement := distance(
			s.history.at(n-cfg.MotionWindow).wrist,
			s.history.at(n-1).wrist,
		)
		switch {
		case displacement > cfg.MoveDistance:
			s.status = StatusMoving
		case math.Abs(avgChange) > cfg.RotateVelocity:
			s.status = StatusRotating
		default:
			s.status = StatusStable
		}
	}

	return nil
}

func distance(a, b detector.Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
