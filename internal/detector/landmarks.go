// Package detector provides the hand landmark vocabulary and the
// interfaces to external landmark producers.
package detector

import (
	"fmt"
	"math"
)

// Hand landmark indices following MediaPipe convention.
// This is a closed vocabulary; indices are never renumbered.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a 3D point. X and Y are normalized image coordinates
// in [0,1] (Y grows downward); Z is relative depth, unitless.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Handedness labels which of the two tracked hands a landmark set
// belongs to. All per-hand state downstream is keyed by this label.
type Handedness string

const (
	Left  Handedness = "Left"
	Right Handedness = "Right"
)

// Validate returns an error if the handedness label is not one of the
// two allowed values.
func (h Handedness) Validate() error {
	if h != Left && h != Right {
		return fmt.Errorf("invalid handedness %q: must be %q or %q", string(h), Left, Right)
	}
	return nil
}

// HandLandmarks holds the 21 landmarks of one detected hand.
// The fixed-size array guarantees the point count by construction.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness Handedness            `json:"handedness"`
	Score      float64               `json:"score"`
}

// FromPoints builds a HandLandmarks from an externally supplied landmark
// list, for example one produced by MediaPipe Tasks running on another
// platform. It fails fast on a wrong point count or an unknown handedness
// label rather than guessing anatomical indices.
func FromPoints(points []Point3D, handedness Handedness) (HandLandmarks, error) {
	var lm HandLandmarks
	if len(points) != NumLandmarks {
		return lm, fmt.Errorf("expected %d landmarks, got %d", NumLandmarks, len(points))
	}
	if err := handedness.Validate(); err != nil {
		return lm, err
	}
	copy(lm.Points[:], points)
	lm.Handedness = handedness
	lm.Score = 1.0
	return lm, nil
}

// distance3D calculates the Euclidean distance between two 3D points.
func distance3D(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Normalize returns a copy of the landmarks with the wrist at the origin
// and points scaled so that the wrist to middle-MCP distance is 1.0.
// Useful for scale-invariant comparison of hand shapes.
func (h *HandLandmarks) Normalize() *HandLandmarks {
	if h == nil {
		return nil
	}

	normalized := &HandLandmarks{
		Handedness: h.Handedness,
		Score:      h.Score,
	}

	wrist := h.Points[Wrist]
	for i := 0; i < NumLandmarks; i++ {
		normalized.Points[i] = Point3D{
			X: h.Points[i].X - wrist.X,
			Y: h.Points[i].Y - wrist.Y,
			Z: h.Points[i].Z - wrist.Z,
		}
	}

	scale := distance3D(Point3D{}, normalized.Points[MiddleMCP])
	if scale < 1e-10 {
		return normalized
	}

	for i := 0; i < NumLandmarks; i++ {
		normalized.Points[i].X /= scale
		normalized.Points[i].Y /= scale
		normalized.Points[i].Z /= scale
	}

	return normalized
}
