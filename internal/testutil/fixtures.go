// Package testutil provides synthetic landmark builders for tests.
// Hands are constructed so that the surface normal, palm orientation and
// wrist position take exact scripted values, which lets tests drive the
// flip and motion thresholds deterministically without a real detector.
package testutil

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// OrientedHand builds a hand whose unit surface normal has exactly the
// given Z component. normalZ must be in [-1, 1] and non-zero. The palm
// state follows from the sign and the handedness, as in live detection.
func OrientedHand(h detector.Handedness, normalZ float64, wrist detector.Point3D) detector.HandLandmarks {
	const s = 0.1

	absZ := math.Abs(normalZ)
	if absZ > 1 {
		absZ = 1
	}

	// Place index MCP at wrist+(s,0,u) and pinky MCP at wrist+(0,±s,0).
	// The cross product then has Z component ±s², and overall magnitude
	// s²/|normalZ|, so the normalized Z lands exactly on normalZ.
	u := s * math.Sqrt(1/(absZ*absZ)-1)

	v := s
	if normalZ < 0 {
		v = -s
	}

	lm := detector.HandLandmarks{
		Handedness: h,
		Score:      1.0,
	}

	for i := range lm.Points {
		lm.Points[i] = wrist
	}

	lm.Points[detector.Wrist] = wrist
	lm.Points[detector.IndexMCP] = detector.Point3D{X: wrist.X + s, Y: wrist.Y, Z: wrist.Z + u}
	lm.Points[detector.PinkyMCP] = detector.Point3D{X: wrist.X, Y: wrist.Y + v, Z: wrist.Z}
	lm.Points[detector.MiddleTip] = detector.Point3D{X: wrist.X, Y: wrist.Y - 0.3, Z: wrist.Z}

	return lm
}

// FlipSequence builds one frame per entry of normalZ, all sharing the
// same wrist position. Feeding the frames to a tracker reproduces the
// scripted normal-Z trajectory sample for sample.
func FlipSequence(h detector.Handedness, normalZ []float64) []detector.HandLandmarks {
	wrist := detector.Point3D{X: 0.5, Y: 0.5, Z: 0.0}
	frames := make([]detector.HandLandmarks, len(normalZ))
	for i, z := range normalZ {
		frames[i] = OrientedHand(h, z, wrist)
	}
	return frames
}

// Translate returns a copy of the hand with every landmark shifted.
func Translate(lm detector.HandLandmarks, dx, dy, dz float64) detector.HandLandmarks {
	for i := range lm.Points {
		lm.Points[i].X += dx
		lm.Points[i].Y += dy
		lm.Points[i].Z += dz
	}
	return lm
}
