// Package handpose classifies the pose and motion of tracked hands:
// which fingers are extended, whether the palm or the back of the hand
// faces the camera, and whether the hand is flipping, moving, rotating
// or stable over a short rolling window of frames.
package handpose

import (
	"math"

	"github.com/ayusman/mudra/internal/detector"
)

// SurfaceNormal computes the unit normal of the hand surface from the
// wrist, index-MCP and pinky-MCP landmarks. If the three points are
// collinear the zero vector is returned rather than failing; downstream
// classification proceeds with it.
func SurfaceNormal(h *detector.HandLandmarks) detector.Point3D {
	wrist := h.Points[detector.Wrist]
	index := h.Points[detector.IndexMCP]
	pinky := h.Points[detector.PinkyMCP]

	n := cross(sub(index, wrist), sub(pinky, wrist))

	mag := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if mag > 0 {
		n.X /= mag
		n.Y /= mag
		n.Z /= mag
	}
	return n
}

// PalmShowing reports whether the palm faces the camera. The landmark
// point ordering is mirrored between hands, so the sign test on the
// normal's Z component is inverted for left hands.
func PalmShowing(h *detector.HandLandmarks) bool {
	n := SurfaceNormal(h)
	if h.Handedness == detector.Right {
		return n.Z > 0
	}
	return n.Z < 0
}

func sub(a, b detector.Point3D) detector.Point3D {
	return detector.Point3D{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func cross(a, b detector.Point3D) detector.Point3D {
	return detector.Point3D{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
