package handpose

import "github.com/ayusman/mudra/internal/detector"

// Finger positions in the extension vector.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// FingerNames maps extension vector positions to display names.
var FingerNames = [NumFingers]string{"Thumb", "Index", "Middle", "Ring", "Pinky"}

// CountFingers reports how many fingers are extended and which ones.
//
// Non-thumb fingers are extended when the fingertip sits above its PIP
// joint on screen (smaller Y, since image Y grows downward). The thumb
// extends horizontally, so its test compares X against the IP joint and
// flips direction with both handedness and palm orientation:
//
//	Left  palm:   tip right of IP
//	Left  dorsal: tip left of IP
//	Right palm:   tip left of IP
//	Right dorsal: tip right of IP
func CountFingers(h *detector.HandLandmarks) (int, [NumFingers]bool) {
	var fingers [NumFingers]bool

	thumbTip := h.Points[detector.ThumbTip]
	thumbIP := h.Points[detector.ThumbIP]
	palm := PalmShowing(h)

	if h.Handedness == detector.Left {
		if palm {
			fingers[Thumb] = thumbTip.X > thumbIP.X
		} else {
			fingers[Thumb] = thumbTip.X < thumbIP.X
		}
	} else {
		if palm {
			fingers[Thumb] = thumbTip.X < thumbIP.X
		} else {
			fingers[Thumb] = thumbTip.X > thumbIP.X
		}
	}

	tips := [4]int{detector.IndexTip, detector.MiddleTip, detector.RingTip, detector.PinkyTip}
	for i, tip := range tips {
		fingers[Index+i] = h.Points[tip].Y < h.Points[tip-2].Y
	}

	count := 0
	for _, extended := range fingers {
		if extended {
			count++
		}
	}
	return count, fingers
}
