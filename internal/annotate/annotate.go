// Package annotate draws hand classification overlays onto video frames.
package annotate

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/handpose"
)

var (
	markerColor = color.RGBA{G: 255, A: 255}

	fingertips = [5]int{
		detector.ThumbTip,
		detector.IndexTip,
		detector.MiddleTip,
		detector.RingTip,
		detector.PinkyTip,
	}

	// Knuckle joints per finger: the thumb IP and the PIP of the rest.
	knuckles = [handpose.NumFingers]int{
		detector.ThumbIP,
		detector.IndexPIP,
		detector.MiddlePIP,
		detector.RingPIP,
		detector.PinkyPIP,
	}
)

// Fingertips marks all five fingertips of a hand with small filled
// circles. Landmarks are normalized, so the frame dimensions scale them
// into pixel space.
func Fingertips(frame *gocv.Mat, hand *detector.HandLandmarks, width, height int) {
	for _, tip := range fingertips {
		gocv.Circle(frame, toPixel(hand.Points[tip], width, height), 5, markerColor, -1)
	}
}

// Knuckles marks the knuckle joints of extended fingers, but only while
// the back of the hand faces the camera; on the palm side the knuckles
// are not visible.
func Knuckles(frame *gocv.Mat, state *handpose.HandState, width, height int) {
	if !state.DorsalSide {
		return
	}
	for finger, joint := range knuckles {
		if state.Fingers[finger] {
			gocv.Circle(frame, toPixel(state.Landmarks.Points[joint], width, height), 10, markerColor, -1)
		}
	}
}

func toPixel(p detector.Point3D, width, height int) image.Point {
	return image.Pt(int(p.X*float64(width)), int(p.Y*float64(height)))
}
