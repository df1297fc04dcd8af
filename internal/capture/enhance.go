package capture

import (
	"image"

	"gocv.io/x/gocv"
)

// Low-light enhancement parameters (CLAHE on the lightness channel).
const (
	claheClipLimit = 3.0
	claheTileSize  = 8
)

// Mirror flips the frame horizontally in place, producing the selfie
// view users expect from a front-facing camera.
func Mirror(frame *gocv.Mat) {
	gocv.Flip(*frame, frame, 1)
}

// EnhanceLowLight improves contrast of a dim frame in place by applying
// CLAHE to the L channel in Lab color space, leaving chroma untouched.
func EnhanceLowLight(frame *gocv.Mat) {
	if frame == nil || frame.Empty() || frame.Channels() != 3 {
		return
	}

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(*frame, &lab, gocv.ColorBGRToLab)

	channels := gocv.Split(lab)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()
	if len(channels) != 3 {
		return
	}

	clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Pt(claheTileSize, claheTileSize))
	defer clahe.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(channels[0], &enhanced)
	enhanced.CopyTo(&channels[0])

	gocv.Merge(channels, &lab)
	gocv.CvtColor(lab, frame, gocv.ColorLabToBGR)
}
