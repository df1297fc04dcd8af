package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It returns pre-configured hands, an optional error, or plays back a
// scripted sequence of per-frame detections.
type MockDetector struct {
	mu       sync.Mutex
	hands    []HandLandmarks
	sequence [][]HandLandmarks
	pos      int
	err      error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetSequence sets a per-frame sequence of detections. Each Detect call
// consumes one entry; after the sequence is exhausted Detect returns the
// fixed hands set via SetHands (nil by default).
func (m *MockDetector) SetSequence(frames [][]HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sequence = frames
	m.pos = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted detection, the fixed hands, or the
// configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.pos < len(m.sequence) {
		hands := m.sequence[m.pos]
		m.pos++
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// OpenPalmLandmarks returns a preset hand with the palm facing the camera
// and all five fingers extended, for the given handedness.
func OpenPalmLandmarks(h Handedness) HandLandmarks {
	lm := openPalmRight()
	if h == Left {
		lm = mirrorX(lm)
	}
	lm.Handedness = h
	return lm
}

// DorsalHandLandmarks returns a preset hand with the back of the hand
// facing the camera and all five fingers extended.
func DorsalHandLandmarks(h Handedness) HandLandmarks {
	// A hand flipped over presents the mirror image of its palm-side
	// geometry while keeping the same handedness label.
	lm := openPalmRight()
	if h == Right {
		lm = mirrorX(lm)
	}
	lm.Handedness = h
	return lm
}

// FistLandmarks returns a preset closed fist, palm facing the camera,
// with no fingers extended.
func FistLandmarks(h Handedness) HandLandmarks {
	lm := fistRight()
	if h == Left {
		lm = mirrorX(lm)
	}
	lm.Handedness = h
	return lm
}

// openPalmRight is a right hand, palm toward the camera, thumb on the
// image-left side. Index MCP sits left of pinky MCP, which puts the
// surface normal's Z positive.
func openPalmRight() HandLandmarks {
	lm := HandLandmarks{
		Handedness: Right,
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb extends toward image-left.
	lm.Points[ThumbCMC] = Point3D{X: 0.44, Y: 0.75, Z: 0.01}
	lm.Points[ThumbMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.01}
	lm.Points[ThumbIP] = Point3D{X: 0.37, Y: 0.66, Z: 0.01}
	lm.Points[ThumbTip] = Point3D{X: 0.33, Y: 0.62, Z: 0.01}

	lm.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.68, Z: 0.0}
	lm.Points[IndexPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	lm.Points[IndexDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	lm.Points[IndexTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}

	lm.Points[RingMCP] = Point3D{X: 0.56, Y: 0.68, Z: 0.0}
	lm.Points[RingPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	lm.Points[RingDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	lm.Points[RingTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}

	lm.Points[PinkyMCP] = Point3D{X: 0.61, Y: 0.70, Z: 0.0}
	lm.Points[PinkyPIP] = Point3D{X: 0.63, Y: 0.60, Z: 0.0}
	lm.Points[PinkyDIP] = Point3D{X: 0.64, Y: 0.50, Z: 0.0}
	lm.Points[PinkyTip] = Point3D{X: 0.65, Y: 0.42, Z: 0.0}

	return lm
}

// fistRight is a right hand, palm toward the camera, all fingers curled.
func fistRight() HandLandmarks {
	lm := HandLandmarks{
		Handedness: Right,
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}

	// Thumb folded across the palm: tip back toward image-right.
	lm.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.76, Z: 0.01}
	lm.Points[ThumbMCP] = Point3D{X: 0.43, Y: 0.73, Z: 0.01}
	lm.Points[ThumbIP] = Point3D{X: 0.42, Y: 0.70, Z: 0.01}
	lm.Points[ThumbTip] = Point3D{X: 0.46, Y: 0.72, Z: 0.01}

	lm.Points[IndexMCP] = Point3D{X: 0.44, Y: 0.68, Z: -0.02}
	lm.Points[IndexPIP] = Point3D{X: 0.44, Y: 0.62, Z: -0.05}
	lm.Points[IndexDIP] = Point3D{X: 0.45, Y: 0.66, Z: -0.04}
	lm.Points[IndexTip] = Point3D{X: 0.45, Y: 0.70, Z: -0.02}

	lm.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: -0.02}
	lm.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.60, Z: -0.05}
	lm.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.64, Z: -0.04}
	lm.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.69, Z: -0.02}

	lm.Points[RingMCP] = Point3D{X: 0.56, Y: 0.68, Z: -0.02}
	lm.Points[RingPIP] = Point3D{X: 0.56, Y: 0.62, Z: -0.05}
	lm.Points[RingDIP] = Point3D{X: 0.55, Y: 0.66, Z: -0.04}
	lm.Points[RingTip] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}

	lm.Points[PinkyMCP] = Point3D{X: 0.61, Y: 0.70, Z: -0.02}
	lm.Points[PinkyPIP] = Point3D{X: 0.61, Y: 0.65, Z: -0.05}
	lm.Points[PinkyDIP] = Point3D{X: 0.60, Y: 0.68, Z: -0.04}
	lm.Points[PinkyTip] = Point3D{X: 0.60, Y: 0.72, Z: -0.02}

	return lm
}

// mirrorX reflects all landmarks across the vertical image centerline.
func mirrorX(lm HandLandmarks) HandLandmarks {
	for i := range lm.Points {
		lm.Points[i].X = 1.0 - lm.Points[i].X
	}
	return lm
}
