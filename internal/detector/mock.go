package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
	calls int
	mu    sync.Mutex
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// OpenHandLandmarks returns a right hand with all fingers extended,
// thumb tip at the frame center.
func OpenHandLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.5, Y: 0.9, Z: 0.0}

	// Thumb extended to the side, tip at the center
	landmarks.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.82, Z: 0.02}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.44, Y: 0.72, Z: 0.03}
	landmarks.Points[ThumbIP] = Point3D{X: 0.47, Y: 0.60, Z: 0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.5, Y: 0.5, Z: 0.03}

	landmarks.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.70, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.62, Z: 0.0}
	landmarks.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.56, Z: 0.0}
	landmarks.Points[IndexTip] = Point3D{X: 0.6, Y: 0.5, Z: 0.0}

	landmarks.Points[MiddleMCP] = Point3D{X: 0.60, Y: 0.72, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.64, Y: 0.60, Z: 0.0}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.66, Y: 0.50, Z: 0.0}
	landmarks.Points[MiddleTip] = Point3D{X: 0.68, Y: 0.42, Z: 0.0}

	landmarks.Points[RingMCP] = Point3D{X: 0.64, Y: 0.76, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.69, Y: 0.66, Z: 0.0}
	landmarks.Points[RingDIP] = Point3D{X: 0.72, Y: 0.58, Z: 0.0}
	landmarks.Points[RingTip] = Point3D{X: 0.74, Y: 0.52, Z: 0.0}

	landmarks.Points[PinkyMCP] = Point3D{X: 0.67, Y: 0.81, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.72, Y: 0.74, Z: 0.0}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.75, Y: 0.69, Z: 0.0}
	landmarks.Points[PinkyTip] = Point3D{X: 0.77, Y: 0.65, Z: 0.0}

	return landmarks
}

// PinchLandmarks returns an open hand whose index tip sits distancePx pixels
// to the right of the thumb tip on a width x height frame. The thumb tip is
// at (width/2, height/2). Pick even frame sizes and distances for which
// (width/2+distancePx)/width is exact in binary, such as multiples of 5 on
// a 640 wide frame, so the pixel distance survives truncation unchanged.
func PinchLandmarks(distancePx, width, height int) HandLandmarks {
	landmarks := OpenHandLandmarks()

	cx := width / 2
	cy := height / 2
	landmarks.Points[ThumbTip] = Point3D{
		X: float64(cx) / float64(width),
		Y: float64(cy) / float64(height),
	}
	landmarks.Points[IndexTip] = Point3D{
		X: float64(cx+distancePx) / float64(width),
		Y: float64(cy) / float64(height),
	}

	return landmarks
}
