// Package overlay draws the pinch annotations onto video frames and encodes
// frames for streaming.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ayusman/mudra/internal/detector"
	"gocv.io/x/gocv"
)

// Placeholder frame dimensions.
const (
	PlaceholderWidth  = 640
	PlaceholderHeight = 360
)

var (
	white    = color.RGBA{R: 255, G: 255, B: 255}
	grey     = color.RGBA{R: 150, G: 150, B: 150}
	barFrame = color.RGBA{R: 100, G: 100, B: 100}
	magenta  = color.RGBA{R: 255, G: 0, B: 255}
	green    = color.RGBA{R: 0, G: 255, B: 0}
	bone     = color.RGBA{R: 255, G: 255, B: 255}
	joint    = color.RGBA{R: 255, G: 0, B: 0}
)

// Placeholder returns the black frame shown while the camera is off.
// The caller owns the returned Mat.
func Placeholder() gocv.Mat {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), PlaceholderHeight, PlaceholderWidth, gocv.MatTypeCV8UC3)
	gocv.PutText(&img, "Camera Inactive", image.Pt(180, 180), gocv.FontHersheySimplex, 1, white, 2)
	gocv.PutText(&img, "Click START to begin", image.Pt(160, 220), gocv.FontHersheySimplex, 0.7, grey, 2)
	return img
}

// Mirror flips frame around its vertical axis in place.
func Mirror(frame *gocv.Mat) {
	gocv.Flip(*frame, frame, 1)
}

// DrawSkeleton draws the landmark connections and joints of hand.
func DrawSkeleton(frame *gocv.Mat, hand *detector.HandLandmarks) {
	pts := hand.PixelPoints(frame.Cols(), frame.Rows())
	for _, c := range detector.Connections {
		gocv.Line(frame, pts[c[0]], pts[c[1]], bone, 2)
	}
	for _, p := range pts {
		gocv.Circle(frame, p, 4, joint, -1)
	}
}

// DrawPinch marks both fingertips and joins them with a line.
func DrawPinch(frame *gocv.Mat, thumb, index image.Point) {
	gocv.Circle(frame, thumb, 10, magenta, -1)
	gocv.Circle(frame, index, 10, magenta, -1)
	gocv.Line(frame, thumb, index, green, 3)
}

// DrawVolume draws the volume bar along the left edge and the percentage
// label beneath it.
func DrawVolume(frame *gocv.Mat, volume int) {
	h := frame.Rows()
	fill := volumeBar(volume, h)

	gocv.Rectangle(frame, image.Rect(20, h-80-fill, 60, h-80), green, -1)
	gocv.Rectangle(frame, image.Rect(20, 20, 60, h-80), barFrame, 2)
	gocv.PutText(frame, fmt.Sprintf("Volume: %d%%", volume), image.Pt(20, h-20), gocv.FontHersheySimplex, 0.7, green, 2)
}

// DrawHand applies the full hand annotation: skeleton, pinch marks and
// the volume bar.
func DrawHand(frame *gocv.Mat, hand *detector.HandLandmarks, thumb, index image.Point, volume int) {
	DrawSkeleton(frame, hand)
	DrawPinch(frame, thumb, index)
	DrawVolume(frame, volume)
}

// Encode returns frame as JPEG bytes.
func Encode(frame gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	// GetBytes aliases C memory that Close releases
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// volumeBar returns the filled height of the volume bar in pixels for a
// frame of the given height.
func volumeBar(volume, height int) int {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	return int(float64(volume) / 100.0 * float64(height-100))
}
