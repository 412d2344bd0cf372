// Package testdata builds synthetic frames for tests that would otherwise
// need a camera.
package testdata

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Frame returns a width x height BGR frame with a mid-grey background and
// a white marker in the top-left quadrant, so mirroring is observable.
func Frame(width, height int) *gocv.Mat {
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(64, 64, 64, 0), height, width, gocv.MatTypeCV8UC3)
	gocv.Rectangle(&mat, image.Rect(width/8, height/8, width/4, height/4), color.RGBA{R: 255, G: 255, B: 255}, -1)
	return &mat
}

// Sequence returns n frames of the given size.
func Sequence(n, width, height int) []*gocv.Mat {
	frames := make([]*gocv.Mat, n)
	for i := range frames {
		frames[i] = Frame(width, height)
	}
	return frames
}

// CloseAll releases every frame.
func CloseAll(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}

// DecodeJPEG decodes an encoded frame, as served by the stream endpoint.
func DecodeJPEG(data []byte) (*gocv.Mat, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("decode frame: empty image")
	}
	return &mat, nil
}
