// Package detector provides hand detection interfaces and types.
package detector

import (
	"image"
	"math"
)

// Hand landmark indices following MediaPipe convention.
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

// Connections lists the landmark pairs joined when drawing a hand skeleton.
var Connections = [][2]int{
	{Wrist, ThumbCMC}, {ThumbCMC, ThumbMCP}, {ThumbMCP, ThumbIP}, {ThumbIP, ThumbTip},
	{Wrist, IndexMCP}, {IndexMCP, IndexPIP}, {IndexPIP, IndexDIP}, {IndexDIP, IndexTip},
	{IndexMCP, MiddleMCP}, {MiddleMCP, MiddlePIP}, {MiddlePIP, MiddleDIP}, {MiddleDIP, MiddleTip},
	{MiddleMCP, RingMCP}, {RingMCP, RingPIP}, {RingPIP, RingDIP}, {RingDIP, RingTip},
	{RingMCP, PinkyMCP}, {PinkyMCP, PinkyPIP}, {PinkyPIP, PinkyDIP}, {PinkyDIP, PinkyTip},
	{Wrist, PinkyMCP},
}

// Point3D represents a landmark position. X and Y are normalized to the
// image size; Z is relative depth.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// PixelPoint converts landmark idx into pixel coordinates for a frame of
// the given size. Coordinates are truncated toward zero.
func (h *HandLandmarks) PixelPoint(idx, width, height int) image.Point {
	p := h.Points[idx]
	return image.Point{
		X: int(p.X * float64(width)),
		Y: int(p.Y * float64(height)),
	}
}

// PixelPoints converts all landmarks into pixel coordinates.
func (h *HandLandmarks) PixelPoints(width, height int) [NumLandmarks]image.Point {
	var pts [NumLandmarks]image.Point
	for i := range pts {
		pts[i] = h.PixelPoint(i, width, height)
	}
	return pts
}

// PinchDistance returns the thumb tip and index tip pixel positions and the
// Euclidean distance between them.
func (h *HandLandmarks) PinchDistance(width, height int) (thumb, index image.Point, dist float64) {
	thumb = h.PixelPoint(ThumbTip, width, height)
	index = h.PixelPoint(IndexTip, width, height)
	dist = math.Hypot(float64(index.X-thumb.X), float64(index.Y-thumb.Y))
	return thumb, index, dist
}
