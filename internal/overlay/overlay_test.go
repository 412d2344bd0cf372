package overlay

import (
	"bytes"
	"image"
	"testing"

	"github.com/ayusman/mudra/internal/detector"
	"gocv.io/x/gocv"
)

func TestPlaceholder(t *testing.T) {
	img := Placeholder()
	defer img.Close()

	if img.Rows() != PlaceholderHeight || img.Cols() != PlaceholderWidth {
		t.Errorf("Placeholder() size = %dx%d, want %dx%d", img.Cols(), img.Rows(), PlaceholderWidth, PlaceholderHeight)
	}

	// Text is drawn, so the frame is not entirely black
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	if gocv.CountNonZero(gray) == 0 {
		t.Error("Placeholder() produced an empty frame")
	}
}

func TestMirror(t *testing.T) {
	img := gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1)
	defer img.Close()
	img.SetUCharAt(1, 0, 200)

	Mirror(&img)

	if got := img.GetUCharAt(1, 3); got != 200 {
		t.Errorf("mirrored pixel = %d, want 200", got)
	}
	if got := img.GetUCharAt(1, 0); got != 0 {
		t.Errorf("original pixel = %d, want 0", got)
	}
}

func TestVolumeBar(t *testing.T) {
	tests := []struct {
		volume int
		height int
		want   int
	}{
		{0, 480, 0},
		{50, 480, 190},
		{100, 480, 380},
		{150, 480, 380},
		{-5, 480, 0},
	}

	for _, tt := range tests {
		if got := volumeBar(tt.volume, tt.height); got != tt.want {
			t.Errorf("volumeBar(%d, %d) = %d, want %d", tt.volume, tt.height, got, tt.want)
		}
	}
}

func TestDrawHand(t *testing.T) {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	hand := detector.PinchLandmarks(60, 640, 480)
	thumb, index, _ := hand.PinchDistance(640, 480)

	DrawHand(&frame, &hand, thumb, index, 75)

	// Center of the connecting line is green
	mid := image.Pt((thumb.X+index.X)/2, thumb.Y)
	px := frame.GetVecbAt(mid.Y, mid.X)
	if px[1] != 255 {
		t.Errorf("pixel at %v = %v, want green channel 255", mid, px)
	}

	// Fingertip circle is magenta (BGR 255,0,255)
	px = frame.GetVecbAt(thumb.Y, thumb.X-5)
	if px[0] != 255 || px[2] != 255 {
		t.Errorf("pixel left of thumb tip = %v, want magenta", px)
	}
}

func TestEncode(t *testing.T) {
	img := Placeholder()
	defer img.Close()

	data, err := Encode(img)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// JPEG SOI marker
	if !bytes.HasPrefix(data, []byte{0xFF, 0xD8}) {
		t.Errorf("Encode() output does not start with a JPEG marker")
	}
}
