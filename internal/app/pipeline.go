package app

import (
	"context"
	"log"
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/overlay"
	"github.com/ayusman/mudra/internal/volume"
	"gocv.io/x/gocv"
)

// Pipeline timing constants.
const (
	// PlaceholderInterval is how often the inactive placeholder is published.
	PlaceholderInterval = 500 * time.Millisecond
	// ReadRetryDelay is the pause after a failed frame read.
	ReadRetryDelay = 100 * time.Millisecond
)

// Run is the frame producer loop. It publishes a placeholder while the
// camera is off and annotated frames while it is on, until ctx is done.
func (a *App) Run(ctx context.Context) {
	log.Println("Frame pipeline started")
	defer log.Println("Frame pipeline stopped")

	for {
		if ctx.Err() != nil {
			return
		}

		a.mu.Lock()
		active, cam, epoch := a.active, a.camera, a.epoch
		a.mu.Unlock()

		if !active {
			a.publishPlaceholder()
			if !sleep(ctx, PlaceholderInterval) {
				return
			}
			continue
		}

		frame, err := cam.ReadFrame()
		if err != nil {
			if !sleep(ctx, ReadRetryDelay) {
				return
			}
			continue
		}

		a.processFrame(frame, epoch)
		frame.Close()
	}
}

// processFrame mirrors, analyzes, annotates and publishes one frame that
// was read during session epoch. Results for a session that has since
// stopped or restarted are dropped.
func (a *App) processFrame(frame *gocv.Mat, epoch uint64) {
	overlay.Mirror(frame)

	hands, err := a.Detector().Detect(frame)
	switch {
	case err != nil:
		log.Printf("Error detecting hands: %v", err)
	case len(hands) == 0:
		a.clearHand(epoch)
	default:
		a.trackHand(frame, &hands[0], epoch)
	}

	data, err := overlay.Encode(*frame)
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		return
	}
	a.hub.Publish(data)
}

// trackHand updates the session with the pinch distance of hand and draws
// the annotations onto frame.
func (a *App) trackHand(frame *gocv.Mat, hand *detector.HandLandmarks, epoch uint64) {
	thumb, index, dist := hand.PinchDistance(frame.Cols(), frame.Rows())

	a.mu.Lock()
	if !a.active || a.epoch != epoch {
		a.mu.Unlock()
		return
	}
	a.smoother.Push(dist)
	avg := a.smoother.Average()
	a.mu.Unlock()

	c := a.classifier.Classify(avg)
	vol, changed := a.controller.Apply(volume.TargetVolume(avg))

	a.mu.Lock()
	if a.active && a.epoch == epoch {
		a.snapshot.HandDetected = true
		a.snapshot.Gesture = c.Gesture
		a.snapshot.Action = c.Action
		a.snapshot.Quality = c.Quality
		a.snapshot.Volume = vol
		a.snapshot.Distance = avg
	}
	sessionID := a.sessionID
	a.mu.Unlock()

	if changed {
		a.recordEvent(sessionID, c, avg, vol)
	}

	overlay.DrawHand(frame, hand, thumb, index, vol)
}

// clearHand records that no hand is visible. Volume, quality and distance
// keep their last values.
func (a *App) clearHand(epoch uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.active || a.epoch != epoch {
		return
	}
	a.snapshot.HandDetected = false
	a.snapshot.Gesture = gesture.None
	a.snapshot.Action = gesture.None
}

func (a *App) publishPlaceholder() {
	if data := a.placeholder(); data != nil {
		a.hub.Publish(data)
	}
}

// placeholder returns the encoded inactive frame, building it on first use.
func (a *App) placeholder() []byte {
	a.placeholderOnce.Do(func() {
		img := overlay.Placeholder()
		defer img.Close()

		data, err := overlay.Encode(img)
		if err != nil {
			log.Printf("Error encoding placeholder: %v", err)
			return
		}
		a.placeholderJPEG = data
	})
	return a.placeholderJPEG
}

// sleep waits for d or until ctx is done, reporting whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
