// Package app ties the camera, hand detector, gesture classifier and volume
// controller together into the pinch-to-volume pipeline.
package app

import (
	"fmt"
	"log"
	"sync"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/volume"
)

// Config holds configuration options for the application.
type Config struct {
	// Camera is the video source. When nil a device camera is created
	// from CameraConfig.
	Camera       capture.Camera
	CameraConfig capture.Config

	// Detector finds hands in frames. When nil the MediaPipe detector is
	// tried with DetectorConfig, falling back to a mock.
	Detector       detector.Detector
	DetectorConfig detector.Config

	// Sink receives volume changes. When nil an unavailable sink is used.
	Sink *volume.Sink

	// Store records sessions and volume changes. Optional.
	Store *store.Store
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	CameraActive bool
	HandDetected bool
	Gesture      string
	Action       string
	Quality      gesture.Quality
	Volume       int
	Distance     float64
}

// App is the pinch-to-volume application. All fields below mu are guarded
// by it; frame reading, detection, drawing and encoding happen outside.
type App struct {
	config     Config
	classifier *gesture.Classifier
	controller *volume.Controller
	sink       *volume.Sink
	store      *store.Store
	hub        *Hub

	placeholderOnce sync.Once
	placeholderJPEG []byte

	mu        sync.Mutex
	camera    capture.Camera
	detector  detector.Detector
	active    bool
	epoch     uint64
	smoother  *gesture.Smoother
	snapshot  Snapshot
	sessionID string
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	sink := config.Sink
	if sink == nil {
		sink = volume.NewSink(nil)
	}

	cam := config.Camera
	if cam == nil {
		cam = capture.NewCamera(config.CameraConfig)
	}

	a := &App{
		config:     config,
		classifier: gesture.NewClassifier(),
		controller: volume.NewController(sink),
		sink:       sink,
		store:      config.Store,
		hub:        NewHub(),
		camera:     cam,
		detector:   config.Detector,
		smoother:   gesture.NewSmoother(gesture.DefaultWindow),
	}

	a.snapshot = Snapshot{
		Gesture: gesture.None,
		Action:  gesture.None,
		Quality: gesture.QualityGood,
		Volume:  a.controller.Last(),
	}

	// Try MediaPipe first, fall back to mock detector
	if a.detector == nil {
		if mp, err := detector.NewMediaPipeDetector(config.DetectorConfig); err == nil {
			a.detector = mp
			log.Println("Using MediaPipe hand detection")
		} else {
			log.Printf("MediaPipe not available (%v), using mock detector", err)
			a.detector = detector.NewMockDetector()
		}
	}

	return a
}

// StartCamera opens the camera and begins a fresh session. It does nothing
// when the camera is already active.
func (a *App) StartCamera() error {
	a.mu.Lock()
	if a.active {
		a.mu.Unlock()
		return nil
	}

	if err := a.camera.Open(); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("open camera: %w", err)
	}

	a.smoother.Reset()
	a.snapshot.HandDetected = false
	a.epoch++
	a.active = true
	epoch := a.epoch
	a.mu.Unlock()

	log.Println("Camera started")
	a.beginSession(epoch)
	return nil
}

// StopCamera closes the camera. It does nothing when the camera is already
// inactive.
func (a *App) StopCamera() error {
	a.mu.Lock()
	if !a.active {
		a.mu.Unlock()
		return nil
	}

	a.active = false
	err := a.camera.Close()
	sessionID := a.sessionID
	a.sessionID = ""
	a.mu.Unlock()

	if err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	log.Println("Camera stopped")

	a.endSession(sessionID)
	return err
}

// IsActive reports whether the camera is running.
func (a *App) IsActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Snapshot returns a copy of the current session state.
func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.snapshot
	s.CameraActive = a.active
	return s
}

// SessionID returns the id of the stored session for the current camera
// run, or "" when history is disabled or the camera is off.
func (a *App) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionID
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.detector
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Hub returns the hub that carries encoded frames to stream clients.
func (a *App) Hub() *Hub {
	return a.hub
}

// Sink returns the volume sink.
func (a *App) Sink() *volume.Sink {
	return a.sink
}

// Store returns the history store, which may be nil.
func (a *App) Store() *store.Store {
	return a.store
}

// Close stops the camera and releases the detector.
func (a *App) Close() error {
	a.StopCamera()

	d := a.Detector()
	if d == nil {
		return nil
	}
	if err := d.Close(); err != nil {
		return fmt.Errorf("close detector: %w", err)
	}
	return nil
}

func (a *App) beginSession(epoch uint64) {
	if a.store == nil {
		return
	}

	sess, err := a.store.Sessions().Start()
	if err != nil {
		log.Printf("Error recording session start: %v", err)
		return
	}

	a.mu.Lock()
	current := a.active && a.epoch == epoch
	if current {
		a.sessionID = sess.ID
	}
	a.mu.Unlock()

	// The camera was stopped while the row was being written
	if !current {
		a.endSession(sess.ID)
	}
}

func (a *App) endSession(id string) {
	if a.store == nil || id == "" {
		return
	}
	if err := a.store.Sessions().End(id); err != nil {
		log.Printf("Error recording session end: %v", err)
	}
}

func (a *App) recordEvent(sessionID string, c gesture.Classification, distance float64, vol int) {
	if a.store == nil || sessionID == "" {
		return
	}

	err := a.store.Events().Record(&store.VolumeEvent{
		SessionID: sessionID,
		Gesture:   c.Gesture,
		Action:    c.Action,
		Quality:   string(c.Quality),
		Distance:  distance,
		Volume:    vol,
	})
	if err != nil {
		log.Printf("Error recording volume event: %v", err)
	}
}
