package volume

import (
	"log"
	"sync"
)

// DefaultLevel is reported when no audio backend is available.
const DefaultLevel = 50

// Backend is a platform audio control.
type Backend interface {
	GetVolume() (int, error)
	SetVolume(pct int) error
}

// Sink wraps an optional Backend. Availability is decided once, when the
// sink is created; an unavailable sink reports DefaultLevel and ignores Set.
type Sink struct {
	backend   Backend
	available bool
	mu        sync.Mutex
}

// NewSink probes backend once and returns a Sink. A nil backend, or one whose
// first GetVolume fails, yields an unavailable sink.
func NewSink(backend Backend) *Sink {
	s := &Sink{backend: backend}

	if backend == nil {
		log.Println("volume control not available: no backend")
		return s
	}

	if _, err := backend.GetVolume(); err != nil {
		log.Printf("volume control not available: %v", err)
		return s
	}

	s.available = true
	return s
}

// Available reports whether the sink controls real audio.
func (s *Sink) Available() bool {
	return s.available
}

// Get returns the current system volume, or DefaultLevel when the sink is
// unavailable or the read fails.
func (s *Sink) Get() int {
	if !s.available {
		return DefaultLevel
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pct, err := s.backend.GetVolume()
	if err != nil {
		log.Printf("error getting volume: %v", err)
		return DefaultLevel
	}
	return clampPercent(pct)
}

// Set applies pct to the system volume. Failures are logged and dropped.
func (s *Sink) Set(pct int) {
	if !s.available {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.SetVolume(clampPercent(pct)); err != nil {
		log.Printf("error setting volume: %v", err)
	}
}
