package server

import (
	"log"
	"math"
	"net/http"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server/api"
)

// statusResponse is the JSON form of a session snapshot. Gesture carries
// the action label of the current band.
type statusResponse struct {
	CameraActive bool    `json:"camera_active"`
	HandDetected bool    `json:"hand_detected"`
	Gesture      string  `json:"gesture"`
	Quality      string  `json:"quality"`
	Volume       int     `json:"volume"`
	Distance     float64 `json:"distance"`
}

func newStatusResponse(s app.Snapshot) statusResponse {
	return statusResponse{
		CameraActive: s.CameraActive,
		HandDetected: s.HandDetected,
		Gesture:      s.Action,
		Quality:      string(s.Quality),
		Volume:       s.Volume,
		Distance:     math.Round(s.Distance*10) / 10,
	}
}

// handleStartCamera handles POST requests to /start_camera.
func (s *Server) handleStartCamera(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.config.App.StartCamera(); err != nil {
		log.Printf("Error starting camera: %v", err)
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

// handleStopCamera handles POST requests to /stop_camera.
func (s *Server) handleStopCamera(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Close errors are logged by the app; the camera is stopped either way
	s.config.App.StopCamera()

	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

// handleStatus handles GET requests to /status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	api.WriteJSON(w, http.StatusOK, newStatusResponse(s.config.App.Snapshot()))
}
