// Package server provides the HTTP server for the mudra pinch-to-volume
// application.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/server/api"
)

//go:embed web
var webFS embed.FS

// shutdownTimeout bounds how long Serve waits for open requests on exit.
const shutdownTimeout = 5 * time.Second

// Config holds the server configuration.
type Config struct {
	// App is the running application. Camera, status and history routes
	// are only registered when it is set.
	App *app.App

	// StaticDir replaces the built-in page when set.
	StaticDir string
}

// Server represents the HTTP server for the mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	status *StatusHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if a := s.config.App; a != nil {
		s.mux.HandleFunc("/start_camera", s.handleStartCamera)
		s.mux.HandleFunc("/stop_camera", s.handleStopCamera)
		s.mux.HandleFunc("/status", s.handleStatus)
		s.mux.Handle("/video_feed", NewStreamHandler(a.Hub()))

		s.status = NewStatusHandler(a)
		s.mux.Handle("/ws/status", s.status)

		// History routes need the store
		if st := a.Store(); st != nil {
			sessions := api.NewSessionHandler(st)
			s.mux.Handle("/api/sessions", sessions)
			s.mux.Handle("/api/sessions/", sessions)
			s.mux.Handle("/api/events", api.NewEventHandler(st))
		}
	}

	s.mux.Handle("/", s.staticHandler())
}

// staticHandler serves the UI from StaticDir, or the embedded page.
func (s *Server) staticHandler() http.Handler {
	if s.config.StaticDir != "" {
		return http.FileServer(http.Dir(s.config.StaticDir))
	}

	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		// unreachable: web is embedded
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	volumeControl := false
	if s.config.App != nil {
		volumeControl = s.config.App.Sink().Available()
	}

	api.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime":         time.Since(s.start).String(),
		"volume_control": volumeControl,
	})
}

// Close stops background work started by the server.
func (s *Server) Close() {
	if s.status != nil {
		s.status.Close()
	}
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	s.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
