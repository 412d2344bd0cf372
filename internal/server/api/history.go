package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// Event listing limits.
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 500
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SessionHandler serves /api/sessions and /api/sessions/{id}.
type SessionHandler struct {
	store *store.Store
}

// NewSessionHandler creates a new SessionHandler with the given store.
func NewSessionHandler(s *store.Store) *SessionHandler {
	return &SessionHandler{store: s}
}

type sessionResponse struct {
	ID        string  `json:"id"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at"`
	Events    int     `json:"events"`
}

type sessionDetailResponse struct {
	sessionResponse
	VolumeEvents []eventResponse `json:"volume_events"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type eventResponse struct {
	ID        string  `json:"id"`
	SessionID string  `json:"session_id"`
	Gesture   string  `json:"gesture"`
	Action    string  `json:"action"`
	Quality   string  `json:"quality"`
	Distance  float64 `json:"distance"`
	Volume    int     `json:"volume"`
	CreatedAt string  `json:"created_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

func toSessionResponse(s *store.Session) sessionResponse {
	resp := sessionResponse{
		ID:        s.ID,
		StartedAt: s.StartedAt.Format(timeLayout),
		Events:    s.Events,
	}
	if s.EndedAt != nil {
		ended := s.EndedAt.Format(timeLayout)
		resp.EndedAt = &ended
	}
	return resp
}

func toEventResponses(events []*store.VolumeEvent) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			ID:        e.ID,
			SessionID: e.SessionID,
			Gesture:   e.Gesture,
			Action:    e.Action,
			Quality:   e.Quality,
			Distance:  e.Distance,
			Volume:    e.Volume,
			CreatedAt: e.CreatedAt.Format(timeLayout),
		})
	}
	return out
}

// ServeHTTP routes collection and item requests.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Expected paths: /api/sessions or /api/sessions/{id}
	id := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	id = strings.Trim(id, "/")

	if id == "" {
		h.list(w, r)
		return
	}
	h.get(w, r, id)
}

func (h *SessionHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List(0)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		response.Sessions = append(response.Sessions, toSessionResponse(s))
	}

	WriteJSON(w, http.StatusOK, response)
}

func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Session not found")
			return
		}
		WriteError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	events, err := h.store.Events().ListBySession(id)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list volume events")
		return
	}

	WriteJSON(w, http.StatusOK, sessionDetailResponse{
		sessionResponse: toSessionResponse(sess),
		VolumeEvents:    toEventResponses(events),
	})
}

// EventHandler serves /api/events.
type EventHandler struct {
	store *store.Store
}

// NewEventHandler creates a new EventHandler with the given store.
func NewEventHandler(s *store.Store) *EventHandler {
	return &EventHandler{store: s}
}

// ServeHTTP returns the most recent volume events, newest first.
func (h *EventHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.store.Events().Recent(limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to list volume events")
		return
	}

	WriteJSON(w, http.StatusOK, listEventsResponse{Events: toEventResponses(events)})
}

// parseLimit reads the limit query value, applying the default and cap.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return DefaultEventLimit, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	if n > MaxEventLimit {
		n = MaxEventLimit
	}
	return n, nil
}
