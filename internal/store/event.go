package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// VolumeEvent records one volume change sent to the system mixer.
type VolumeEvent struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Gesture   string    `json:"gesture"`
	Action    string    `json:"action"`
	Quality   string    `json:"quality"`
	Distance  float64   `json:"distance"`
	Volume    int       `json:"volume"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRepository provides access to volume events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the volume event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts e, filling in its ID and CreatedAt.
func (r *EventRepository) Record(e *VolumeEvent) error {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(
		`INSERT INTO volume_events (id, session_id, gesture, action, quality, distance, volume, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.Gesture, e.Action, e.Quality, e.Distance, e.Volume, e.CreatedAt,
	)
	return err
}

// ListBySession retrieves the events of one session in the order they
// were recorded.
func (r *EventRepository) ListBySession(sessionID string) ([]*VolumeEvent, error) {
	return r.query(
		`SELECT id, session_id, gesture, action, quality, distance, volume, created_at
		 FROM volume_events WHERE session_id = ? ORDER BY created_at ASC, rowid ASC`,
		sessionID,
	)
}

// Recent retrieves up to limit events across all sessions, newest first.
func (r *EventRepository) Recent(limit int) ([]*VolumeEvent, error) {
	return r.query(
		`SELECT id, session_id, gesture, action, quality, distance, volume, created_at
		 FROM volume_events ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
}

func (r *EventRepository) query(q string, args ...any) ([]*VolumeEvent, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*VolumeEvent{}
	for rows.Next() {
		e := &VolumeEvent{}
		err := rows.Scan(&e.ID, &e.SessionID, &e.Gesture, &e.Action, &e.Quality, &e.Distance, &e.Volume, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
