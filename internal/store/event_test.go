package store

import (
	"testing"
)

func TestEventRepository_Record(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.Sessions().Start()
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	e := &VolumeEvent{
		SessionID: sess.ID,
		Gesture:   "Far",
		Action:    "Zoom+",
		Quality:   "Excellent",
		Distance:  155.2,
		Volume:    75,
	}
	if err := s.Events().Record(e); err != nil {
		t.Fatalf("failed to record event: %v", err)
	}
	if e.ID == "" {
		t.Error("event ID should be set")
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	events, err := s.Events().ListBySession(sess.ID)
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}

	got := events[0]
	if got.ID != e.ID || got.Gesture != "Far" || got.Action != "Zoom+" || got.Quality != "Excellent" {
		t.Errorf("unexpected event: %+v", got)
	}
	if got.Distance != 155.2 || got.Volume != 75 {
		t.Errorf("Distance/Volume = %v/%d, want 155.2/75", got.Distance, got.Volume)
	}

	// Session reports its event count
	loaded, err := s.Sessions().GetByID(sess.ID)
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	if loaded.Events != 1 {
		t.Errorf("session Events = %d, want 1", loaded.Events)
	}
}

func TestEventRepository_RecordRequiresSession(t *testing.T) {
	s := newTestStore(t)

	err := s.Events().Record(&VolumeEvent{SessionID: "missing", Gesture: "Pinch", Action: "Click/Select", Quality: "Good", Volume: 0})
	if err == nil {
		t.Error("expected foreign key error for unknown session")
	}
}

func TestEventRepository_RejectsOutOfRangeVolume(t *testing.T) {
	s := newTestStore(t)

	sess, _ := s.Sessions().Start()
	err := s.Events().Record(&VolumeEvent{SessionID: sess.ID, Gesture: "Far", Action: "Zoom+", Quality: "Good", Volume: 101})
	if err == nil {
		t.Error("expected check constraint error for volume 101")
	}
}

func TestEventRepository_Recent(t *testing.T) {
	s := newTestStore(t)

	sess, _ := s.Sessions().Start()
	for _, vol := range []int{10, 20, 30, 40} {
		if err := s.Events().Record(&VolumeEvent{SessionID: sess.ID, Gesture: "Medium", Action: "Neutral", Quality: "Fair", Volume: vol}); err != nil {
			t.Fatalf("failed to record event: %v", err)
		}
	}

	events, err := s.Events().Recent(2)
	if err != nil {
		t.Fatalf("failed to list recent events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Volume != 40 || events[1].Volume != 30 {
		t.Errorf("Recent() volumes = %d,%d, want 40,30", events[0].Volume, events[1].Volume)
	}
}
