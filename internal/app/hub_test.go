package app

import (
	"bytes"
	"testing"
)

func TestHub_SubscribeReceivesLatest(t *testing.T) {
	h := NewHub()
	h.Publish([]byte("one"))

	ch, unsubscribe := h.Subscribe()
	defer unsubscribe()

	if got := <-ch; !bytes.Equal(got, []byte("one")) {
		t.Errorf("first frame = %q, want %q", got, "one")
	}
}

func TestHub_SlowSubscriberSeesNewest(t *testing.T) {
	h := NewHub()
	ch, unsubscribe := h.Subscribe()
	defer unsubscribe()

	for _, f := range []string{"a", "b", "c"} {
		h.Publish([]byte(f))
	}

	if got := <-ch; !bytes.Equal(got, []byte("c")) {
		t.Errorf("frame = %q, want newest %q", got, "c")
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected queued frame %q", extra)
	default:
	}
}

func TestHub_Unsubscribe(t *testing.T) {
	h := NewHub()
	_, unsubscribe := h.Subscribe()

	if h.Subscribers() != 1 {
		t.Fatalf("Subscribers() = %d, want 1", h.Subscribers())
	}

	unsubscribe()
	unsubscribe()

	if h.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, want 0", h.Subscribers())
	}

	// Publishing with no subscribers never blocks
	h.Publish([]byte("x"))
	if !bytes.Equal(h.Latest(), []byte("x")) {
		t.Errorf("Latest() = %q, want %q", h.Latest(), "x")
	}
}
