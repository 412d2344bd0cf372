// Package tray provides a system tray front end for mudra.
package tray

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/getlantern/systray"
)

// refreshInterval is how often the menu follows the session state.
const refreshInterval = 500 * time.Millisecond

// Tray represents the system tray application.
type Tray struct {
	onToggle func(active bool) error
	onOpen   func()
	onQuit   func()
	active   bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle  *systray.MenuItem
	menuGesture *systray.MenuItem
	menuVolume  *systray.MenuItem
}

// New creates a new Tray instance with the camera shown as stopped.
func New() *Tray {
	return &Tray{}
}

// OnToggle sets the callback called with the requested camera state when
// the toggle item is clicked. The displayed state only changes when it
// returns nil.
func (t *Tray) OnToggle(fn func(active bool) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnOpen sets the callback called when the open item is clicked.
func (t *Tray) OnOpen(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpen = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit closes the tray, making Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra pinch volume control")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.active), "Start or stop the camera")
	systray.AddSeparator()

	t.menuGesture = systray.AddMenuItem(gestureTitle(""), "Current gesture")
	t.menuGesture.Disable()
	t.menuVolume = systray.AddMenuItem(volumeTitle(-1), "Current volume")
	t.menuVolume.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuOpen := systray.AddMenuItem("Open in Browser...", "Open the video page")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuOpen.ClickedCh:
				t.handleOpen()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.RLock()
	want := !t.active
	callback := t.onToggle
	t.mu.RUnlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		if err := callback(want); err != nil {
			return
		}
	}

	t.setActive(want)
}

// handleOpen handles the open menu item click.
func (t *Tray) handleOpen() {
	t.mu.RLock()
	callback := t.onOpen
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

func (t *Tray) setActive(active bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = active
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(active))
	}
}

// SetStatus updates the menu from a session snapshot.
func (t *Tray) SetStatus(s app.Snapshot) {
	if t.IsActive() != s.CameraActive {
		t.setActive(s.CameraActive)
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuGesture != nil {
		gesture := ""
		if s.HandDetected {
			gesture = s.Action
		}
		t.menuGesture.SetTitle(gestureTitle(gesture))
	}
	if t.menuVolume != nil {
		t.menuVolume.SetTitle(volumeTitle(s.Volume))
	}
}

// Follow mirrors a's session state into the menu until ctx is done.
func (t *Tray) Follow(ctx context.Context, a *app.App) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		t.SetStatus(a.Snapshot())

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// IsActive returns the camera state shown in the menu.
func (t *Tray) IsActive() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

func toggleTitle(active bool) string {
	if active {
		return "● Camera On"
	}
	return "○ Camera Off"
}

func gestureTitle(action string) string {
	if action == "" {
		return "Gesture: none"
	}
	return "Gesture: " + action
}

func volumeTitle(volume int) string {
	if volume < 0 {
		return "Volume: -"
	}
	return fmt.Sprintf("Volume: %d%%", volume)
}
