// Package tray provides a macOS system tray interface for the Airbrush drawing system.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the macOS system tray application.
type Tray struct {
	onToggle   func(enabled bool)
	onClear    func()
	onSnapshot func()
	onCanvas   func()
	onQuit     func()
	enabled    bool
	mu         sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuState  *systray.MenuItem
}

// New creates a new Tray instance with enabled state set to true by default.
func New() *Tray {
	return &Tray{
		enabled: true,
	}
}

// OnToggle sets the callback function to be called when drawing is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnClear sets the callback function for the clear canvas menu item.
func (t *Tray) OnClear(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onClear = fn
}

// OnSnapshot sets the callback function for the save snapshot menu item.
func (t *Tray) OnSnapshot(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onSnapshot = fn
}

// OnCanvas sets the callback function for the open canvas menu item.
func (t *Tray) OnCanvas(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCanvas = fn
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

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Airbrush")
	systray.SetTooltip("Airbrush Hand-Tracked Drawing")

	t.menuToggle = systray.AddMenuItem("● Drawing On", "Toggle hand-tracked drawing")
	systray.AddSeparator()

	t.menuState = systray.AddMenuItem("State: idle", "Current stroke state")
	t.menuState.Disable()
	systray.AddSeparator()

	menuCanvas := systray.AddMenuItem("Open Canvas...", "Open the canvas in a browser")
	menuSnapshot := systray.AddMenuItem("Save Snapshot", "Save the current canvas")
	menuClear := systray.AddMenuItem("Clear Canvas", "Wipe the canvas")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Airbrush")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuCanvas.ClickedCh:
				t.handleCanvas()
			case <-menuSnapshot.ClickedCh:
				t.handleSnapshot()
			case <-menuClear.ClickedCh:
				t.handleClear()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Drawing On")
	} else {
		t.menuToggle.SetTitle("○ Drawing Off")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleCanvas handles the open canvas menu item click.
func (t *Tray) handleCanvas() {
	t.mu.RLock()
	callback := t.onCanvas
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleSnapshot handles the save snapshot menu item click.
func (t *Tray) handleSnapshot() {
	t.mu.RLock()
	callback := t.onSnapshot
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleClear handles the clear canvas menu item click.
func (t *Tray) handleClear() {
	t.mu.RLock()
	callback := t.onClear
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

// SetState updates the stroke state display in the menu.
func (t *Tray) SetState(state string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuState != nil {
		t.menuState.SetTitle("State: " + state)
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
