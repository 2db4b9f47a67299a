package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart       func()
	OnPause       func()
	OnStop        func()
	OnSkip        func()
	OnShow        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state. Its methods must run on the fyne
// goroutine.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	skipItem   *fyne.MenuItem
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: Idle", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnPause))
	manager.stopItem = fyne.NewMenuItem("Stop", invoke(&manager.callbacks.OnStop))
	manager.skipItem = fyne.NewMenuItem("Skip phase", invoke(&manager.callbacks.OnSkip))

	manager.SetSession(false, false)

	manager.menu = fyne.NewMenu("Pomodoro",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.stopItem,
		manager.skipItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
	app.SetSystemTrayMenu(manager.menu)

	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refresh()
}

// SetSession enables the items that make sense for the session state.
func (manager *Manager) SetSession(active, paused bool) {
	manager.startItem.Disabled = active && !paused
	if paused {
		manager.startItem.Label = "Resume"
	} else {
		manager.startItem.Label = "Start"
	}
	manager.pauseItem.Disabled = !active || paused
	manager.stopItem.Disabled = !active
	manager.skipItem.Disabled = !active
	manager.refresh()
}

func (manager *Manager) refresh() {
	if manager.menu == nil {
		return
	}
	manager.menu.Refresh()
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
