package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"

	"pomodoro/internal/core/pomodoro"
	"pomodoro/internal/tasks"
	"pomodoro/internal/ui/banner"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/taskview"
	"pomodoro/internal/ui/timer"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"
)

func guiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Run the desktop interface (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}
}

func runGUI(cmd *cobra.Command, opts *options) error {
	env, err := opts.load(cmd, "")
	if err != nil {
		return err
	}
	defer env.Close()
	if err := env.lockSession(); err != nil {
		return err
	}

	fyneApp := app.NewWithID("com.pomodoro.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconIdle))

	list := env.taskList()
	fyneApp.Lifecycle().SetOnEnteredForeground(list.Reload)

	gui := newDesktop(fyneApp, env, list)
	gui.window.Show()
	fyneApp.Run()
	gui.scheduler.Close()
	return nil
}

// desktopUI owns the fyne windows and the current scheduler. Everything but
// pump runs on the fyne goroutine.
type desktopUI struct {
	app       fyne.App
	tray      *tray.Manager
	trayApp   desktop.App
	env       *environment
	window    fyne.Window
	scheduler *pomodoro.Scheduler
	timer     *timer.Screen
	banner    *banner.Window
	prefs     *preferences.Window
}

func newDesktop(fyneApp fyne.App, env *environment, list *tasks.List) *desktopUI {
	gui := &desktopUI{
		app:    fyneApp,
		env:    env,
		window: fyneApp.NewWindow(appName),
	}

	gui.timer = timer.New(gui, pomodoro.NewDisplay())
	tasksView := taskview.New(list, gui.window)
	gui.banner = banner.New(fyneApp, gui.bannerConfig())
	gui.prefs = preferences.New(fyneApp, env.fileSettings, gui.applySettings)

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Timer", theme.HistoryIcon(), gui.timer.Content()),
		container.NewTabItemWithIcon("Tasks", theme.ListIcon(), tasksView.Content()),
	)
	gui.window.SetContent(tabs)
	gui.window.Resize(fyne.NewSize(440, 420))
	gui.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Pomodoro",
		fyne.NewMenuItem("Preferences", gui.prefs.Show),
	)))

	if trayApp, ok := fyneApp.(desktop.App); ok {
		gui.trayApp = trayApp
		gui.tray = tray.New(trayApp, tray.Callbacks{
			OnStart:       gui.Start,
			OnPause:       gui.Pause,
			OnStop:        gui.Stop,
			OnSkip:        gui.CompletePhase,
			OnShow:        gui.window.Show,
			OnPreferences: gui.prefs.Show,
			OnQuit:        gui.quit,
		})
		trayApp.SetSystemTrayIcon(resources.MustIcon(resources.IconIdle))
		gui.window.SetCloseIntercept(gui.window.Hide)
	} else {
		env.logger.Info("system tray unsupported on this platform")
		gui.window.SetCloseIntercept(gui.quit)
	}

	gui.startScheduler()
	return gui
}

func (gui *desktopUI) Start() { gui.scheduler.Start() }
func (gui *desktopUI) Pause() { gui.scheduler.Pause() }
func (gui *desktopUI) Stop() { gui.scheduler.Stop() }
func (gui *desktopUI) CompletePhase() { gui.scheduler.CompletePhase() }

func (gui *desktopUI) startScheduler() {
	gui.scheduler = gui.env.newScheduler()
	gui.timer.Reset(pomodoro.DisplayFromSnapshot(gui.scheduler.Snapshot()))
	gui.render(gui.timer.Display())
	go gui.pump(gui.scheduler.Subscribe(64))
}

// pump forwards scheduler events to the fyne goroutine until the scheduler
// is closed.
func (gui *desktopUI) pump(events <-chan pomodoro.Event) {
	for event := range events {
		fyne.Do(func() { gui.handle(event) })
	}
}

func (gui *desktopUI) handle(event pomodoro.Event) {
	completed := gui.timer.Apply(event)
	display := gui.timer.Display()
	gui.render(display)

	if completed && gui.env.settings.ShowBanner {
		gui.banner.Show(banner.Notice{
			Title:   event.State.Label() + " complete",
			Message: event.Message,
			Streaks: display.Streaks(),
		})
	}
}

func (gui *desktopUI) render(display pomodoro.Display) {
	status := display.Status()
	gui.window.SetTitle(appName + " · " + status)
	if gui.tray == nil {
		return
	}
	gui.tray.SetStatus(status)
	gui.tray.SetSession(display.Mode != pomodoro.StateIdle.Label(), display.Paused)
	gui.trayApp.SetSystemTrayIcon(resources.MustIcon(iconFor(display)))
}

func (gui *desktopUI) applySettings(settings preferences.Settings) {
	if err := gui.env.saveSettings(settings); err != nil {
		gui.env.logger.Error("save settings", "error", err)
	}
	gui.banner.UpdateConfig(gui.bannerConfig())

	if gui.scheduler.Snapshot().State != pomodoro.StateIdle {
		gui.env.logger.Info("cycle settings apply once the timer is stopped and saved again")
		return
	}
	gui.scheduler.Close()
	gui.startScheduler()
}

func (gui *desktopUI) bannerConfig() banner.Config {
	return banner.Config{Opacity: preferences.ClampOpacity(gui.env.settings.BannerOpacity)}
}

func (gui *desktopUI) quit() {
	gui.scheduler.Close()
	gui.app.Quit()
}

func iconFor(display pomodoro.Display) string {
	switch {
	case display.Paused:
		return resources.IconPaused
	case display.Mode == pomodoro.StateWork.Label():
		return resources.IconWork
	case display.Mode == pomodoro.StateBreak.Label():
		return resources.IconBreak
	default:
		return resources.IconIdle
	}
}
