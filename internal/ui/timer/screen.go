package timer

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/pomodoro"
)

// Controller is the part of the scheduler the timer screen drives.
type Controller interface {
	Start()
	Pause()
	Stop()
	CompletePhase()
}

// Screen shows the elapsed time, mode and streaks with the cycle controls.
// Apply must be called on the fyne goroutine.
type Screen struct {
	controller Controller
	display    pomodoro.Display

	elapsed *canvas.Text
	mode    *widget.Label
	message *widget.Label
	streaks *widget.Label
	start   *widget.Button
	pause   *widget.Button
	content fyne.CanvasObject
}

// New builds the timer screen seeded with initial.
func New(controller Controller, initial pomodoro.Display) *Screen {
	screen := &Screen{
		controller: controller,
		elapsed:    canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		mode:       widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		message:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
		streaks:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
	}
	screen.elapsed.TextSize = 56
	screen.elapsed.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	screen.elapsed.Alignment = fyne.TextAlignCenter

	screen.start = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), controller.Start)
	screen.pause = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), controller.Pause)
	stop := widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), controller.Stop)
	skip := widget.NewButtonWithIcon("Skip", theme.MediaSkipNextIcon(), controller.CompletePhase)
	screen.start.Importance = widget.HighImportance
	stop.Importance = widget.DangerImportance

	screen.content = container.NewVBox(
		container.NewPadded(screen.elapsed),
		screen.mode,
		screen.message,
		screen.streaks,
		container.NewGridWithColumns(4, screen.start, screen.pause, stop, skip),
	)

	screen.render(initial)
	return screen
}

// Content returns the root canvas object.
func (screen *Screen) Content() fyne.CanvasObject {
	return screen.content
}

// Display returns the current presentation state.
func (screen *Screen) Display() pomodoro.Display {
	return screen.display
}

// Reset replaces the shown state, e.g. after the scheduler is rebuilt.
func (screen *Screen) Reset(display pomodoro.Display) {
	screen.render(display)
}

// Apply folds event into the screen and reports whether a phase just ended.
func (screen *Screen) Apply(event pomodoro.Event) bool {
	display := screen.display
	completed := display.Apply(event)
	screen.render(display)
	return completed
}

func (screen *Screen) render(display pomodoro.Display) {
	screen.display = display

	screen.elapsed.Text = display.Elapsed
	screen.elapsed.Color = modeColor(display.Mode)
	screen.elapsed.Refresh()
	screen.mode.SetText(display.Mode)
	screen.message.SetText(display.Message)
	screen.streaks.SetText(display.Streaks())

	idle := display.Mode == pomodoro.StateIdle.Label()
	if display.Paused {
		screen.start.SetText("Resume")
	} else {
		screen.start.SetText("Start")
	}
	if idle || display.Paused {
		screen.start.Enable()
		screen.pause.Disable()
	} else {
		screen.start.Disable()
		screen.pause.Enable()
	}
}

func modeColor(mode string) color.Color {
	switch mode {
	case pomodoro.StateWork.Label():
		return color.NRGBA{R: 229, G: 57, B: 53, A: 255}
	case pomodoro.StateBreak.Label():
		return color.NRGBA{R: 67, G: 160, B: 71, A: 255}
	default:
		return theme.Color(theme.ColorNameForeground)
	}
}
