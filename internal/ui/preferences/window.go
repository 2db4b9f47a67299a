package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)

	work         *widget.Entry
	rest         *widget.Entry
	pauseExtends *widget.Check
	banner       *widget.Check
	opacity      *widget.Slider
}

// formValues is the raw content of the preferences form.
type formValues struct {
	workMinutes  string
	breakMinutes string
	pauseExtends bool
	showBanner   bool
	opacity      float64
}

// New creates a preferences window. onSave runs on the UI goroutine.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Preferences")

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		work:         widget.NewEntry(),
		rest:         widget.NewEntry(),
		pauseExtends: widget.NewCheck("Pausing extends the phase", nil),
		banner:       widget.NewCheck("Show banner when a phase ends", nil),
		opacity:      widget.NewSlider(MinBannerOpacity, MaxBannerOpacity),
	}
	prefs.opacity.Step = 0.01
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Cycle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), prefs.work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break"), prefs.rest, widget.NewLabel("min")),
		prefs.pauseExtends,
		widget.NewLabelWithStyle("Banner", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.banner,
		widget.NewLabel("Banner opacity"),
		prefs.opacity,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 320))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.work.SetText(formatMinutes(settings.WorkDuration))
	prefs.rest.SetText(formatMinutes(settings.BreakDuration))
	prefs.pauseExtends.SetChecked(settings.PauseExtendsPhase)
	prefs.banner.SetChecked(settings.ShowBanner)
	prefs.opacity.SetValue(ClampOpacity(settings.BannerOpacity))
}

func (prefs *Window) handleSave() {
	prefs.settings = applyForm(prefs.settings, formValues{
		workMinutes:  prefs.work.Text,
		breakMinutes: prefs.rest.Text,
		pauseExtends: prefs.pauseExtends.Checked,
		showBanner:   prefs.banner.Checked,
		opacity:      prefs.opacity.Value,
	})
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

// applyForm merges form values into settings. Unparseable or non-positive
// minute fields keep the previous value.
func applyForm(settings Settings, values formValues) Settings {
	if minutes, ok := parsePositiveInt(values.workMinutes); ok {
		settings.WorkDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(values.breakMinutes); ok {
		settings.BreakDuration = time.Duration(minutes) * time.Minute
	}
	settings.PauseExtendsPhase = values.pauseExtends
	settings.ShowBanner = values.showBanner
	settings.BannerOpacity = ClampOpacity(values.opacity)
	return settings
}

func formatMinutes(duration time.Duration) string {
	minutes := int(duration / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
