package banner

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const defaultAutoHide = 8 * time.Second

// Config defines banner visuals.
type Config struct {
	// Opacity is the background alpha in [0, 1].
	Opacity  float64
	AutoHide time.Duration
}

// Notice is the content of one banner.
type Notice struct {
	Title   string
	Message string
	Streaks string
}

// Window is a small undecorated window shown when a phase ends.
type Window struct {
	app        fyne.App
	window     fyne.Window
	config     Config
	background *canvas.Rectangle
	title      *canvas.Text
	message    *canvas.Text
	streaks    *canvas.Text

	mu        sync.Mutex
	hideTimer *time.Timer
	shown     int
}

const (
	bannerWidthFraction  = float32(0.22)
	bannerHeightFraction = float32(0.14)
	defaultScreenWidth   = float32(1920)
	defaultScreenHeight  = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden banner window.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Pomodoro")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{A: Alpha(config.Opacity)})

	title := canvas.NewText("", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 20

	message := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	message.TextSize = 15

	streaks := canvas.NewText("", color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	streaks.TextSize = 13

	banner := &Window{
		app:        app,
		window:     window,
		config:     config,
		background: background,
		title:      title,
		message:    message,
		streaks:    streaks,
	}

	dismiss := widget.NewButton("Dismiss", banner.Hide)
	text := container.NewPadded(container.NewVBox(title, message, streaks, container.NewHBox(dismiss)))
	window.SetContent(container.NewStack(background, text))

	return banner
}

// Show displays notice and schedules the auto-hide. It must be called on the
// fyne goroutine.
func (banner *Window) Show(notice Notice) {
	banner.title.Text = notice.Title
	banner.message.Text = notice.Message
	banner.streaks.Text = notice.Streaks
	banner.title.Refresh()
	banner.message.Refresh()
	banner.streaks.Refresh()

	banner.resizeToScreenFraction()
	banner.window.Show()
	banner.applyNativeOpacity(Alpha(banner.config.Opacity))

	banner.mu.Lock()
	banner.shown++
	generation := banner.shown
	if banner.hideTimer != nil {
		banner.hideTimer.Stop()
	}
	banner.hideTimer = time.AfterFunc(autoHideAfter(banner.config), func() {
		fyne.Do(func() { banner.hideIfCurrent(generation) })
	})
	banner.mu.Unlock()
}

// Hide closes the banner.
func (banner *Window) Hide() {
	banner.mu.Lock()
	if banner.hideTimer != nil {
		banner.hideTimer.Stop()
		banner.hideTimer = nil
	}
	banner.mu.Unlock()
	banner.window.Hide()
}

// UpdateConfig updates banner visuals.
func (banner *Window) UpdateConfig(config Config) {
	banner.config = config
	banner.background.FillColor = color.NRGBA{A: Alpha(config.Opacity)}
	canvas.Refresh(banner.background)
}

func (banner *Window) hideIfCurrent(generation int) {
	banner.mu.Lock()
	current := banner.shown == generation
	banner.mu.Unlock()
	if current {
		banner.Hide()
	}
}

func (banner *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := banner.window.Canvas().Size()
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * bannerWidthFraction
	height := screenSize.Height * bannerHeightFraction
	minSize := banner.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	banner.window.Resize(fyne.NewSize(width, height))
	banner.window.CenterOnScreen()
}

// Alpha converts an opacity in [0, 1] to an 8-bit alpha.
func Alpha(opacity float64) uint8 {
	if opacity <= 0 {
		return 0
	}
	if opacity >= 1 {
		return 255
	}
	return uint8(opacity*255 + 0.5)
}

func autoHideAfter(config Config) time.Duration {
	if config.AutoHide <= 0 {
		return defaultAutoHide
	}
	return config.AutoHide
}
