package preferences

import (
	"time"

	"pomodoro/internal/core/model"
)

const (
	MinBannerOpacity     = 0.7
	MaxBannerOpacity     = 0.95
	DefaultBannerOpacity = 0.85
)

// Settings defines editable user preferences.
type Settings struct {
	WorkDuration      time.Duration
	BreakDuration     time.Duration
	TickInterval      time.Duration
	PauseExtendsPhase bool

	ShowBanner    bool
	BannerOpacity float64

	// TasksDBPath overrides the task database location. Empty means the
	// application directory.
	TasksDBPath string
}

// DefaultSettings returns default settings for Pomodoro.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:  model.DefaultWorkDuration,
		BreakDuration: model.DefaultBreakDuration,
		TickInterval:  model.DefaultTickInterval,
		ShowBanner:    true,
		BannerOpacity: DefaultBannerOpacity,
	}
}

// CycleConfig converts settings to the scheduler configuration.
func (settings Settings) CycleConfig() model.CycleConfig {
	return model.CycleConfig{
		WorkDuration:      settings.WorkDuration,
		BreakDuration:     settings.BreakDuration,
		TickInterval:      settings.TickInterval,
		PauseExtendsPhase: settings.PauseExtendsPhase,
	}.Normalized()
}

// ClampOpacity keeps opacity within the range the banner supports.
func ClampOpacity(opacity float64) float64 {
	if opacity < MinBannerOpacity {
		return MinBannerOpacity
	}
	if opacity > MaxBannerOpacity {
		return MaxBannerOpacity
	}
	return opacity
}
