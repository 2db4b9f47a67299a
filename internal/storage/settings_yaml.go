package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/platform"
	"pomodoro/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkDurationSeconds  int     `yaml:"work_duration_seconds"`
	BreakDurationSeconds int     `yaml:"break_duration_seconds"`
	TickIntervalSeconds  int     `yaml:"tick_interval_seconds"`
	PauseExtendsPhase    bool    `yaml:"pause_extends_phase"`
	ShowBanner           *bool   `yaml:"show_banner"`
	BannerOpacity        float64 `yaml:"banner_opacity"`
	TasksDBPath          string  `yaml:"tasks_db_path,omitempty"`
}

// LoadSettingsFile reads preferences from an explicit path. Missing or invalid
// fields keep their defaults.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettingsFile writes preferences to an explicit path.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	showBanner := settings.ShowBanner
	fileData := yamlSettings{
		WorkDurationSeconds:  int(settings.WorkDuration / time.Second),
		BreakDurationSeconds: int(settings.BreakDuration / time.Second),
		TickIntervalSeconds:  int(settings.TickInterval / time.Second),
		PauseExtendsPhase:    settings.PauseExtendsPhase,
		ShowBanner:           &showBanner,
		BannerOpacity:        settings.BannerOpacity,
		TasksDBPath:          settings.TasksDBPath,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	appDir, err := platform.AppDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(appDir, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.WorkDurationSeconds > 0 {
		settings.WorkDuration = time.Duration(fileData.WorkDurationSeconds) * time.Second
	}
	if fileData.BreakDurationSeconds > 0 {
		settings.BreakDuration = time.Duration(fileData.BreakDurationSeconds) * time.Second
	}
	if fileData.TickIntervalSeconds > 0 {
		settings.TickInterval = time.Duration(fileData.TickIntervalSeconds) * time.Second
	}

	if fileData.BannerOpacity >= preferences.MinBannerOpacity && fileData.BannerOpacity <= preferences.MaxBannerOpacity {
		settings.BannerOpacity = fileData.BannerOpacity
	}
	if fileData.ShowBanner != nil {
		settings.ShowBanner = *fileData.ShowBanner
	}

	settings.PauseExtendsPhase = fileData.PauseExtendsPhase
	settings.TasksDBPath = fileData.TasksDBPath
}
