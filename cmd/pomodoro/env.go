package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"pomodoro/internal/core/pomodoro"
	"pomodoro/internal/logging"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/tasks"
	"pomodoro/internal/ui/preferences"
)

// options holds the persistent command-line flags.
type options struct {
	configPath string
	work       time.Duration
	rest       time.Duration
	tasksDB    string
	ephemeral  bool
	logLevel   string
	logFormat  string
	logFile    string
}

// environment is everything a command needs after flags are parsed.
// fileSettings is what settings.yaml holds; settings adds this run's flag
// overrides on top and is never written back.
type environment struct {
	settings     preferences.Settings
	fileSettings preferences.Settings
	settingsPath string
	logger       *slog.Logger
	store        storage.KV
	closers      []io.Closer
}

// load resolves settings, logging and the task store. defaultLogFile is used
// when --log-file is not set.
func (opts *options) load(cmd *cobra.Command, defaultLogFile string) (*environment, error) {
	env := &environment{}

	settingsPath := opts.configPath
	if settingsPath == "" {
		resolved, err := storage.SettingsPath(appName)
		if err != nil {
			return nil, err
		}
		settingsPath = resolved
	}
	env.settingsPath = settingsPath

	logFile := opts.logFile
	if logFile == "" {
		logFile = defaultLogFile
	}
	logger, logCloser, err := logging.New(logging.Options{
		Level:  opts.logLevel,
		Format: opts.logFormat,
		File:   logFile,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	env.logger = logger
	env.closers = append(env.closers, logCloser)

	settings, err := storage.LoadSettingsFile(settingsPath)
	if err != nil {
		logger.Warn("settings unreadable, using defaults", "path", settingsPath, "error", err)
	}
	env.fileSettings = settings
	env.settings = opts.applyOverrides(cmd, settings)

	store, err := opts.openStore(env.settings)
	if err != nil {
		env.Close()
		return nil, err
	}
	env.store = store
	env.closers = append(env.closers, store)

	return env, nil
}

// applyOverrides lets flags that were set explicitly win over the file.
func (opts *options) applyOverrides(cmd *cobra.Command, settings preferences.Settings) preferences.Settings {
	flags := cmd.Flags()
	if flags.Changed("work") && opts.work > 0 {
		settings.WorkDuration = opts.work
	}
	if flags.Changed("break") && opts.rest > 0 {
		settings.BreakDuration = opts.rest
	}
	if flags.Changed("tasks-db") && opts.tasksDB != "" {
		settings.TasksDBPath = opts.tasksDB
	}
	return settings
}

func (opts *options) openStore(settings preferences.Settings) (storage.KV, error) {
	if opts.ephemeral {
		return storage.NewMemoryStore(), nil
	}
	dbPath := settings.TasksDBPath
	if dbPath == "" {
		resolved, err := storage.DefaultTasksDBPath(appName)
		if err != nil {
			return nil, err
		}
		dbPath = resolved
	}
	store, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open task store: %w", err)
	}
	return store, nil
}

func (env *environment) taskList() *tasks.List {
	return tasks.NewList(env.store, env.logger)
}

func (env *environment) newScheduler() *pomodoro.Scheduler {
	return pomodoro.NewScheduler(env.settings.CycleConfig(), pomodoro.Options{
		KeepAlive: platform.NewKeepAlive(appName, env.logger),
		Logger:    env.logger,
	})
}

// saveSettings persists settings edited from the file values. They become
// the effective settings, except for the task store which stays open for
// the rest of the run.
func (env *environment) saveSettings(settings preferences.Settings) error {
	if err := storage.SaveSettingsFile(env.settingsPath, settings); err != nil {
		return err
	}
	env.fileSettings = settings
	tasksDB := env.settings.TasksDBPath
	env.settings = settings
	env.settings.TasksDBPath = tasksDB
	return nil
}

// lockSession takes the per-user lock held by the desktop and terminal
// front-ends. The tasks subcommands run without it.
func (env *environment) lockSession() error {
	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		return err
	}
	env.closers = append(env.closers, lock)
	return nil
}

func (env *environment) Close() error {
	var errs []error
	for i := len(env.closers) - 1; i >= 0; i-- {
		if err := env.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	env.closers = nil
	return errors.Join(errs...)
}

func defaultTUILogFile() string {
	appDir, err := platform.AppDir(appName)
	if err != nil {
		return ""
	}
	return filepath.Join(appDir, "pomodoro.log")
}
