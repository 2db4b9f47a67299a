package platform

import (
	"errors"
	"log/slog"
	"sync"

	"pomodoro/internal/core/pomodoro"
)

// ErrKeepAliveUnsupported indicates the host offers no way to hold off sleep.
var ErrKeepAliveUnsupported = errors.New("keep-alive unsupported")

// hold keeps the host awake until done is closed. It returns early with an
// error if the inhibitor could not be taken.
var holdFunc = hold

// NewKeepAlive returns a keep-alive provider for the current platform.
// Inhibitors are taken on a separate goroutine so Acquire never blocks.
func NewKeepAlive(appName string, logger *slog.Logger) pomodoro.KeepAlive {
	if logger == nil {
		logger = slog.Default()
	}
	return &keepAlive{appName: appName, logger: logger}
}

type keepAlive struct {
	appName string
	logger  *slog.Logger
}

func (provider *keepAlive) Acquire(reason string) pomodoro.Lease {
	held := &lease{done: make(chan struct{}), finished: make(chan struct{})}
	go func() {
		defer close(held.finished)
		err := holdFunc(provider.appName, reason, held.done)
		switch {
		case errors.Is(err, ErrKeepAliveUnsupported):
			provider.logger.Debug("keep-alive unsupported on this platform")
		case err != nil:
			provider.logger.Warn("keep-alive unavailable", "error", err)
		}
	}()
	return held
}

type lease struct {
	once     sync.Once
	done     chan struct{}
	finished chan struct{}
}

func (held *lease) Release() {
	held.once.Do(func() {
		close(held.done)
	})
}
