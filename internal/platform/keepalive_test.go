package platform

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (buffer *syncBuffer) Write(p []byte) (int, error) {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return buffer.buf.Write(p)
}

func (buffer *syncBuffer) String() string {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return buffer.buf.String()
}

func stubHold(t *testing.T, fn func(appName, reason string, done <-chan struct{}) error) {
	t.Helper()
	previous := holdFunc
	holdFunc = fn
	t.Cleanup(func() { holdFunc = previous })
}

func TestKeepAliveHoldsUntilRelease(t *testing.T) {
	entered := make(chan string, 1)
	exited := make(chan struct{})
	stubHold(t, func(appName, reason string, done <-chan struct{}) error {
		entered <- appName + "|" + reason
		<-done
		close(exited)
		return nil
	})

	lease := NewKeepAlive("Pomodoro", nil).Acquire("Pomodoro timer running")

	select {
	case got := <-entered:
		assert.Equal(t, "Pomodoro|Pomodoro timer running", got)
	case <-time.After(time.Second):
		t.Fatal("inhibitor never requested")
	}

	select {
	case <-exited:
		t.Fatal("inhibitor released before Release")
	case <-time.After(20 * time.Millisecond):
	}

	lease.Release()
	lease.Release()

	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("inhibitor not released")
	}
}

func TestKeepAliveLogsFailure(t *testing.T) {
	stubHold(t, func(string, string, <-chan struct{}) error {
		return errors.New("no system bus")
	})

	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	lease := NewKeepAlive("Pomodoro", logger).Acquire("test")
	defer lease.Release()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "keep-alive unavailable")
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, out.String(), "no system bus")
}

func TestKeepAliveUnsupportedIsQuiet(t *testing.T) {
	stubHold(t, func(string, string, <-chan struct{}) error {
		return ErrKeepAliveUnsupported
	})

	var out syncBuffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	held := NewKeepAlive("Pomodoro", logger).Acquire("test").(*lease)
	defer held.Release()

	select {
	case <-held.finished:
	case <-time.After(time.Second):
		t.Fatal("hold did not return")
	}
	assert.Empty(t, out.String())
}

func TestAppDirUsesConfigDir(t *testing.T) {
	configDir, err := ConfigDir()
	require.NoError(t, err)

	appDir, err := AppDir("Pomodoro")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "Pomodoro"), appDir)
}

func TestFallbackConfigDirIsUnderHome(t *testing.T) {
	home := filepath.Join("/home", "tester")
	got := fallbackConfigDir(home)
	assert.True(t, strings.HasPrefix(got, home), got)
}
