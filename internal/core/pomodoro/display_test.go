package pomodoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayStartsIdle(t *testing.T) {
	display := NewDisplay()
	assert.Equal(t, "0:00", display.Elapsed)
	assert.Equal(t, "Idle", display.Mode)
	assert.Equal(t, "Idle", display.Status())
}

func TestDisplayApply(t *testing.T) {
	display := NewDisplay()

	assert.False(t, display.Apply(Event{Type: EventModeChange, State: StateWork, Message: MessageWorkStarted}))
	assert.Equal(t, "Work", display.Mode)

	display.Apply(Event{Type: EventTick, State: StateWork, Time: "0:42"})
	assert.Equal(t, "Work 0:42", display.Status())

	display.Apply(Event{Type: EventModeChange, State: StateWork, Message: MessagePaused})
	assert.True(t, display.Paused)
	assert.Equal(t, "Work 0:42 (paused)", display.Status())

	display.Apply(Event{Type: EventModeChange, State: StateWork, Message: MessageWorkStarted})
	assert.False(t, display.Paused)

	completed := display.Apply(Event{Type: EventModeChange, State: StateWork, Message: MessageWorkComplete, CurrentStreak: 1, OverallStreak: 1})
	assert.True(t, completed)
	assert.Equal(t, "Streak 1 · Total 1", display.Streaks())

	display.Apply(Event{Type: EventModeChange, State: StateIdle, Message: MessageStopped, OverallStreak: 1})
	assert.Equal(t, "Idle", display.Mode)
	assert.Equal(t, 0, display.CurrentStreak)
}

func TestDisplayFromSnapshot(t *testing.T) {
	display := DisplayFromSnapshot(Snapshot{State: StateBreak, Paused: true, Elapsed: "1:05", CurrentStreak: 2, OverallStreak: 3})
	assert.Equal(t, "Break 1:05 (paused)", display.Status())
	assert.Equal(t, 3, display.OverallStreak)
}

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.Label())
	assert.Equal(t, "Work", StateWork.Label())
	assert.Equal(t, "Break", StateBreak.Label())
	assert.Equal(t, "Idle", State("").Label())
}
