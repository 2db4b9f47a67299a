package tui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/pomodoro"
	"pomodoro/internal/storage"
	"pomodoro/internal/tasks"
)

type fakeScheduler struct {
	calls    []string
	snapshot pomodoro.Snapshot
}

func (scheduler *fakeScheduler) Start() { scheduler.calls = append(scheduler.calls, "start") }
func (scheduler *fakeScheduler) Pause() { scheduler.calls = append(scheduler.calls, "pause") }
func (scheduler *fakeScheduler) Stop() { scheduler.calls = append(scheduler.calls, "stop") }
func (scheduler *fakeScheduler) CompletePhase() { scheduler.calls = append(scheduler.calls, "skip") }
func (scheduler *fakeScheduler) Snapshot() pomodoro.Snapshot {
	return scheduler.snapshot
}

func newTestModel(t *testing.T) (Model, *fakeScheduler, *tasks.List) {
	t.Helper()
	scheduler := &fakeScheduler{snapshot: pomodoro.Snapshot{State: pomodoro.StateIdle, Elapsed: "0:00"}}
	list := tasks.NewList(storage.NewMemoryStore(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	events := make(chan pomodoro.Event)
	return New(scheduler, events, list), scheduler, list
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

func TestTimerKeysDriveScheduler(t *testing.T) {
	m, scheduler, _ := newTestModel(t)

	send(t, m, runes("s"), runes("p"), runes("n"), runes("x"))

	assert.Equal(t, []string{"start", "pause", "skip", "stop"}, scheduler.calls)
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestEventsUpdateDisplay(t *testing.T) {
	m, scheduler, _ := newTestModel(t)
	scheduler.snapshot.Remaining = 90 * time.Second

	m = send(t, m,
		eventMsg(pomodoro.Event{Type: pomodoro.EventModeChange, State: pomodoro.StateWork, Message: pomodoro.MessageWorkStarted}),
		eventMsg(pomodoro.Event{Type: pomodoro.EventTick, State: pomodoro.StateWork, Time: "0:03"}),
	)

	view := m.View()
	assert.Contains(t, view, "0:03")
	assert.Contains(t, view, "Work")
	assert.Contains(t, view, "1:30 remaining")
	assert.Contains(t, view, pomodoro.MessageWorkStarted)
}

func TestEventWaitsForNextEvent(t *testing.T) {
	events := make(chan pomodoro.Event, 1)
	events <- pomodoro.Event{Type: pomodoro.EventTick, Time: "0:01"}
	msg := waitForEvent(events)()
	assert.Equal(t, eventMsg(pomodoro.Event{Type: pomodoro.EventTick, Time: "0:01"}), msg)

	close(events)
	assert.IsType(t, eventsClosedMsg{}, waitForEvent(events)())
}

func TestAddTaskWithPriorityCycling(t *testing.T) {
	m, _, list := newTestModel(t)

	m = send(t, m, runes("a"))
	require.True(t, m.adding)

	m = send(t, m, runes("r"), runes("e"), runes("a"), runes("d"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.adding)
	require.Equal(t, 1, list.Len())
	assert.Equal(t, tasks.Task{Title: "read", Priority: tasks.PriorityHigh}, list.Tasks()[0])
}

func TestAddBlankTaskShowsError(t *testing.T) {
	m, _, list := newTestModel(t)

	m = send(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.adding)
	assert.ErrorIs(t, m.err, tasks.ErrEmptyTitle)
	assert.Equal(t, 0, list.Len())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.adding)
	assert.NoError(t, m.err)
}

func TestTaskPaneToggleAndDelete(t *testing.T) {
	m, _, list := newTestModel(t)
	require.NoError(t, list.Add("one", tasks.PriorityLow))
	require.NoError(t, list.Add("two", tasks.PriorityHigh))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, runes("j"), tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, list.Tasks()[1].IsCompleted)
	assert.Contains(t, m.View(), "[x]")

	m = send(t, m, runes("d"))
	require.Equal(t, 1, list.Len())
	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, "one", list.Tasks()[0].Title)
}

func TestSwitchToTasksReloadsList(t *testing.T) {
	store := storage.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	list := tasks.NewList(store, logger)
	m := New(&fakeScheduler{}, make(chan pomodoro.Event), list)

	other := tasks.NewList(store, logger)
	require.NoError(t, other.Add("remote", tasks.PriorityHigh))
	assert.NotContains(t, m.View(), "remote")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Contains(t, m.View(), "remote")
	assert.Equal(t, 1, list.Len())
}

func TestTaskKeysIgnoredOnTimerPane(t *testing.T) {
	m, _, list := newTestModel(t)
	require.NoError(t, list.Add("one", tasks.PriorityLow))

	send(t, m, tea.KeyMsg{Type: tea.KeySpace}, runes("d"))

	assert.Equal(t, 1, list.Len())
	assert.False(t, list.Tasks()[0].IsCompleted)
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	assert.False(t, m.help.ShowAll)

	m = send(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
}

func TestFormatRemainingRoundsUp(t *testing.T) {
	assert.Equal(t, "0:00", formatRemaining(0))
	assert.Equal(t, "0:03", formatRemaining(2500*time.Millisecond))
	assert.Equal(t, "45:00", formatRemaining(45*time.Minute))
}
