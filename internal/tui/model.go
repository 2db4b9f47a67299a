package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/core/pomodoro"
	"pomodoro/internal/tasks"
)

// Scheduler is the part of the cycle scheduler the terminal front-end uses.
type Scheduler interface {
	Start()
	Pause()
	Stop()
	CompletePhase()
	Snapshot() pomodoro.Snapshot
}

type pane int

const (
	timerPane pane = iota
	tasksPane
)

// eventMsg carries one scheduler event into the update loop.
type eventMsg pomodoro.Event

// eventsClosedMsg is sent once the scheduler closes its event channel.
type eventsClosedMsg struct{}

// Model is the bubbletea model for the timer and task panes.
type Model struct {
	scheduler Scheduler
	events    <-chan pomodoro.Event
	list      *tasks.List

	keys  KeyMap
	help  help.Model
	input textinput.Model

	display   pomodoro.Display
	remaining time.Duration
	focus     pane
	cursor    int
	adding    bool
	priority  tasks.Priority
	err       error
	width     int
}

// New creates the model. events should be a fresh subscription on scheduler.
func New(scheduler Scheduler, events <-chan pomodoro.Event, list *tasks.List) Model {
	input := textinput.New()
	input.Placeholder = "Task title"
	input.CharLimit = 120

	snapshot := scheduler.Snapshot()
	return Model{
		scheduler: scheduler,
		events:    events,
		list:      list,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		display:   pomodoro.DisplayFromSnapshot(snapshot),
		remaining: snapshot.Remaining,
		priority:  tasks.PriorityMedium,
	}
}

func waitForEvent(events <-chan pomodoro.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.display.Apply(pomodoro.Event(msg))
		m.remaining = m.scheduler.Snapshot().Remaining
		return m, waitForEvent(m.events)

	case eventsClosedMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.adding {
			return m.updateForm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Start):
		m.scheduler.Start()
	case key.Matches(msg, m.keys.Pause):
		m.scheduler.Pause()
	case key.Matches(msg, m.keys.Stop):
		m.scheduler.Stop()
	case key.Matches(msg, m.keys.Skip):
		m.scheduler.CompletePhase()
	case key.Matches(msg, m.keys.Switch):
		if m.focus == timerPane {
			m.focus = tasksPane
			m.list.Reload()
			m.cursor = min(m.cursor, max(m.list.Len()-1, 0))
		} else {
			m.focus = timerPane
		}
	case key.Matches(msg, m.keys.Add):
		m.focus = tasksPane
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}

	if m.focus == tasksPane {
		m.updateTasks(msg)
	}
	return m, nil
}

func (m *Model) updateTasks(msg tea.KeyMsg) {
	count := m.list.Len()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < count-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if count > 0 {
			m.err = m.list.ToggleComplete(m.cursor)
		}
	case key.Matches(msg, m.keys.Delete):
		if count > 0 {
			m.err = m.list.Delete(m.cursor)
			if m.cursor >= m.list.Len() && m.cursor > 0 {
				m.cursor--
			}
		}
	}
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		if err := m.list.Add(m.input.Value(), m.priority); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.adding = false
		m.input.Blur()
		m.cursor = m.list.Len() - 1
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.err = nil
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Priority):
		m.priority = m.priority.Next()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Pomodoro"))
	b.WriteString("\n\n")

	timerStyle, taskStyle := PaneStyle, PaneStyle
	if m.focus == timerPane {
		timerStyle = FocusedPaneStyle
	} else {
		taskStyle = FocusedPaneStyle
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		timerStyle.Render(m.timerView()),
		taskStyle.Render(m.tasksView()),
	)
	b.WriteString(panes)
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if m.adding {
		b.WriteString(m.help.View(formKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) timerView() string {
	lines := []string{
		ElapsedStyle.Render(m.display.Elapsed),
		modeStyle(m.display.Mode).Render(m.modeLine()),
	}
	if m.display.Mode != pomodoro.StateIdle.Label() {
		lines = append(lines, fmt.Sprintf("%s remaining", formatRemaining(m.remaining)))
	}
	lines = append(lines, StreakStyle.Render(m.display.Streaks()))
	if m.display.Message != "" {
		lines = append(lines, MessageStyle.Render(m.display.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) modeLine() string {
	if m.display.Paused {
		return m.display.Mode + " (paused)"
	}
	return m.display.Mode
}

func (m Model) tasksView() string {
	var b strings.Builder
	b.WriteString("Tasks\n")

	items := m.list.Tasks()
	if len(items) == 0 && !m.adding {
		b.WriteString(MessageStyle.Render("No tasks. Press a to add one."))
	}
	for i, task := range items {
		cursor := "  "
		if m.focus == tasksPane && i == m.cursor {
			cursor = CursorStyle.Render("> ")
		}
		check := "[ ]"
		title := task.Title
		if task.IsCompleted {
			check = "[x]"
			title = DoneStyle.Render(title)
		}
		priority := priorityStyle(string(task.Priority)).Render(string(task.Priority))
		fmt.Fprintf(&b, "%s%s %s  %s\n", cursor, check, title, priority)
	}

	if m.adding {
		fmt.Fprintf(&b, "\n%s  %s", m.input.View(), priorityStyle(string(m.priority)).Render(string(m.priority)))
	}
	return b.String()
}

// formatRemaining rounds up so a countdown never shows 0:00 early.
func formatRemaining(remaining time.Duration) string {
	return pomodoro.FormatElapsed(remaining + time.Second - time.Nanosecond)
}
