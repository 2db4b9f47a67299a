package pomodoro

import "time"

// State represents the current scheduler mode.
type State string

const (
	StateIdle  State = "idle"
	StateWork  State = "work"
	StateBreak State = "break"
)

// Label returns the human-readable mode name.
func (state State) Label() string {
	switch state {
	case StateWork:
		return "Work"
	case StateBreak:
		return "Break"
	default:
		return "Idle"
	}
}

// Phase is one half of a Pomodoro cycle.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// State returns the scheduler state that corresponds to the running phase.
func (phase Phase) State() State {
	if phase == PhaseBreak {
		return StateBreak
	}
	return StateWork
}

// Next returns the phase that follows.
func (phase Phase) Next() Phase {
	if phase == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// EventType defines the type of scheduler event.
type EventType string

const (
	EventTick         EventType = "tick"
	EventModeChange   EventType = "mode_change"
	EventStreakUpdate EventType = "streak_update"
)

// Mode-change messages.
const (
	MessageWorkStarted   = "Work Session Started"
	MessageBreakStarted  = "Break Session Started"
	MessageWorkComplete  = "Work Session Complete! Time for a break."
	MessageBreakComplete = "Break Complete! Time to work."
	MessagePaused        = "Timer paused"
	MessageStopped       = "Timer stopped. Current streak reset."
)

// Event is delivered to scheduler subscribers. Within one phase transition
// the mode-change event is always delivered before the streak update.
type Event struct {
	Type  EventType
	State State
	Phase Phase

	// Time is the formatted elapsed time, set on tick events.
	Time string
	// Message is set on mode-change events.
	Message string

	CurrentStreak int
	OverallStreak int
	At            time.Time
}

// Snapshot is a point-in-time view of the scheduler.
type Snapshot struct {
	State         State
	Phase         Phase
	Paused        bool
	Elapsed       string
	Remaining     time.Duration
	CurrentStreak int
	OverallStreak int
}
