package pomodoro

import "fmt"

// Display is the presentation state a front-end folds from scheduler events.
type Display struct {
	Elapsed       string
	Mode          string
	Message       string
	Paused        bool
	CurrentStreak int
	OverallStreak int
}

// NewDisplay returns the display shown before any event arrives.
func NewDisplay() Display {
	return Display{Elapsed: FormatElapsed(0), Mode: StateIdle.Label()}
}

// DisplayFromSnapshot seeds a display from the current scheduler state.
func DisplayFromSnapshot(snapshot Snapshot) Display {
	display := NewDisplay()
	display.Elapsed = snapshot.Elapsed
	display.Mode = snapshot.State.Label()
	display.Paused = snapshot.Paused
	display.CurrentStreak = snapshot.CurrentStreak
	display.OverallStreak = snapshot.OverallStreak
	return display
}

// Apply folds one event into the display. It reports whether the event marks
// the end of a phase.
func (display *Display) Apply(event Event) (completed bool) {
	display.Mode = event.State.Label()
	display.CurrentStreak = event.CurrentStreak
	display.OverallStreak = event.OverallStreak

	switch event.Type {
	case EventTick:
		display.Elapsed = event.Time
	case EventModeChange:
		display.Message = event.Message
		display.Paused = event.Message == MessagePaused
		completed = event.Message == MessageWorkComplete || event.Message == MessageBreakComplete
	}
	return completed
}

// Streaks renders both streak counters on one line.
func (display Display) Streaks() string {
	return fmt.Sprintf("Streak %d · Total %d", display.CurrentStreak, display.OverallStreak)
}

// Status is a short line for menus and window titles.
func (display Display) Status() string {
	if display.Paused {
		return fmt.Sprintf("%s %s (paused)", display.Mode, display.Elapsed)
	}
	if display.Mode == StateIdle.Label() {
		return display.Mode
	}
	return fmt.Sprintf("%s %s", display.Mode, display.Elapsed)
}
