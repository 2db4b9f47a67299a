package pomodoro

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/runloop"
)

// Options contains runtime collaborators for a Scheduler.
type Options struct {
	// Clock is the time source. Nil uses the system clock.
	Clock     clock.WithDelayedExecution
	KeepAlive KeepAlive
	Logger    *slog.Logger
}

// Scheduler alternates work and break phases, drives an ElapsedClock per
// phase and keeps streak counters. All state is owned by a private run loop.
type Scheduler struct {
	id     string
	loop   *runloop.Loop
	clock  *ElapsedClock
	config model.CycleConfig
	logger *slog.Logger

	state         State
	phase         Phase
	paused        bool
	currentStreak int
	overallStreak int
	deadline      *runloop.Timer
	deadlineAt    time.Time
	remaining     time.Duration
	subscribers   []chan Event
	closed        bool
}

// NewScheduler creates an idle Scheduler. Non-positive durations in config
// are replaced by defaults.
func NewScheduler(config model.CycleConfig, options Options) *Scheduler {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.NewString()
	loop := runloop.New(options.Clock)
	scheduler := &Scheduler{
		id:     id,
		loop:   loop,
		config: config.Normalized(),
		logger: logger.With("session", id),
		state:  StateIdle,
		phase:  PhaseWork,
	}
	scheduler.clock = NewElapsedClock(loop, options.KeepAlive)
	scheduler.clock.onTick = scheduler.forwardTick
	loop.Start()
	return scheduler
}

// ID returns the session identifier used in logs.
func (scheduler *Scheduler) ID() string {
	return scheduler.id
}

// Config returns the effective cycle configuration.
func (scheduler *Scheduler) Config() model.CycleConfig {
	return scheduler.config
}

// Subscribe registers a new observer channel. Events are dropped for a
// subscriber whose buffer is full.
func (scheduler *Scheduler) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	if !scheduler.loop.Do(func() {
		scheduler.subscribers = append(scheduler.subscribers, ch)
	}) {
		close(ch)
	}
	return ch
}

// Start begins a work phase from idle, or resumes a paused phase.
// It is a no-op while a phase is running.
func (scheduler *Scheduler) Start() {
	scheduler.loop.Do(scheduler.start)
}

// Pause freezes the elapsed time of the current phase. The phase deadline
// keeps running unless PauseExtendsPhase is set.
func (scheduler *Scheduler) Pause() {
	scheduler.loop.Do(scheduler.pause)
}

// Stop halts the cycle, resets the current streak and returns to idle.
func (scheduler *Scheduler) Stop() {
	scheduler.loop.Do(scheduler.stop)
}

// CompletePhase ends the current phase immediately, as if its deadline had
// been reached.
func (scheduler *Scheduler) CompletePhase() {
	scheduler.loop.Do(func() {
		if scheduler.state == StateIdle {
			return
		}
		scheduler.finishCycle()
	})
}

// Snapshot returns the current scheduler state.
func (scheduler *Scheduler) Snapshot() Snapshot {
	snapshot := Snapshot{State: StateIdle, Phase: PhaseWork, Elapsed: FormatElapsed(0)}
	scheduler.loop.Do(func() {
		snapshot = Snapshot{
			State:         scheduler.state,
			Phase:         scheduler.phase,
			Paused:        scheduler.paused,
			Elapsed:       FormatElapsed(scheduler.clock.elapsed()),
			Remaining:     scheduler.remainingTime(),
			CurrentStreak: scheduler.currentStreak,
			OverallStreak: scheduler.overallStreak,
		}
	})
	return snapshot
}

// Close stops the scheduler, closes observer channels and terminates the
// run loop. No events are emitted.
func (scheduler *Scheduler) Close() {
	scheduler.loop.Do(func() {
		if scheduler.closed {
			return
		}
		scheduler.closed = true
		scheduler.deadline.Stop()
		scheduler.deadline = nil
		scheduler.clock.halt()
		scheduler.clock.closeSubscribers()
		for _, ch := range scheduler.subscribers {
			close(ch)
		}
		scheduler.subscribers = nil
	})
	scheduler.loop.Stop()
}

func (scheduler *Scheduler) start() {
	switch {
	case scheduler.state == StateIdle:
		scheduler.phase = PhaseWork
		scheduler.beginCycle()
	case scheduler.paused:
		scheduler.resume()
	}
}

func (scheduler *Scheduler) beginCycle() {
	scheduler.state = scheduler.phase.State()
	scheduler.paused = false
	scheduler.remaining = 0

	scheduler.emitMode(startedMessage(scheduler.phase))

	scheduler.clock.onTick = scheduler.forwardTick
	scheduler.clock.start(scheduler.config.TickInterval)

	duration := scheduler.config.PhaseDuration(scheduler.phase == PhaseWork)
	scheduler.scheduleDeadline(duration)

	scheduler.logger.Info("phase started",
		"phase", scheduler.phase,
		"duration", duration,
		"current_streak", scheduler.currentStreak,
		"overall_streak", scheduler.overallStreak,
	)
}

func (scheduler *Scheduler) resume() {
	scheduler.paused = false
	scheduler.emitMode(startedMessage(scheduler.phase))
	scheduler.clock.start(scheduler.config.TickInterval)

	if !scheduler.deadline.Pending() {
		scheduler.scheduleDeadline(max(scheduler.remaining, 0))
		scheduler.remaining = 0
	}
	scheduler.logger.Debug("phase resumed", "phase", scheduler.phase, "remaining", scheduler.remainingTime())
}

func (scheduler *Scheduler) pause() {
	if scheduler.state == StateIdle || scheduler.paused {
		return
	}
	extends := scheduler.config.PauseExtendsPhase && scheduler.deadline.Pending()
	if extends && !scheduler.deadlineAt.After(scheduler.loop.Now()) {
		// The deadline passed but its callback has not reached the loop yet.
		scheduler.finishCycle()
	}
	scheduler.clock.pause()
	scheduler.paused = true

	if scheduler.config.PauseExtendsPhase && scheduler.deadline.Pending() {
		scheduler.remaining = scheduler.deadlineAt.Sub(scheduler.loop.Now())
		scheduler.deadline.Stop()
		scheduler.deadline = nil
	}

	scheduler.emitMode(MessagePaused)
	scheduler.logger.Debug("phase paused", "phase", scheduler.phase, "remaining", scheduler.remainingTime())
}

func (scheduler *Scheduler) stop() {
	scheduler.clock.stop()
	scheduler.deadline.Stop()
	scheduler.deadline = nil
	scheduler.remaining = 0

	scheduler.currentStreak = 0
	scheduler.phase = PhaseWork
	scheduler.state = StateIdle
	scheduler.paused = false

	scheduler.emitMode(MessageStopped)
	scheduler.emitStreak()
	scheduler.logger.Debug("cycle stopped", "overall_streak", scheduler.overallStreak)
}

func (scheduler *Scheduler) finishCycle() {
	scheduler.deadline.Stop()
	scheduler.deadline = nil
	scheduler.clock.stop()

	if scheduler.phase == PhaseWork {
		scheduler.currentStreak++
		scheduler.overallStreak++
		scheduler.emitMode(MessageWorkComplete)
	} else {
		scheduler.emitMode(MessageBreakComplete)
	}
	scheduler.emitStreak()

	scheduler.logger.Info("phase complete",
		"phase", scheduler.phase,
		"current_streak", scheduler.currentStreak,
		"overall_streak", scheduler.overallStreak,
	)

	scheduler.phase = scheduler.phase.Next()
	scheduler.beginCycle()
}

func (scheduler *Scheduler) scheduleDeadline(duration time.Duration) {
	scheduler.deadline.Stop()
	scheduler.deadlineAt = scheduler.loop.Now().Add(duration)
	scheduler.deadline = scheduler.loop.AfterFunc(duration, scheduler.finishCycle)
}

func (scheduler *Scheduler) remainingTime() time.Duration {
	if scheduler.deadline.Pending() {
		remaining := scheduler.deadlineAt.Sub(scheduler.loop.Now())
		if remaining < 0 {
			return 0
		}
		return remaining
	}
	return scheduler.remaining
}

func (scheduler *Scheduler) forwardTick(formatted string) {
	scheduler.emit(Event{Type: EventTick, Time: formatted})
}

func (scheduler *Scheduler) emitMode(message string) {
	scheduler.emit(Event{Type: EventModeChange, Message: message})
}

func (scheduler *Scheduler) emitStreak() {
	scheduler.emit(Event{Type: EventStreakUpdate})
}

func (scheduler *Scheduler) emit(event Event) {
	event.State = scheduler.state
	event.Phase = scheduler.phase
	event.CurrentStreak = scheduler.currentStreak
	event.OverallStreak = scheduler.overallStreak
	event.At = scheduler.loop.Now()

	for _, ch := range scheduler.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func startedMessage(phase Phase) string {
	if phase == PhaseBreak {
		return MessageBreakStarted
	}
	return MessageWorkStarted
}
