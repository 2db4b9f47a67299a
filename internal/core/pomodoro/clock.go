package pomodoro

import (
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/runloop"
)

const keepAliveReason = "Pomodoro timer running"

// ElapsedClock is a pausable elapsed-time counter that emits the formatted
// elapsed time on every tick. Its state is confined to the run loop it was
// created with; the exported methods hop onto that loop and wait.
type ElapsedClock struct {
	loop      *runloop.Loop
	keepAlive KeepAlive

	running       bool
	started       bool
	startInstant  time.Time
	pausedElapsed time.Duration
	ticker        *runloop.Ticker
	lease         Lease

	onTick      func(formatted string)
	subscribers []chan string
}

// NewElapsedClock creates a stopped clock on the given loop.
func NewElapsedClock(loop *runloop.Loop, keepAlive KeepAlive) *ElapsedClock {
	if keepAlive == nil {
		keepAlive = NopKeepAlive{}
	}
	return &ElapsedClock{
		loop:      loop,
		keepAlive: keepAlive,
	}
}

// Subscribe registers a new tick observer channel.
func (clock *ElapsedClock) Subscribe(buffer int) <-chan string {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan string, buffer)
	clock.loop.Do(func() {
		clock.subscribers = append(clock.subscribers, ch)
	})
	return ch
}

// Start begins ticking, resuming from the paused elapsed time if any.
// It is a no-op while running.
func (clock *ElapsedClock) Start(interval time.Duration) {
	clock.loop.Do(func() { clock.start(interval) })
}

// Pause stops ticking and keeps the accumulated elapsed time.
func (clock *ElapsedClock) Pause() {
	clock.loop.Do(clock.pause)
}

// Stop halts ticking, resets elapsed time and emits a final "0:00" tick.
func (clock *ElapsedClock) Stop() {
	clock.loop.Do(clock.stop)
}

// Running reports whether the clock is ticking.
func (clock *ElapsedClock) Running() bool {
	var running bool
	clock.loop.Do(func() { running = clock.running })
	return running
}

// Elapsed returns the elapsed time, live while running.
func (clock *ElapsedClock) Elapsed() time.Duration {
	var elapsed time.Duration
	clock.loop.Do(func() { elapsed = clock.elapsed() })
	return elapsed
}

func (clock *ElapsedClock) start(interval time.Duration) {
	if clock.running {
		return
	}
	if interval <= 0 {
		interval = model.DefaultTickInterval
	}

	now := clock.loop.Now()
	if clock.started {
		clock.startInstant = now.Add(-clock.pausedElapsed)
	} else {
		clock.startInstant = now
	}
	clock.started = true
	clock.running = true
	clock.ticker = clock.loop.Every(interval, clock.tick)
	clock.lease = clock.keepAlive.Acquire(keepAliveReason)
}

func (clock *ElapsedClock) pause() {
	if !clock.running {
		return
	}
	clock.pausedElapsed = clock.loop.Now().Sub(clock.startInstant)
	clock.halt()
}

func (clock *ElapsedClock) stop() {
	clock.halt()
	clock.started = false
	clock.startInstant = time.Time{}
	clock.pausedElapsed = 0
	clock.emit(FormatElapsed(0))
}

func (clock *ElapsedClock) halt() {
	clock.running = false
	clock.ticker.Stop()
	clock.ticker = nil
	if clock.lease != nil {
		clock.lease.Release()
		clock.lease = nil
	}
}

func (clock *ElapsedClock) elapsed() time.Duration {
	if clock.running {
		return clock.loop.Now().Sub(clock.startInstant)
	}
	return clock.pausedElapsed
}

func (clock *ElapsedClock) tick(now time.Time) {
	if !clock.running {
		return
	}
	clock.emit(FormatElapsed(now.Sub(clock.startInstant)))
}

func (clock *ElapsedClock) emit(formatted string) {
	if clock.onTick != nil {
		clock.onTick(formatted)
	}
	for _, ch := range clock.subscribers {
		select {
		case ch <- formatted:
		default:
		}
	}
}

func (clock *ElapsedClock) closeSubscribers() {
	for _, ch := range clock.subscribers {
		close(ch)
	}
	clock.subscribers = nil
}
