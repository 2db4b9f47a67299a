// Package runloop provides a single-goroutine executor with timers that
// deliver their callbacks onto it. State owned by a loop is only touched from
// tasks running on that loop, so it needs no locking.
package runloop

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

const taskBuffer = 64

// Loop executes posted tasks one at a time, in posting order.
type Loop struct {
	clock   clock.WithDelayedExecution
	tasks   chan func()
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
	stopped bool
}

// New creates a loop driven by the provided time source. A nil clock uses
// the system clock.
func New(clk clock.WithDelayedExecution) *Loop {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Loop{
		clock:  clk,
		tasks:  make(chan func(), taskBuffer),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start launches the loop goroutine. Tasks posted earlier run first.
func (loop *Loop) Start() {
	loop.mu.Lock()
	if loop.running || loop.stopped {
		loop.mu.Unlock()
		return
	}
	loop.running = true
	loop.mu.Unlock()

	go loop.run()
}

// Stop terminates the loop and waits for the running task to return.
// Queued tasks are discarded.
func (loop *Loop) Stop() {
	loop.mu.Lock()
	if loop.stopped {
		loop.mu.Unlock()
		return
	}
	loop.stopped = true
	wasRunning := loop.running
	close(loop.stopCh)
	loop.mu.Unlock()

	if !wasRunning {
		close(loop.doneCh)
	}
	<-loop.doneCh
}

// Post queues a task. It reports false once the loop is stopped.
func (loop *Loop) Post(task func()) bool {
	select {
	case <-loop.stopCh:
		return false
	default:
	}

	select {
	case loop.tasks <- task:
		return true
	case <-loop.stopCh:
		return false
	}
}

// Do runs a task on the loop and waits for it to finish. It must not be
// called from a task already running on the loop.
func (loop *Loop) Do(task func()) bool {
	done := make(chan struct{})
	if !loop.Post(func() {
		defer close(done)
		task()
	}) {
		return false
	}

	select {
	case <-done:
		return true
	case <-loop.doneCh:
		select {
		case <-done:
			return true
		default:
			return false
		}
	}
}

// Now returns the current time of the loop's time source.
func (loop *Loop) Now() time.Time {
	return loop.clock.Now()
}

func (loop *Loop) run() {
	defer close(loop.doneCh)

	for {
		select {
		case <-loop.stopCh:
			return
		case task := <-loop.tasks:
			task()
		}
	}
}

// Timer is a one-shot callback delivered onto a loop. Its methods must be
// called from the loop.
type Timer struct {
	timer   clock.Timer
	stopped bool
}

// AfterFunc runs fn on the loop once d has elapsed. Must be called from the
// loop.
func (loop *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	timer := &Timer{}
	timer.timer = loop.clock.AfterFunc(d, func() {
		loop.Post(func() {
			if timer.stopped {
				return
			}
			timer.stopped = true
			fn()
		})
	})
	return timer
}

// Stop cancels the timer. A callback already queued on the loop is dropped.
// It reports whether the timer was still pending.
func (timer *Timer) Stop() bool {
	if timer == nil || timer.stopped {
		return false
	}
	timer.stopped = true
	timer.timer.Stop()
	return true
}

// Pending reports whether the timer has neither fired nor been stopped.
func (timer *Timer) Pending() bool {
	return timer != nil && !timer.stopped
}

// Ticker fires fn on the loop at origin + n*interval. Deadlines are derived
// from the origin so scheduling latency does not accumulate.
type Ticker struct {
	loop     *Loop
	interval time.Duration
	origin   time.Time
	count    int64
	fn       func(now time.Time)
	next     *Timer
	stopped  bool
}

// Every starts a ticker whose origin is the current loop time. Must be called
// from the loop.
func (loop *Loop) Every(interval time.Duration, fn func(now time.Time)) *Ticker {
	ticker := &Ticker{
		loop:     loop,
		interval: interval,
		origin:   loop.Now(),
		fn:       fn,
	}
	ticker.schedule()
	return ticker
}

// Stop halts the ticker. Must be called from the loop.
func (ticker *Ticker) Stop() {
	if ticker == nil || ticker.stopped {
		return
	}
	ticker.stopped = true
	ticker.next.Stop()
}

func (ticker *Ticker) schedule() {
	now := ticker.loop.Now()
	ticker.count++
	due := ticker.origin.Add(time.Duration(ticker.count) * ticker.interval)
	if !due.After(now) {
		// Missed ticks are skipped, not replayed.
		ticker.count = int64(now.Sub(ticker.origin)/ticker.interval) + 1
		due = ticker.origin.Add(time.Duration(ticker.count) * ticker.interval)
	}
	ticker.next = ticker.loop.AfterFunc(due.Sub(now), ticker.fire)
}

func (ticker *Ticker) fire() {
	if ticker.stopped {
		return
	}
	ticker.schedule()
	ticker.fn(ticker.loop.Now())
}
