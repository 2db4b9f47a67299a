package runloop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

var epoch = time.Date(2024, 12, 17, 9, 0, 0, 0, time.UTC)

func newTestLoop(t *testing.T) (*Loop, *testingclock.FakeClock) {
	t.Helper()
	fake := testingclock.NewFakeClock(epoch)
	loop := New(fake)
	loop.Start()
	t.Cleanup(loop.Stop)
	return loop, fake
}

func TestPostRunsTasksInOrder(t *testing.T) {
	loop, _ := newTestLoop(t)

	var got []int
	for i := 0; i < 10; i++ {
		value := i
		require.True(t, loop.Post(func() { got = append(got, value) }))
	}

	var snapshot []int
	require.True(t, loop.Do(func() { snapshot = append(snapshot, got...) }))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, snapshot)
}

func TestPostBeforeStartRunsAfterStart(t *testing.T) {
	loop := New(testingclock.NewFakeClock(epoch))
	defer loop.Stop()

	ran := make(chan struct{})
	require.True(t, loop.Post(func() { close(ran) }))

	select {
	case <-ran:
		t.Fatal("task ran before Start")
	case <-time.After(20 * time.Millisecond):
	}

	loop.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("task did not run after Start")
	}
}

func TestStoppedLoopRejectsWork(t *testing.T) {
	loop := New(nil)
	loop.Start()
	loop.Stop()
	loop.Stop()

	assert.False(t, loop.Post(func() {}))
	assert.False(t, loop.Do(func() {}))
}

func TestStopWithoutStart(t *testing.T) {
	loop := New(nil)
	loop.Stop()
	assert.False(t, loop.Do(func() {}))
}

func TestDoSerializesConcurrentCallers(t *testing.T) {
	loop, _ := newTestLoop(t)

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loop.Do(func() { counter++ })
		}()
	}
	wg.Wait()

	var got int
	loop.Do(func() { got = counter })
	assert.Equal(t, 50, got)
}

func TestAfterFuncFiresOnLoop(t *testing.T) {
	loop, fake := newTestLoop(t)

	fired := make(chan time.Time, 1)
	loop.Do(func() {
		loop.AfterFunc(time.Second, func() { fired <- loop.Now() })
	})

	fake.Step(500 * time.Millisecond)
	assert.Never(t, func() bool { return len(fired) > 0 }, 50*time.Millisecond, 5*time.Millisecond)

	fake.Step(500 * time.Millisecond)
	select {
	case at := <-fired:
		assert.Equal(t, epoch.Add(time.Second), at)
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestTimerStopCancelsCallback(t *testing.T) {
	loop, fake := newTestLoop(t)

	fired := make(chan struct{}, 1)
	var timer *Timer
	loop.Do(func() {
		timer = loop.AfterFunc(time.Second, func() { fired <- struct{}{} })
	})

	var pending, stopped, again bool
	loop.Do(func() {
		pending = timer.Pending()
		stopped = timer.Stop()
		again = timer.Stop()
	})
	assert.True(t, pending)
	assert.True(t, stopped)
	assert.False(t, again)

	fake.Step(2 * time.Second)
	assert.Never(t, func() bool { return len(fired) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestNilTimerIsSafe(t *testing.T) {
	var timer *Timer
	assert.False(t, timer.Stop())
	assert.False(t, timer.Pending())
}

func TestEveryTicksFromOrigin(t *testing.T) {
	loop, fake := newTestLoop(t)

	ticks := make(chan time.Time, 8)
	loop.Do(func() {
		loop.Every(time.Second, func(now time.Time) { ticks <- now })
	})

	for i := 1; i <= 3; i++ {
		fake.Step(time.Second)
		select {
		case at := <-ticks:
			assert.Equal(t, epoch.Add(time.Duration(i)*time.Second), at)
		case <-time.After(time.Second):
			t.Fatalf("tick %d missing", i)
		}
	}
}

func TestEverySkipsMissedTicks(t *testing.T) {
	loop, fake := newTestLoop(t)

	ticks := make(chan time.Time, 8)
	loop.Do(func() {
		loop.Every(time.Second, func(now time.Time) { ticks <- now })
	})

	fake.Step(3500 * time.Millisecond)
	select {
	case at := <-ticks:
		assert.Equal(t, epoch.Add(3500*time.Millisecond), at)
	case <-time.After(time.Second):
		t.Fatal("late tick missing")
	}

	fake.Step(500 * time.Millisecond)
	select {
	case at := <-ticks:
		assert.Equal(t, epoch.Add(4*time.Second), at)
	case <-time.After(time.Second):
		t.Fatal("realigned tick missing")
	}
}

func TestTickerStop(t *testing.T) {
	loop, fake := newTestLoop(t)

	ticks := make(chan time.Time, 8)
	var ticker *Ticker
	loop.Do(func() {
		ticker = loop.Every(time.Second, func(now time.Time) { ticks <- now })
	})

	fake.Step(time.Second)
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("first tick missing")
	}

	loop.Do(ticker.Stop)
	fake.Step(3 * time.Second)
	assert.Never(t, func() bool { return len(ticks) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
}
