package timer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return cond()
}

func TestSetTimeoutFiresOnce(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var calls atomic.Int32
	s.SetTimeout(10*time.Millisecond, func() { calls.Add(1) })

	if !waitFor(t, time.Second, func() bool { return calls.Load() == 1 }) {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestSetIntervalRepeats(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var calls atomic.Int32
	s.SetInterval(5*time.Millisecond, func() { calls.Add(1) })

	if !waitFor(t, 2*time.Second, func() bool { return calls.Load() >= 3 }) {
		t.Errorf("calls = %d, want >= 3", calls.Load())
	}
}

func TestClearIntervalStopsTask(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var calls atomic.Int32
	id := s.SetInterval(5*time.Millisecond, func() { calls.Add(1) })

	if !waitFor(t, 2*time.Second, func() bool { return calls.Load() >= 1 }) {
		t.Fatalf("interval never fired")
	}
	s.ClearInterval(id)
	if !s.Cancelled(id) {
		t.Errorf("Cancelled(%d) = false, want true", id)
	}

	atClear := calls.Load()
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got > atClear+1 {
		t.Errorf("calls after clear = %d, want at most %d", got, atClear+1)
	}
}

func TestClearBeforeDueNeverFires(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var calls atomic.Int32
	id := s.SetTimeout(30*time.Millisecond, func() { calls.Add(1) })
	s.ClearInterval(id)

	time.Sleep(80 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestClearIntervalUnknownID(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	for _, id := range []TaskID{-1, 0, 42} {
		s.ClearInterval(id)
		if s.Cancelled(id) {
			t.Errorf("Cancelled(%d) = true, want false", id)
		}
	}
}

func TestTaskIDsAreDistinct(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	seen := make(map[TaskID]bool)
	for i := 0; i < 10; i++ {
		id := s.SetTimeout(time.Hour, func() {})
		if seen[id] {
			t.Fatalf("id %d returned twice", id)
		}
		seen[id] = true
	}
	if got := s.Pending(); got != 10 {
		t.Errorf("Pending() = %d, want 10", got)
	}
}

func TestPanickingTaskIsIsolated(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var bad, good atomic.Int32
	s.SetInterval(5*time.Millisecond, func() {
		bad.Add(1)
		panic("boom")
	})
	s.SetInterval(5*time.Millisecond, func() { good.Add(1) })

	if !waitFor(t, 2*time.Second, func() bool { return good.Load() >= 3 }) {
		t.Fatalf("healthy task calls = %d, want >= 3", good.Load())
	}
	if got := bad.Load(); got != 1 {
		t.Errorf("panicking task calls = %d, want 1", got)
	}
}

func TestIntervalDoesNotOverlapItself(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var (
		running atomic.Int32
		overlap atomic.Bool
		calls   atomic.Int32
	)
	s.SetInterval(time.Millisecond, func() {
		if running.Add(1) > 1 {
			overlap.Store(true)
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		calls.Add(1)
	})

	waitFor(t, 2*time.Second, func() bool { return calls.Load() >= 3 })
	if overlap.Load() {
		t.Error("interval callback overlapped itself")
	}
}

func TestTimeoutsFireInDueOrder(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	var (
		mu    sync.Mutex
		order []int
	)
	record := func(n int) func() {
		return func() {
			mu.Lock()
			order = append(order, n)
			mu.Unlock()
		}
	}
	s.SetTimeout(60*time.Millisecond, record(3))
	s.SetTimeout(20*time.Millisecond, record(1))
	s.SetTimeout(40*time.Millisecond, record(2))

	waitFor(t, 2*time.Second, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 3
	})

	mu.Lock()
	defer mu.Unlock()
	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestNextDue(t *testing.T) {
	base := time.Unix(100, 0)
	ms := time.Millisecond

	tests := []struct {
		name  string
		due   time.Time
		now   time.Time
		drift bool
		want  time.Time
	}{
		{"plain uses completion time", base, base.Add(7 * ms), false, base.Add(27 * ms)},
		{"drift keeps grid", base, base.Add(7 * ms), true, base.Add(20 * ms)},
		{"drift on boundary skips slot", base, base.Add(20 * ms), true, base.Add(40 * ms)},
		{"drift skips missed slots", base, base.Add(65 * ms), true, base.Add(80 * ms)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextDue(tt.due, tt.now, 20*ms, tt.drift)
			if !got.Equal(tt.want) {
				t.Errorf("nextDue() = %v, want %v", got.Sub(base), tt.want.Sub(base))
			}
		})
	}
}

func TestMaxConcurrent(t *testing.T) {
	s := NewScheduler(WithMaxConcurrent(1))
	defer s.Close()

	var (
		running atomic.Int32
		peak    atomic.Int32
		done    atomic.Int32
	)
	for i := 0; i < 4; i++ {
		s.SetTimeout(0, func() {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			running.Add(-1)
			done.Add(1)
		})
	}

	if !waitFor(t, 2*time.Second, func() bool { return done.Load() == 4 }) {
		t.Fatalf("done = %d, want 4", done.Load())
	}
	if got := peak.Load(); got != 1 {
		t.Errorf("peak concurrency = %d, want 1", got)
	}
}

func TestCloseWaitsAndStops(t *testing.T) {
	s := NewScheduler()

	var finished atomic.Bool
	started := make(chan struct{})
	s.SetTimeout(0, func() {
		close(started)
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})
	<-started

	s.Close()
	if !finished.Load() {
		t.Error("Close returned before running callback finished")
	}

	var late atomic.Int32
	id := s.SetTimeout(0, func() { late.Add(1) })
	time.Sleep(20 * time.Millisecond)
	if got := late.Load(); got != 0 {
		t.Errorf("task scheduled after Close ran %d times, want 0", got)
	}
	if !s.Cancelled(id) {
		t.Errorf("Cancelled(%d) after Close = false, want true", id)
	}

	// Second Close is a no-op.
	s.Close()
}

func TestNilCallbackIsIgnored(t *testing.T) {
	s := NewScheduler()
	defer s.Close()

	id := s.SetInterval(time.Millisecond, nil)
	if !s.Cancelled(id) {
		t.Errorf("Cancelled(%d) = false, want true", id)
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
}

func TestTaskQueuedBehindFullPoolSkippedAfterClose(t *testing.T) {
	tests := []struct {
		name   string
		cancel bool
	}{
		{"close", false},
		{"clear then close", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler(WithMaxConcurrent(1))

			started := make(chan struct{})
			release := make(chan struct{})
			s.SetTimeout(0, func() {
				close(started)
				<-release
			})
			<-started

			var ran atomic.Bool
			id := s.SetTimeout(time.Millisecond, func() { ran.Store(true) })
			// Let the run loop pop the second task and block on the pool.
			waitFor(t, 100*time.Millisecond, func() bool { return s.Pending() == 0 })
			time.Sleep(10 * time.Millisecond)
			if tt.cancel {
				s.ClearInterval(id)
			}

			closed := make(chan struct{})
			go func() {
				s.Close()
				close(closed)
			}()
			if !waitFor(t, time.Second, s.isClosed) {
				t.Fatal("scheduler never marked closed")
			}
			close(release)
			<-closed

			if got := ran.Load(); got != false {
				t.Errorf("queued callback ran = %v, want %v", got, false)
			}
		})
	}
}

func TestTimingLowerBounds(t *testing.T) {
	tests := []struct {
		name     string
		interval bool
		d        time.Duration
	}{
		{"timeout 30ms", false, 30 * time.Millisecond},
		{"timeout 50ms", false, 50 * time.Millisecond},
		{"interval 30ms", true, 30 * time.Millisecond},
		{"interval 50ms", true, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			defer s.Close()

			const calls = 3
			var mu sync.Mutex
			var at []time.Time
			start := time.Now()
			fn := func() {
				mu.Lock()
				at = append(at, time.Now())
				mu.Unlock()
			}
			want := 1
			if tt.interval {
				s.SetInterval(tt.d, fn)
				want = calls
			} else {
				s.SetTimeout(tt.d, fn)
			}
			if !waitFor(t, time.Duration(want+10)*tt.d, func() bool {
				mu.Lock()
				defer mu.Unlock()
				return len(at) >= want
			}) {
				t.Fatalf("callback did not run %d times", want)
			}

			mu.Lock()
			defer mu.Unlock()
			if got := at[0].Sub(start); got < tt.d {
				t.Errorf("first call after %v, want >= %v", got, tt.d)
			}
			for i := 1; i < want; i++ {
				if got := at[i].Sub(at[i-1]); got < tt.d {
					t.Errorf("gap %d = %v, want >= %v", i, got, tt.d)
				}
			}
		})
	}
}
