package timer

import (
	"container/heap"
	"sync"
	"time"

	"github.com/sourcegraph/conc/panics"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/orrery/internal/logging"
)

// TaskID identifies a scheduled task. IDs are dense indices into the
// cancellation table and are never reused.
type TaskID int

// minInterval keeps a zero or negative interval from spinning the scheduler.
const minInterval = time.Millisecond

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDriftCorrection re-arms repeating tasks on their nominal grid
// (previous due time + period, skipping slots that were missed entirely)
// instead of a full period after the callback returns.
func WithDriftCorrection() Option {
	return func(s *Scheduler) { s.driftCorrection = true }
}

// WithMaxConcurrent bounds how many callbacks may run at once. When the bound
// is reached the scheduler waits for a worker before dispatching more, which
// delays later tasks. n <= 0 means no bound.
func WithMaxConcurrent(n int) Option {
	return func(s *Scheduler) {
		if n <= 0 {
			n = -1
		}
		s.limit = n
	}
}

// Scheduler runs interval and timeout callbacks on background goroutines.
//
// A single goroutine keeps a min-heap of due times. When a task comes due it
// checks the task's cancellation flag under a read lock and, unless
// cancelled, hands the callback to a worker goroutine. Callbacks therefore
// run concurrently with the caller and with each other; sharing state with
// them needs the caller's own synchronization.
//
// Cancellation is cooperative: a callback that already passed its check when
// ClearInterval is called still runs that one time.
type Scheduler struct {
	// flagsMu guards cancelled. Registration and cancellation take the write
	// lock; due-time checks take the read lock.
	flagsMu   sync.RWMutex
	cancelled []bool

	mu     sync.Mutex
	tasks  taskHeap
	seq    uint64
	closed bool

	wake      chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	workers         errgroup.Group
	limit           int
	driftCorrection bool
}

// NewScheduler creates a scheduler and starts its goroutine.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		limit:   -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.workers.SetLimit(s.limit)

	go s.run()
	return s
}

// SetInterval calls fn every period until the task is cleared.
// The next wait starts after the previous invocation returns, so a repeating
// task never overlaps itself.
func (s *Scheduler) SetInterval(period time.Duration, fn func()) TaskID {
	if period < minInterval {
		period = minInterval
	}
	return s.schedule(period, fn, true)
}

// SetTimeout calls fn once after delay.
func (s *Scheduler) SetTimeout(delay time.Duration, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	return s.schedule(delay, fn, false)
}

// ClearInterval cancels a task created by SetInterval or SetTimeout.
// Unknown IDs are ignored.
func (s *Scheduler) ClearInterval(id TaskID) {
	s.flagsMu.Lock()
	defer s.flagsMu.Unlock()
	if id >= 0 && int(id) < len(s.cancelled) {
		s.cancelled[id] = true
	}
}

// Cancelled reports whether id has been cleared.
func (s *Scheduler) Cancelled(id TaskID) bool {
	s.flagsMu.RLock()
	defer s.flagsMu.RUnlock()
	if id < 0 || int(id) >= len(s.cancelled) {
		return false
	}
	return s.cancelled[id]
}

// Pending returns the number of tasks waiting for their due time.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Close stops the scheduler and waits for running callbacks to return.
// Tasks scheduled afterwards never fire. Close must not be called from a
// scheduled callback.
func (s *Scheduler) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.tasks = nil
		s.mu.Unlock()

		close(s.done)
		<-s.stopped
		_ = s.workers.Wait()
	})
}

func (s *Scheduler) schedule(d time.Duration, fn func(), repeat bool) TaskID {
	s.flagsMu.Lock()
	id := TaskID(len(s.cancelled))
	s.cancelled = append(s.cancelled, fn == nil)
	s.flagsMu.Unlock()

	if fn == nil {
		return id
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.ClearInterval(id)
		return id
	}
	s.seq++
	heap.Push(&s.tasks, &task{
		id:     id,
		fn:     fn,
		period: d,
		repeat: repeat,
		due:    time.Now().Add(d),
		seq:    s.seq,
	})
	s.mu.Unlock()

	s.signal()
	return id
}

// signal wakes the scheduler goroutine so it recomputes its next deadline.
func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run() {
	defer close(s.stopped)

	wait := time.NewTimer(time.Hour)
	wait.Stop()
	defer wait.Stop()

	for {
		var (
			due   *task
			delay time.Duration = -1
		)

		s.mu.Lock()
		if len(s.tasks) > 0 {
			if d := time.Until(s.tasks[0].due); d <= 0 {
				due = heap.Pop(&s.tasks).(*task)
			} else {
				delay = d
			}
		}
		s.mu.Unlock()

		if due != nil {
			s.fire(due)
			continue
		}

		var timeout <-chan time.Time
		if delay >= 0 {
			wait.Reset(delay)
			timeout = wait.C
		}

		select {
		case <-s.done:
			return
		case <-s.wake:
		case <-timeout:
		}
		wait.Stop()
	}
}

// fire checks the cancellation flag and dispatches the callback.
func (s *Scheduler) fire(t *task) {
	if s.Cancelled(t.id) {
		logging.Logger().Debug("timer: task cancelled", "id", t.id)
		return
	}

	s.workers.Go(func() error {
		// The worker may start long after the pop when the pool is full.
		if s.isClosed() || s.Cancelled(t.id) {
			return nil
		}
		if !s.invoke(t) {
			return nil
		}
		if t.repeat {
			s.rearm(t)
		}
		return nil
	})
}

func (s *Scheduler) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// invoke runs the callback. A panic ends the task; it is logged and does not
// affect other tasks.
func (s *Scheduler) invoke(t *task) bool {
	var pc panics.Catcher
	pc.Try(t.fn)
	if r := pc.Recovered(); r != nil {
		logging.Logger().Warn("timer: task panicked, stopping it", "id", t.id, "panic", r.Value, "stack", string(r.Stack))
		return false
	}
	return true
}

func (s *Scheduler) rearm(t *task) {
	t.due = nextDue(t.due, time.Now(), t.period, s.driftCorrection)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	t.seq = s.seq
	heap.Push(&s.tasks, t)
	s.mu.Unlock()

	s.signal()
}

// nextDue computes when a repeating task fires again after an invocation
// that was due at due and returned at now.
func nextDue(due, now time.Time, period time.Duration, driftCorrection bool) time.Time {
	if !driftCorrection {
		return now.Add(period)
	}
	next := due.Add(period)
	if !next.After(now) {
		missed := now.Sub(next)/period + 1
		next = next.Add(missed * period)
	}
	return next
}
