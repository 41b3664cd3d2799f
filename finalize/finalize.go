// Package finalize defers the release of native resource handles until it is
// safe to release them.
//
// Native handles (fonts, surfaces, cursors, audio chunks) may be created
// before the runtime starts or dropped after it stops, when the backend that
// owns them is not live. A Queue releases a handle immediately while its
// activity predicate reports true and otherwise parks it until the next
// Drain, which the runtime performs at the very start of every successful
// start-up.
package finalize

import (
	"sync"

	"github.com/agiangrant/orrery/internal/logging"
)

// Finalizable is a native resource that can be released exactly once.
type Finalizable interface {
	Release()
}

// Func adapts a plain function to Finalizable.
type Func func()

// Release calls f.
func (f Func) Release() { f() }

// Queue holds releases that were requested while the backend was not live.
// It is safe for concurrent use; resources may be dropped from any goroutine.
type Queue struct {
	mu      sync.Mutex
	pending []Finalizable
	active  func() bool
}

// New creates a queue. active reports whether releases may run immediately;
// a nil active means "never", so every release is queued.
func New(active func() bool) *Queue {
	if active == nil {
		active = func() bool { return false }
	}
	return &Queue{active: active}
}

// Finalize releases f now if the queue is active, otherwise appends it to the
// pending list. Nil values are ignored.
func (q *Queue) Finalize(f Finalizable) {
	if f == nil {
		return
	}
	if q.active() {
		f.Release()
		return
	}

	q.mu.Lock()
	q.pending = append(q.pending, f)
	n := len(q.pending)
	q.mu.Unlock()

	logging.Logger().Debug("finalize: release deferred", "pending", n)
}

// Drain releases every pending item in FIFO order and clears the list.
// Items queued while Drain runs are left for the next call.
// It returns the number of items released.
func (q *Queue) Drain() int {
	q.mu.Lock()
	items := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, f := range items {
		f.Release()
	}
	if len(items) > 0 {
		logging.Logger().Debug("finalize: drained deferred releases", "count", len(items))
	}
	return len(items)
}

// Len returns the number of pending releases.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
