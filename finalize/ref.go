package finalize

import (
	"sync"
	"sync/atomic"
)

// shared is the state common to every owner of one native handle.
type shared struct {
	owners atomic.Int64
	queue  *Queue
	res    Finalizable
}

// Ref is one owner of a shared native handle. Each Ref obtained from NewRef
// or Clone must be closed once; the handle is finalized when the last owner
// closes. Closing the same Ref twice has no further effect.
type Ref struct {
	s      *shared
	once   sync.Once
	closed atomic.Bool
}

// NewRef creates the first owner of res, finalized through q.
func NewRef(q *Queue, res Finalizable) *Ref {
	s := &shared{queue: q, res: res}
	s.owners.Store(1)
	return &Ref{s: s}
}

// Clone returns a new owner of the same handle.
// Cloning from an owner that was closed panics, even while other owners
// keep the handle alive.
func (r *Ref) Clone() *Ref {
	if r.closed.Load() {
		panic("finalize: Clone of a closed owner")
	}
	for {
		n := r.s.owners.Load()
		if n <= 0 {
			panic("finalize: Clone of a released handle")
		}
		if r.s.owners.CompareAndSwap(n, n+1) {
			return &Ref{s: r.s}
		}
	}
}

// Close drops this owner. The last Close hands the resource to the queue.
func (r *Ref) Close() {
	r.once.Do(func() {
		r.closed.Store(true)
		if r.s.owners.Add(-1) == 0 {
			r.s.queue.Finalize(r.s.res)
		}
	})
}

// Owners returns the number of open owners of the handle.
func (r *Ref) Owners() int {
	return int(r.s.owners.Load())
}
