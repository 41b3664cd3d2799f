// Package orrery is a frame-loop runtime for games and other real-time
// interactive programs.
//
// A Runtime owns the loop: it polls the backend for native events,
// translates them into typed callbacks, calls the update function with the
// measured frame time, runs the draw callback and presents the frame.
// Native resources are released through a deferred queue so handles dropped
// while the runtime is stopped are freed only once it runs again, and a
// background scheduler runs interval and timeout callbacks.
//
// Typical use:
//
//	rt := orrery.New(sdl.New(), orrery.WithConfig(cfg))
//	defer rt.Close()
//	rt.OnKeyPressed(func(k input.Key, _ input.Mod, _ bool) {
//		if k == input.KeyEscape {
//			rt.RequestQuit()
//		}
//	})
//	if err := rt.Start(func(dt float64) { world.Step(dt) }); err != nil {
//		log.Fatal(err)
//	}
package orrery

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/finalize"
	"github.com/agiangrant/orrery/internal/logging"
	"github.com/agiangrant/orrery/timer"
)

// State is the lifecycle state of a Runtime.
type State int32

const (
	Idle State = iota
	Running
	ShuttingDown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting-down"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// DefaultFrameDelay is the pause after each presented frame.
const DefaultFrameDelay = time.Millisecond

// Option configures a Runtime.
type Option func(*Runtime)

// WithConfig sets the window configuration passed to the backend.
func WithConfig(cfg backend.Config) Option {
	return func(r *Runtime) { r.cfg = cfg }
}

// WithFrameDelay sets the pause after each frame. Zero disables it.
func WithFrameDelay(d time.Duration) Option {
	return func(r *Runtime) {
		if d < 0 {
			d = 0
		}
		r.frameDelay = d
	}
}

// WithClock sets the time source of the frame clock.
func WithClock(now timer.NowFunc) Option {
	return func(r *Runtime) { r.now = now }
}

// WithSchedulerOptions configures the background scheduler.
func WithSchedulerOptions(opts ...timer.Option) Option {
	return func(r *Runtime) { r.schedOpts = append(r.schedOpts, opts...) }
}

// WithKeyRepeat sets the initial key-repeat filter. See SetKeyRepeat.
func WithKeyRepeat(enabled bool) Option {
	return func(r *Runtime) { r.keyRepeat.Store(enabled) }
}

// Runtime drives one backend. Create it with New; the zero value is not
// usable. Programs normally have exactly one.
type Runtime struct {
	backend    backend.Backend
	cfg        backend.Config
	frameDelay time.Duration
	now        timer.NowFunc
	schedOpts  []timer.Option

	state    atomic.Int32
	quit     atomic.Bool
	starting atomic.Bool

	// initialized and tables are only touched by the goroutine inside Start.
	initialized bool
	tables      backend.Tables

	clock     *timer.Clock
	finalizer *finalize.Queue
	sched     *timer.Scheduler

	cb        callbacks
	in        *inputState
	keyRepeat atomic.Bool

	frames         atomic.Uint64
	droppedRepeats atomic.Uint64
}

// New creates a runtime on top of b. The backend is initialized by the first
// Start.
func New(b backend.Backend, opts ...Option) *Runtime {
	r := &Runtime{
		backend:    b,
		frameDelay: DefaultFrameDelay,
		in:         newInputState(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.clock = timer.NewClock(r.now)
	r.finalizer = finalize.New(r.IsActive)
	r.sched = timer.NewScheduler(r.schedOpts...)
	return r
}

// Start runs the frame loop until a quit is requested or presenting fails.
// It blocks and locks the calling goroutine to its OS thread, as most
// windowing systems require.
//
// Calling Start while the runtime is already running returns nil and does
// nothing. Start may be called again after it returns; the backend is
// initialized only the first time.
func (r *Runtime) Start(update func(dt float64)) error {
	return r.StartContext(context.Background(), update)
}

// Run is Start for update functions that ignore the frame time.
func (r *Runtime) Run(update func()) error {
	if update == nil {
		return r.Start(nil)
	}
	return r.Start(func(float64) { update() })
}

// StartContext is Start with a context. Cancelling ctx has the same effect as
// RequestQuit and is noticed while events are being drained.
func (r *Runtime) StartContext(ctx context.Context, update func(dt float64)) error {
	if !r.starting.CompareAndSwap(false, true) {
		return nil
	}
	defer r.starting.Store(false)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := logging.Logger()

	if !r.initialized {
		if err := r.backend.Init(r.cfg); err != nil {
			log.Error("orrery: backend init failed", "error", err)
			return fmt.Errorf("%w: %w", ErrInit, err)
		}
		r.initialized = true
		r.tables = r.backend.Tables()
		r.in.setWindowSize(r.backend.WindowSize())
	}

	r.quit.Store(false)
	r.state.Store(int32(Running))
	log.Info("orrery: running", "title", r.cfg.Title)

	if n := r.finalizer.Drain(); n > 0 {
		log.Debug("orrery: released deferred resources", "count", n)
	}

	if fn := r.cb.startup.get(); fn != nil {
		fn()
	}

	r.clock.Reset()
	err := r.loop(ctx, update)

	r.state.Store(int32(Idle))
	log.Info("orrery: stopped", "frames", r.frames.Load())
	return err
}

func (r *Runtime) loop(ctx context.Context, update func(dt float64)) error {
	for {
		dt := r.clock.Step()

		if r.drainEvents(ctx) {
			return nil
		}

		if update != nil {
			update(dt)
		}
		if fn := r.cb.draw.get(); fn != nil {
			fn()
		}

		if err := r.backend.Present(); err != nil {
			logging.Logger().Warn("orrery: present failed, stopping", "error", err)
			return fmt.Errorf("%w: %w", ErrPresent, err)
		}
		r.frames.Add(1)

		if r.frameDelay > 0 {
			time.Sleep(r.frameDelay)
		}
	}
}

// drainEvents translates pending events until the queue is empty or a quit
// is observed. Events left in the queue after a quit are not delivered.
func (r *Runtime) drainEvents(ctx context.Context) (quit bool) {
	for !r.quitRequested(ctx) {
		ev, ok := r.backend.PollEvent()
		if !ok {
			return r.quitRequested(ctx)
		}
		r.translate(ev)
	}
	return true
}

func (r *Runtime) quitRequested(ctx context.Context) bool {
	if ctx.Err() != nil {
		r.RequestQuit()
	}
	return r.quit.Load()
}

// RequestQuit asks the loop to stop at its next event checkpoint. The quit
// observer is notified on the calling goroutine. It does nothing unless the
// runtime is Running, and is safe to call from any goroutine.
func (r *Runtime) RequestQuit() {
	if !r.state.CompareAndSwap(int32(Running), int32(ShuttingDown)) {
		return
	}
	r.quit.Store(true)
	logging.Logger().Info("orrery: quit requested")

	if fn := r.cb.quit.get(); fn != nil {
		fn()
	}
}

// State returns the current lifecycle state.
func (r *Runtime) State() State {
	return State(r.state.Load())
}

// IsActive reports whether the runtime is Running.
func (r *Runtime) IsActive() bool {
	return r.State() == Running
}

// DeltaTime returns the frame time, in seconds, passed to the most recent
// update.
func (r *Runtime) DeltaTime() float64 {
	return r.clock.Delta()
}

// SetKeyRepeat controls whether auto-repeat key presses reach OnKeyPressed.
// Repeats are dropped by default.
func (r *Runtime) SetKeyRepeat(enabled bool) {
	r.keyRepeat.Store(enabled)
}

// KeyRepeat reports whether auto-repeat key presses are delivered.
func (r *Runtime) KeyRepeat() bool {
	return r.keyRepeat.Load()
}

// Backend returns the backend the runtime drives.
func (r *Runtime) Backend() backend.Backend {
	return r.backend
}

// Stats contains loop counters.
type Stats struct {
	Frames               uint64
	DroppedRepeats       uint64
	PendingFinalizations int
}

// Stats returns loop counters.
func (r *Runtime) Stats() Stats {
	return Stats{
		Frames:               r.frames.Load(),
		DroppedRepeats:       r.droppedRepeats.Load(),
		PendingFinalizations: r.finalizer.Len(),
	}
}

// Close stops the scheduler, waiting for running callbacks, and shuts the
// backend down. Call it after Start has returned.
func (r *Runtime) Close() {
	r.sched.Close()
	if r.initialized {
		r.backend.Shutdown()
		r.initialized = false
	}
}

// ============================================================================
// Scheduler
// ============================================================================

// SetInterval calls fn every period on a background goroutine until the
// task is cleared. See timer.Scheduler for the timing and cancellation
// rules.
func (r *Runtime) SetInterval(period time.Duration, fn func()) timer.TaskID {
	return r.sched.SetInterval(period, fn)
}

// SetTimeout calls fn once on a background goroutine after delay.
func (r *Runtime) SetTimeout(delay time.Duration, fn func()) timer.TaskID {
	return r.sched.SetTimeout(delay, fn)
}

// ClearInterval cancels a task. The callback may still run once if it was
// already due.
func (r *Runtime) ClearInterval(id timer.TaskID) {
	r.sched.ClearInterval(id)
}
