// Package headless is a backend with no window. Events are scripted with
// Push and frames are counted instead of drawn. It backs the runtime's tests
// and lets programs run in CI.
package headless

import (
	"errors"
	"fmt"
	"sync"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/input"
)

// Freed records one call to Free.
type Freed struct {
	Kind   backend.ResourceKind
	Handle backend.Handle
}

// Option configures a Backend.
type Option func(*Backend)

// WithInitError makes Init fail with err.
func WithInitError(err error) Option {
	return func(b *Backend) { b.initErr = err }
}

// WithWindowSize sets the window size reported after Init. By default the
// window matches the configured logical size.
func WithWindowSize(w, h int) Option {
	return func(b *Backend) { b.winW, b.winH = w, h }
}

// WithPresentHook calls fn after every Present with the 1-based frame number.
// The hook runs on the loop goroutine and may call Push.
func WithPresentHook(fn func(frame int)) Option {
	return func(b *Backend) { b.onPresent = fn }
}

// Backend is a windowless backend.Backend and backend.Loader.
type Backend struct {
	mu sync.Mutex

	cfg         backend.Config
	initErr     error
	initCalls   int
	initialized bool
	shutdown    bool

	events []backend.Event

	winW, winH int

	presents   int
	presentErr error
	onPresent  func(frame int)

	nextHandle backend.Handle
	freed      []Freed
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Loader  = (*Backend)(nil)
)

// New creates a headless backend.
func New(opts ...Option) *Backend {
	b := &Backend{nextHandle: 1}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Backend) Init(cfg backend.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.initCalls++
	if b.initErr != nil {
		return fmt.Errorf("headless: %w", b.initErr)
	}
	b.cfg = cfg
	if b.winW == 0 && b.winH == 0 {
		b.winW, b.winH = cfg.Width, cfg.Height
	}
	b.initialized = true
	return nil
}

// Push appends events to the queue returned by PollEvent.
func (b *Backend) Push(evs ...backend.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evs...)
}

func (b *Backend) PollEvent() (backend.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		return backend.Event{}, false
	}
	ev := b.events[0]
	b.events = b.events[1:]
	return ev, true
}

// Pending returns the number of queued events.
func (b *Backend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func (b *Backend) Present() error {
	b.mu.Lock()
	if !b.initialized {
		b.mu.Unlock()
		return backend.ErrNotInitialized
	}
	b.presents++
	frame, hook, err := b.presents, b.onPresent, b.presentErr
	b.mu.Unlock()

	if hook != nil {
		hook(frame)
	}
	return err
}

// FailPresent makes every later Present return err. Nil clears it.
func (b *Backend) FailPresent(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentErr = err
}

// Presents returns the number of presented frames.
func (b *Backend) Presents() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.presents
}

func (b *Backend) ToLogical(x, y int) (int, int) {
	b.mu.Lock()
	vp := backend.Viewport{
		LogicalW:     b.cfg.Width,
		LogicalH:     b.cfg.Height,
		WindowW:      b.winW,
		WindowH:      b.winH,
		IntegerScale: true,
	}
	scale := b.cfg.ScaleToSize
	b.mu.Unlock()
	if !scale {
		return x, y
	}
	return vp.ToLogical(x, y)
}

func (b *Backend) WindowSize() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.winW, b.winH
}

// SetWindowSize changes the size WindowSize reports without queueing an
// event.
func (b *Backend) SetWindowSize(w, h int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.winW, b.winH = w, h
}

// Tables returns identity tables: a key's native code is its input.Key
// value, button codes follow the common 1-5 numbering and each modifier
// mask is the input.Mod bit itself.
func (b *Backend) Tables() backend.Tables {
	return identityTables
}

var identityTables = func() backend.Tables {
	keys := make(input.KeyTable)
	for _, k := range input.AllKeys() {
		keys[uint32(k)] = k
	}
	var mods input.ModTable
	for bit := input.ModLShift; bit <= input.ModAltGr; bit <<= 1 {
		mods = append(mods, input.ModBit{Mask: uint32(bit), Mod: bit})
	}
	return backend.Tables{
		Keys: keys,
		Buttons: input.ButtonTable{
			1: input.ButtonLeft,
			2: input.ButtonMiddle,
			3: input.ButtonRight,
			4: input.ButtonX1,
			5: input.ButtonX2,
		},
		Mods: mods,
	}
}()

func (b *Backend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shutdown = true
	b.initialized = false
}

// InitCalls returns how many times Init ran.
func (b *Backend) InitCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initCalls
}

// IsShutdown reports whether Shutdown was called.
func (b *Backend) IsShutdown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdown
}

// Config returns the configuration passed to Init.
func (b *Backend) Config() backend.Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cfg
}

// ============================================================================
// Loader
// ============================================================================

var errEmptyPath = errors.New("headless: empty resource path")

func (b *Backend) alloc(path string) (backend.Handle, error) {
	if path == "" {
		return 0, errEmptyPath
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.nextHandle
	b.nextHandle++
	return h, nil
}

func (b *Backend) OpenFont(path string, size int) (backend.Handle, error) {
	if size <= 0 {
		return 0, fmt.Errorf("headless: font size %d", size)
	}
	return b.alloc(path)
}

func (b *Backend) LoadImage(path string) (backend.Handle, error) { return b.alloc(path) }
func (b *Backend) LoadSound(path string) (backend.Handle, error) { return b.alloc(path) }

// SystemCursor returns a stable handle per cursor id.
func (b *Backend) SystemCursor(id int) (backend.Handle, error) {
	if id < 0 {
		return 0, fmt.Errorf("headless: system cursor %d", id)
	}
	return backend.Handle(1<<20 + id), nil
}

// CreateCursor allocates a cursor handle for an image handle this backend
// handed out.
func (b *Backend) CreateCursor(img backend.Handle, hotX, hotY int) (backend.Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if img == 0 || img >= b.nextHandle {
		return 0, fmt.Errorf("headless: unknown image %d", img)
	}
	if hotX < 0 || hotY < 0 {
		return 0, fmt.Errorf("headless: hotspot %d,%d", hotX, hotY)
	}
	h := b.nextHandle
	b.nextHandle++
	return h, nil
}

func (b *Backend) Free(kind backend.ResourceKind, h backend.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.freed = append(b.freed, Freed{Kind: kind, Handle: h})
}

// Freed returns every Free call in order.
func (b *Backend) Freed() []Freed {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Freed, len(b.freed))
	copy(out, b.freed)
	return out
}
