// Package mobile adapts the event values delivered by golang.org/x/mobile/app
// into backend events. The app's event loop forwards each value with Send
// while the runtime polls on its own goroutine:
//
//	b := mobile.New(mobile.WithPublisher(func() { a.Publish() }))
//	go rt.Start(update)
//	for e := range a.Events() {
//		b.Send(a.Filter(e))
//	}
package mobile

import (
	"fmt"
	"sync"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/internal/logging"
)

// DefaultQueueSize is the number of undelivered events Send buffers.
const DefaultQueueSize = 256

type Option func(*Backend)

// WithPublisher sets the function Present calls to show the frame,
// normally app.App.Publish.
func WithPublisher(fn func()) Option {
	return func(b *Backend) { b.publish = fn }
}

// WithQueueSize overrides DefaultQueueSize.
func WithQueueSize(n int) Option {
	return func(b *Backend) {
		if n > 0 {
			b.queueSize = n
		}
	}
}

// Backend receives x/mobile events through Send.
type Backend struct {
	queueSize int
	events    chan any
	publish   func()

	mu          sync.Mutex
	initialized bool
	cfg         backend.Config
	winW, winH  int

	// Touched only by the polling goroutine.
	out      []backend.Event
	pointerX int
	pointerY int
}

var _ backend.Backend = (*Backend)(nil)

func New(opts ...Option) *Backend {
	b := &Backend{queueSize: DefaultQueueSize}
	for _, opt := range opts {
		opt(b)
	}
	b.events = make(chan any, b.queueSize)
	return b
}

// Send queues an x/mobile event without blocking. Paint events are dropped
// because the runtime drives its own frames. Send reports false when the
// event was dropped.
func (b *Backend) Send(e any) bool {
	if _, ok := e.(paint.Event); ok {
		return false
	}
	select {
	case b.events <- e:
		return true
	default:
		logging.Logger().Warn("mobile: event queue full, dropping event")
		return false
	}
}

func (b *Backend) Init(cfg backend.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cfg = cfg
	b.winW, b.winH = cfg.Width, cfg.Height
	b.initialized = true
	return nil
}

func (b *Backend) PollEvent() (backend.Event, bool) {
	for len(b.out) == 0 {
		select {
		case e := <-b.events:
			b.convert(e)
		default:
			return backend.Event{}, false
		}
	}
	ev := b.out[0]
	b.out = b.out[1:]
	return ev, true
}

func (b *Backend) emit(ev backend.Event) {
	b.out = append(b.out, ev)
}

func (b *Backend) convert(e any) {
	switch e := e.(type) {
	case key.Event:
		switch e.Direction {
		case key.DirPress, key.DirNone:
			b.emit(backend.Event{
				Kind:   backend.KindKeyDown,
				Code:   uint32(e.Code),
				Mods:   uint32(e.Modifiers),
				Repeat: e.Direction == key.DirNone,
			})
			if e.Rune >= 0x20 && e.Modifiers&(key.ModControl|key.ModMeta) == 0 {
				b.emit(backend.Event{Kind: backend.KindTextInput, Text: string(e.Rune)})
			}
		case key.DirRelease:
			b.emit(backend.Event{Kind: backend.KindKeyUp, Code: uint32(e.Code), Mods: uint32(e.Modifiers)})
		}

	case mouse.Event:
		x, y := int(e.X), int(e.Y)
		switch e.Direction {
		case mouse.DirStep:
			dx, dy := wheelStep(e.Button)
			b.emit(backend.Event{Kind: backend.KindMouseWheel, X: x, Y: y, DX: dx, DY: dy})
		case mouse.DirPress:
			b.emit(backend.Event{Kind: backend.KindMouseDown, Button: uint32(e.Button), X: x, Y: y, Clicks: 1})
		case mouse.DirRelease:
			b.emit(backend.Event{Kind: backend.KindMouseUp, Button: uint32(e.Button), X: x, Y: y, Clicks: 1})
		default:
			b.motion(x, y)
		}

	case touch.Event:
		// The first finger drives the pointer.
		if e.Sequence != 0 {
			return
		}
		x, y := int(e.X), int(e.Y)
		switch e.Type {
		case touch.TypeBegin:
			b.pointerX, b.pointerY = x, y
			b.emit(backend.Event{Kind: backend.KindMouseDown, Button: uint32(mouse.ButtonLeft), X: x, Y: y, Clicks: 1})
		case touch.TypeMove:
			b.motion(x, y)
		case touch.TypeEnd:
			b.emit(backend.Event{Kind: backend.KindMouseUp, Button: uint32(mouse.ButtonLeft), X: x, Y: y, Clicks: 1})
		}

	case size.Event:
		b.mu.Lock()
		changed := e.WidthPx != b.winW || e.HeightPx != b.winH
		b.winW, b.winH = e.WidthPx, e.HeightPx
		b.mu.Unlock()
		if changed {
			b.emit(backend.Event{Kind: backend.KindWindowResized, Data1: e.WidthPx, Data2: e.HeightPx})
		}

	case lifecycle.Event:
		if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
			b.emit(backend.Event{Kind: backend.KindWindowFocusLost})
		}
		switch e.Crosses(lifecycle.StageVisible) {
		case lifecycle.CrossOn:
			b.emit(backend.Event{Kind: backend.KindWindowShown})
		case lifecycle.CrossOff:
			b.emit(backend.Event{Kind: backend.KindWindowHidden})
		}
		if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOn {
			b.emit(backend.Event{Kind: backend.KindWindowFocusGained})
		}
		if e.Crosses(lifecycle.StageAlive) == lifecycle.CrossOff {
			b.emit(backend.Event{Kind: backend.KindQuit})
		}

	default:
		logging.Logger().Debug("mobile: ignoring event", "type", fmt.Sprintf("%T", e))
	}
}

func (b *Backend) motion(x, y int) {
	b.emit(backend.Event{
		Kind: backend.KindMouseMotion,
		X:    x,
		Y:    y,
		DX:   x - b.pointerX,
		DY:   y - b.pointerY,
	})
	b.pointerX, b.pointerY = x, y
}

func wheelStep(button mouse.Button) (dx, dy int) {
	switch button {
	case mouse.ButtonWheelUp:
		return 0, 1
	case mouse.ButtonWheelDown:
		return 0, -1
	case mouse.ButtonWheelLeft:
		return -1, 0
	case mouse.ButtonWheelRight:
		return 1, 0
	}
	return 0, 0
}

// Present hands the frame to the publisher, if one is set.
func (b *Backend) Present() error {
	b.mu.Lock()
	ok := b.initialized
	b.mu.Unlock()
	if !ok {
		return backend.ErrNotInitialized
	}
	if b.publish != nil {
		b.publish()
	}
	return nil
}

func (b *Backend) ToLogical(x, y int) (int, int) {
	b.mu.Lock()
	vp := backend.Viewport{
		LogicalW:     b.cfg.Width,
		LogicalH:     b.cfg.Height,
		WindowW:      b.winW,
		WindowH:      b.winH,
		IntegerScale: b.cfg.ScaleToSize,
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

func (b *Backend) Tables() backend.Tables {
	return tables
}

// Shutdown discards undelivered events. The app owns the window.
func (b *Backend) Shutdown() {
	b.mu.Lock()
	b.initialized = false
	b.mu.Unlock()
	for {
		select {
		case <-b.events:
		default:
			b.out = nil
			return
		}
	}
}
