// Package x11 is a backend that talks the X protocol directly through xgb.
// It opens a window, reports input and window events, and clears the
// window to the background color on every present. It does not load
// fonts, images or sounds.
package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/internal/logging"
)

const eventMask = xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange

// Backend is an X11 window.
type Backend struct {
	xu  *xgbutil.XUtil
	win *xwindow.Window
	cfg backend.Config

	deleteAtom xproto.Atom

	// keysym resolves a keycode and keyboard mapping column.
	keysym func(code xproto.Keycode, column byte) xproto.Keysym

	raw []xgb.Event
	out []backend.Event

	geom        struct{ x, y, w, h int }
	pointer     struct{ x, y int }
	repeatCode  xproto.Keycode
	repeatArmed bool
	clicks      clickCounter
}

var _ backend.Backend = (*Backend)(nil)

// New returns an uninitialized X11 backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Init(cfg backend.Config) error {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return fmt.Errorf("x11: connect: %w", err)
	}
	keybind.Initialize(xu)

	win, err := xwindow.Generate(xu)
	if err != nil {
		xu.Conn().Close()
		return fmt.Errorf("x11: allocate window: %w", err)
	}
	if err := win.CreateChecked(xu.RootWin(), 0, 0, cfg.Width, cfg.Height,
		xproto.CwBackPixel|xproto.CwEventMask, pixel(cfg), eventMask); err != nil {
		xu.Conn().Close()
		return fmt.Errorf("x11: create window: %w", err)
	}

	b.xu, b.win, b.cfg = xu, win, cfg
	b.keysym = func(code xproto.Keycode, column byte) xproto.Keysym {
		return keybind.KeysymGet(xu, code, column)
	}
	b.geom.w, b.geom.h = cfg.Width, cfg.Height

	if err := b.decorate(); err != nil {
		b.Shutdown()
		return err
	}
	if !cfg.Headless {
		win.Map()
		if cfg.Fullscreen {
			if err := ewmh.WmStateReq(xu, win.Id, ewmh.StateAdd, "_NET_WM_STATE_FULLSCREEN"); err != nil {
				logging.Logger().Warn("x11: fullscreen request failed", "err", err)
			}
		}
	}
	logging.Logger().Debug("x11: window created", "id", win.Id, "width", cfg.Width, "height", cfg.Height)
	return nil
}

// decorate sets the window manager properties.
func (b *Backend) decorate() error {
	id := b.win.Id
	if err := ewmh.WmNameSet(b.xu, id, b.cfg.Title); err != nil {
		return fmt.Errorf("x11: set title: %w", err)
	}
	if err := icccm.WmNameSet(b.xu, id, b.cfg.Title); err != nil {
		return fmt.Errorf("x11: set title: %w", err)
	}
	class := &icccm.WmClass{Instance: strings.ToLower(b.cfg.Title), Class: b.cfg.Org}
	if err := icccm.WmClassSet(b.xu, id, class); err != nil {
		return fmt.Errorf("x11: set class: %w", err)
	}
	if err := icccm.WmProtocolsSet(b.xu, id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("x11: set protocols: %w", err)
	}
	atom, err := xprop.Atm(b.xu, "WM_DELETE_WINDOW")
	if err != nil {
		return fmt.Errorf("x11: intern WM_DELETE_WINDOW: %w", err)
	}
	b.deleteAtom = atom

	hints := &icccm.NormalHints{}
	if b.cfg.MinWidth > 0 || b.cfg.MinHeight > 0 {
		hints.Flags |= icccm.SizeHintPMinSize
		hints.MinWidth, hints.MinHeight = uint(b.cfg.MinWidth), uint(b.cfg.MinHeight)
	}
	if !b.cfg.Resizable {
		hints.Flags |= icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
		hints.MinWidth, hints.MinHeight = uint(b.cfg.Width), uint(b.cfg.Height)
		hints.MaxWidth, hints.MaxHeight = uint(b.cfg.Width), uint(b.cfg.Height)
	}
	if hints.Flags != 0 {
		if err := icccm.WmNormalHintsSet(b.xu, id, hints); err != nil {
			return fmt.Errorf("x11: set size hints: %w", err)
		}
	}
	if b.cfg.Borderless {
		// Motif hints: flags=decorations, decorations=none.
		if err := xprop.ChangeProp32(b.xu, id, "_MOTIF_WM_HINTS", "_MOTIF_WM_HINTS", 2, 0, 0, 0, 0); err != nil {
			logging.Logger().Warn("x11: borderless hint failed", "err", err)
		}
	}
	return nil
}

// pixel packs the background for a 24-bit TrueColor visual.
func pixel(cfg backend.Config) uint32 {
	c := cfg.Background
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (b *Backend) PollEvent() (backend.Event, bool) {
	for len(b.out) == 0 {
		if len(b.raw) == 0 {
			b.fill()
		}
		if len(b.raw) == 0 {
			return backend.Event{}, false
		}
		ev := b.raw[0]
		b.raw = b.raw[1:]
		b.convert(ev)
	}
	ev := b.out[0]
	b.out = b.out[1:]
	return ev, true
}

// fill moves whatever the server has sent into the raw buffer without
// blocking.
func (b *Backend) fill() {
	if b.xu == nil {
		return
	}
	xevent.Read(b.xu, false)
	for !xevent.Empty(b.xu) {
		ev, err := xevent.Dequeue(b.xu)
		if err != nil {
			logging.Logger().Debug("x11: protocol error", "err", err)
			continue
		}
		if ev != nil {
			b.raw = append(b.raw, ev)
		}
	}
}

func (b *Backend) emit(ev backend.Event) {
	b.out = append(b.out, ev)
}

func (b *Backend) convert(raw xgb.Event) {
	switch e := raw.(type) {
	case xproto.KeyPressEvent:
		repeat := b.repeatArmed && b.repeatCode == e.Detail
		b.repeatArmed = false
		b.emit(backend.Event{
			Kind:   backend.KindKeyDown,
			Code:   uint32(b.keysym(e.Detail, 0)),
			Mods:   uint32(e.State),
			Repeat: repeat,
		})
		if e.State&(xproto.ModMaskControl|xproto.ModMask4) != 0 {
			return
		}
		column := byte(0)
		if e.State&xproto.ModMaskShift != 0 {
			column = 1
		}
		if text := keysymText(b.keysym(e.Detail, column)); text != "" {
			b.emit(backend.Event{Kind: backend.KindTextInput, Text: text})
		}

	case xproto.KeyReleaseEvent:
		// Autorepeat arrives as a release immediately followed by a press
		// with the same keycode and timestamp.
		if len(b.raw) == 0 {
			b.fill()
		}
		if len(b.raw) > 0 {
			if next, ok := b.raw[0].(xproto.KeyPressEvent); ok && next.Detail == e.Detail && next.Time == e.Time {
				b.repeatCode, b.repeatArmed = e.Detail, true
				return
			}
		}
		b.emit(backend.Event{
			Kind: backend.KindKeyUp,
			Code: uint32(b.keysym(e.Detail, 0)),
			Mods: uint32(e.State),
		})

	case xproto.ButtonPressEvent:
		x, y := int(e.EventX), int(e.EventY)
		if dx, dy, ok := wheelStep(e.Detail); ok {
			b.emit(backend.Event{Kind: backend.KindMouseWheel, X: x, Y: y, DX: dx, DY: dy})
			return
		}
		b.emit(backend.Event{
			Kind:   backend.KindMouseDown,
			Button: uint32(e.Detail),
			X:      x,
			Y:      y,
			Clicks: b.clicks.press(uint32(e.Detail), e.Time, x, y),
		})

	case xproto.ButtonReleaseEvent:
		if _, _, ok := wheelStep(e.Detail); ok {
			return
		}
		b.emit(backend.Event{
			Kind:   backend.KindMouseUp,
			Button: uint32(e.Detail),
			X:      int(e.EventX),
			Y:      int(e.EventY),
			Clicks: b.clicks.count,
		})

	case xproto.MotionNotifyEvent:
		x, y := int(e.EventX), int(e.EventY)
		b.emit(backend.Event{
			Kind: backend.KindMouseMotion,
			X:    x,
			Y:    y,
			DX:   x - b.pointer.x,
			DY:   y - b.pointer.y,
		})
		b.pointer.x, b.pointer.y = x, y

	case xproto.ConfigureNotifyEvent:
		x, y, w, h := int(e.X), int(e.Y), int(e.Width), int(e.Height)
		if w != b.geom.w || h != b.geom.h {
			b.geom.w, b.geom.h = w, h
			b.emit(backend.Event{Kind: backend.KindWindowResized, Data1: w, Data2: h})
		}
		if x != b.geom.x || y != b.geom.y {
			b.geom.x, b.geom.y = x, y
			b.emit(backend.Event{Kind: backend.KindWindowMoved, Data1: x, Data2: y})
		}

	case xproto.MapNotifyEvent:
		b.emit(backend.Event{Kind: backend.KindWindowShown})
	case xproto.UnmapNotifyEvent:
		b.emit(backend.Event{Kind: backend.KindWindowHidden})
	case xproto.FocusInEvent:
		if e.Mode == xproto.NotifyModeNormal {
			b.emit(backend.Event{Kind: backend.KindWindowFocusGained})
		}
	case xproto.FocusOutEvent:
		if e.Mode == xproto.NotifyModeNormal {
			b.emit(backend.Event{Kind: backend.KindWindowFocusLost})
		}
	case xproto.EnterNotifyEvent:
		b.emit(backend.Event{Kind: backend.KindWindowEnter})
	case xproto.LeaveNotifyEvent:
		b.emit(backend.Event{Kind: backend.KindWindowLeave})

	case xproto.ClientMessageEvent:
		if e.Format == 32 && len(e.Data.Data32) > 0 && xproto.Atom(e.Data.Data32[0]) == b.deleteAtom {
			b.emit(backend.Event{Kind: backend.KindQuit})
		}
	}
}

// wheelStep reports the scroll direction of core buttons 4 to 7.
func wheelStep(button xproto.Button) (dx, dy int, ok bool) {
	switch button {
	case 4:
		return 0, 1, true
	case 5:
		return 0, -1, true
	case 6:
		return -1, 0, true
	case 7:
		return 1, 0, true
	}
	return 0, 0, false
}

// Present clears the window to its background pixel. Nothing is
// rasterized by this backend, so the clear is the whole frame.
func (b *Backend) Present() error {
	if b.xu == nil {
		return backend.ErrNotInitialized
	}
	if err := xproto.ClearAreaChecked(b.xu.Conn(), false, b.win.Id, 0, 0, 0, 0).Check(); err != nil {
		return fmt.Errorf("x11: clear: %w", err)
	}
	return nil
}

func (b *Backend) ToLogical(x, y int) (int, int) {
	if !b.cfg.ScaleToSize {
		return x, y
	}
	v := backend.Viewport{
		LogicalW:     b.cfg.Width,
		LogicalH:     b.cfg.Height,
		WindowW:      b.geom.w,
		WindowH:      b.geom.h,
		IntegerScale: true,
	}
	return v.ToLogical(x, y)
}

func (b *Backend) WindowSize() (int, int) {
	return b.geom.w, b.geom.h
}

func (b *Backend) Tables() backend.Tables {
	return tables
}

func (b *Backend) Shutdown() {
	if b.xu == nil {
		return
	}
	if b.win != nil {
		b.win.Destroy()
	}
	b.xu.Conn().Close()
	b.xu, b.win = nil, nil
	b.raw, b.out = nil, nil
	logging.Logger().Debug("x11: connection closed")
}

// Multi-click thresholds, matching common desktop defaults.
const (
	doubleClickTime     = 500 // milliseconds
	doubleClickDistance = 4   // pixels
)

// clickCounter turns a stream of presses into click counts.
type clickCounter struct {
	button uint32
	time   xproto.Timestamp
	x, y   int
	count  int
}

func (c *clickCounter) press(button uint32, t xproto.Timestamp, x, y int) int {
	if c.count > 0 && button == c.button && t-c.time <= doubleClickTime &&
		abs(x-c.x) <= doubleClickDistance && abs(y-c.y) <= doubleClickDistance {
		c.count++
	} else {
		c.count = 1
	}
	c.button, c.time, c.x, c.y = button, t, x, y
	return c.count
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
