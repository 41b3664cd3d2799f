package sdl

import (
	"bytes"
	"encoding/binary"
	"unsafe"

	"github.com/agiangrant/orrery/backend"
)

// eventSize is sizeof(SDL_Event).
const eventSize = 56

// SDL_EventType values.
const (
	evQuit            = 0x100
	evWindowEvent     = 0x200
	evKeyDown         = 0x300
	evKeyUp           = 0x301
	evTextEditing     = 0x302
	evTextInput       = 0x303
	evMouseMotion     = 0x400
	evMouseButtonDown = 0x401
	evMouseButtonUp   = 0x402
	evMouseWheel      = 0x403
	evDropFile        = 0x1000
)

// SDL_WindowEventID values.
const (
	winShown       = 1
	winHidden      = 2
	winMoved       = 4
	winResized     = 5
	winSizeChanged = 6
	winMaximized   = 8
	winRestored    = 9
	winEnter       = 10
	winLeave       = 11
	winFocusGained = 12
	winFocusLost   = 13
)

const wheelFlipped = 1

var windowKinds = map[uint8]backend.Kind{
	winShown:       backend.KindWindowShown,
	winHidden:      backend.KindWindowHidden,
	winMoved:       backend.KindWindowMoved,
	winResized:     backend.KindWindowResized,
	winSizeChanged: backend.KindWindowSizeChanged,
	winMaximized:   backend.KindWindowMaximized,
	winRestored:    backend.KindWindowRestored,
	winEnter:       backend.KindWindowEnter,
	winLeave:       backend.KindWindowLeave,
	winFocusGained: backend.KindWindowFocusGained,
	winFocusLost:   backend.KindWindowFocusLost,
}

// rawEvent reads fields out of an SDL_Event union in native byte order.
type rawEvent []byte

func (r rawEvent) u8(off int) uint8   { return r[off] }
func (r rawEvent) u16(off int) uint16 { return binary.NativeEndian.Uint16(r[off:]) }
func (r rawEvent) u32(off int) uint32 { return binary.NativeEndian.Uint32(r[off:]) }
func (r rawEvent) i32(off int) int    { return int(int32(r.u32(off))) }

func (r rawEvent) ptr(off int) uintptr {
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return uintptr(binary.NativeEndian.Uint64(r[off:]))
	}
	return uintptr(r.u32(off))
}

// cstr reads a NUL-terminated char array of at most n bytes.
func (r rawEvent) cstr(off, n int) string {
	b := r[off : off+n]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// decodeEvent converts one SDL_Event. Event types the runtime does not use
// report false. takeString copies and frees the heap string carried by drop
// events.
func decodeEvent(buf *[eventSize]byte, takeString func(uintptr) string) (backend.Event, bool) {
	r := rawEvent(buf[:])

	switch r.u32(0) {
	case evQuit:
		return backend.Event{Kind: backend.KindQuit}, true

	case evWindowEvent:
		kind, ok := windowKinds[r.u8(12)]
		if !ok {
			return backend.Event{}, false
		}
		return backend.Event{Kind: kind, Data1: r.i32(16), Data2: r.i32(20)}, true

	case evKeyDown, evKeyUp:
		kind := backend.KindKeyDown
		if r.u32(0) == evKeyUp {
			kind = backend.KindKeyUp
		}
		return backend.Event{
			Kind:   kind,
			Repeat: r.u8(13) != 0,
			Code:   r.u32(20),
			Mods:   uint32(r.u16(24)),
		}, true

	case evTextEditing:
		return backend.Event{
			Kind:   backend.KindTextEditing,
			Text:   r.cstr(12, 32),
			Start:  r.i32(44),
			Length: r.i32(48),
		}, true

	case evTextInput:
		return backend.Event{Kind: backend.KindTextInput, Text: r.cstr(12, 32)}, true

	case evMouseMotion:
		return backend.Event{
			Kind: backend.KindMouseMotion,
			X:    r.i32(20),
			Y:    r.i32(24),
			DX:   r.i32(28),
			DY:   r.i32(32),
		}, true

	case evMouseButtonDown, evMouseButtonUp:
		kind := backend.KindMouseDown
		if r.u32(0) == evMouseButtonUp {
			kind = backend.KindMouseUp
		}
		return backend.Event{
			Kind:   kind,
			Button: uint32(r.u8(16)),
			Clicks: int(r.u8(18)),
			X:      r.i32(20),
			Y:      r.i32(24),
		}, true

	case evMouseWheel:
		return backend.Event{
			Kind:    backend.KindMouseWheel,
			DX:      r.i32(16),
			DY:      r.i32(20),
			Flipped: r.u32(24) == wheelFlipped,
		}, true

	case evDropFile:
		return backend.Event{Kind: backend.KindDropFile, Path: takeString(r.ptr(8))}, true
	}

	return backend.Event{}, false
}
