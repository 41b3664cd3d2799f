package orrery

import (
	"sync/atomic"

	"github.com/agiangrant/orrery/input"
)

// slot holds at most one callback. Setting it replaces the previous one.
type slot[F any] struct {
	p atomic.Pointer[F]
}

func (s *slot[F]) set(fn F) { s.p.Store(&fn) }

func (s *slot[F]) get() F {
	if p := s.p.Load(); p != nil {
		return *p
	}
	var zero F
	return zero
}

type callbacks struct {
	draw    slot[func()]
	startup slot[func()]
	quit    slot[func()]

	resize  slot[func(w, h int)]
	visible slot[func(bool)]
	focus   slot[func(bool)]
	moved   slot[func(x, y int)]

	keyPressed  slot[func(input.Key, input.Mod, bool)]
	keyReleased slot[func(input.Key)]
	textInput   slot[func(string)]
	textEdited  slot[func(text string, start, length int)]

	mouseMoved    slot[func(x, y, dx, dy int)]
	mousePressed  slot[func(b input.MouseButton, x, y, clicks int)]
	mouseReleased slot[func(b input.MouseButton, x, y, clicks int)]
	wheelMoved    slot[func(dx, dy int)]
	mouseFocus    slot[func(bool)]

	fileDropped      slot[func(string)]
	directoryDropped slot[func(string)]
}

// ============================================================================
// Registration
// ============================================================================
//
// Every On* method replaces the callback of its kind; nil clears it.
// Callbacks run on the goroutine that called Start, between frames, except
// OnQuit which runs on the goroutine that requested the quit.

// OnDraw sets the callback run after update on every frame.
func (r *Runtime) OnDraw(fn func()) { r.cb.draw.set(fn) }

// OnStartup sets the callback run once per Start, after setup and before the
// first frame.
func (r *Runtime) OnStartup(fn func()) { r.cb.startup.set(fn) }

// OnQuit sets the callback notified when a quit is requested. It cannot
// cancel the quit.
func (r *Runtime) OnQuit(fn func()) { r.cb.quit.set(fn) }

// OnResize sets the callback for window resizes, with the new size in window
// coordinates.
func (r *Runtime) OnResize(fn func(w, h int)) { r.cb.resize.set(fn) }

// OnVisible sets the callback for the window being shown or hidden.
func (r *Runtime) OnVisible(fn func(visible bool)) { r.cb.visible.set(fn) }

// OnFocus sets the callback for keyboard focus gained or lost.
func (r *Runtime) OnFocus(fn func(focused bool)) { r.cb.focus.set(fn) }

// OnMoved sets the callback for window moves.
func (r *Runtime) OnMoved(fn func(x, y int)) { r.cb.moved.set(fn) }

// OnKeyPressed sets the key-down callback. repeat is true for auto-repeat
// presses, which are only delivered after SetKeyRepeat(true).
func (r *Runtime) OnKeyPressed(fn func(k input.Key, mods input.Mod, repeat bool)) {
	r.cb.keyPressed.set(fn)
}

// OnKeyReleased sets the key-up callback.
func (r *Runtime) OnKeyReleased(fn func(k input.Key)) { r.cb.keyReleased.set(fn) }

// OnTextInput sets the callback for committed text.
func (r *Runtime) OnTextInput(fn func(text string)) { r.cb.textInput.set(fn) }

// OnTextEdited sets the callback for IME composition updates.
func (r *Runtime) OnTextEdited(fn func(text string, start, length int)) {
	r.cb.textEdited.set(fn)
}

// OnMouseMoved sets the pointer motion callback. x and y are logical
// coordinates; dx and dy are the raw relative motion.
func (r *Runtime) OnMouseMoved(fn func(x, y, dx, dy int)) { r.cb.mouseMoved.set(fn) }

// OnMousePressed sets the button-down callback.
func (r *Runtime) OnMousePressed(fn func(b input.MouseButton, x, y, clicks int)) {
	r.cb.mousePressed.set(fn)
}

// OnMouseReleased sets the button-up callback.
func (r *Runtime) OnMouseReleased(fn func(b input.MouseButton, x, y, clicks int)) {
	r.cb.mouseReleased.set(fn)
}

// OnWheelMoved sets the wheel callback. Positive dy scrolls away from the
// user regardless of the platform's natural-scrolling setting.
func (r *Runtime) OnWheelMoved(fn func(dx, dy int)) { r.cb.wheelMoved.set(fn) }

// OnMouseFocus sets the callback for the pointer entering or leaving the
// window.
func (r *Runtime) OnMouseFocus(fn func(inside bool)) { r.cb.mouseFocus.set(fn) }

// OnFileDropped sets the callback for a file dropped onto the window.
func (r *Runtime) OnFileDropped(fn func(path string)) { r.cb.fileDropped.set(fn) }

// OnDirectoryDropped sets the callback for a directory dropped onto the
// window.
func (r *Runtime) OnDirectoryDropped(fn func(path string)) { r.cb.directoryDropped.set(fn) }
