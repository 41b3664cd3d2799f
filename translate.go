package orrery

import (
	"os"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/input"
	"github.com/agiangrant/orrery/internal/logging"
)

// translate updates input bookkeeping for one native event and then invokes
// the matching callback, if any.
func (r *Runtime) translate(ev backend.Event) {
	switch ev.Kind {
	case backend.KindQuit:
		r.RequestQuit()

	case backend.KindKeyDown:
		if ev.Repeat && !r.keyRepeat.Load() {
			r.droppedRepeats.Add(1)
			return
		}
		k := r.lookupKey(ev.Code)
		mods := r.tables.Mods.Translate(ev.Mods)
		r.in.setKey(k, true)
		if fn := r.cb.keyPressed.get(); fn != nil {
			fn(k, mods, ev.Repeat)
		}

	case backend.KindKeyUp:
		k := r.lookupKey(ev.Code)
		r.in.setKey(k, false)
		if fn := r.cb.keyReleased.get(); fn != nil {
			fn(k)
		}

	case backend.KindTextInput:
		if fn := r.cb.textInput.get(); fn != nil {
			fn(ev.Text)
		}

	case backend.KindTextEditing:
		if fn := r.cb.textEdited.get(); fn != nil {
			fn(ev.Text, ev.Start, ev.Length)
		}

	case backend.KindMouseMotion:
		x, y := r.backend.ToLogical(ev.X, ev.Y)
		r.in.setMouse(x, y)
		if fn := r.cb.mouseMoved.get(); fn != nil {
			fn(x, y, ev.DX, ev.DY)
		}

	case backend.KindMouseDown, backend.KindMouseUp:
		b := r.lookupButton(ev.Button)
		x, y := r.backend.ToLogical(ev.X, ev.Y)
		down := ev.Kind == backend.KindMouseDown
		r.in.setButton(b, down)
		r.in.setMouse(x, y)

		fn := r.cb.mouseReleased.get()
		if down {
			fn = r.cb.mousePressed.get()
		}
		if fn != nil {
			fn(b, x, y, ev.Clicks)
		}

	case backend.KindMouseWheel:
		dx, dy := ev.DX, ev.DY
		if ev.Flipped {
			dx, dy = -dx, -dy
		}
		if fn := r.cb.wheelMoved.get(); fn != nil {
			fn(dx, dy)
		}

	case backend.KindWindowShown, backend.KindWindowHidden:
		if fn := r.cb.visible.get(); fn != nil {
			fn(ev.Kind == backend.KindWindowShown)
		}

	case backend.KindWindowMoved:
		if fn := r.cb.moved.get(); fn != nil {
			fn(ev.Data1, ev.Data2)
		}

	case backend.KindWindowResized:
		r.in.setWindowSize(ev.Data1, ev.Data2)
		if fn := r.cb.resize.get(); fn != nil {
			fn(ev.Data1, ev.Data2)
		}

	case backend.KindWindowSizeChanged, backend.KindWindowMaximized, backend.KindWindowRestored:
		r.in.setWindowSize(r.backend.WindowSize())

	case backend.KindWindowFocusGained, backend.KindWindowFocusLost:
		if fn := r.cb.focus.get(); fn != nil {
			fn(ev.Kind == backend.KindWindowFocusGained)
		}

	case backend.KindWindowEnter, backend.KindWindowLeave:
		if fn := r.cb.mouseFocus.get(); fn != nil {
			fn(ev.Kind == backend.KindWindowEnter)
		}

	case backend.KindDropFile:
		fn := r.cb.fileDropped.get()
		if isDir(ev.Path) {
			fn = r.cb.directoryDropped.get()
		}
		if fn != nil {
			fn(ev.Path)
		}

	default:
		logging.Logger().Debug("orrery: ignoring event", "kind", ev.Kind)
	}
}

func (r *Runtime) lookupKey(code uint32) input.Key {
	k := r.tables.Keys.Lookup(code)
	if k == input.KeyUnknown {
		logging.Logger().Debug("orrery: unknown key code", "code", code)
	}
	return k
}

func (r *Runtime) lookupButton(code uint32) input.MouseButton {
	b := r.tables.Buttons.Lookup(code)
	if b == input.ButtonUnknown {
		logging.Logger().Debug("orrery: unknown mouse button", "code", code)
	}
	return b
}

// isDir reports whether path names a directory. Paths that cannot be
// inspected count as files.
func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
