package orrery

import (
	"sync"

	"github.com/agiangrant/orrery/input"
)

// inputState is the bookkeeping the translator keeps between events.
// The loop goroutine writes it; scheduler callbacks may read it.
type inputState struct {
	mu sync.RWMutex

	keys    map[input.Key]struct{}
	buttons [input.ButtonX2 + 1]bool

	mouseX, mouseY int
	winW, winH     int
}

func newInputState() *inputState {
	return &inputState{keys: make(map[input.Key]struct{})}
}

func (s *inputState) setKey(k input.Key, down bool) {
	if !k.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if down {
		s.keys[k] = struct{}{}
	} else {
		delete(s.keys, k)
	}
}

func (s *inputState) keyDown(k input.Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[k]
	return ok
}

func (s *inputState) setButton(b input.MouseButton, down bool) {
	if b == input.ButtonUnknown || int(b) >= len(s.buttons) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buttons[b] = down
}

func (s *inputState) buttonDown(b input.MouseButton) bool {
	if int(b) >= len(s.buttons) {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buttons[b]
}

func (s *inputState) setMouse(x, y int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouseX, s.mouseY = x, y
}

func (s *inputState) mouse() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mouseX, s.mouseY
}

func (s *inputState) setWindowSize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.winW, s.winH = w, h
}

func (s *inputState) windowSize() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.winW, s.winH
}

// IsKeyDown reports whether k is currently held.
func (r *Runtime) IsKeyDown(k input.Key) bool {
	return r.in.keyDown(k)
}

// IsKeyDownName reports whether the key named name is currently held.
// Names resolve with input.ParseKey; unknown names report false.
func (r *Runtime) IsKeyDownName(name string) bool {
	k := input.ParseKey(name)
	if k == input.KeyUnknown {
		return false
	}
	return r.in.keyDown(k)
}

// IsMouseDown reports whether b is currently held.
func (r *Runtime) IsMouseDown(b input.MouseButton) bool {
	return r.in.buttonDown(b)
}

// MousePosition returns the last pointer position in logical coordinates.
func (r *Runtime) MousePosition() (x, y int) {
	return r.in.mouse()
}

// WindowSize returns the cached window size. It changes only when the
// backend reports a resize.
func (r *Runtime) WindowSize() (w, h int) {
	return r.in.windowSize()
}
