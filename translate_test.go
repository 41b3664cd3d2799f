package orrery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/backend/headless"
	"github.com/agiangrant/orrery/input"
)

// runEvents delivers evs in a single drain and stops the runtime.
func runEvents(t *testing.T, r *Runtime, b *headless.Backend, evs ...backend.Event) {
	t.Helper()
	b.Push(evs...)
	b.Push(quitEvent)
	if err := r.Start(nil); err != nil {
		t.Fatalf("Start() = %v", err)
	}
}

func keyDown(k input.Key) backend.Event {
	return backend.Event{Kind: backend.KindKeyDown, Code: uint32(k)}
}

func keyUp(k input.Key) backend.Event {
	return backend.Event{Kind: backend.KindKeyUp, Code: uint32(k)}
}

func TestResizeWithSlotReplacement(t *testing.T) {
	var r1, r2 [][2]int
	var r *Runtime
	var b *headless.Backend

	r, b = newTestRuntime(t, []headless.Option{
		headless.WithPresentHook(func(frame int) {
			switch frame {
			case 1:
				r.OnResize(func(w, h int) { r2 = append(r2, [2]int{w, h}) })
				b.Push(backend.Event{Kind: backend.KindWindowResized, Data1: 1024, Data2: 768})
			case 2:
				b.Push(quitEvent)
			}
		}),
	})

	r.OnResize(func(w, h int) { r1 = append(r1, [2]int{w, h}) })
	b.Push(backend.Event{Kind: backend.KindWindowResized, Data1: 800, Data2: 600})

	if err := r.Start(nil); err != nil {
		t.Fatalf("Start() = %v", err)
	}

	if len(r1) != 1 || r1[0] != [2]int{800, 600} {
		t.Errorf("first callback got %v, want [[800 600]]", r1)
	}
	if len(r2) != 1 || r2[0] != [2]int{1024, 768} {
		t.Errorf("second callback got %v, want [[1024 768]]", r2)
	}
	if w, h := r.WindowSize(); w != 1024 || h != 768 {
		t.Errorf("WindowSize() = (%d, %d), want (1024, 768)", w, h)
	}
}

func TestKeyStateWithoutCallbacks(t *testing.T) {
	var r *Runtime
	var b *headless.Backend
	var downAfterPress, downAfterRelease bool

	r, b = newTestRuntime(t, []headless.Option{
		headless.WithPresentHook(func(frame int) {
			switch frame {
			case 1:
				downAfterPress = r.IsKeyDownName("A")
				b.Push(keyUp(input.KeyA))
			case 2:
				downAfterRelease = r.IsKeyDownName("A")
				b.Push(quitEvent)
			}
		}),
	})
	b.Push(keyDown(input.KeyA))

	if err := r.Start(nil); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if !downAfterPress {
		t.Error(`IsKeyDownName("A") after press = false, want true`)
	}
	if downAfterRelease {
		t.Error(`IsKeyDownName("A") after release = true, want false`)
	}
}

func TestIsKeyDownName(t *testing.T) {
	r, b := newTestRuntime(t, nil)
	runEvents(t, r, b, keyDown(input.KeyLShift), keyDown(input.KeySpace))

	tests := []struct {
		name string
		want bool
	}{
		{"Left Shift", true},
		{"lshift", true},
		{"space", true},
		{"A", false},
		{"no such key", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsKeyDownName(tt.name); got != tt.want {
				t.Errorf("IsKeyDownName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestKeyRepeatFilter(t *testing.T) {
	repeat := backend.Event{Kind: backend.KindKeyDown, Code: uint32(input.KeyW), Repeat: true}

	tests := []struct {
		name        string
		keyRepeat   bool
		wantPresses int
		wantDropped uint64
	}{
		{"dropped by default", false, 1, 2},
		{"delivered when enabled", true, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, b := newTestRuntime(t, nil)
			r.SetKeyRepeat(tt.keyRepeat)
			if got := r.KeyRepeat(); got != tt.keyRepeat {
				t.Errorf("KeyRepeat() = %v, want %v", got, tt.keyRepeat)
			}

			var presses, repeats int
			r.OnKeyPressed(func(k input.Key, _ input.Mod, rep bool) {
				presses++
				if rep {
					repeats++
				}
			})
			runEvents(t, r, b, keyDown(input.KeyW), repeat, repeat)

			if presses != tt.wantPresses {
				t.Errorf("presses = %d, want %d", presses, tt.wantPresses)
			}
			if tt.keyRepeat && repeats != 2 {
				t.Errorf("repeat flags = %d, want 2", repeats)
			}
			if got := r.Stats().DroppedRepeats; got != tt.wantDropped {
				t.Errorf("DroppedRepeats = %d, want %d", got, tt.wantDropped)
			}
		})
	}
}

func TestKeyTranslation(t *testing.T) {
	r, b := newTestRuntime(t, nil)

	type press struct {
		key  input.Key
		mods input.Mod
	}
	var pressed []press
	var released []input.Key
	r.OnKeyPressed(func(k input.Key, m input.Mod, _ bool) { pressed = append(pressed, press{k, m}) })
	r.OnKeyReleased(func(k input.Key) { released = append(released, k) })

	runEvents(t, r, b,
		backend.Event{Kind: backend.KindKeyDown, Code: uint32(input.KeyS), Mods: uint32(input.ModLCtrl)},
		backend.Event{Kind: backend.KindKeyDown, Code: 60000},
		keyUp(input.KeyS),
	)

	want := []press{{input.KeyS, input.ModLCtrl}, {input.KeyUnknown, input.ModNone}}
	if len(pressed) != len(want) {
		t.Fatalf("pressed = %v, want %v", pressed, want)
	}
	for i := range want {
		if pressed[i] != want[i] {
			t.Errorf("pressed[%d] = %v, want %v", i, pressed[i], want[i])
		}
	}
	if len(released) != 1 || released[0] != input.KeyS {
		t.Errorf("released = %v, want [S]", released)
	}
	if r.IsKeyDown(input.KeyS) {
		t.Error("IsKeyDown(S) = true after release")
	}
}

func TestTextEvents(t *testing.T) {
	r, b := newTestRuntime(t, nil)

	var typed string
	var edit struct {
		text          string
		start, length int
	}
	r.OnTextInput(func(s string) { typed += s })
	r.OnTextEdited(func(s string, start, length int) {
		edit.text, edit.start, edit.length = s, start, length
	})

	runEvents(t, r, b,
		backend.Event{Kind: backend.KindTextInput, Text: "h"},
		backend.Event{Kind: backend.KindTextInput, Text: "é"},
		backend.Event{Kind: backend.KindTextEditing, Text: "にほ", Start: 1, Length: 2},
	)

	if typed != "hé" {
		t.Errorf("text input = %q, want %q", typed, "hé")
	}
	if edit.text != "にほ" || edit.start != 1 || edit.length != 2 {
		t.Errorf("text edit = %+v, want {にほ 1 2}", edit)
	}
}

func TestMouseTranslation(t *testing.T) {
	// Window is twice the logical size, so positions halve.
	r, b := newTestRuntime(t, []headless.Option{headless.WithWindowSize(1280, 960)},
		WithConfig(backend.Config{Title: "test", Width: 640, Height: 480, ScaleToSize: true}))

	type click struct {
		b            input.MouseButton
		x, y, clicks int
	}
	var moved [4]int
	var pressed, released []click
	var downDuringPress bool

	r.OnMouseMoved(func(x, y, dx, dy int) { moved = [4]int{x, y, dx, dy} })
	r.OnMousePressed(func(btn input.MouseButton, x, y, clicks int) {
		pressed = append(pressed, click{btn, x, y, clicks})
		if btn == input.ButtonLeft {
			downDuringPress = r.IsMouseDown(btn)
		}
	})
	r.OnMouseReleased(func(btn input.MouseButton, x, y, clicks int) {
		released = append(released, click{btn, x, y, clicks})
	})

	runEvents(t, r, b,
		backend.Event{Kind: backend.KindMouseMotion, X: 200, Y: 100, DX: 6, DY: -4},
		backend.Event{Kind: backend.KindMouseDown, Button: 1, X: 200, Y: 100, Clicks: 2},
		backend.Event{Kind: backend.KindMouseDown, Button: 3, X: 40, Y: 20, Clicks: 1},
		backend.Event{Kind: backend.KindMouseUp, Button: 1, X: 202, Y: 102, Clicks: 2},
		backend.Event{Kind: backend.KindMouseDown, Button: 99, X: 0, Y: 0, Clicks: 1},
	)

	if moved != [4]int{100, 50, 6, -4} {
		t.Errorf("mouse moved = %v, want [100 50 6 -4]", moved)
	}
	wantPressed := []click{
		{input.ButtonLeft, 100, 50, 2},
		{input.ButtonRight, 20, 10, 1},
		{input.ButtonUnknown, 0, 0, 1},
	}
	if len(pressed) != len(wantPressed) {
		t.Fatalf("pressed = %v, want %v", pressed, wantPressed)
	}
	for i := range wantPressed {
		if pressed[i] != wantPressed[i] {
			t.Errorf("pressed[%d] = %v, want %v", i, pressed[i], wantPressed[i])
		}
	}
	if len(released) != 1 || released[0] != (click{input.ButtonLeft, 101, 51, 2}) {
		t.Errorf("released = %v, want [{Left 101 51 2}]", released)
	}
	if !downDuringPress {
		t.Error("IsMouseDown() inside press callback = false, want true")
	}
	if r.IsMouseDown(input.ButtonLeft) {
		t.Error("IsMouseDown(Left) = true after release")
	}
	if !r.IsMouseDown(input.ButtonRight) {
		t.Error("IsMouseDown(Right) = false, want true")
	}
	if x, y := r.MousePosition(); x != 0 || y != 0 {
		t.Errorf("MousePosition() = (%d, %d), want (0, 0)", x, y)
	}
}

func TestWheelFlipped(t *testing.T) {
	r, b := newTestRuntime(t, nil)

	var got [][2]int
	r.OnWheelMoved(func(dx, dy int) { got = append(got, [2]int{dx, dy}) })

	runEvents(t, r, b,
		backend.Event{Kind: backend.KindMouseWheel, DX: 1, DY: 2},
		backend.Event{Kind: backend.KindMouseWheel, DX: 1, DY: 2, Flipped: true},
	)

	want := [][2]int{{1, 2}, {-1, -2}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("wheel = %v, want %v", got, want)
	}
}

func TestWindowEvents(t *testing.T) {
	r, b := newTestRuntime(t, nil)

	var visible, focus, inside []bool
	var moved [][2]int
	r.OnVisible(func(v bool) { visible = append(visible, v) })
	r.OnFocus(func(f bool) { focus = append(focus, f) })
	r.OnMouseFocus(func(in bool) { inside = append(inside, in) })
	r.OnMoved(func(x, y int) { moved = append(moved, [2]int{x, y}) })

	runEvents(t, r, b,
		backend.Event{Kind: backend.KindWindowShown},
		backend.Event{Kind: backend.KindWindowFocusGained},
		backend.Event{Kind: backend.KindWindowEnter},
		backend.Event{Kind: backend.KindWindowMoved, Data1: 30, Data2: 40},
		backend.Event{Kind: backend.KindWindowLeave},
		backend.Event{Kind: backend.KindWindowFocusLost},
		backend.Event{Kind: backend.KindWindowHidden},
	)

	check := func(name string, got, want []bool) {
		t.Helper()
		if len(got) != len(want) {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s = %v, want %v", name, got, want)
				return
			}
		}
	}
	check("visible", visible, []bool{true, false})
	check("focus", focus, []bool{true, false})
	check("mouse focus", inside, []bool{true, false})
	if len(moved) != 1 || moved[0] != [2]int{30, 40} {
		t.Errorf("moved = %v, want [[30 40]]", moved)
	}
}

func TestSizeChangeRequeriesBackend(t *testing.T) {
	kinds := []backend.Kind{
		backend.KindWindowSizeChanged,
		backend.KindWindowMaximized,
		backend.KindWindowRestored,
	}

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			r, b := newTestRuntime(t, nil)

			var resizes int
			r.OnResize(func(int, int) { resizes++ })

			runEvents(t, r, b)
			b.SetWindowSize(300, 200)
			runEvents(t, r, b, backend.Event{Kind: kind})

			if w, h := r.WindowSize(); w != 300 || h != 200 {
				t.Errorf("WindowSize() = (%d, %d), want (300, 200)", w, h)
			}
			if resizes != 0 {
				t.Errorf("resize callback calls = %d, want 0", resizes)
			}
		})
	}
}

func TestDropClassification(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "level.json")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "gone")

	r, b := newTestRuntime(t, nil)

	var files, dirs []string
	r.OnFileDropped(func(p string) { files = append(files, p) })
	r.OnDirectoryDropped(func(p string) { dirs = append(dirs, p) })

	runEvents(t, r, b,
		backend.Event{Kind: backend.KindDropFile, Path: file},
		backend.Event{Kind: backend.KindDropFile, Path: dir},
		backend.Event{Kind: backend.KindDropFile, Path: missing},
	)

	if len(files) != 2 || files[0] != file || files[1] != missing {
		t.Errorf("files = %v, want [%s %s]", files, file, missing)
	}
	if len(dirs) != 1 || dirs[0] != dir {
		t.Errorf("dirs = %v, want [%s]", dirs, dir)
	}
}

func TestInitialWindowSize(t *testing.T) {
	r, b := newTestRuntime(t, []headless.Option{headless.WithWindowSize(800, 600)})
	runEvents(t, r, b)

	if w, h := r.WindowSize(); w != 800 || h != 600 {
		t.Errorf("WindowSize() = (%d, %d), want (800, 600)", w, h)
	}
}
