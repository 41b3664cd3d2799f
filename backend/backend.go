// Package backend defines the narrow contract between the orrery runtime and
// the platform layer that owns the window, the renderer and native resources.
//
// A backend produces native events, presents frames and frees native handles.
// Everything it reports is expressed in its own codes; the static tables
// returned by Tables translate those codes into the identifiers of package
// input.
package backend

import (
	"errors"
	"image/color"

	"github.com/agiangrant/orrery/input"
)

var (
	// ErrLibraryLoad is returned when a backend's native library cannot be
	// opened or is missing a required symbol.
	ErrLibraryLoad = errors.New("backend: native library could not be loaded")

	// ErrNotInitialized is returned by backend operations called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend is the platform layer driven by the runtime.
//
// All methods except Init are called from the goroutine running the frame
// loop. Init is called at most once per Runtime.
type Backend interface {
	// Init creates the window and renderer described by cfg.
	Init(cfg Config) error

	// PollEvent returns the next pending event without blocking.
	// The second result is false when the queue is empty.
	PollEvent() (Event, bool)

	// Present shows what was drawn this frame and clears the back buffer to
	// the background colour for the next one.
	Present() error

	// ToLogical maps window coordinates to the logical render size.
	ToLogical(x, y int) (int, int)

	// WindowSize queries the current window size in window coordinates.
	WindowSize() (int, int)

	// Tables returns the static native code tables. The result must not
	// change after Init.
	Tables() Tables

	// Shutdown releases the window and the native library.
	Shutdown()
}

// Loader is implemented by backends that can create native resources.
type Loader interface {
	OpenFont(path string, size int) (Handle, error)
	LoadImage(path string) (Handle, error)
	// SystemCursor returns a cursor owned by the platform. It must never be
	// passed to Free.
	SystemCursor(id int) (Handle, error)
	// CreateCursor builds a cursor from a loaded image. The image stays
	// owned by the caller; the cursor is freed with ResourceCursor.
	CreateCursor(img Handle, hotX, hotY int) (Handle, error)
	LoadSound(path string) (Handle, error)
	Free(kind ResourceKind, h Handle)
}

// Handle is an opaque native resource handle.
type Handle uintptr

// ResourceKind says which native destructor a Handle needs.
type ResourceKind uint8

const (
	ResourceFont ResourceKind = iota + 1
	ResourceImage
	ResourceCursor
	ResourceSound
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceFont:
		return "font"
	case ResourceImage:
		return "image"
	case ResourceCursor:
		return "cursor"
	case ResourceSound:
		return "sound"
	default:
		return "unknown"
	}
}

// Tables bundles a backend's native code tables.
type Tables struct {
	Keys    input.KeyTable
	Buttons input.ButtonTable
	Mods    input.ModTable
}

// Config describes the window a backend creates in Init.
type Config struct {
	Title string
	Org   string

	// Width and Height are the logical render size. The window starts at
	// this size unless Fullscreen is set.
	Width, Height       int
	MinWidth, MinHeight int

	Fullscreen bool
	Borderless bool
	Resizable  bool
	Headless   bool
	VSync      bool

	// ScaleToSize renders at Width x Height and scales that area to the
	// window in whole multiples, letterboxing the rest. When false the
	// render area follows the window one to one.
	ScaleToSize bool

	Background color.RGBA

	// LibraryPath overrides where a dynamically loaded backend looks for
	// its native library.
	LibraryPath string
}
