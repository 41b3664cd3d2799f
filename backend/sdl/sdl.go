//go:build darwin || freebsd || linux || windows

package sdl

import (
	"fmt"
	"math"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/internal/logging"
)

const (
	initTimer  = 0x00000001
	initAudio  = 0x00000010
	initVideo  = 0x00000020
	initEvents = 0x00004000

	windowFullscreenDesktop = 0x00001001
	windowShown             = 0x00000004
	windowHidden            = 0x00000008
	windowBorderless        = 0x00000010
	windowResizable         = 0x00000020
	windowAllowHighDPI      = 0x00002000
	windowPosCentered       = 0x2FFF0000

	rendererAccelerated  = 0x00000002
	rendererPresentVSync = 0x00000004

	imgInitJPG = 0x1
	imgInitPNG = 0x2

	audioS16Sys = 0x8010
)

// Backend drives an SDL2 window and renderer.
type Backend struct {
	cfg      backend.Config
	window   uintptr
	renderer uintptr

	buf [eventSize]byte

	cursors   map[int]backend.Handle
	images    map[backend.Handle]string // texture -> source file
	audioOpen bool
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Loader  = (*Backend)(nil)
)

// New returns an uninitialized SDL backend. The libraries are loaded by Init.
func New() *Backend {
	return &Backend{
		cursors: make(map[int]backend.Handle),
		images:  make(map[backend.Handle]string),
	}
}

func (b *Backend) Init(cfg backend.Config) error {
	if err := loadLibraries(cfg.LibraryPath); err != nil {
		return err
	}
	b.cfg = cfg

	sub := uint32(initVideo | initEvents | initTimer)
	if mixLib != 0 {
		sub |= initAudio
	}
	if fnInit(sub) != 0 {
		return sdlError("SDL_Init")
	}
	if ttfLib != 0 && fnTTFInit() != 0 {
		logging.Logger().Warn("sdl: TTF_Init failed", "error", goString(fnGetError()))
	}
	if imgLib != 0 {
		fnIMGInit(imgInitPNG | imgInitJPG)
	}

	flags := uint32(windowAllowHighDPI)
	if cfg.Headless {
		flags |= windowHidden
	} else {
		flags |= windowShown
	}
	if cfg.Fullscreen {
		flags |= windowFullscreenDesktop
	}
	if cfg.Borderless {
		flags |= windowBorderless
	}
	if cfg.Resizable {
		flags |= windowResizable
	}

	b.window = fnCreateWindow(cfg.Title, windowPosCentered, windowPosCentered,
		int32(cfg.Width), int32(cfg.Height), flags)
	if b.window == 0 {
		err := sdlError("SDL_CreateWindow")
		fnQuit()
		return err
	}
	if cfg.MinWidth > 0 || cfg.MinHeight > 0 {
		fnSetWindowMinimumSize(b.window, int32(cfg.MinWidth), int32(cfg.MinHeight))
	}

	rflags := uint32(rendererAccelerated)
	if cfg.VSync {
		rflags |= rendererPresentVSync
	}
	b.renderer = fnCreateRenderer(b.window, -1, rflags)
	if b.renderer == 0 {
		err := sdlError("SDL_CreateRenderer")
		b.Shutdown()
		return err
	}
	if cfg.ScaleToSize {
		if fnRenderSetLogicalSize(b.renderer, int32(cfg.Width), int32(cfg.Height)) != 0 {
			err := sdlError("SDL_RenderSetLogicalSize")
			b.Shutdown()
			return err
		}
		fnRenderSetIntegerScale(b.renderer, 1)
	}

	fnStartTextInput()

	logging.Logger().Info("sdl: window created",
		"title", cfg.Title, "width", cfg.Width, "height", cfg.Height,
		"ttf", ttfLib != 0, "image", imgLib != 0, "mixer", mixLib != 0)

	return b.clear()
}

func (b *Backend) PollEvent() (backend.Event, bool) {
	if b.window == 0 {
		return backend.Event{}, false
	}
	for fnPollEvent(&b.buf[0]) != 0 {
		if ev, ok := decodeEvent(&b.buf, takeString); ok {
			return ev, true
		}
	}
	return backend.Event{}, false
}

func (b *Backend) Present() error {
	if b.renderer == 0 {
		return backend.ErrNotInitialized
	}
	fnRenderPresent(b.renderer)
	return b.clear()
}

func (b *Backend) clear() error {
	c := b.cfg.Background
	if fnSetRenderDrawColor(b.renderer, c.R, c.G, c.B, c.A) != 0 {
		return sdlError("SDL_SetRenderDrawColor")
	}
	if fnRenderClear(b.renderer) != 0 {
		return sdlError("SDL_RenderClear")
	}
	return nil
}

func (b *Backend) ToLogical(x, y int) (int, int) {
	if b.renderer == 0 || !b.cfg.ScaleToSize {
		return x, y
	}
	if fnRenderWindowToLogical != nil {
		var lx, ly float32
		fnRenderWindowToLogical(b.renderer, int32(x), int32(y), &lx, &ly)
		return int(math.Floor(float64(lx))), int(math.Floor(float64(ly)))
	}
	w, h := b.WindowSize()
	return mapToLogical(b.cfg, w, h, x, y)
}

func (b *Backend) WindowSize() (int, int) {
	if b.window == 0 {
		return 0, 0
	}
	var w, h int32
	fnGetWindowSize(b.window, &w, &h)
	return int(w), int(h)
}

func (b *Backend) Tables() backend.Tables {
	return tables
}

func (b *Backend) Shutdown() {
	if fnQuit == nil {
		return
	}
	for id, c := range b.cursors {
		fnFreeCursor(uintptr(c))
		delete(b.cursors, id)
	}
	if b.audioOpen {
		fnMixCloseAudio()
		fnMixQuit()
		b.audioOpen = false
	}
	if b.renderer != 0 {
		fnDestroyRenderer(b.renderer)
		b.renderer = 0
	}
	if b.window != 0 {
		fnDestroyWindow(b.window)
		b.window = 0
	}
	if imgLib != 0 {
		fnIMGQuit()
	}
	if ttfLib != 0 {
		fnTTFQuit()
	}
	fnQuit()
}

// ============================================================================
// Loader
// ============================================================================

func missing(lib string) error {
	return fmt.Errorf("%w: %s is not available", backend.ErrLibraryLoad, lib)
}

func (b *Backend) OpenFont(path string, size int) (backend.Handle, error) {
	if ttfLib == 0 {
		return 0, missing("SDL2_ttf")
	}
	f := fnTTFOpenFont(path, int32(size))
	if f == 0 {
		return 0, sdlError("TTF_OpenFont")
	}
	return backend.Handle(f), nil
}

func (b *Backend) LoadImage(path string) (backend.Handle, error) {
	if imgLib == 0 {
		return 0, missing("SDL2_image")
	}
	if b.renderer == 0 {
		return 0, backend.ErrNotInitialized
	}
	t := fnIMGLoadTexture(b.renderer, path)
	if t == 0 {
		return 0, sdlError("IMG_LoadTexture")
	}
	b.images[backend.Handle(t)] = path
	return backend.Handle(t), nil
}

// SystemCursor creates each SDL_SystemCursor once and keeps it until
// Shutdown.
func (b *Backend) SystemCursor(id int) (backend.Handle, error) {
	if fnCreateSystemCursor == nil {
		return 0, backend.ErrNotInitialized
	}
	if c, ok := b.cursors[id]; ok {
		return c, nil
	}
	c := fnCreateSystemCursor(int32(id))
	if c == 0 {
		return 0, sdlError("SDL_CreateSystemCursor")
	}
	b.cursors[id] = backend.Handle(c)
	return backend.Handle(c), nil
}

// CreateCursor needs a surface, so the image is decoded again from the file
// its texture was loaded from.
func (b *Backend) CreateCursor(img backend.Handle, hotX, hotY int) (backend.Handle, error) {
	if imgLib == 0 {
		return 0, missing("SDL2_image")
	}
	path, ok := b.images[img]
	if !ok {
		return 0, fmt.Errorf("sdl: image %#x was not loaded by this backend", img)
	}
	surf := fnIMGLoad(path)
	if surf == 0 {
		return 0, sdlError("IMG_Load")
	}
	defer fnFreeSurface(surf)
	c := fnCreateColorCursor(surf, int32(hotX), int32(hotY))
	if c == 0 {
		return 0, sdlError("SDL_CreateColorCursor")
	}
	return backend.Handle(c), nil
}

func (b *Backend) LoadSound(path string) (backend.Handle, error) {
	if mixLib == 0 {
		return 0, missing("SDL2_mixer")
	}
	if !b.audioOpen {
		if fnMixOpenAudio(44100, audioS16Sys, 2, 2048) != 0 {
			return 0, sdlError("Mix_OpenAudio")
		}
		b.audioOpen = true
	}
	rw := fnRWFromFile(path, "rb")
	if rw == 0 {
		return 0, sdlError("SDL_RWFromFile")
	}
	chunk := fnMixLoadWAVRW(rw, 1)
	if chunk == 0 {
		return 0, sdlError("Mix_LoadWAV_RW")
	}
	return backend.Handle(chunk), nil
}

func (b *Backend) Free(kind backend.ResourceKind, h backend.Handle) {
	if h == 0 {
		return
	}
	switch kind {
	case backend.ResourceFont:
		fnTTFCloseFont(uintptr(h))
	case backend.ResourceImage:
		delete(b.images, h)
		fnDestroyTexture(uintptr(h))
	case backend.ResourceSound:
		fnMixFreeChunk(uintptr(h))
	case backend.ResourceCursor:
		fnFreeCursor(uintptr(h))
	default:
		logging.Logger().Warn("sdl: free of unknown resource kind", "kind", kind)
	}
}
