//go:build darwin || freebsd || linux || windows

package sdl

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/internal/logging"
)

// ============================================================================
// Library Loading
// ============================================================================

var (
	libOnce sync.Once
	libErr  error

	coreLib, ttfLib, imgLib, mixLib uintptr
)

// Library function pointers (populated by loadLibraries)
var (
	// SDL2 core
	fnInit                  func(flags uint32) int32
	fnQuit                  func()
	fnGetError              func() uintptr
	fnFree                  func(ptr uintptr)
	fnCreateWindow          func(title string, x, y, w, h int32, flags uint32) uintptr
	fnDestroyWindow         func(window uintptr)
	fnGetWindowSize         func(window uintptr, w, h *int32)
	fnSetWindowMinimumSize  func(window uintptr, w, h int32)
	fnCreateRenderer        func(window uintptr, index int32, flags uint32) uintptr
	fnDestroyRenderer       func(renderer uintptr)
	fnRenderSetLogicalSize  func(renderer uintptr, w, h int32) int32
	fnRenderSetIntegerScale func(renderer uintptr, enable int32) int32
	fnSetRenderDrawColor    func(renderer uintptr, r, g, b, a uint8) int32
	fnRenderClear           func(renderer uintptr) int32
	fnRenderPresent         func(renderer uintptr)
	fnPollEvent             func(event *byte) int32
	fnStartTextInput        func()
	fnCreateSystemCursor    func(id int32) uintptr
	fnFreeCursor            func(cursor uintptr)
	fnCreateColorCursor     func(surface uintptr, hotX, hotY int32) uintptr
	fnFreeSurface           func(surface uintptr)
	fnDestroyTexture        func(texture uintptr)
	fnRWFromFile            func(file, mode string) uintptr

	// SDL 2.0.18+, optional
	fnRenderWindowToLogical func(renderer uintptr, wx, wy int32, lx, ly *float32)

	// SDL2_ttf
	fnTTFInit      func() int32
	fnTTFQuit      func()
	fnTTFOpenFont  func(file string, ptsize int32) uintptr
	fnTTFCloseFont func(font uintptr)

	// SDL2_image
	fnIMGInit        func(flags int32) int32
	fnIMGQuit        func()
	fnIMGLoadTexture func(renderer uintptr, file string) uintptr
	fnIMGLoad        func(file string) uintptr

	// SDL2_mixer
	fnMixOpenAudio  func(frequency int32, format uint16, channels, chunksize int32) int32
	fnMixCloseAudio func()
	fnMixQuit       func()
	fnMixLoadWAVRW  func(src uintptr, freesrc int32) uintptr
	fnMixFreeChunk  func(chunk uintptr)
)

// libraryNames returns the file names tried for one library on this OS.
func libraryNames(base string) []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"lib" + base + ".dylib", "lib" + base + "-2.0.0.dylib"}
	case "windows":
		return []string{base + ".dll"}
	default:
		return []string{"lib" + base + "-2.0.so.0", "lib" + base + ".so"}
	}
}

// searchDirs returns directories searched before the system loader.
func searchDirs(override string) []string {
	var dirs []string
	if override != "" {
		dirs = append(dirs, filepath.Dir(override))
	}
	dirs = append(dirs, ".")
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		dirs = append(dirs, execDir, filepath.Join(execDir, "..", "lib"))
		if runtime.GOOS == "darwin" {
			dirs = append(dirs, filepath.Join(execDir, "..", "Frameworks"))
		}
	}
	if runtime.GOOS == "darwin" {
		dirs = append(dirs, "/opt/homebrew/lib", "/usr/local/lib")
	}
	return dirs
}

// libraryPath resolves a library name to a path. Names not found on disk are
// returned bare so the system loader can search for them.
func libraryPath(dirs []string, names []string) string {
	for _, dir := range dirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if abs, err := filepath.Abs(path); err == nil {
					return abs
				}
				return path
			}
		}
	}
	return names[0]
}

func openFirst(candidates []string) (uintptr, string, error) {
	var firstErr error
	for _, path := range candidates {
		h, err := openLibrary(path)
		if err == nil {
			return h, path, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return 0, "", firstErr
}

// loadLibraries opens SDL2 and its companions once per process. Only the
// core library is required.
func loadLibraries(override string) error {
	libOnce.Do(func() {
		if override == "" {
			override = os.Getenv("ORRERY_SDL_PATH")
		}
		dirs := searchDirs(override)
		log := logging.Logger()

		candidates := []string{libraryPath(dirs, libraryNames("SDL2"))}
		if override != "" {
			candidates = append([]string{override}, candidates...)
		}
		h, path, err := openFirst(candidates)
		if err != nil {
			libErr = fmt.Errorf("%w: SDL2 from %v: %v", backend.ErrLibraryLoad, candidates, err)
			return
		}
		coreLib = h
		log.Debug("sdl: loaded library", "path", path)

		if err := registerCore(); err != nil {
			libErr = err
			return
		}

		// Companions are independent of each other.
		var g errgroup.Group
		for _, c := range companions {
			g.Go(func() error {
				h, path, err := openFirst([]string{libraryPath(dirs, libraryNames(c.base))})
				if err != nil {
					log.Debug("sdl: optional library unavailable", "library", c.base, "error", err)
					return nil
				}
				if err := c.register(h); err != nil {
					log.Warn("sdl: optional library unusable", "library", c.base, "error", err)
					return nil
				}
				*c.handle = h
				log.Debug("sdl: loaded library", "path", path)
				return nil
			})
		}
		_ = g.Wait()
	})
	return libErr
}

var companions = []struct {
	base     string
	handle   *uintptr
	register func(h uintptr) error
}{
	{"SDL2_ttf", &ttfLib, registerTTF},
	{"SDL2_image", &imgLib, registerIMG},
	{"SDL2_mixer", &mixLib, registerMix},
}

// registerFunc registers one symbol, turning purego's panic on a missing
// symbol into an error.
func registerFunc[T any](fn *T, handle uintptr, name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: missing symbol %s", backend.ErrLibraryLoad, name)
		}
	}()
	purego.RegisterLibFunc(fn, handle, name)
	return nil
}

// registerOptionalFunc registers a symbol that older libraries lack.
func registerOptionalFunc[T any](fn *T, handle uintptr, name string) {
	if err := registerFunc(fn, handle, name); err != nil {
		var zero T
		*fn = zero
	}
}

type binding struct {
	register func(uintptr, string) error
	name     string
}

func bind[T any](fn *T, name string) binding {
	return binding{
		register: func(h uintptr, n string) error { return registerFunc(fn, h, n) },
		name:     name,
	}
}

func registerAll(h uintptr, bindings []binding) error {
	for _, b := range bindings {
		if err := b.register(h, b.name); err != nil {
			return err
		}
	}
	return nil
}

func registerCore() error {
	err := registerAll(coreLib, []binding{
		bind(&fnInit, "SDL_Init"),
		bind(&fnQuit, "SDL_Quit"),
		bind(&fnGetError, "SDL_GetError"),
		bind(&fnFree, "SDL_free"),
		bind(&fnCreateWindow, "SDL_CreateWindow"),
		bind(&fnDestroyWindow, "SDL_DestroyWindow"),
		bind(&fnGetWindowSize, "SDL_GetWindowSize"),
		bind(&fnSetWindowMinimumSize, "SDL_SetWindowMinimumSize"),
		bind(&fnCreateRenderer, "SDL_CreateRenderer"),
		bind(&fnDestroyRenderer, "SDL_DestroyRenderer"),
		bind(&fnRenderSetLogicalSize, "SDL_RenderSetLogicalSize"),
		bind(&fnRenderSetIntegerScale, "SDL_RenderSetIntegerScale"),
		bind(&fnSetRenderDrawColor, "SDL_SetRenderDrawColor"),
		bind(&fnRenderClear, "SDL_RenderClear"),
		bind(&fnRenderPresent, "SDL_RenderPresent"),
		bind(&fnPollEvent, "SDL_PollEvent"),
		bind(&fnStartTextInput, "SDL_StartTextInput"),
		bind(&fnCreateSystemCursor, "SDL_CreateSystemCursor"),
		bind(&fnFreeCursor, "SDL_FreeCursor"),
		bind(&fnCreateColorCursor, "SDL_CreateColorCursor"),
		bind(&fnFreeSurface, "SDL_FreeSurface"),
		bind(&fnDestroyTexture, "SDL_DestroyTexture"),
		bind(&fnRWFromFile, "SDL_RWFromFile"),
	})
	if err != nil {
		return err
	}
	registerOptionalFunc(&fnRenderWindowToLogical, coreLib, "SDL_RenderWindowToLogical")
	return nil
}

func registerTTF(h uintptr) error {
	return registerAll(h, []binding{
		bind(&fnTTFInit, "TTF_Init"),
		bind(&fnTTFQuit, "TTF_Quit"),
		bind(&fnTTFOpenFont, "TTF_OpenFont"),
		bind(&fnTTFCloseFont, "TTF_CloseFont"),
	})
}

func registerIMG(h uintptr) error {
	return registerAll(h, []binding{
		bind(&fnIMGInit, "IMG_Init"),
		bind(&fnIMGQuit, "IMG_Quit"),
		bind(&fnIMGLoadTexture, "IMG_LoadTexture"),
		bind(&fnIMGLoad, "IMG_Load"),
	})
}

func registerMix(h uintptr) error {
	return registerAll(h, []binding{
		bind(&fnMixOpenAudio, "Mix_OpenAudio"),
		bind(&fnMixCloseAudio, "Mix_CloseAudio"),
		bind(&fnMixQuit, "Mix_Quit"),
		bind(&fnMixLoadWAVRW, "Mix_LoadWAV_RW"),
		bind(&fnMixFreeChunk, "Mix_FreeChunk"),
	})
}

// ============================================================================
// String Helpers
// ============================================================================

// goString copies a NUL-terminated C string.
func goString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	p := *(*unsafe.Pointer)(unsafe.Pointer(&ptr))
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(p), n))
}

// takeString copies an SDL-allocated string and frees it.
func takeString(ptr uintptr) string {
	s := goString(ptr)
	if ptr != 0 {
		fnFree(ptr)
	}
	return s
}

func sdlError(op string) error {
	return fmt.Errorf("sdl: %s: %s", op, goString(fnGetError()))
}
