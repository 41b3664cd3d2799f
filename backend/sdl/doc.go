// Package sdl is the SDL2 backend. It loads SDL2 and, when present,
// SDL2_ttf, SDL2_image and SDL2_mixer at runtime through purego, so building
// it needs no C toolchain.
//
// Library lookup order for the core library: backend.Config.LibraryPath,
// the ORRERY_SDL_PATH environment variable, the working directory, the
// executable's directory and finally the system loader. Companion libraries
// are looked up next to the core library first.
package sdl
