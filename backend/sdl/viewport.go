package sdl

import "github.com/agiangrant/orrery/backend"

// mapToLogical is the fallback for SDL builds without
// SDL_RenderWindowToLogical. It mirrors the logical size set in Init: no
// mapping unless ScaleToSize is on, then an integer letterbox.
func mapToLogical(cfg backend.Config, winW, winH, x, y int) (int, int) {
	if !cfg.ScaleToSize {
		return x, y
	}
	vp := backend.Viewport{
		LogicalW:     cfg.Width,
		LogicalH:     cfg.Height,
		WindowW:      winW,
		WindowH:      winH,
		IntegerScale: true,
	}
	return vp.ToLogical(x, y)
}
