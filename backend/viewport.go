package backend

// Viewport maps window coordinates onto a logical render size the way a
// letterboxing renderer does: the logical area is scaled uniformly to fit
// the window and centred.
type Viewport struct {
	LogicalW, LogicalH int
	WindowW, WindowH   int

	// IntegerScale restricts the scale to whole multiples (at least 1).
	IntegerScale bool
}

// Scale returns the factor from logical to window coordinates.
func (v Viewport) Scale() float64 {
	if v.LogicalW <= 0 || v.LogicalH <= 0 || v.WindowW <= 0 || v.WindowH <= 0 {
		return 1
	}
	sx := float64(v.WindowW) / float64(v.LogicalW)
	sy := float64(v.WindowH) / float64(v.LogicalH)
	s := min(sx, sy)
	if v.IntegerScale {
		s = float64(int(s))
		if s < 1 {
			s = 1
		}
	}
	return s
}

// Offset returns the top-left corner of the logical area in window
// coordinates.
func (v Viewport) Offset() (float64, float64) {
	s := v.Scale()
	if v.LogicalW <= 0 || v.LogicalH <= 0 {
		return 0, 0
	}
	ox := (float64(v.WindowW) - float64(v.LogicalW)*s) / 2
	oy := (float64(v.WindowH) - float64(v.LogicalH)*s) / 2
	return ox, oy
}

// ToLogical converts a window position to logical coordinates. Positions in
// the letterbox bars map outside the logical area.
func (v Viewport) ToLogical(x, y int) (int, int) {
	if v.LogicalW <= 0 || v.LogicalH <= 0 {
		return x, y
	}
	s := v.Scale()
	ox, oy := v.Offset()
	return int((float64(x) - ox) / s), int((float64(y) - oy) / s)
}
