package sdl

import (
	"testing"

	"github.com/agiangrant/orrery/backend"
)

func TestMapToLogical(t *testing.T) {
	tests := []struct {
		name       string
		cfg        backend.Config
		winW, winH int
		x, y       int
		wantX      int
		wantY      int
	}{
		{"scaling off keeps window coordinates", backend.Config{Width: 640, Height: 480}, 1280, 960, 200, 100, 200, 100},
		{"scaling off with resized window", backend.Config{Width: 320, Height: 240}, 1000, 700, 999, 699, 999, 699},
		{"scaling on halves", backend.Config{Width: 640, Height: 480, ScaleToSize: true}, 1280, 960, 200, 100, 100, 50},
		{"scaling on floors to whole multiple", backend.Config{Width: 100, Height: 100, ScaleToSize: true}, 250, 250, 125, 125, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := mapToLogical(tt.cfg, tt.winW, tt.winH, tt.x, tt.y)
			if gotX != tt.wantX || gotY != tt.wantY {
				t.Errorf("mapToLogical() = %d, %d, want %d, %d", gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}
