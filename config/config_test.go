package config

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.App.Title != "Untitled" || cfg.App.Org != "Example" {
		t.Errorf("app = %+v, want {Untitled Example}", cfg.App)
	}
	if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("Fullscreen = false, want true")
	}
	if cfg.Runtime.KeyRepeat {
		t.Error("KeyRepeat = true, want false")
	}
	if got := cfg.FrameDelay(); got != time.Millisecond {
		t.Errorf("FrameDelay() = %v, want 1ms", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{
			name: "toml",
			file: "orrery.toml",
			body: `
[app]
title = "Pong"

[window]
width = 800
height = 600
fullscreen = false
scale_to_size = true
background = "#102030"

[runtime]
key_repeat = true
frame_delay_ms = 0

[backend]
name = "headless"
`,
		},
		{
			name: "yaml",
			file: "orrery.yml",
			body: `
app:
  title: Pong
window:
  width: 800
  height: 600
  fullscreen: false
  scale_to_size: true
  background: "#102030"
runtime:
  key_repeat: true
  frame_delay_ms: 0
backend:
  name: headless
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.body))
			if err != nil {
				t.Fatalf("Load() = %v", err)
			}
			if cfg.App.Title != "Pong" {
				t.Errorf("Title = %q, want %q", cfg.App.Title, "Pong")
			}
			if cfg.App.Org != "Example" {
				t.Errorf("Org = %q, want default %q", cfg.App.Org, "Example")
			}
			if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
				t.Errorf("size = %dx%d, want 800x600", cfg.Window.Width, cfg.Window.Height)
			}
			if cfg.Window.Fullscreen {
				t.Error("Fullscreen = true, want false")
			}
			if !cfg.Runtime.KeyRepeat {
				t.Error("KeyRepeat = false, want true")
			}
			if cfg.FrameDelay() != 0 {
				t.Errorf("FrameDelay() = %v, want 0", cfg.FrameDelay())
			}

			bc := cfg.BackendConfig()
			if !bc.ScaleToSize {
				t.Error("BackendConfig().ScaleToSize = false, want true")
			}
			want := color.RGBA{0x10, 0x20, 0x30, 0xff}
			if bc.Background != want {
				t.Errorf("Background = %v, want %v", bc.Background, want)
			}
		})
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvLibraryPath, "")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if cfg.App.Title != "Untitled" {
		t.Errorf("Title = %q, want %q", cfg.App.Title, "Untitled")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvLibraryPath, "/opt/sdl/libSDL2.so")
	path := writeFile(t, "a.toml", "[backend]\nlibrary_path = \"/usr/lib/libSDL2.so\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if got := cfg.BackendConfig().LibraryPath; got != "/opt/sdl/libSDL2.so" {
		t.Errorf("LibraryPath = %q, want env override", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr error
	}{
		{"unknown extension", "orrery.json", "{}", ErrUnknownFormat},
		{"bad toml", "a.toml", "[window\nwidth=", nil},
		{"zero width", "a.toml", "[window]\nwidth = 0\n", nil},
		{"bad colour", "a.yaml", "window:\n  background: red\n", nil},
		{"unknown backend", "a.toml", "[backend]\nname = \"vulkan\"\n", nil},
		{"negative delay", "a.toml", "[runtime]\nframe_delay_ms = -5\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.body))
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"", color.RGBA{0, 0, 0, 0xff}, false},
		{"#ffffff", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{"00ff0080", color.RGBA{0, 0xff, 0, 0x80}, false},
		{"#abc", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	for _, name := range []string{"out.toml", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			cfg.App.Title = "Saved"
			cfg.Window.Resizable = true

			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, cfg); err != nil {
				t.Fatalf("Save() = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() = %v", err)
			}
			if got.App.Title != "Saved" || !got.Window.Resizable {
				t.Errorf("reloaded = %+v, want title Saved and resizable", got)
			}
		})
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, "ini", Default()); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode() = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestEncodeTOMLKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatTOML, Default()); err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	for _, key := range []string{"[window]", "scale_to_size", "frame_delay_ms"} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("TOML output missing %q:\n%s", key, buf.String())
		}
	}
}
