// Package config loads the application configuration from TOML or YAML and
// converts it into the window configuration a backend consumes.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/orrery/backend"
)

// EnvLibraryPath overrides Backend.LibraryPath when set.
const EnvLibraryPath = "ORRERY_SDL_PATH"

// ErrUnknownFormat is returned for config files that are neither TOML nor
// YAML.
var ErrUnknownFormat = errors.New("config: unknown file format")

// AppConfig is the orrery.toml (or orrery.yaml) file.
type AppConfig struct {
	App     AppSection     `toml:"app" yaml:"app"`
	Window  WindowConfig   `toml:"window" yaml:"window"`
	Runtime RuntimeConfig  `toml:"runtime" yaml:"runtime"`
	Backend BackendSection `toml:"backend" yaml:"backend"`
	Log     LogConfig      `toml:"log" yaml:"log"`
}

type AppSection struct {
	Title string `toml:"title" yaml:"title"`
	// Organisation, used by backends that namespace per-user data
	Org string `toml:"org" yaml:"org"`
}

// WindowConfig describes the window and its logical render size.
type WindowConfig struct {
	Width      int  `toml:"width" yaml:"width"`
	Height     int  `toml:"height" yaml:"height"`
	MinWidth   int  `toml:"min_width" yaml:"min_width"`
	MinHeight  int  `toml:"min_height" yaml:"min_height"`
	Fullscreen bool `toml:"fullscreen" yaml:"fullscreen"`
	Borderless bool `toml:"borderless" yaml:"borderless"`
	Resizable  bool `toml:"resizable" yaml:"resizable"`
	Headless   bool `toml:"headless" yaml:"headless"`
	VSync      bool `toml:"vsync" yaml:"vsync"`
	// Render at width x height and scale to the window in whole multiples
	ScaleToSize bool `toml:"scale_to_size" yaml:"scale_to_size"`
	// Clear colour as #rrggbb or #rrggbbaa
	Background string `toml:"background" yaml:"background"`
}

type RuntimeConfig struct {
	// Pause after each frame, in milliseconds
	FrameDelayMS int  `toml:"frame_delay_ms" yaml:"frame_delay_ms"`
	KeyRepeat    bool `toml:"key_repeat" yaml:"key_repeat"`
	// Upper bound on concurrently running scheduled callbacks, 0 for none
	MaxScheduled    int  `toml:"max_scheduled" yaml:"max_scheduled"`
	DriftCorrection bool `toml:"drift_correction" yaml:"drift_correction"`
}

type BackendSection struct {
	// sdl, x11, mobile or headless
	Name        string `toml:"name" yaml:"name"`
	LibraryPath string `toml:"library_path" yaml:"library_path"`
}

type LogConfig struct {
	// debug, info, warn or error
	Level string `toml:"level" yaml:"level"`
	// text, json, or empty to pick by terminal
	Format string `toml:"format" yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() AppConfig {
	return AppConfig{
		App: AppSection{
			Title: "Untitled",
			Org:   "Example",
		},
		Window: WindowConfig{
			Width:      640,
			Height:     480,
			Fullscreen: true,
			Background: "#000000",
		},
		Runtime: RuntimeConfig{
			FrameDelayMS: 1,
		},
		Backend: BackendSection{
			Name: "sdl",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the file at path over the defaults. The format follows the
// extension: .toml, .yaml or .yml. An empty path returns the defaults.
// The environment override is applied and the result validated.
func Load(path string) (AppConfig, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := Unmarshal(data, FormatOf(path), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if lib := os.Getenv(EnvLibraryPath); lib != "" {
		cfg.Backend.LibraryPath = lib
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Format is a config file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension. Unknown extensions
// return "".
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// Unmarshal decodes data in format f into cfg.
func Unmarshal(data []byte, f Format, cfg *AppConfig) error {
	switch f {
	case FormatTOML:
		return toml.Unmarshal(data, cfg)
	case FormatYAML:
		return yaml.Unmarshal(data, cfg)
	default:
		return ErrUnknownFormat
	}
}

// Encode writes cfg to w in format f.
func Encode(w io.Writer, f Format, cfg AppConfig) error {
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(cfg)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	default:
		return ErrUnknownFormat
	}
}

// Save writes cfg to path, choosing the format by extension.
func Save(path string, cfg AppConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Encode(f, FormatOf(path), cfg); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Validate reports the first invalid setting.
func (c AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 {
		return fmt.Errorf("config: minimum size %dx%d must not be negative", c.Window.MinWidth, c.Window.MinHeight)
	}
	if c.Runtime.FrameDelayMS < 0 {
		return fmt.Errorf("config: frame delay %dms must not be negative", c.Runtime.FrameDelayMS)
	}
	if _, err := ParseColor(c.Window.Background); err != nil {
		return err
	}
	switch c.Backend.Name {
	case "sdl", "x11", "mobile", "headless":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend.Name)
	}
	return nil
}

// FrameDelay returns the pause after each frame.
func (c AppConfig) FrameDelay() time.Duration {
	return time.Duration(c.Runtime.FrameDelayMS) * time.Millisecond
}

// BackendConfig converts the file into the window configuration passed to
// backend.Init. An invalid background falls back to black.
func (c AppConfig) BackendConfig() backend.Config {
	bg, err := ParseColor(c.Window.Background)
	if err != nil {
		bg = color.RGBA{A: 0xff}
	}
	return backend.Config{
		Title:       c.App.Title,
		Org:         c.App.Org,
		Width:       c.Window.Width,
		Height:      c.Window.Height,
		MinWidth:    c.Window.MinWidth,
		MinHeight:   c.Window.MinHeight,
		Fullscreen:  c.Window.Fullscreen,
		Borderless:  c.Window.Borderless,
		Resizable:   c.Window.Resizable,
		Headless:    c.Window.Headless,
		VSync:       c.Window.VSync,
		ScaleToSize: c.Window.ScaleToSize,
		Background:  bg,
		LibraryPath: c.Backend.LibraryPath,
	}
}

// ParseColor parses #rrggbb or #rrggbbaa. An empty string is opaque black.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{A: 0xff}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("config: colour %q is not #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: colour %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
