package commands

import (
	"fmt"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/backend/headless"
	"github.com/agiangrant/orrery/backend/mobile"
	"github.com/agiangrant/orrery/backend/sdl"
	"github.com/agiangrant/orrery/backend/x11"
)

// newBackend constructs a backend by config name. Tests replace it.
var newBackend = func(name string) (backend.Backend, error) {
	switch name {
	case "sdl":
		return sdl.New(), nil
	case "x11":
		return x11.New(), nil
	case "headless":
		return headless.New(), nil
	case "mobile":
		return mobile.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}
