package input

import "strings"

// Mod is the set of modifier keys and lock states held during a key event.
type Mod uint16

const (
	ModLShift Mod = 1 << iota
	ModRShift
	ModLCtrl
	ModRCtrl
	ModLAlt
	ModRAlt
	ModLGUI
	ModRGUI
	ModNumLock
	ModCapsLock
	ModAltGr

	ModNone Mod = 0
)

// Combined masks for either side of a modifier pair.
const (
	ModShift = ModLShift | ModRShift
	ModCtrl  = ModLCtrl | ModRCtrl
	ModAlt   = ModLAlt | ModRAlt
	ModGUI   = ModLGUI | ModRGUI
)

func (m Mod) Shift() bool { return m&ModShift != 0 }
func (m Mod) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Mod) Alt() bool   { return m&ModAlt != 0 }
func (m Mod) GUI() bool   { return m&ModGUI != 0 }

// Has reports whether every bit of o is set in m.
func (m Mod) Has(o Mod) bool { return m&o == o }

var modNames = []struct {
	mod  Mod
	name string
}{
	{ModLShift, "LShift"},
	{ModRShift, "RShift"},
	{ModLCtrl, "LCtrl"},
	{ModRCtrl, "RCtrl"},
	{ModLAlt, "LAlt"},
	{ModRAlt, "RAlt"},
	{ModLGUI, "LGUI"},
	{ModRGUI, "RGUI"},
	{ModNumLock, "NumLock"},
	{ModCapsLock, "CapsLock"},
	{ModAltGr, "AltGr"},
}

// String joins the names of the set modifiers with "+", or returns "None".
func (m Mod) String() string {
	if m == ModNone {
		return "None"
	}
	parts := make([]string, 0, 4)
	for _, n := range modNames {
		if m&n.mod != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}
