package input

// ============================================================================
// Native Code Lookup Tables
// ============================================================================
//
// Each backend ships static tables from its own native codes (SDL keycodes,
// X11 keysyms, HID usage codes, ...) to the identifiers in this package.
// Lookups never fail: a code with no entry resolves to the Unknown sentinel.

// KeyTable maps native key codes to keys.
type KeyTable map[uint32]Key

// Lookup returns the key for code, or KeyUnknown.
func (t KeyTable) Lookup(code uint32) Key {
	if k, ok := t[code]; ok {
		return k
	}
	return KeyUnknown
}

// Reverse returns the first native code mapped to k.
func (t KeyTable) Reverse(k Key) (uint32, bool) {
	for code, key := range t {
		if key == k {
			return code, true
		}
	}
	return 0, false
}

// ButtonTable maps native button numbers to mouse buttons.
type ButtonTable map[uint32]MouseButton

// Lookup returns the button for code, or ButtonUnknown.
func (t ButtonTable) Lookup(code uint32) MouseButton {
	if b, ok := t[code]; ok {
		return b
	}
	return ButtonUnknown
}

// ModBit pairs a native modifier mask with the modifiers it stands for.
type ModBit struct {
	Mask uint32
	Mod  Mod
}

// ModTable translates a native modifier bitmask.
type ModTable []ModBit

// Translate ORs together the modifiers of every mask set in raw.
// Bits with no entry are ignored.
func (t ModTable) Translate(raw uint32) Mod {
	var out Mod
	for _, bit := range t {
		if raw&bit.Mask != 0 {
			out |= bit.Mod
		}
	}
	return out
}
