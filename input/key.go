// Package input defines the stable, backend-independent identifiers for
// keyboard keys, modifier state and mouse buttons, plus the lookup tables
// backends use to translate their native codes into them.
package input

import "strings"

// Key identifies a keyboard key independently of the platform keycode.
type Key uint16

const (
	KeyUnknown Key = iota

	// Whitespace and control
	KeySpace
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace

	// Punctuation
	KeyBang
	KeyQuote
	KeyHash
	KeyDollar
	KeyPercent
	KeyAmpersand
	KeyApostrophe
	KeyLParen
	KeyRParen
	KeyAsterisk
	KeyPlus
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash

	// Digits
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyColon
	KeySemicolon
	KeyLess
	KeyEqual
	KeyGreater
	KeyQuestion
	KeyAt

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeyLBracket
	KeyBackslash
	KeyRBracket
	KeyCaret
	KeyUnderscore
	KeyBacktick

	// Navigation and editing
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd

	// Locks
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPause

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	// Keypad
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPPeriod
	KeyKPDivide
	KeyKPMultiply
	KeyKPMinus
	KeyKPPlus
	KeyKPEqual
	KeyKPEnter

	// Modifier keys
	KeyLShift
	KeyRShift
	KeyLCtrl
	KeyRCtrl
	KeyLAlt
	KeyRAlt
	KeyLGUI
	KeyRGUI

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:    "Unknown",
	KeySpace:      "Space",
	KeyEscape:     "Escape",
	KeyEnter:      "Enter",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeyBang:       "!",
	KeyQuote:      "\"",
	KeyHash:       "#",
	KeyDollar:     "$",
	KeyPercent:    "%",
	KeyAmpersand:  "&",
	KeyApostrophe: "'",
	KeyLParen:     "(",
	KeyRParen:     ")",
	KeyAsterisk:   "*",
	KeyPlus:       "+",
	KeyComma:      ",",
	KeyMinus:      "-",
	KeyPeriod:     ".",
	KeySlash:      "/",
	Key0:          "0",
	Key1:          "1",
	Key2:          "2",
	Key3:          "3",
	Key4:          "4",
	Key5:          "5",
	Key6:          "6",
	Key7:          "7",
	Key8:          "8",
	Key9:          "9",
	KeyColon:      ":",
	KeySemicolon:  ";",
	KeyLess:       "<",
	KeyEqual:      "=",
	KeyGreater:    ">",
	KeyQuestion:   "?",
	KeyAt:         "@",
	KeyA:          "A",
	KeyB:          "B",
	KeyC:          "C",
	KeyD:          "D",
	KeyE:          "E",
	KeyF:          "F",
	KeyG:          "G",
	KeyH:          "H",
	KeyI:          "I",
	KeyJ:          "J",
	KeyK:          "K",
	KeyL:          "L",
	KeyM:          "M",
	KeyN:          "N",
	KeyO:          "O",
	KeyP:          "P",
	KeyQ:          "Q",
	KeyR:          "R",
	KeyS:          "S",
	KeyT:          "T",
	KeyU:          "U",
	KeyV:          "V",
	KeyW:          "W",
	KeyX:          "X",
	KeyY:          "Y",
	KeyZ:          "Z",
	KeyLBracket:   "[",
	KeyBackslash:  "\\",
	KeyRBracket:   "]",
	KeyCaret:      "^",
	KeyUnderscore: "_",
	KeyBacktick:   "`",
	KeyInsert:     "Insert",
	KeyDelete:     "Delete",
	KeyRight:      "Right",
	KeyLeft:       "Left",
	KeyDown:       "Down",
	KeyUp:         "Up",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyCapsLock:   "CapsLock",
	KeyScrollLock: "ScrollLock",
	KeyNumLock:    "NumLock",
	KeyPause:      "Pause",
	KeyF1:         "F1",
	KeyF2:         "F2",
	KeyF3:         "F3",
	KeyF4:         "F4",
	KeyF5:         "F5",
	KeyF6:         "F6",
	KeyF7:         "F7",
	KeyF8:         "F8",
	KeyF9:         "F9",
	KeyF10:        "F10",
	KeyF11:        "F11",
	KeyF12:        "F12",
	KeyF13:        "F13",
	KeyF14:        "F14",
	KeyF15:        "F15",
	KeyF16:        "F16",
	KeyF17:        "F17",
	KeyF18:        "F18",
	KeyF19:        "F19",
	KeyF20:        "F20",
	KeyF21:        "F21",
	KeyF22:        "F22",
	KeyF23:        "F23",
	KeyF24:        "F24",
	KeyKP0:        "Keypad 0",
	KeyKP1:        "Keypad 1",
	KeyKP2:        "Keypad 2",
	KeyKP3:        "Keypad 3",
	KeyKP4:        "Keypad 4",
	KeyKP5:        "Keypad 5",
	KeyKP6:        "Keypad 6",
	KeyKP7:        "Keypad 7",
	KeyKP8:        "Keypad 8",
	KeyKP9:        "Keypad 9",
	KeyKPPeriod:   "Keypad .",
	KeyKPDivide:   "Keypad /",
	KeyKPMultiply: "Keypad *",
	KeyKPMinus:    "Keypad -",
	KeyKPPlus:     "Keypad +",
	KeyKPEqual:    "Keypad =",
	KeyKPEnter:    "Keypad Enter",
	KeyLShift:     "Left Shift",
	KeyRShift:     "Right Shift",
	KeyLCtrl:      "Left Ctrl",
	KeyRCtrl:      "Right Ctrl",
	KeyLAlt:       "Left Alt",
	KeyRAlt:       "Right Alt",
	KeyLGUI:       "Left GUI",
	KeyRGUI:       "Right GUI",
}

// aliases are extra spellings accepted by ParseKey.
var aliases = map[string]Key{
	"return": KeyEnter,
	"esc":    KeyEscape,
	"del":    KeyDelete,
	"pgup":   KeyPageUp,
	"pgdn":   KeyPageDown,
	"lshift": KeyLShift,
	"rshift": KeyRShift,
	"lctrl":  KeyLCtrl,
	"rctrl":  KeyRCtrl,
	"lalt":   KeyLAlt,
	"ralt":   KeyRAlt,
	"lgui":   KeyLGUI,
	"rgui":   KeyRGUI,
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames)+len(aliases))
	for k, name := range keyNames {
		m[strings.ToLower(name)] = Key(k)
	}
	for alias, k := range aliases {
		m[alias] = k
	}
	return m
}()

// String returns the display name of the key.
func (k Key) String() string {
	if k >= keyCount {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

// Valid reports whether k is a known key other than KeyUnknown.
func (k Key) Valid() bool {
	return k > KeyUnknown && k < keyCount
}

// ParseKey resolves a key name such as "A", "a", "Space" or "Left Shift".
// Matching is case-insensitive. Names that do not resolve return KeyUnknown.
func ParseKey(name string) Key {
	if k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k
	}
	return KeyUnknown
}

// AllKeys returns every valid key in declaration order.
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount-1)
	for k := KeyUnknown + 1; k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}
