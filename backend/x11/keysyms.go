package x11

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/input"
)

// keyTable maps X11 keysyms as reported for column 0 of the keyboard
// mapping, which is the unshifted symbol. Letters arrive lowercase.
var keyTable = func() input.KeyTable {
	t := input.KeyTable{
		0xff1b: input.KeyEscape,
		0xff0d: input.KeyEnter,
		0xff09: input.KeyTab,
		0xff08: input.KeyBackspace,
		0xff63: input.KeyInsert,
		0xffff: input.KeyDelete,
		0xff50: input.KeyHome,
		0xff51: input.KeyLeft,
		0xff52: input.KeyUp,
		0xff53: input.KeyRight,
		0xff54: input.KeyDown,
		0xff55: input.KeyPageUp,
		0xff56: input.KeyPageDown,
		0xff57: input.KeyEnd,

		0xffe5: input.KeyCapsLock,
		0xff14: input.KeyScrollLock,
		0xff7f: input.KeyNumLock,
		0xff13: input.KeyPause,

		0xffe1: input.KeyLShift,
		0xffe2: input.KeyRShift,
		0xffe3: input.KeyLCtrl,
		0xffe4: input.KeyRCtrl,
		0xffe9: input.KeyLAlt,
		0xffea: input.KeyRAlt,
		0xffeb: input.KeyLGUI,
		0xffec: input.KeyRGUI,

		0xffae: input.KeyKPPeriod,
		0xffaf: input.KeyKPDivide,
		0xffaa: input.KeyKPMultiply,
		0xffad: input.KeyKPMinus,
		0xffab: input.KeyKPPlus,
		0xff8d: input.KeyKPEnter,
		0xffbd: input.KeyKPEqual,
	}

	// Latin-1 keysyms equal their character codes.
	for _, k := range []input.Key{
		input.KeySpace, input.KeyBang, input.KeyQuote, input.KeyHash,
		input.KeyDollar, input.KeyPercent, input.KeyAmpersand, input.KeyApostrophe,
		input.KeyLParen, input.KeyRParen, input.KeyAsterisk, input.KeyPlus,
		input.KeyComma, input.KeyMinus, input.KeyPeriod, input.KeySlash,
		input.KeyColon, input.KeySemicolon, input.KeyLess, input.KeyEqual,
		input.KeyGreater, input.KeyQuestion, input.KeyAt, input.KeyLBracket,
		input.KeyBackslash, input.KeyRBracket, input.KeyCaret, input.KeyUnderscore,
		input.KeyBacktick,
	} {
		name := k.String()
		if k == input.KeySpace {
			name = " "
		}
		t[uint32(name[0])] = k
	}

	for i := uint32(0); i < 10; i++ {
		t['0'+i] = input.Key0 + input.Key(i)
		t[0xffb0+i] = input.KeyKP0 + input.Key(i)
	}
	for i := uint32(0); i < 26; i++ {
		t['a'+i] = input.KeyA + input.Key(i)
	}
	for i := uint32(0); i < 24; i++ {
		t[0xffbe+i] = input.KeyF1 + input.Key(i)
	}
	return t
}()

// buttonTable maps core protocol buttons. 4-7 are wheel steps and never
// reach the table.
var buttonTable = input.ButtonTable{
	1: input.ButtonLeft,
	2: input.ButtonMiddle,
	3: input.ButtonRight,
	8: input.ButtonX1,
	9: input.ButtonX2,
}

// modTable maps the core KeyButMask. The core protocol does not say which
// side of a pair is held, so both report the left modifier. Mod1, Mod2,
// Mod4 and Mod5 follow the usual Alt, NumLock, Super and AltGr assignment.
var modTable = input.ModTable{
	{Mask: xproto.ModMaskShift, Mod: input.ModLShift},
	{Mask: xproto.ModMaskLock, Mod: input.ModCapsLock},
	{Mask: xproto.ModMaskControl, Mod: input.ModLCtrl},
	{Mask: xproto.ModMask1, Mod: input.ModLAlt},
	{Mask: xproto.ModMask2, Mod: input.ModNumLock},
	{Mask: xproto.ModMask4, Mod: input.ModLGUI},
	{Mask: xproto.ModMask5, Mod: input.ModAltGr},
}

var tables = backend.Tables{Keys: keyTable, Buttons: buttonTable, Mods: modTable}

// keysymText returns the text a keysym types, or "" for function keys.
func keysymText(sym xproto.Keysym) string {
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		return string(rune(sym))
	case sym&0xff000000 == 0x01000000:
		return string(rune(sym & 0x00ffffff))
	}
	return ""
}
