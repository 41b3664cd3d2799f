package sdl

import (
	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/input"
)

// scancodeMask marks keycodes derived from scancodes (SDLK_SCANCODE_MASK).
const scancodeMask = 1 << 30

func sc(scancode uint32) uint32 { return scancode | scancodeMask }

// keyTable maps SDL_Keycode values. Printable keys use their character code;
// the rest are scancodes with scancodeMask set.
var keyTable = func() input.KeyTable {
	t := input.KeyTable{
		'\r': input.KeyEnter,
		27:   input.KeyEscape,
		'\b': input.KeyBackspace,
		'\t': input.KeyTab,
		' ':  input.KeySpace,
		'!':  input.KeyBang,
		'"':  input.KeyQuote,
		'#':  input.KeyHash,
		'$':  input.KeyDollar,
		'%':  input.KeyPercent,
		'&':  input.KeyAmpersand,
		'\'': input.KeyApostrophe,
		'(':  input.KeyLParen,
		')':  input.KeyRParen,
		'*':  input.KeyAsterisk,
		'+':  input.KeyPlus,
		',':  input.KeyComma,
		'-':  input.KeyMinus,
		'.':  input.KeyPeriod,
		'/':  input.KeySlash,
		':':  input.KeyColon,
		';':  input.KeySemicolon,
		'<':  input.KeyLess,
		'=':  input.KeyEqual,
		'>':  input.KeyGreater,
		'?':  input.KeyQuestion,
		'@':  input.KeyAt,
		'[':  input.KeyLBracket,
		'\\': input.KeyBackslash,
		']':  input.KeyRBracket,
		'^':  input.KeyCaret,
		'_':  input.KeyUnderscore,
		'`':  input.KeyBacktick,
		127:  input.KeyDelete,

		sc(57): input.KeyCapsLock,
		sc(71): input.KeyScrollLock,
		sc(72): input.KeyPause,
		sc(73): input.KeyInsert,
		sc(74): input.KeyHome,
		sc(75): input.KeyPageUp,
		sc(77): input.KeyEnd,
		sc(78): input.KeyPageDown,
		sc(79): input.KeyRight,
		sc(80): input.KeyLeft,
		sc(81): input.KeyDown,
		sc(82): input.KeyUp,
		sc(83): input.KeyNumLock,

		sc(84):  input.KeyKPDivide,
		sc(85):  input.KeyKPMultiply,
		sc(86):  input.KeyKPMinus,
		sc(87):  input.KeyKPPlus,
		sc(88):  input.KeyKPEnter,
		sc(98):  input.KeyKP0,
		sc(99):  input.KeyKPPeriod,
		sc(103): input.KeyKPEqual,

		sc(224): input.KeyLCtrl,
		sc(225): input.KeyLShift,
		sc(226): input.KeyLAlt,
		sc(227): input.KeyLGUI,
		sc(228): input.KeyRCtrl,
		sc(229): input.KeyRShift,
		sc(230): input.KeyRAlt,
		sc(231): input.KeyRGUI,
	}

	for i := uint32(0); i < 10; i++ {
		t['0'+i] = input.Key0 + input.Key(i)
	}
	for i := uint32(0); i < 26; i++ {
		t['a'+i] = input.KeyA + input.Key(i)
	}
	for i := uint32(0); i < 12; i++ {
		t[sc(58+i)] = input.KeyF1 + input.Key(i)
		t[sc(104+i)] = input.KeyF13 + input.Key(i)
	}
	for i := uint32(0); i < 9; i++ {
		t[sc(89+i)] = input.KeyKP1 + input.Key(i)
	}
	return t
}()

var buttonTable = input.ButtonTable{
	1: input.ButtonLeft,
	2: input.ButtonMiddle,
	3: input.ButtonRight,
	4: input.ButtonX1,
	5: input.ButtonX2,
}

// modTable maps SDL_Keymod bits.
var modTable = input.ModTable{
	{Mask: 0x0001, Mod: input.ModLShift},
	{Mask: 0x0002, Mod: input.ModRShift},
	{Mask: 0x0040, Mod: input.ModLCtrl},
	{Mask: 0x0080, Mod: input.ModRCtrl},
	{Mask: 0x0100, Mod: input.ModLAlt},
	{Mask: 0x0200, Mod: input.ModRAlt},
	{Mask: 0x0400, Mod: input.ModLGUI},
	{Mask: 0x0800, Mod: input.ModRGUI},
	{Mask: 0x1000, Mod: input.ModNumLock},
	{Mask: 0x2000, Mod: input.ModCapsLock},
	{Mask: 0x4000, Mod: input.ModAltGr},
}

var tables = backend.Tables{Keys: keyTable, Buttons: buttonTable, Mods: modTable}
