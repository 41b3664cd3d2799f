package mobile

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/input"
)

// keyTable maps USB HID usage codes, which is what key.Code carries.
// Shifted punctuation has no code of its own and arrives as text only.
var keyTable = func() input.KeyTable {
	t := input.KeyTable{
		uint32(key.CodeReturnEnter):        input.KeyEnter,
		uint32(key.CodeEscape):             input.KeyEscape,
		uint32(key.CodeDeleteBackspace):    input.KeyBackspace,
		uint32(key.CodeTab):                input.KeyTab,
		uint32(key.CodeSpacebar):           input.KeySpace,
		uint32(key.CodeHyphenMinus):        input.KeyMinus,
		uint32(key.CodeEqualSign):          input.KeyEqual,
		uint32(key.CodeLeftSquareBracket):  input.KeyLBracket,
		uint32(key.CodeRightSquareBracket): input.KeyRBracket,
		uint32(key.CodeBackslash):          input.KeyBackslash,
		uint32(key.CodeSemicolon):          input.KeySemicolon,
		uint32(key.CodeApostrophe):         input.KeyApostrophe,
		uint32(key.CodeGraveAccent):        input.KeyBacktick,
		uint32(key.CodeComma):              input.KeyComma,
		uint32(key.CodeFullStop):           input.KeyPeriod,
		uint32(key.CodeSlash):              input.KeySlash,
		uint32(key.CodeCapsLock):           input.KeyCapsLock,
		71:                                 input.KeyScrollLock,
		uint32(key.CodePause):              input.KeyPause,
		uint32(key.CodeInsert):             input.KeyInsert,
		uint32(key.CodeHome):               input.KeyHome,
		uint32(key.CodePageUp):             input.KeyPageUp,
		uint32(key.CodeDeleteForward):      input.KeyDelete,
		uint32(key.CodeEnd):                input.KeyEnd,
		uint32(key.CodePageDown):           input.KeyPageDown,
		uint32(key.CodeRightArrow):         input.KeyRight,
		uint32(key.CodeLeftArrow):          input.KeyLeft,
		uint32(key.CodeDownArrow):          input.KeyDown,
		uint32(key.CodeUpArrow):            input.KeyUp,
		uint32(key.CodeKeypadNumLock):      input.KeyNumLock,
		uint32(key.CodeKeypadSlash):        input.KeyKPDivide,
		uint32(key.CodeKeypadAsterisk):     input.KeyKPMultiply,
		uint32(key.CodeKeypadHyphenMinus):  input.KeyKPMinus,
		uint32(key.CodeKeypadPlusSign):     input.KeyKPPlus,
		uint32(key.CodeKeypadEnter):        input.KeyKPEnter,
		uint32(key.CodeKeypad0):            input.KeyKP0,
		uint32(key.CodeKeypadFullStop):     input.KeyKPPeriod,
		uint32(key.CodeKeypadEqualSign):    input.KeyKPEqual,
		uint32(key.CodeLeftControl):        input.KeyLCtrl,
		uint32(key.CodeLeftShift):          input.KeyLShift,
		uint32(key.CodeLeftAlt):            input.KeyLAlt,
		uint32(key.CodeLeftGUI):            input.KeyLGUI,
		uint32(key.CodeRightControl):       input.KeyRCtrl,
		uint32(key.CodeRightShift):         input.KeyRShift,
		uint32(key.CodeRightAlt):           input.KeyRAlt,
		uint32(key.CodeRightGUI):           input.KeyRGUI,
	}
	for i := uint32(0); i < 26; i++ {
		t[uint32(key.CodeA)+i] = input.KeyA + input.Key(i)
	}
	// HID orders digits 1..9 then 0.
	for i := uint32(0); i < 9; i++ {
		t[uint32(key.Code1)+i] = input.Key1 + input.Key(i)
		t[uint32(key.CodeKeypad1)+i] = input.KeyKP1 + input.Key(i)
	}
	t[uint32(key.Code0)] = input.Key0
	for i := uint32(0); i < 12; i++ {
		t[uint32(key.CodeF1)+i] = input.KeyF1 + input.Key(i)
		t[uint32(key.CodeF13)+i] = input.KeyF13 + input.Key(i)
	}
	return t
}()

var buttonTable = input.ButtonTable{
	uint32(mouse.ButtonLeft):   input.ButtonLeft,
	uint32(mouse.ButtonMiddle): input.ButtonMiddle,
	uint32(mouse.ButtonRight):  input.ButtonRight,
}

// modTable maps key.Modifiers, which does not distinguish sides.
var modTable = input.ModTable{
	{Mask: uint32(key.ModShift), Mod: input.ModLShift},
	{Mask: uint32(key.ModControl), Mod: input.ModLCtrl},
	{Mask: uint32(key.ModAlt), Mod: input.ModLAlt},
	{Mask: uint32(key.ModMeta), Mod: input.ModLGUI},
}

var tables = backend.Tables{Keys: keyTable, Buttons: buttonTable, Mods: modTable}
