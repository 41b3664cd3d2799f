package backend

// Kind identifies a native event.
type Kind uint8

const (
	KindNone Kind = iota
	KindQuit

	KindKeyDown
	KindKeyUp
	KindTextInput
	KindTextEditing

	KindMouseMotion
	KindMouseDown
	KindMouseUp
	KindMouseWheel

	KindWindowShown
	KindWindowHidden
	KindWindowMoved
	KindWindowResized
	KindWindowSizeChanged
	KindWindowMaximized
	KindWindowRestored
	KindWindowFocusGained
	KindWindowFocusLost
	KindWindowEnter
	KindWindowLeave

	KindDropFile
)

var kindNames = [...]string{
	KindNone:              "none",
	KindQuit:              "quit",
	KindKeyDown:           "key-down",
	KindKeyUp:             "key-up",
	KindTextInput:         "text-input",
	KindTextEditing:       "text-editing",
	KindMouseMotion:       "mouse-motion",
	KindMouseDown:         "mouse-down",
	KindMouseUp:           "mouse-up",
	KindMouseWheel:        "mouse-wheel",
	KindWindowShown:       "window-shown",
	KindWindowHidden:      "window-hidden",
	KindWindowMoved:       "window-moved",
	KindWindowResized:     "window-resized",
	KindWindowSizeChanged: "window-size-changed",
	KindWindowMaximized:   "window-maximized",
	KindWindowRestored:    "window-restored",
	KindWindowFocusGained: "window-focus-gained",
	KindWindowFocusLost:   "window-focus-lost",
	KindWindowEnter:       "window-enter",
	KindWindowLeave:       "window-leave",
	KindDropFile:          "drop-file",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is one native event in backend terms. Which fields are meaningful
// depends on Kind:
//
//	KindKeyDown, KindKeyUp      Code, Mods, Repeat
//	KindTextInput               Text
//	KindTextEditing             Text, Start, Length
//	KindMouseMotion             X, Y, DX, DY
//	KindMouseDown, KindMouseUp  Button, X, Y, Clicks
//	KindMouseWheel              DX, DY, Flipped
//	KindWindowMoved             Data1, Data2 (position)
//	KindWindowResized           Data1, Data2 (size)
//	KindDropFile                Path
//
// Code, Mods and Button are native values; they go through the backend's
// Tables. X and Y are window coordinates.
type Event struct {
	Kind Kind

	Code   uint32
	Mods   uint32
	Repeat bool

	Text   string
	Start  int
	Length int

	X, Y   int
	DX, DY int

	Button  uint32
	Clicks  int
	Flipped bool

	Data1, Data2 int

	Path string
}
