package input

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	ButtonUnknown MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonX1
	ButtonX2
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonMiddle:
		return "Middle"
	case ButtonRight:
		return "Right"
	case ButtonX1:
		return "X1"
	case ButtonX2:
		return "X2"
	default:
		return "Unknown"
	}
}
