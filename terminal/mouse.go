package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// String returns human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "Left"
	case MouseBtnMiddle:
		return "Middle"
	case MouseBtnRight:
		return "Right"
	case MouseBtnWheelUp:
		return "WheelUp"
	case MouseBtnWheelDown:
		return "WheelDown"
	default:
		return "None"
	}
}

// String returns human-readable action name
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "Press"
	case MouseActionRelease:
		return "Release"
	case MouseActionMove:
		return "Move"
	case MouseActionDrag:
		return "Drag"
	default:
		return "None"
	}
}

// mouseEvent decodes an xterm button code (already stripped of the X10 +32 offset).
// Bits 0-1: button (0=left, 1=middle, 2=right, 3=none), bit 5: motion, bit 6: wheel,
// bits 2-4: shift, alt, ctrl.
func mouseEvent(code, x, y int, release bool) Event {
	ev := Event{Type: EventMouse, MouseX: x, MouseY: y}

	buttonID := code & 0x03
	isMotion := code&32 != 0

	if code&64 != 0 {
		if buttonID == 0 {
			ev.MouseBtn = MouseBtnWheelUp
		} else {
			ev.MouseBtn = MouseBtnWheelDown
		}
		ev.MouseAction = MouseActionPress
	} else {
		switch buttonID {
		case 0:
			ev.MouseBtn = MouseBtnLeft
		case 1:
			ev.MouseBtn = MouseBtnMiddle
		case 2:
			ev.MouseBtn = MouseBtnRight
		}

		switch {
		case isMotion && ev.MouseBtn != MouseBtnNone:
			ev.MouseAction = MouseActionDrag
		case isMotion:
			ev.MouseAction = MouseActionMove
		case release:
			ev.MouseAction = MouseActionRelease
		default:
			ev.MouseAction = MouseActionPress
		}
	}

	if code&4 != 0 {
		ev.Modifiers |= ModShift
	}
	if code&8 != 0 {
		ev.Modifiers |= ModAlt
	}
	if code&16 != 0 {
		ev.Modifiers |= ModCtrl
	}
	return ev
}
