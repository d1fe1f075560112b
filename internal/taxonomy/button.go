package taxonomy

import (
	"fmt"

	"github.com/DrStormWalker/comb/linux/evdev"
)

// Button is a closed enumeration of mouse/gamepad button symbols backed
// by the kernel's BTN_* event codes.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	ButtonSide
	ButtonExtra
	ButtonSouth
	ButtonEast
	ButtonNorth
	ButtonWest
	ButtonTL
	ButtonTR
	ButtonTL2
	ButtonTR2
	ButtonSelect
	ButtonStart
	ButtonMode
	ButtonThumbl
	ButtonThumbr
	ButtonDpadUp
	ButtonDpadDown
	ButtonDpadLeft
	ButtonDpadRight
)

var buttonStrings = map[Button]string{
	ButtonLeft: "left", ButtonRight: "right", ButtonMiddle: "middle",
	ButtonSide: "side", ButtonExtra: "extra",
	ButtonSouth: "south", ButtonEast: "east", ButtonNorth: "north",
	ButtonWest: "west",
	ButtonTL: "tl", ButtonTR: "tr", ButtonTL2: "tl2", ButtonTR2: "tr2",
	ButtonSelect: "select", ButtonStart: "start", ButtonMode: "mode",
	ButtonThumbl: "thumbl", ButtonThumbr: "thumbr",
	ButtonDpadUp: "dpad_up", ButtonDpadDown: "dpad_down",
	ButtonDpadLeft: "dpad_left", ButtonDpadRight: "dpad_right",
}

var buttonFromString map[string]Button

var buttonRawCodes = map[Button]evdev.Code{
	ButtonLeft: evdev.BTN_LEFT, ButtonRight: evdev.BTN_RIGHT,
	ButtonMiddle: evdev.BTN_MIDDLE, ButtonSide: evdev.BTN_SIDE,
	ButtonExtra: evdev.BTN_EXTRA,
	ButtonSouth: evdev.BTN_SOUTH, ButtonEast: evdev.BTN_EAST,
	ButtonNorth: evdev.BTN_NORTH, ButtonWest: evdev.BTN_WEST,
	ButtonTL: evdev.BTN_TL, ButtonTR: evdev.BTN_TR,
	ButtonTL2: evdev.BTN_TL2, ButtonTR2: evdev.BTN_TR2,
	ButtonSelect: evdev.BTN_SELECT, ButtonStart: evdev.BTN_START,
	ButtonMode: evdev.BTN_MODE,
	ButtonThumbl: evdev.BTN_THUMBL, ButtonThumbr: evdev.BTN_THUMBR,
	ButtonDpadUp: evdev.BTN_DPAD_UP, ButtonDpadDown: evdev.BTN_DPAD_DOWN,
	ButtonDpadLeft: evdev.BTN_DPAD_LEFT, ButtonDpadRight: evdev.BTN_DPAD_RIGHT,
}

var buttonFromRawCode map[evdev.Code]Button

func init() {
	buttonFromString = make(map[string]Button, len(buttonStrings))
	for button, s := range buttonStrings {
		buttonFromString[s] = button
	}

	buttonFromRawCode = make(map[evdev.Code]Button, len(buttonRawCodes))
	for button, code := range buttonRawCodes {
		buttonFromRawCode[code] = button
	}
}

// String returns the canonical lowercase slug for the button.
func (b Button) String() string {
	return b.AsStr()
}

// AsStr returns the canonical lowercase slug for the button.
func (b Button) AsStr() string {
	s, ok := buttonStrings[b]
	if !ok {
		return fmt.Sprintf("button(%d)", int(b))
	}

	return s
}

// ParseButton maps a canonical slug back to its Button, failing for
// unknown slugs.
func ParseButton(s string) (Button, error) {
	button, ok := buttonFromString[s]
	if !ok {
		return 0, fmt.Errorf("%w: button slug %q", ErrUnknownSymbol, s)
	}

	return button, nil
}

// ButtonFromRawCode maps the kernel's BTN_* event code to its Button,
// failing for codes not in the table.
func ButtonFromRawCode(code evdev.Code) (Button, error) {
	button, ok := buttonFromRawCode[code]
	if !ok {
		return 0, fmt.Errorf("%w: button code %d", ErrUnmappedCode, code)
	}

	return button, nil
}

// ToRawCode is the total inverse of ButtonFromRawCode over the
// successful subset.
func (b Button) ToRawCode() evdev.Code {
	return buttonRawCodes[b]
}
