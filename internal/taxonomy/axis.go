package taxonomy

import (
	"fmt"

	"github.com/DrStormWalker/comb/linux/evdev"
)

// RelAxis is a closed enumeration of relative-motion axis symbols
// backed by the kernel's REL_* event codes.
type RelAxis int

const (
	RelAxisX RelAxis = iota
	RelAxisY
	RelAxisZ
	RelAxisRX
	RelAxisRY
	RelAxisRZ
	RelAxisHWheel
	RelAxisDial
	RelAxisWheel
	RelAxisMisc
)

var relAxisStrings = map[RelAxis]string{
	RelAxisX: "x", RelAxisY: "y", RelAxisZ: "z",
	RelAxisRX: "rx", RelAxisRY: "ry", RelAxisRZ: "rz",
	RelAxisHWheel: "hwheel", RelAxisDial: "dial",
	RelAxisWheel: "wheel", RelAxisMisc: "misc",
}

var relAxisFromString map[string]RelAxis

var relAxisRawCodes = map[RelAxis]evdev.Code{
	RelAxisX: evdev.REL_X, RelAxisY: evdev.REL_Y, RelAxisZ: evdev.REL_Z,
	RelAxisRX: evdev.REL_RX, RelAxisRY: evdev.REL_RY, RelAxisRZ: evdev.REL_RZ,
	RelAxisHWheel: evdev.REL_HWHEEL, RelAxisDial: evdev.REL_DIAL,
	RelAxisWheel: evdev.REL_WHEEL, RelAxisMisc: evdev.REL_MISC,
}

var relAxisFromRawCode map[evdev.Code]RelAxis

func init() {
	relAxisFromString = make(map[string]RelAxis, len(relAxisStrings))
	for axis, s := range relAxisStrings {
		relAxisFromString[s] = axis
	}

	relAxisFromRawCode = make(map[evdev.Code]RelAxis, len(relAxisRawCodes))
	for axis, code := range relAxisRawCodes {
		relAxisFromRawCode[code] = axis
	}
}

// String returns the canonical lowercase slug for the axis.
func (a RelAxis) String() string {
	return a.AsStr()
}

// AsStr returns the canonical lowercase slug for the axis.
func (a RelAxis) AsStr() string {
	s, ok := relAxisStrings[a]
	if !ok {
		return fmt.Sprintf("rel_axis(%d)", int(a))
	}

	return s
}

// ParseRelAxis maps a canonical slug back to its RelAxis, failing for
// unknown slugs.
func ParseRelAxis(s string) (RelAxis, error) {
	axis, ok := relAxisFromString[s]
	if !ok {
		return 0, fmt.Errorf("%w: rel_axis slug %q", ErrUnknownSymbol, s)
	}

	return axis, nil
}

// RelAxisFromRawCode maps the kernel's REL_* event code to its RelAxis,
// failing for codes not in the table.
func RelAxisFromRawCode(code evdev.Code) (RelAxis, error) {
	axis, ok := relAxisFromRawCode[code]
	if !ok {
		return 0, fmt.Errorf("%w: rel_axis code %d", ErrUnmappedCode, code)
	}

	return axis, nil
}

// ToRawCode is the total inverse of RelAxisFromRawCode over the
// successful subset.
func (a RelAxis) ToRawCode() evdev.Code {
	return relAxisRawCodes[a]
}

// AbsAxis is a closed enumeration of absolute-position axis symbols
// backed by the kernel's ABS_* event codes.
type AbsAxis int

const (
	AbsAxisX AbsAxis = iota
	AbsAxisY
	AbsAxisZ
	AbsAxisRX
	AbsAxisRY
	AbsAxisRZ
	AbsAxisThrottle
	AbsAxisRudder
	AbsAxisWheel
	AbsAxisGas
	AbsAxisBrake
	AbsAxisHat0X
	AbsAxisHat0Y
)

var absAxisStrings = map[AbsAxis]string{
	AbsAxisX: "x", AbsAxisY: "y", AbsAxisZ: "z",
	AbsAxisRX: "rx", AbsAxisRY: "ry", AbsAxisRZ: "rz",
	AbsAxisThrottle: "throttle", AbsAxisRudder: "rudder",
	AbsAxisWheel: "wheel", AbsAxisGas: "gas", AbsAxisBrake: "brake",
	AbsAxisHat0X: "hat0x", AbsAxisHat0Y: "hat0y",
}

var absAxisFromString map[string]AbsAxis

var absAxisRawCodes = map[AbsAxis]evdev.Code{
	AbsAxisX: evdev.ABS_X, AbsAxisY: evdev.ABS_Y, AbsAxisZ: evdev.ABS_Z,
	AbsAxisRX: evdev.ABS_RX, AbsAxisRY: evdev.ABS_RY, AbsAxisRZ: evdev.ABS_RZ,
	AbsAxisThrottle: evdev.ABS_THROTTLE, AbsAxisRudder: evdev.ABS_RUDDER,
	AbsAxisWheel: evdev.ABS_WHEEL, AbsAxisGas: evdev.ABS_GAS,
	AbsAxisBrake: evdev.ABS_BRAKE,
	AbsAxisHat0X: evdev.ABS_HAT0X, AbsAxisHat0Y: evdev.ABS_HAT0Y,
}

var absAxisFromRawCode map[evdev.Code]AbsAxis

func init() {
	absAxisFromString = make(map[string]AbsAxis, len(absAxisStrings))
	for axis, s := range absAxisStrings {
		absAxisFromString[s] = axis
	}

	absAxisFromRawCode = make(map[evdev.Code]AbsAxis, len(absAxisRawCodes))
	for axis, code := range absAxisRawCodes {
		absAxisFromRawCode[code] = axis
	}
}

// String returns the canonical lowercase slug for the axis.
func (a AbsAxis) String() string {
	return a.AsStr()
}

// AsStr returns the canonical lowercase slug for the axis.
func (a AbsAxis) AsStr() string {
	s, ok := absAxisStrings[a]
	if !ok {
		return fmt.Sprintf("abs_axis(%d)", int(a))
	}

	return s
}

// ParseAbsAxis maps a canonical slug back to its AbsAxis, failing for
// unknown slugs.
func ParseAbsAxis(s string) (AbsAxis, error) {
	axis, ok := absAxisFromString[s]
	if !ok {
		return 0, fmt.Errorf("%w: abs_axis slug %q", ErrUnknownSymbol, s)
	}

	return axis, nil
}

// AbsAxisFromRawCode maps the kernel's ABS_* event code to its AbsAxis,
// failing for codes not in the table.
func AbsAxisFromRawCode(code evdev.Code) (AbsAxis, error) {
	axis, ok := absAxisFromRawCode[code]
	if !ok {
		return 0, fmt.Errorf("%w: abs_axis code %d", ErrUnmappedCode, code)
	}

	return axis, nil
}

// ToRawCode is the total inverse of AbsAxisFromRawCode over the
// successful subset.
func (a AbsAxis) ToRawCode() evdev.Code {
	return absAxisRawCodes[a]
}
