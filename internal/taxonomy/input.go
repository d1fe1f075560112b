package taxonomy

import (
	"fmt"
	"strings"

	"github.com/DrStormWalker/comb/linux/evdev"
)

// Input is a tagged symbol identifying one input signal: exactly one of
// Key, Button, RelAxis, or AbsAxis is meaningful, selected by Kind. This
// mirrors the closed sum type of spec.md's Input in Go's idiom of a
// small tagged struct rather than a class hierarchy or interface, so
// callers can switch on Kind exhaustively without a type assertion.
type Input struct {
	Kind     InputKind
	Key      Key
	Button   Button
	RelAxis  RelAxis
	AbsAxis  AbsAxis
}

// InputKind tags which variant of Input is populated.
type InputKind int

const (
	InputKindKey InputKind = iota
	InputKindButton
	InputKindRelAxis
	InputKindAbsAxis
)

// NewKeyInput builds an Input selecting the key variant.
func NewKeyInput(key Key) Input {
	return Input{Kind: InputKindKey, Key: key}
}

// NewButtonInput builds an Input selecting the button variant.
func NewButtonInput(button Button) Input {
	return Input{Kind: InputKindButton, Button: button}
}

// NewRelAxisInput builds an Input selecting the relative-axis variant.
func NewRelAxisInput(axis RelAxis) Input {
	return Input{Kind: InputKindRelAxis, RelAxis: axis}
}

// NewAbsAxisInput builds an Input selecting the absolute-axis variant.
func NewAbsAxisInput(axis AbsAxis) Input {
	return Input{Kind: InputKindAbsAxis, AbsAxis: axis}
}

// IsToggle is true for key and button variants, false for axis variants.
func (in Input) IsToggle() bool {
	switch in.Kind {
	case InputKindKey, InputKindButton:
		return true
	default:
		return false
	}
}

// String returns the canonical "<class>:<name>" form.
func (in Input) String() string {
	switch in.Kind {
	case InputKindKey:
		return "key:" + in.Key.AsStr()
	case InputKindButton:
		return "btn:" + in.Button.AsStr()
	case InputKindRelAxis:
		return "rel_axis:" + in.RelAxis.AsStr()
	case InputKindAbsAxis:
		return "abs_axis:" + in.AbsAxis.AsStr()
	default:
		return "invalid_input"
	}
}

// ParseInput parses the "<class>:<name>" grammar, class in
// {key, btn, rel_axis, abs_axis}. It splits on the first ':' and rejects
// any trailing ':' (exactly one separator) or an empty class/name.
func ParseInput(s string) (Input, error) {
	class, name, ok := strings.Cut(s, ":")
	if !ok {
		return Input{}, fmt.Errorf("%w: %q: missing ':'", ErrBadGrammar, s)
	}

	if class == "" || name == "" {
		return Input{}, fmt.Errorf("%w: %q: empty class or name", ErrBadGrammar, s)
	}

	if strings.Contains(name, ":") {
		return Input{}, fmt.Errorf("%w: %q: trailing ':'", ErrBadGrammar, s)
	}

	switch class {
	case "key":
		key, err := ParseKey(name)
		if err != nil {
			return Input{}, fmt.Errorf("taxonomy.ParseInput: %w", err)
		}

		return NewKeyInput(key), nil
	case "btn":
		button, err := ParseButton(name)
		if err != nil {
			return Input{}, fmt.Errorf("taxonomy.ParseInput: %w", err)
		}

		return NewButtonInput(button), nil
	case "rel_axis":
		axis, err := ParseRelAxis(name)
		if err != nil {
			return Input{}, fmt.Errorf("taxonomy.ParseInput: %w", err)
		}

		return NewRelAxisInput(axis), nil
	case "abs_axis":
		axis, err := ParseAbsAxis(name)
		if err != nil {
			return Input{}, fmt.Errorf("taxonomy.ParseInput: %w", err)
		}

		return NewAbsAxisInput(axis), nil
	default:
		return Input{}, fmt.Errorf("%w: %q: unknown class %q", ErrBadGrammar, s, class)
	}
}

// InputFromRawKey decodes a raw EV_KEY code into an Input, trying the
// key enum first, then the button enum; a code mapped by neither
// returns ErrUnmappedCode.
func InputFromRawKey(code evdev.Code) (Input, error) {
	if key, err := KeyFromRawCode(code); err == nil {
		return NewKeyInput(key), nil
	}

	if button, err := ButtonFromRawCode(code); err == nil {
		return NewButtonInput(button), nil
	}

	return Input{}, fmt.Errorf("taxonomy.InputFromRawKey: %w: code %d", ErrUnmappedCode, code)
}

// RawCode returns the kernel event code and EV_* event type for the
// Input, for synthesising raw events on the virtual output device.
func (in Input) RawCode() (eventType evdev.EventType, code evdev.Code) {
	switch in.Kind {
	case InputKindKey:
		return evdev.EV_KEY, in.Key.ToRawCode()
	case InputKindButton:
		return evdev.EV_KEY, in.Button.ToRawCode()
	case InputKindRelAxis:
		return evdev.EV_REL, in.RelAxis.ToRawCode()
	case InputKindAbsAxis:
		return evdev.EV_ABS, in.AbsAxis.ToRawCode()
	default:
		return 0, 0
	}
}

// InputState is the decoded value of a toggle (key/button) input.
type InputState int32

const (
	Released InputState = 0
	Pressed  InputState = 1
	Repeated InputState = 2
)

// String returns "released", "pressed", or "repeated".
func (s InputState) String() string {
	switch s {
	case Released:
		return "released"
	case Pressed:
		return "pressed"
	case Repeated:
		return "repeated"
	default:
		return fmt.Sprintf("input_state(%d)", int32(s))
	}
}

// InputStateFromRaw decodes a raw EV_KEY value (0, 1, 2) into an
// InputState, failing for any other value.
func InputStateFromRaw(value int32) (InputState, error) {
	switch value {
	case 0:
		return Released, nil
	case 1:
		return Pressed, nil
	case 2:
		return Repeated, nil
	default:
		return 0, fmt.Errorf("%w: input state value %d", ErrUnmappedCode, value)
	}
}

// ParseInputState parses "released"/"pressed"/"repeated" into an
// InputState.
func ParseInputState(s string) (InputState, error) {
	switch s {
	case "released":
		return Released, nil
	case "pressed":
		return Pressed, nil
	case "repeated":
		return Repeated, nil
	default:
		return 0, fmt.Errorf("%w: input state slug %q", ErrUnknownSymbol, s)
	}
}

// InputEvent pairs an Input with its current instantaneous value: for
// keys/buttons, Value mirrors the raw InputState (0/1/2); for axes it
// is the signed axis reading.
type InputEvent struct {
	Input Input
	Value int32
}

// State decodes Value as an InputState; only meaningful when
// Input.IsToggle() is true.
func (e InputEvent) State() (InputState, error) {
	return InputStateFromRaw(e.Value)
}

// InputEventFromRawKey pairs the decoded symbol with the decoded
// InputState, failing if either subdecode fails.
func InputEventFromRawKey(code evdev.Code, value int32) (InputEvent, error) {
	input, err := InputFromRawKey(code)
	if err != nil {
		return InputEvent{}, fmt.Errorf("taxonomy.InputEventFromRawKey: %w", err)
	}

	_, err = InputStateFromRaw(value)
	if err != nil {
		return InputEvent{}, fmt.Errorf("taxonomy.InputEventFromRawKey: %w", err)
	}

	return InputEvent{Input: input, Value: value}, nil
}

// InputEventFromRaw decodes a raw kernel (type, code, value) triple
// into an InputEvent for EV_KEY, EV_REL, and EV_ABS event types; any
// other event type, or an unmapped code, fails.
func InputEventFromRaw(eventType evdev.EventType, code evdev.Code, value int32) (InputEvent, error) {
	switch eventType {
	case evdev.EV_KEY:
		return InputEventFromRawKey(code, value)
	case evdev.EV_REL:
		axis, err := RelAxisFromRawCode(code)
		if err != nil {
			return InputEvent{}, fmt.Errorf("taxonomy.InputEventFromRaw: %w", err)
		}

		return InputEvent{Input: NewRelAxisInput(axis), Value: value}, nil
	case evdev.EV_ABS:
		axis, err := AbsAxisFromRawCode(code)
		if err != nil {
			return InputEvent{}, fmt.Errorf("taxonomy.InputEventFromRaw: %w", err)
		}

		return InputEvent{Input: NewAbsAxisInput(axis), Value: value}, nil
	default:
		return InputEvent{}, fmt.Errorf("taxonomy.InputEventFromRaw: %w: event type %d", ErrUnmappedCode, eventType)
	}
}
