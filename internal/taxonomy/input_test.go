package taxonomy

import "testing"

func allInputs() []Input {
	inputs := make([]Input, 0, len(keyStrings)+len(buttonStrings)+len(relAxisStrings)+len(absAxisStrings))

	for key := range keyStrings {
		inputs = append(inputs, NewKeyInput(key))
	}

	for button := range buttonStrings {
		inputs = append(inputs, NewButtonInput(button))
	}

	for axis := range relAxisStrings {
		inputs = append(inputs, NewRelAxisInput(axis))
	}

	for axis := range absAxisStrings {
		inputs = append(inputs, NewAbsAxisInput(axis))
	}

	return inputs
}

func TestInputStringRoundTrip(t *testing.T) {
	for _, in := range allInputs() {
		s := in.String()

		got, err := ParseInput(s)
		if err != nil {
			t.Fatalf("ParseInput(%q) failed: %v", s, err)
		}

		if got != in {
			t.Errorf("ParseInput(String(%v)) = %v, want %v", in, got, in)
		}

		if got.String() != s {
			t.Errorf("String(ParseInput(%q)) = %q, want %q", s, got.String(), s)
		}
	}
}

func TestKeyRawCodeRoundTrip(t *testing.T) {
	for key := range keyStrings {
		code := key.ToRawCode()

		got, err := KeyFromRawCode(code)
		if err != nil {
			t.Fatalf("KeyFromRawCode(%d) failed: %v", code, err)
		}

		if got != key {
			t.Errorf("KeyFromRawCode(ToRawCode(%v)) = %v, want %v", key, got, key)
		}
	}
}

func TestButtonRawCodeRoundTrip(t *testing.T) {
	for button := range buttonStrings {
		code := button.ToRawCode()

		got, err := ButtonFromRawCode(code)
		if err != nil {
			t.Fatalf("ButtonFromRawCode(%d) failed: %v", code, err)
		}

		if got != button {
			t.Errorf("ButtonFromRawCode(ToRawCode(%v)) = %v, want %v", button, got, button)
		}
	}
}

func TestRelAxisRawCodeRoundTrip(t *testing.T) {
	for axis := range relAxisStrings {
		code := axis.ToRawCode()

		got, err := RelAxisFromRawCode(code)
		if err != nil {
			t.Fatalf("RelAxisFromRawCode(%d) failed: %v", code, err)
		}

		if got != axis {
			t.Errorf("RelAxisFromRawCode(ToRawCode(%v)) = %v, want %v", axis, got, axis)
		}
	}
}

func TestAbsAxisRawCodeRoundTrip(t *testing.T) {
	for axis := range absAxisStrings {
		code := axis.ToRawCode()

		got, err := AbsAxisFromRawCode(code)
		if err != nil {
			t.Fatalf("AbsAxisFromRawCode(%d) failed: %v", code, err)
		}

		if got != axis {
			t.Errorf("AbsAxisFromRawCode(ToRawCode(%v)) = %v, want %v", axis, got, axis)
		}
	}
}

func TestParseInputGrammarRejection(t *testing.T) {
	bad := []string{"key:z:", "key:", ":a", "mouse:a"}

	for _, s := range bad {
		if _, err := ParseInput(s); err == nil {
			t.Errorf("ParseInput(%q) succeeded, want error", s)
		}
	}
}

func TestInputIsToggle(t *testing.T) {
	cases := []struct {
		in   Input
		want bool
	}{
		{NewKeyInput(KeyA), true},
		{NewButtonInput(ButtonSouth), true},
		{NewRelAxisInput(RelAxisWheel), false},
		{NewAbsAxisInput(AbsAxisX), false},
	}

	for _, c := range cases {
		if got := c.in.IsToggle(); got != c.want {
			t.Errorf("Input(%v).IsToggle() = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestInputFromRawKeyTriesKeyThenButton(t *testing.T) {
	in, err := InputFromRawKey(KeyA.ToRawCode())
	if err != nil {
		t.Fatalf("InputFromRawKey: %v", err)
	}

	if in.Kind != InputKindKey || in.Key != KeyA {
		t.Errorf("InputFromRawKey(KEY_A) = %v, want key:a", in)
	}

	in, err = InputFromRawKey(ButtonSouth.ToRawCode())
	if err != nil {
		t.Fatalf("InputFromRawKey: %v", err)
	}

	if in.Kind != InputKindButton || in.Button != ButtonSouth {
		t.Errorf("InputFromRawKey(BTN_SOUTH) = %v, want btn:south", in)
	}
}

func TestInputEventFromRawKey(t *testing.T) {
	event, err := InputEventFromRawKey(KeyCapslock.ToRawCode(), 1)
	if err != nil {
		t.Fatalf("InputEventFromRawKey: %v", err)
	}

	state, err := event.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}

	if state != Pressed {
		t.Errorf("State() = %v, want Pressed", state)
	}

	if _, err := InputEventFromRawKey(KeyCapslock.ToRawCode(), 9); err == nil {
		t.Error("InputEventFromRawKey with invalid value succeeded, want error")
	}
}
