// Package taxonomy provides the symbolic identifiers for keys, buttons,
// and relative/absolute axes, plus the string <-> symbol <-> raw-code
// conversions and the Input sum type that composes them.
package taxonomy

import (
	"fmt"

	"github.com/DrStormWalker/comb/linux/evdev"
)

// Key is a closed enumeration of keyboard key symbols backed by the
// kernel's KEY_* event codes.
type Key int

const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyEsc
	KeyTab
	KeyCapslock
	KeySpace
	KeyEnter
	KeyBackspace
	KeyMinus
	KeyEqual
	KeySemicolon
	KeyApostrophe
	KeyGrave
	KeyBackslash
	KeyComma
	KeyDot
	KeySlash
	KeyLeftctrl
	KeyRightctrl
	KeyLeftshift
	KeyRightshift
	KeyLeftalt
	KeyRightalt
	KeyLeftmeta
	KeyRightmeta
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageup
	KeyPagedown
	KeyInsert
	KeyDelete
	KeyMute
	KeyVolumedown
	KeyVolumeup
	KeyPlaypause
	KeyNextsong
	KeyPrevioussong
)

var keyStrings = map[Key]string{
	KeyA: "a", KeyB: "b", KeyC: "c", KeyD: "d", KeyE: "e", KeyF: "f",
	KeyG: "g", KeyH: "h", KeyI: "i", KeyJ: "j", KeyK: "k", KeyL: "l",
	KeyM: "m", KeyN: "n", KeyO: "o", KeyP: "p", KeyQ: "q", KeyR: "r",
	KeyS: "s", KeyT: "t", KeyU: "u", KeyV: "v", KeyW: "w", KeyX: "x",
	KeyY: "y", KeyZ: "z",
	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",
	KeyEsc: "esc", KeyTab: "tab", KeyCapslock: "capslock",
	KeySpace: "space", KeyEnter: "enter", KeyBackspace: "backspace",
	KeyMinus: "minus", KeyEqual: "equal", KeySemicolon: "semicolon",
	KeyApostrophe: "apostrophe", KeyGrave: "grave",
	KeyBackslash: "backslash", KeyComma: "comma", KeyDot: "dot",
	KeySlash: "slash",
	KeyLeftctrl: "leftctrl", KeyRightctrl: "rightctrl",
	KeyLeftshift: "leftshift", KeyRightshift: "rightshift",
	KeyLeftalt: "leftalt", KeyRightalt: "rightalt",
	KeyLeftmeta: "leftmeta", KeyRightmeta: "rightmeta",
	KeyF1: "f1", KeyF2: "f2", KeyF3: "f3", KeyF4: "f4", KeyF5: "f5",
	KeyF6: "f6", KeyF7: "f7", KeyF8: "f8", KeyF9: "f9", KeyF10: "f10",
	KeyF11: "f11", KeyF12: "f12",
	KeyUp: "up", KeyDown: "down", KeyLeft: "left", KeyRight: "right",
	KeyHome: "home", KeyEnd: "end", KeyPageup: "pageup",
	KeyPagedown: "pagedown", KeyInsert: "insert", KeyDelete: "delete",
	KeyMute: "mute", KeyVolumedown: "volumedown", KeyVolumeup: "volumeup",
	KeyPlaypause: "playpause", KeyNextsong: "nextsong",
	KeyPrevioussong: "previoussong",
}

var keyFromString map[string]Key

var keyRawCodes = map[Key]evdev.Code{
	KeyA: evdev.KEY_A, KeyB: evdev.KEY_B, KeyC: evdev.KEY_C,
	KeyD: evdev.KEY_D, KeyE: evdev.KEY_E, KeyF: evdev.KEY_F,
	KeyG: evdev.KEY_G, KeyH: evdev.KEY_H, KeyI: evdev.KEY_I,
	KeyJ: evdev.KEY_J, KeyK: evdev.KEY_K, KeyL: evdev.KEY_L,
	KeyM: evdev.KEY_M, KeyN: evdev.KEY_N, KeyO: evdev.KEY_O,
	KeyP: evdev.KEY_P, KeyQ: evdev.KEY_Q, KeyR: evdev.KEY_R,
	KeyS: evdev.KEY_S, KeyT: evdev.KEY_T, KeyU: evdev.KEY_U,
	KeyV: evdev.KEY_V, KeyW: evdev.KEY_W, KeyX: evdev.KEY_X,
	KeyY: evdev.KEY_Y, KeyZ: evdev.KEY_Z,
	Key0: evdev.KEY_0, Key1: evdev.KEY_1, Key2: evdev.KEY_2,
	Key3: evdev.KEY_3, Key4: evdev.KEY_4, Key5: evdev.KEY_5,
	Key6: evdev.KEY_6, Key7: evdev.KEY_7, Key8: evdev.KEY_8,
	Key9: evdev.KEY_9,
	KeyEsc: evdev.KEY_ESC, KeyTab: evdev.KEY_TAB,
	KeyCapslock: evdev.KEY_CAPSLOCK, KeySpace: evdev.KEY_SPACE,
	KeyEnter: evdev.KEY_ENTER, KeyBackspace: evdev.KEY_BACKSPACE,
	KeyMinus: evdev.KEY_MINUS, KeyEqual: evdev.KEY_EQUAL,
	KeySemicolon: evdev.KEY_SEMICOLON, KeyApostrophe: evdev.KEY_APOSTROPHE,
	KeyGrave: evdev.KEY_GRAVE, KeyBackslash: evdev.KEY_BACKSLASH,
	KeyComma: evdev.KEY_COMMA, KeyDot: evdev.KEY_DOT,
	KeySlash: evdev.KEY_SLASH,
	KeyLeftctrl: evdev.KEY_LEFTCTRL, KeyRightctrl: evdev.KEY_RIGHTCTRL,
	KeyLeftshift: evdev.KEY_LEFTSHIFT, KeyRightshift: evdev.KEY_RIGHTSHIFT,
	KeyLeftalt: evdev.KEY_LEFTALT, KeyRightalt: evdev.KEY_RIGHTALT,
	KeyLeftmeta: evdev.KEY_LEFTMETA, KeyRightmeta: evdev.KEY_RIGHTMETA,
	KeyF1: evdev.KEY_F1, KeyF2: evdev.KEY_F2, KeyF3: evdev.KEY_F3,
	KeyF4: evdev.KEY_F4, KeyF5: evdev.KEY_F5, KeyF6: evdev.KEY_F6,
	KeyF7: evdev.KEY_F7, KeyF8: evdev.KEY_F8, KeyF9: evdev.KEY_F9,
	KeyF10: evdev.KEY_F10, KeyF11: evdev.KEY_F11, KeyF12: evdev.KEY_F12,
	KeyUp: evdev.KEY_UP, KeyDown: evdev.KEY_DOWN, KeyLeft: evdev.KEY_LEFT,
	KeyRight: evdev.KEY_RIGHT, KeyHome: evdev.KEY_HOME, KeyEnd: evdev.KEY_END,
	KeyPageup: evdev.KEY_PAGEUP, KeyPagedown: evdev.KEY_PAGEDOWN,
	KeyInsert: evdev.KEY_INSERT, KeyDelete: evdev.KEY_DELETE,
	KeyMute: evdev.KEY_MUTE, KeyVolumedown: evdev.KEY_VOLUMEDOWN,
	KeyVolumeup: evdev.KEY_VOLUMEUP, KeyPlaypause: evdev.KEY_PLAYPAUSE,
	KeyNextsong: evdev.KEY_NEXTSONG, KeyPrevioussong: evdev.KEY_PREVIOUSSONG,
}

var keyFromRawCode map[evdev.Code]Key

func init() {
	keyFromString = make(map[string]Key, len(keyStrings))
	for key, s := range keyStrings {
		keyFromString[s] = key
	}

	keyFromRawCode = make(map[evdev.Code]Key, len(keyRawCodes))
	for key, code := range keyRawCodes {
		keyFromRawCode[code] = key
	}
}

// String returns the canonical lowercase slug for the key.
func (k Key) String() string {
	return k.AsStr()
}

// AsStr returns the canonical lowercase slug for the key.
func (k Key) AsStr() string {
	s, ok := keyStrings[k]
	if !ok {
		return fmt.Sprintf("key(%d)", int(k))
	}

	return s
}

// ParseKey maps a canonical slug back to its Key, failing for unknown slugs.
func ParseKey(s string) (Key, error) {
	key, ok := keyFromString[s]
	if !ok {
		return 0, fmt.Errorf("%w: key slug %q", ErrUnknownSymbol, s)
	}

	return key, nil
}

// KeyFromRawCode maps the kernel's KEY_* event code to its Key,
// failing for codes not in the table.
func KeyFromRawCode(code evdev.Code) (Key, error) {
	key, ok := keyFromRawCode[code]
	if !ok {
		return 0, fmt.Errorf("%w: key code %d", ErrUnmappedCode, code)
	}

	return key, nil
}

// ToRawCode is the total inverse of KeyFromRawCode over the successful
// subset: every Key produced by ParseKey/KeyFromRawCode has a raw code.
func (k Key) ToRawCode() evdev.Code {
	return keyRawCodes[k]
}
