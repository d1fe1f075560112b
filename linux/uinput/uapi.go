//go:build linux

// Package uinput implements the subset of the Linux uinput userspace
// API (<linux/uinput.h>) needed to create and drive a virtual input
// device: UI_SET_EVBIT/UI_SET_KEYBIT/UI_SET_RELBIT capability
// declarations, UI_DEV_SETUP/UI_DEV_CREATE/UI_DEV_DESTROY device
// lifecycle, and raw input_event writes. Grounded on
// other_examples/197b3b42_bnema-uinputd-go's Device (UI_DEV_SETUP via
// a uinput_setup struct, UI_SET_EVBIT/UI_SET_KEYBIT loops) and
// other_examples/a53c024a_miken90-fkey's UInputDevice (raw
// input_event writes via syscall.Write), reworked onto the generic
// ioctl helpers from linux/ioctl the way linux/evdev does.
package uinput

import (
	"github.com/DrStormWalker/comb/linux/ioctl"
)

// Device setup limits from <linux/uinput.h>.
const (
	maxNameSize = 80
)

// Bus types from <linux/input.h>, reused here so a virtual device can
// advertise BUS_VIRTUAL instead of spoofing real hardware.
const (
	busVirtual = 0x06
)

// setup mirrors struct uinput_setup.
type setup struct {
	ID struct {
		BusType uint16
		Vendor  uint16
		Product uint16
		Version uint16
	}
	Name         [maxNameSize]byte
	FFEffectsMax uint32
}

// uinput's magic ioctl type, 'U' in struct ioctl encoding.
const uinputMagic = 'U'

// UI_SET_EVBIT/UI_SET_KEYBIT/UI_SET_RELBIT/UI_SET_ABSBIT each take an
// int argument naming the bit to enable and carry no structured
// payload beyond that int, matching <linux/uinput.h>'s legacy
// (non-setup) ioctl encodings.
var (
	uiSetEVBit  = ioctl.IOW(uinputMagic, 100, int(0))
	uiSetKeyBit = ioctl.IOW(uinputMagic, 101, int(0))
	uiSetRelBit = ioctl.IOW(uinputMagic, 102, int(0))
	uiSetAbsBit = ioctl.IOW(uinputMagic, 103, int(0))
)

// UI_DEV_SETUP/UI_DEV_CREATE/UI_DEV_DESTROY are the device lifecycle
// ioctls.
var (
	uiDevSetup   = ioctl.IOW(uinputMagic, 3, setup{})
	uiDevCreate  = ioctl.IO(uinputMagic, 1)
	uiDevDestroy = ioctl.IO(uinputMagic, 2)
)
