//go:build linux

package uinput

import (
	"fmt"
	"os"
	"time"

	"github.com/DrStormWalker/comb/linux/evdev"
	"github.com/DrStormWalker/comb/linux/ioctl"
	"golang.org/x/sys/unix"
)

// deviceName is the advertised name of comb's virtual output device.
const deviceName = "CoMB Virtual Device"

// Device is an owning wrapper around an open /dev/uinput handle. Its
// capability set (the EV_*/KEY_*/REL_*/ABS_* bits enabled before
// UI_DEV_CREATE) is fixed for the lifetime of a Device: once a kernel
// device is created its advertised capabilities cannot change, so
// growing the set requires a fresh New with the superset and a Close of
// the old Device (see internal/action's capability-rebuild logic).
type Device struct {
	file *os.File
	fd   uintptr
}

// New opens /dev/uinput, enables every event type/code pair in codes,
// and creates the device. codes pairs an evdev.EventType with every
// evdev.Code that type should advertise (e.g. EV_KEY with every KEY_*
// used by a Bind target).
func New(codes map[evdev.EventType][]evdev.Code) (*Device, error) {
	file, err := os.OpenFile("/dev/uinput", os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("uinput.New: %w", err)
	}

	dev := &Device{file: file, fd: file.Fd()}

	if err := dev.setEVBit(evdev.EV_SYN); err != nil {
		dev.file.Close()
		return nil, err
	}

	for evType, evCodes := range codes {
		if err := dev.setEVBit(evType); err != nil {
			dev.file.Close()
			return nil, err
		}

		for _, code := range evCodes {
			if err := dev.setCodeBit(evType, code); err != nil {
				dev.file.Close()
				return nil, err
			}
		}
	}

	if err := dev.create(); err != nil {
		dev.file.Close()
		return nil, err
	}

	return dev, nil
}

func (dev *Device) setEVBit(evType evdev.EventType) error {
	bit := int(evType)

	if err := unix.IoctlSetInt(int(dev.fd), uiSetEVBit, bit); err != nil {
		return fmt.Errorf("uinput.Device: UI_SET_EVBIT(%d): %w", evType, err)
	}

	return nil
}

func (dev *Device) setCodeBit(evType evdev.EventType, code evdev.Code) error {
	bit := int(code)

	var req uint

	switch evType {
	case evdev.EV_KEY:
		req = uiSetKeyBit
	case evdev.EV_REL:
		req = uiSetRelBit
	case evdev.EV_ABS:
		req = uiSetAbsBit
	default:
		return nil
	}

	if err := unix.IoctlSetInt(int(dev.fd), req, bit); err != nil {
		return fmt.Errorf("uinput.Device: set code bit %d/%d: %w", evType, code, err)
	}

	return nil
}

func (dev *Device) create() error {
	var s setup

	s.ID.BusType = busVirtual
	s.ID.Vendor = 0x1
	s.ID.Product = 0x1
	s.ID.Version = 1
	copy(s.Name[:], deviceName)

	if err := ioctl.Any(dev.fd, uiDevSetup, &s); err != nil {
		return fmt.Errorf("uinput.Device: UI_DEV_SETUP: %w", err)
	}

	if err := ioctl.Any[int](dev.fd, uiDevCreate, nil); err != nil {
		return fmt.Errorf("uinput.Device: UI_DEV_CREATE: %w", err)
	}

	return nil
}

// Write emits a single raw kernel input_event.
func (dev *Device) Write(evType evdev.EventType, code evdev.Code, value int32) error {
	now := time.Now()

	buf := evdev.EncodeEvent(evdev.Event{
		Sec:   uint64(now.Unix()),
		Usec:  uint64(now.Nanosecond() / 1000),
		Type:  uint16(evType),
		Code:  uint16(code),
		Value: value,
	})

	if _, err := dev.file.Write(buf[:]); err != nil {
		return fmt.Errorf("uinput.Device.Write: %w", err)
	}

	return nil
}

// Sync emits a SYN_REPORT, flushing any events written since the
// previous sync into a single atomic input report.
func (dev *Device) Sync() error {
	return dev.Write(evdev.EV_SYN, evdev.SYN_REPORT, 0)
}

// Close destroys the virtual device and closes the uinput handle.
func (dev *Device) Close() error {
	if err := ioctl.Any[int](dev.fd, uiDevDestroy, nil); err != nil {
		dev.file.Close()
		return fmt.Errorf("uinput.Device.Close: UI_DEV_DESTROY: %w", err)
	}

	if err := dev.file.Close(); err != nil {
		return fmt.Errorf("uinput.Device.Close: %w", err)
	}

	return nil
}
