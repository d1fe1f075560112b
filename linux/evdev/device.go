//go:build linux

package evdev

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DrStormWalker/comb/linux/ioctl"
	"golang.org/x/sys/unix"
)

// Device represents an evdev input device. It wraps the opened
// /dev/input/eventN file.
type Device struct {
	file *os.File
	fd   uintptr
	path string
}

// Open opens the evdev device at the given path and returns a Device.
// The path is cleaned before opening, and the device file is opened
// in read-write mode, so opening fails unless the caller has both read
// and write permission on the node, even when it only reads events.
// The caller is responsible for closing the device when no longer needed.
func Open(path string) (*Device, error) {
	var (
		device *Device
		file   *os.File
		err    error
	)

	path = filepath.Clean(path)

	file, err = os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("evdev.Open: %w", err)
	}

	device = &Device{
		file: file,
		fd:   file.Fd(),
		path: path,
	}

	return device, nil
}

// Devices scans /dev/input for event devices, opens each one, and
// returns a slice of Device pointers. If any device fails to open,
// an error is returned and no devices are returned.
func Devices() ([]*Device, error) {
	var (
		devices []*Device
		device  *Device
		paths   []string
		path    string
		err     error
	)

	paths, err = filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("evdev.Devices: %w", err)
	}

	devices = make([]*Device, 0, len(paths))
	for _, path = range paths {
		device, err = Open(path)
		if err != nil {
			return nil, fmt.Errorf("evdev.Devices: %w", err)
		}

		devices = append(devices, device)
	}

	return devices, nil
}

// Path returns the /dev/input/eventN path the device was opened from.
func (dev *Device) Path() string {
	return dev.path
}

// Fd returns the underlying file descriptor, for use with a poller.
func (dev *Device) Fd() uintptr {
	return dev.fd
}

// Name returns the human-readable name of the evdev device.
// It sends the EVIOCGNAME ioctl to read up to 256 bytes and
// converts the null-terminated result into a Go string.
func (dev *Device) Name() (string, error) {
	var (
		buf []byte
		err error
	)

	buf = make([]byte, 256)

	err = ioctl.Any(dev.fd, EVIOCGNAME(256), &buf[0])
	if err != nil {
		return "", fmt.Errorf("Device.Name: %w", err)
	}

	return unix.ByteSliceToString(buf), nil
}

// UniqueName returns the device's EVIOCGUNIQ string, which is often
// empty: most evdev drivers never populate it, so callers should treat
// an empty result as "not available" rather than an error.
func (dev *Device) UniqueName() (string, error) {
	var (
		buf []byte
		err error
	)

	buf = make([]byte, 256)

	err = ioctl.Any(dev.fd, EVIOCGUNIQ(256), &buf[0])
	if err != nil {
		return "", fmt.Errorf("Device.UniqueName: %w", err)
	}

	return unix.ByteSliceToString(buf), nil
}

// SetNonblock switches the device's file descriptor into or out of
// non-blocking mode, required before registering it with the
// multiplexer's epoll instance.
func (dev *Device) SetNonblock(nonblocking bool) error {
	if err := unix.SetNonblock(int(dev.fd), nonblocking); err != nil {
		return fmt.Errorf("Device.SetNonblock: %w", err)
	}

	return nil
}

// ID returns the bus/vendor/product/version identifier for this evdev
// device by issuing the EVIOCGID ioctl.
func (dev *Device) ID() (ID, error) {
	var (
		id  ID
		err error
	)

	err = ioctl.Any(dev.fd, EVIOCGID, &id)
	if err != nil {
		return ID{}, fmt.Errorf("Device.ID: %w", err)
	}

	return id, nil
}

// EventTypes returns the set of EV_* event types the device supports,
// excluding EV_REP which is a settings namespace rather than an event
// stream.
func (dev *Device) EventTypes() ([]EventType, error) {
	var (
		buf    []byte
		types  []EventType
		evType EventType
		err    error
	)

	buf = make([]byte, (EV_MAX+7)/8)

	err = ioctl.Any(dev.fd, EVIOCGBIT(0, uint(len(buf))), &buf[0])
	if err != nil {
		return nil, fmt.Errorf("Device.EventTypes: %w", err)
	}

	types = make([]EventType, 0, EV_CNT)

	for evType = range EventType(EV_CNT) {
		if !TestBit(buf, uint(evType)) {
			continue
		}

		if evType == EV_REP {
			continue
		}

		types = append(types, evType)
	}

	return types, nil
}

// Codes returns all supported codes for the given event type (for
// example, every KEY_*/BTN_* code set when eventType is EV_KEY).
func (dev *Device) Codes(eventType EventType) ([]Code, error) {
	var (
		buf            []byte
		codes          []Code
		maxCodes, code uint
		ok             bool
		err            error
	)

	maxCodes, ok = MaxCodes(eventType)
	if !ok {
		return nil, fmt.Errorf("Device.Codes: %w %d", ErrInvalidEventType, eventType)
	}

	buf = make([]byte, (maxCodes+7)/8)

	err = ioctl.Any(dev.fd, EVIOCGBIT(uint(eventType), uint(len(buf))), &buf[0])
	if err != nil {
		return nil, fmt.Errorf("Device.Codes: %w", err)
	}

	codes = make([]Code, 0, maxCodes+1)

	for code = range maxCodes + 1 {
		if !TestBit(buf, code) {
			continue
		}

		codes = append(codes, Code(code))
	}

	return codes, nil
}

// Grab acquires exclusive access to the device via EVIOCGRAB, preventing
// other processes (and the X/Wayland input stack) from also receiving
// its events while remapping is active.
func (dev *Device) Grab() error {
	var (
		one int32 = 1
		err error
	)

	err = ioctl.Any(dev.fd, EVIOCGRAB(), &one)
	if err != nil {
		return fmt.Errorf("Device.Grab: %w", err)
	}

	return nil
}

// Ungrab releases exclusive access previously acquired with Grab.
func (dev *Device) Ungrab() error {
	var err error

	// EVIOCGRAB reads its argument by value: a nil pointer passes 0,
	// which releases the grab.
	err = ioctl.Any[int32](dev.fd, EVIOCGRAB(), nil)
	if err != nil {
		return fmt.Errorf("Device.Ungrab: %w", err)
	}

	return nil
}

// Read reads a single raw kernel input_event struct from the device.
// It blocks until an event is available or the file is closed; callers
// that need non-blocking, multiplexed reads should instead register
// Fd() with a poller and call Read only once readiness is signaled.
func (dev *Device) Read() (Event, error) {
	var (
		event Event
		buf   [24]byte
		n     int
		err   error
	)

	n, err = dev.file.Read(buf[:])
	if err != nil {
		return Event{}, fmt.Errorf("Device.Read: %w", err)
	}

	if n != len(buf) {
		return Event{}, fmt.Errorf("Device.Read: short read of %d bytes", n)
	}

	event = decodeEvent(buf)

	return event, nil
}

// Close closes the evdev device by closing its underlying file handle.
func (dev *Device) Close() error {
	var err error

	err = dev.file.Close()
	if err != nil {
		return fmt.Errorf("Device.Close: %w", err)
	}

	return nil
}
