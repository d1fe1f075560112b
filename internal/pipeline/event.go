// Package pipeline implements the single ordered event channel (C7)
// that every producer (C3, C5, C6) feeds and the dispatcher (C8)
// drains. Event is a closed sum type, selected by Kind, following the
// same tagged-struct idiom as internal/taxonomy's Input rather than an
// interface hierarchy.
package pipeline

import (
	"time"

	"github.com/DrStormWalker/comb/internal/taxonomy"
)

// Kind selects which variant of Event is populated.
type Kind int

const (
	KindConfigWatch Kind = iota
	KindDeviceWatch
	KindDeviceEvent
	KindDeviceInput
)

// DeviceEvent carries a raw, non-synthetic evdev event: every emitted
// event that isn't SYN_* or MSC_SCAN. RawKind/RawCode are the kernel
// type/code pair, decoded (when possible) into DeviceInput's Input
// taxonomy by the multiplexer.
type DeviceEvent struct {
	DeviceID  string
	Timestamp time.Time
	RawKind   uint16
	RawCode   uint16
	Value     int32
}

// DeviceInput pairs a decoded taxonomy.InputEvent with the device and
// timestamp it arrived on. Emitted strictly after the DeviceEvent with
// the same DeviceID/Timestamp that produced it.
type DeviceInput struct {
	DeviceID  string
	Timestamp time.Time
	Input     taxonomy.InputEvent
}

// Event is the pipeline's closed sum type.
type Event struct {
	Kind Kind

	// KindConfigWatch
	ConfigPath string

	// KindDeviceWatch
	Added   []string
	Removed []string

	// KindDeviceEvent
	DeviceEvent DeviceEvent

	// KindDeviceInput
	DeviceInput DeviceInput
}

// NewConfigWatchEvent builds a KindConfigWatch Event.
func NewConfigWatchEvent(path string) Event {
	return Event{Kind: KindConfigWatch, ConfigPath: path}
}

// NewDeviceWatchEvent builds a KindDeviceWatch Event.
func NewDeviceWatchEvent(added, removed []string) Event {
	return Event{Kind: KindDeviceWatch, Added: added, Removed: removed}
}

// NewDeviceEventEvent builds a KindDeviceEvent Event.
func NewDeviceEventEvent(e DeviceEvent) Event {
	return Event{Kind: KindDeviceEvent, DeviceEvent: e}
}

// NewDeviceInputEvent builds a KindDeviceInput Event.
func NewDeviceInputEvent(e DeviceInput) Event {
	return Event{Kind: KindDeviceInput, DeviceInput: e}
}
