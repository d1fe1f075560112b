//go:build linux

package evdev

import "encoding/binary"

// decodeEvent unmarshals a raw 24-byte struct input_event as laid out by
// the kernel on a 64-bit platform: a 16-byte struct timeval (two 8-byte
// fields, sec and usec) followed by a 2-byte type, a 2-byte code, and a
// 4-byte signed value, all native-endian.
func decodeEvent(buf [24]byte) Event {
	return Event{
		Sec:   binary.NativeEndian.Uint64(buf[0:8]),
		Usec:  binary.NativeEndian.Uint64(buf[8:16]),
		Type:  binary.NativeEndian.Uint16(buf[16:18]),
		Code:  binary.NativeEndian.Uint16(buf[18:20]),
		Value: int32(binary.NativeEndian.Uint32(buf[20:24])),
	}
}

// EncodeEvent marshals an Event back into the raw 24-byte kernel wire
// format, mirroring decodeEvent. Virtual-device writers (see
// [github.com/DrStormWalker/comb/linux/uinput]) use it to emit
// synthesized events and SYN_REPORT barriers.
func EncodeEvent(event Event) [24]byte {
	var buf [24]byte

	binary.NativeEndian.PutUint64(buf[0:8], event.Sec)
	binary.NativeEndian.PutUint64(buf[8:16], event.Usec)
	binary.NativeEndian.PutUint16(buf[16:18], event.Type)
	binary.NativeEndian.PutUint16(buf[18:20], event.Code)
	binary.NativeEndian.PutUint32(buf[20:24], uint32(event.Value))

	return buf
}
