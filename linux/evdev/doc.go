//go:build linux

// Package evdev implements the userspace api [input.h] and event constants
// in [input-event-codes.h] in the Linux kernel, plus a Device wrapper for
// opening and querying /dev/input/eventN nodes.
//
// [input.h]: https://github.com/torvalds/linux/blob/master/include/uapi/linux/input.h
// [input-event-codes.h]: https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
package evdev
