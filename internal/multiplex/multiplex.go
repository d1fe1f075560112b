//go:build linux

// Package multiplex implements C6, the device event multiplexer —
// "the core of the core" per spec.md §4.6. It owns an epoll readiness
// poller (golang.org/x/sys/unix's EpollCreate1/EpollCtl/EpollWait, the
// teacher's sole dependency, leaned on harder here) and reads every
// watched evdev device until WouldBlock on each readiness
// notification.
//
// spec.md §4.6/§9 both flag that the naive "vector index as poll
// token" scheme is unsound under swap_remove-style churn: removing an
// element by swapping the last element into its slot silently
// invalidates the moved element's token. This implementation takes
// option (b) named in spec.md §4.6: a monotonically increasing slot
// id (nextSlot) maps to an *openDevice in a Go map, so removal never
// disturbs any other device's slot id. The control channel (spec.md's
// CTRL, here slot 0) is a self-pipe — os.Pipe() — following the same
// "control fd + readiness loop" shape as DrStormWalker/comb's
// mio-based original (original_source/src/device/events.rs) while
// replacing its mio::Token arithmetic with the slot-id indirection.
package multiplex

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/DrStormWalker/comb/internal/pipeline"
	"github.com/DrStormWalker/comb/internal/taxonomy"
	"github.com/DrStormWalker/comb/linux/evdev"
	"golang.org/x/sys/unix"
)

// ctrlSlot is the reserved slot id for the self-pipe control channel,
// always the lowest slot (spec.md's CTRL token).
const ctrlSlot uint64 = 0

type openDevice struct {
	id  string
	dev *evdev.Device
}

// cmdKind selects which DeviceUpdate variant a queued cmd carries.
type cmdKind int

const (
	cmdAdd cmdKind = iota
	cmdRemove
)

type cmd struct {
	kind cmdKind
	id   string
	dev  *evdev.Device
}

// Multiplexer is C6. The zero value is not usable; construct with New.
type Multiplexer struct {
	epfd int
	tx   pipeline.Sender

	ctrlRead  *os.File
	ctrlWrite *os.File

	mu       sync.Mutex
	queue    []cmd
	slots    map[uint64]*openDevice
	nextSlot uint64

	done chan struct{}
}

// New creates the epoll instance, opens the self-pipe control channel,
// and registers it at ctrlSlot.
func New(tx pipeline.Sender) (*Multiplexer, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, fmt.Errorf("multiplex.New: EpollCreate1: %w", err)
	}

	ctrlRead, ctrlWrite, err := os.Pipe()
	if err != nil {
		unix.Close(epfd)
		return nil, fmt.Errorf("multiplex.New: Pipe: %w", err)
	}

	if err := unix.SetNonblock(int(ctrlRead.Fd()), true); err != nil {
		ctrlRead.Close()
		ctrlWrite.Close()
		unix.Close(epfd)
		return nil, fmt.Errorf("multiplex.New: SetNonblock(ctrl): %w", err)
	}

	m := &Multiplexer{
		epfd:      epfd,
		tx:        tx,
		ctrlRead:  ctrlRead,
		ctrlWrite: ctrlWrite,
		slots:     make(map[uint64]*openDevice),
		nextSlot:  ctrlSlot + 1,
		done:      make(chan struct{}),
	}

	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(ctrlSlot)}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, int(ctrlRead.Fd()), &event); err != nil {
		m.closeFDs()
		return nil, fmt.Errorf("multiplex.New: EpollCtl(ctrl): %w", err)
	}

	return m, nil
}

func (m *Multiplexer) closeFDs() {
	m.ctrlRead.Close()
	m.ctrlWrite.Close()
	unix.Close(m.epfd)
}

// Add enqueues a device for registration and wakes the poller.
func (m *Multiplexer) Add(id string, dev *evdev.Device) {
	m.enqueue(cmd{kind: cmdAdd, id: id, dev: dev})
}

// Remove enqueues a device's deregistration by id and wakes the
// poller.
func (m *Multiplexer) Remove(id string) {
	m.enqueue(cmd{kind: cmdRemove, id: id})
}

func (m *Multiplexer) enqueue(c cmd) {
	m.mu.Lock()
	m.queue = append(m.queue, c)
	m.mu.Unlock()

	m.ctrlWrite.Write([]byte{0})
}

// Run is the single-threaded epoll loop. It blocks until Stop is
// called. Meant to run as its own goroutine — one of comb's four
// long-lived workers.
func (m *Multiplexer) Run() {
	defer m.closeFDs()

	events := make([]unix.EpollEvent, 16)

	for {
		select {
		case <-m.done:
			return
		default:
		}

		n, err := unix.EpollWait(m.epfd, events, 1000)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			log.Printf("comb: multiplex: EpollWait: %v", err)
			return
		}

		for i := 0; i < n; i++ {
			slot := uint64(uint32(events[i].Fd))

			if slot == ctrlSlot {
				m.drainCtrl()
				continue
			}

			m.readDevice(slot)
		}
	}
}

// drainCtrl empties the self-pipe and applies every queued
// DeviceUpdate.
func (m *Multiplexer) drainCtrl() {
	buf := make([]byte, 64)
	for {
		_, err := m.ctrlRead.Read(buf)
		if err != nil {
			break
		}
	}

	m.mu.Lock()
	pending := m.queue
	m.queue = nil
	m.mu.Unlock()

	for _, c := range pending {
		switch c.kind {
		case cmdAdd:
			m.register(c.id, c.dev)
		case cmdRemove:
			m.deregisterByID(c.id)
		}
	}
}

// register puts dev into non-blocking mode and registers it under a
// fresh slot id. Any slot already held by id is deregistered first, so
// a device id is never registered more than once at a time (spec.md
// §3's DeviceId-uniqueness invariant).
func (m *Multiplexer) register(id string, dev *evdev.Device) {
	m.deregisterByID(id)

	if err := dev.SetNonblock(true); err != nil {
		log.Printf("comb: multiplex: register %s: %v", id, err)
		dev.Close()
		return
	}

	slot := m.nextSlot
	m.nextSlot++

	event := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(slot)}
	if err := unix.EpollCtl(m.epfd, unix.EPOLL_CTL_ADD, int(dev.Fd()), &event); err != nil {
		log.Printf("comb: multiplex: register %s: EpollCtl: %v", id, err)
		dev.Close()
		return
	}

	m.slots[slot] = &openDevice{id: id, dev: dev}
}

// deregisterByID finds the slot holding id, removes it from epoll, and
// closes its device.
func (m *Multiplexer) deregisterByID(id string) {
	for slot, od := range m.slots {
		if od.id != id {
			continue
		}

		m.deregisterSlot(slot)
		return
	}
}

func (m *Multiplexer) deregisterSlot(slot uint64) {
	od, ok := m.slots[slot]
	if !ok {
		return
	}

	unix.EpollCtl(m.epfd, unix.EPOLL_CTL_DEL, int(od.dev.Fd()), nil)
	od.dev.Close()
	delete(m.slots, slot)
}

// readDevice drains every pending event from the device at slot until
// WouldBlock, emitting DeviceEvent (and, when decodable, DeviceInput)
// for each, per spec.md §4.6. A fatal (non-WouldBlock) read error
// deregisters the device silently — no explicit removal event is
// emitted; consumers learn of the device's death from the directory
// watcher or from the silence on that id.
func (m *Multiplexer) readDevice(slot uint64) {
	od, ok := m.slots[slot]
	if !ok {
		return
	}

	for {
		event, err := od.dev.Read()
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
				return
			}

			m.deregisterSlot(slot)
			return
		}

		if event.Type == evdev.EV_SYN {
			continue
		}
		if event.Type == evdev.EV_MSC && event.Code == evdev.MSC_SCAN {
			continue
		}

		now := time.Now()

		m.tx.Send(pipeline.NewDeviceEventEvent(pipeline.DeviceEvent{
			DeviceID:  od.id,
			Timestamp: now,
			RawKind:   event.Type,
			RawCode:   event.Code,
			Value:     event.Value,
		}))

		if input, err := taxonomy.InputEventFromRaw(evdev.EventType(event.Type), evdev.Code(event.Code), event.Value); err == nil {
			m.tx.Send(pipeline.NewDeviceInputEvent(pipeline.DeviceInput{
				DeviceID:  od.id,
				Timestamp: now,
				Input:     input,
			}))
		}
	}
}

// Stop ends the Run loop.
func (m *Multiplexer) Stop() {
	close(m.done)
}
