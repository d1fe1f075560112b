//go:build linux

// Package dispatch implements C8, the dispatcher: the main thread that
// owns the desired accessor set, reconciles it against C4/C6 as
// DeviceWatchEvent/ConfigWatchEvent arrive, and forwards DeviceInput to
// the action executor (C9), per spec.md §4.8.
package dispatch

import (
	"log"

	"github.com/DrStormWalker/comb/internal/action"
	"github.com/DrStormWalker/comb/internal/config"
	"github.com/DrStormWalker/comb/internal/device"
	"github.com/DrStormWalker/comb/internal/multiplex"
	"github.com/DrStormWalker/comb/internal/pipeline"
	"github.com/DrStormWalker/comb/linux/evdev"
)

// deviceMultiplexer is the subset of *multiplex.Multiplexer the
// dispatcher depends on, narrowed to an interface so reconciliation
// logic can be exercised against a fake in tests.
type deviceMultiplexer interface {
	Add(id string, dev *evdev.Device)
	Remove(id string)
}

// actionExecutor is the subset of *action.Executor the dispatcher
// depends on.
type actionExecutor interface {
	UpdateConfig(cfg *config.Config) error
	HandleInput(di pipeline.DeviceInput)
	Close() error
}

// Dispatcher is C8.
type Dispatcher struct {
	configPath string
	cfg        *config.Config

	rx   pipeline.Receiver
	mux  deviceMultiplexer
	exec actionExecutor
}

// New loads the config at configPath, builds the action executor, and
// then opens and registers the config's devices with mux (config load →
// executor → multiplexer registration).
func New(configPath string, rx pipeline.Receiver, mux *multiplex.Multiplexer) (*Dispatcher, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	exec, err := action.NewExecutor(cfg)
	if err != nil {
		return nil, err
	}

	d := &Dispatcher{
		configPath: configPath,
		cfg:        cfg,
		rx:         rx,
		mux:        mux,
		exec:       exec,
	}

	d.subscribeAll(cfg.Devices)

	return d, nil
}

func (d *Dispatcher) subscribeAll(devices []config.Device) {
	for _, h := range device.Open(devices) {
		d.mux.Add(h.ID, h.Device)
	}
}

// Run drains the pipeline until it closes. Meant to run on the main
// goroutine — comb's fourth long-lived worker.
func (d *Dispatcher) Run() {
	for {
		event, ok := d.rx.Recv()
		if !ok {
			return
		}

		switch event.Kind {
		case pipeline.KindDeviceWatch:
			d.handleDeviceWatch(event)
		case pipeline.KindConfigWatch:
			d.handleConfigWatch(event)
		case pipeline.KindDeviceEvent:
			// No-op in normal operation; reserved for debug/print.
		case pipeline.KindDeviceInput:
			d.exec.HandleInput(event.DeviceInput)
		}
	}
}

// handleDeviceWatch opens every newly appeared path and, when it
// matches a configured accessor, registers it with the multiplexer.
// Removed paths are ignored — the multiplexer cleans itself up on the
// next read failure (spec.md §4.8).
func (d *Dispatcher) handleDeviceWatch(event pipeline.Event) {
	for _, path := range event.Added {
		accessor, ok := device.MatchPath(path, d.cfg.Devices)
		if !ok {
			continue
		}

		opened, err := evdev.Open(path)
		if err != nil {
			log.Printf("comb: dispatch: open %s: %v", path, err)
			continue
		}

		d.mux.Add(accessor.DeviceID(), opened)
	}
}

// handleConfigWatch reloads the config, diffs the accessor set,
// removes devices no longer configured, subscribes only the ids newly
// present, and forwards the new config to the action executor. An id
// present in both the old and new config is left alone: it is already
// registered with the multiplexer under a live fd, and re-opening and
// re-adding it would register a second slot for the same DeviceId
// (spec.md §3's DeviceId-uniqueness invariant) and duplicate delivery
// of every event from that device.
func (d *Dispatcher) handleConfigWatch(event pipeline.Event) {
	newCfg, ok, err := config.Reload(event.ConfigPath)
	if err != nil {
		log.Printf("comb: dispatch: reload %s: %v", event.ConfigPath, err)
		return
	}
	if !ok {
		return
	}

	oldIDs := accessorIDs(d.cfg.Devices)
	newIDs := accessorIDs(newCfg.Devices)

	for id := range oldIDs {
		if _, ok := newIDs[id]; !ok {
			d.mux.Remove(id)
		}
	}

	d.cfg = newCfg
	d.subscribeAll(addedDevices(oldIDs, newCfg.Devices))

	if err := d.exec.UpdateConfig(newCfg); err != nil {
		log.Printf("comb: dispatch: update action executor: %v", err)
	}
}

func accessorIDs(devices []config.Device) map[string]struct{} {
	ids := make(map[string]struct{}, len(devices))
	for _, dev := range devices {
		ids[dev.Accessor.DeviceID()] = struct{}{}
	}

	return ids
}

// addedDevices returns the subset of devices whose accessor id is not
// in oldIDs.
func addedDevices(oldIDs map[string]struct{}, devices []config.Device) []config.Device {
	added := make([]config.Device, 0, len(devices))

	for _, dev := range devices {
		if _, ok := oldIDs[dev.Accessor.DeviceID()]; !ok {
			added = append(added, dev)
		}
	}

	return added
}

// Close releases the action executor's virtual device.
func (d *Dispatcher) Close() error {
	return d.exec.Close()
}
