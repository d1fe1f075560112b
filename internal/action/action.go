//go:build linux

// Package action implements C9, the action executor: it owns the
// virtual uinput device and, for every DeviceInput the dispatcher
// forwards, runs the bound Hook/Bind/Print actions configured for
// that device. Grounded on spec.md §4.9/§9: capability growth is
// monotone (never shrinks once advertised), Bind emits a trailing
// SYN_REPORT per batch (the source's missing sync is a bug spec.md
// §9 upgrades into a firm requirement here), and Print is a logged
// no-op rather than the source's unspecified panic/no-op split.
package action

import (
	"log"
	"os"
	"os/exec"

	"github.com/DrStormWalker/comb/internal/config"
	"github.com/DrStormWalker/comb/internal/pipeline"
	"github.com/DrStormWalker/comb/internal/taxonomy"
	"github.com/DrStormWalker/comb/linux/evdev"
	"github.com/DrStormWalker/comb/linux/uinput"
)

// capabilitySet is the set of evdev.Code per evdev.EventType currently
// advertised by (or required of) the virtual device.
type capabilitySet map[evdev.EventType]map[evdev.Code]struct{}

// Executor is C9.
type Executor struct {
	actions map[string][]config.Action
	caps    capabilitySet
	device  *uinput.Device
}

// NewExecutor computes the action table and required capability set
// from cfg and creates the virtual device advertising it.
func NewExecutor(cfg *config.Config) (*Executor, error) {
	actions := buildActions(cfg)
	caps := requiredCapabilities(cfg)

	dev, err := uinput.New(toCodeMap(caps))
	if err != nil {
		return nil, err
	}

	return &Executor{actions: actions, caps: caps, device: dev}, nil
}

func buildActions(cfg *config.Config) map[string][]config.Action {
	actions := make(map[string][]config.Action, len(cfg.Devices))

	for _, dev := range cfg.Devices {
		id := dev.Accessor.DeviceID()
		actions[id] = append(actions[id], dev.Actions...)
	}

	return actions
}

// requiredCapabilities computes the union of every Bind action's
// to-target across cfg, partitioned by the kind's raw event type.
func requiredCapabilities(cfg *config.Config) capabilitySet {
	caps := make(capabilitySet)

	for _, dev := range cfg.Devices {
		for _, act := range dev.Actions {
			if act.Action.Tag != config.ActionKindBind {
				continue
			}

			evType, code := act.Action.BindTo.RawCode()
			addCapability(caps, evType, code)
		}
	}

	return caps
}

func addCapability(caps capabilitySet, evType evdev.EventType, code evdev.Code) {
	if caps[evType] == nil {
		caps[evType] = make(map[evdev.Code]struct{})
	}

	caps[evType][code] = struct{}{}
}

func toCodeMap(caps capabilitySet) map[evdev.EventType][]evdev.Code {
	out := make(map[evdev.EventType][]evdev.Code, len(caps))

	for evType, codes := range caps {
		list := make([]evdev.Code, 0, len(codes))
		for code := range codes {
			list = append(list, code)
		}

		out[evType] = list
	}

	return out
}

// subsetOf reports whether every code in required is already present
// in current, per event type.
func subsetOf(required, current capabilitySet) bool {
	for evType, codes := range required {
		have := current[evType]

		for code := range codes {
			if _, ok := have[code]; !ok {
				return false
			}
		}
	}

	return true
}

// union merges b's codes into a new capabilitySet seeded from a.
func union(a, b capabilitySet) capabilitySet {
	merged := make(capabilitySet, len(a))

	for evType, codes := range a {
		merged[evType] = make(map[evdev.Code]struct{}, len(codes))
		for code := range codes {
			merged[evType][code] = struct{}{}
		}
	}

	for evType, codes := range b {
		for code := range codes {
			addCapability(merged, evType, code)
		}
	}

	return merged
}

// UpdateConfig recomputes the action table from cfg. If the newly
// required capability set is not a subset of what's already
// advertised, the virtual device is destroyed and rebuilt with the
// union of old and new capabilities — capabilities only ever grow
// (spec.md §4.9/§9's "capability monotonicity" design note).
func (e *Executor) UpdateConfig(cfg *config.Config) error {
	e.actions = buildActions(cfg)

	required := requiredCapabilities(cfg)
	if subsetOf(required, e.caps) {
		return nil
	}

	merged := union(e.caps, required)

	newDev, err := uinput.New(toCodeMap(merged))
	if err != nil {
		return err
	}

	if err := e.device.Close(); err != nil {
		log.Printf("comb: action: closing old virtual device: %v", err)
	}

	e.device = newDev
	e.caps = merged

	return nil
}

// HandleInput runs every Action bound to di's Input for di's device,
// per spec.md §4.9's handle_input.
func (e *Executor) HandleInput(di pipeline.DeviceInput) {
	acts, ok := e.actions[di.DeviceID]
	if !ok {
		return
	}

	rawState := di.Input.Value

	var synced bool

	for _, act := range acts {
		if act.Bind != di.Input.Input {
			continue
		}

		switch act.Action.Tag {
		case config.ActionKindHook:
			e.runHook(act.Action, rawState)
		case config.ActionKindPrint:
			e.runPrint(act.Action, rawState)
		case config.ActionKindBind:
			if e.runBind(act.Action, di.Input.Input, rawState) {
				synced = true
			}
		}
	}

	if synced {
		if err := e.device.Sync(); err != nil {
			log.Printf("comb: action: sync: %v", err)
		}
	}
}

func (e *Executor) runHook(ak config.ActionKind, rawState int32) {
	if !ak.When.Test(rawState) {
		return
	}

	cmd := exec.Command("sh", "-c", ak.HookCmd)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		log.Printf("comb: action: hook %q: %v", ak.HookCmd, err)
		return
	}

	go cmd.Wait()
}

func (e *Executor) runPrint(ak config.ActionKind, rawState int32) {
	if !ak.When.Test(rawState) {
		return
	}

	log.Printf("comb: print: %s", ak.PrintText)
}

// runBind computes s' per spec.md §4.9's Bind rule and writes the
// resulting raw event to the virtual device. Returns true if an event
// was written (so the caller knows to emit a trailing SYN_REPORT).
func (e *Executor) runBind(ak config.ActionKind, source taxonomy.Input, rawState int32) bool {
	sPrime := rawState

	if ak.BindWhen != nil {
		if ak.BindWhen.Test(rawState) {
			if !source.IsToggle() && ak.BindTo.IsToggle() {
				sPrime = int32(taxonomy.Pressed)
			}
		} else {
			sPrime = int32(taxonomy.Released)
		}
	}

	if source.IsToggle() && !ak.BindTo.IsToggle() {
		log.Printf("comb: action: unsupported rebind of toggle input %s to non-toggle %s, skipping", source, ak.BindTo)
		return false
	}

	evType, code := ak.BindTo.RawCode()

	if err := e.device.Write(evType, code, sPrime); err != nil {
		log.Printf("comb: action: write: %v", err)
		return false
	}

	return true
}

// Close destroys the virtual device.
func (e *Executor) Close() error {
	return e.device.Close()
}
