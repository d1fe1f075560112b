// Package device implements C4, the device enumerator: resolving a
// config.DeviceAccessor against the evdev nodes actually present under
// /dev/input. Grounded on andrieee44-mylib/linux/input/device.go's
// Devices() (filepath.Glob("/dev/input/event*") + open-each loop),
// generalized here into name/unique-name/path matching against
// configured accessors.
package device

import (
	"path/filepath"
	"strings"

	"github.com/DrStormWalker/comb/internal/config"
	"github.com/DrStormWalker/comb/linux/evdev"
)

// Handle is an opened evdev device keyed by the DeviceId of the
// accessor it matched.
type Handle struct {
	ID     string
	Device *evdev.Device
}

// Close closes the underlying evdev device.
func (h *Handle) Close() error {
	return h.Device.Close()
}

// Open resolves accessors against the evdev nodes under /dev/input and
// returns an opened Handle for every match, per spec.md §4.4:
//   - Name accessors match a device's UniqueName (preferred, when
//     non-empty) or trimmed Name against any configured name or alias.
//   - Path accessors open that path directly.
//
// Devices that fail to open are silently skipped (spec.md §4.4).
func Open(devices []config.Device) []*Handle {
	paths, _ := filepath.Glob("/dev/input/event*")

	nodes := make([]*evdev.Device, 0, len(paths))
	for _, p := range paths {
		node, err := evdev.Open(p)
		if err != nil {
			continue
		}

		nodes = append(nodes, node)
	}
	defer func() {
		for _, n := range nodes {
			n.Close()
		}
	}()

	handles := make([]*Handle, 0, len(devices))

	for _, dev := range devices {
		switch dev.Accessor.Kind {
		case config.AccessorKindPath:
			h, ok := openPath(dev)
			if ok {
				handles = append(handles, h)
			}

		case config.AccessorKindName:
			handles = append(handles, matchByName(dev, nodes)...)
		}
	}

	return handles
}

func openPath(dev config.Device) (*Handle, bool) {
	path, err := filepath.EvalSymlinks(dev.Accessor.Path)
	if err != nil {
		path = dev.Accessor.Path
	}

	opened, err := evdev.Open(path)
	if err != nil {
		return nil, false
	}

	return &Handle{ID: dev.Accessor.DeviceID(), Device: opened}, true
}

// matchByName reopens every node whose UniqueName or trimmed Name
// equals dev's configured name or any of its aliases, or (when
// dev.Virtual is set) whose Name contains "virtual" (case-insensitive),
// per the §3.1 Virtual supplement.
func matchByName(dev config.Device, nodes []*evdev.Device) []*Handle {
	names := append([]string{dev.Accessor.Name}, dev.Aliases...)

	var handles []*Handle

	for _, node := range nodes {
		name, err := node.Name()
		if err != nil {
			continue
		}
		name = strings.TrimSpace(name)

		unique, _ := node.UniqueName()
		unique = strings.TrimSpace(unique)

		matched := matchesAny(unique, name, names) ||
			(dev.Virtual && strings.Contains(strings.ToLower(name), "virtual"))

		if !matched {
			continue
		}

		reopened, err := evdev.Open(node.Path())
		if err != nil {
			continue
		}

		handles = append(handles, &Handle{ID: dev.Accessor.DeviceID(), Device: reopened})
	}

	return handles
}

func matchesAny(unique, name string, candidates []string) bool {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if unique != "" && unique == c {
			return true
		}
		if name == c {
			return true
		}
	}

	return false
}

// MatchPath implements path_in_devices: it looks up which configured
// accessor (if any) a newly-appeared /dev/input node at path
// satisfies, by matching either its path or its name/unique-name/alias
// against devices.
func MatchPath(path string, devices []config.Device) (config.DeviceAccessor, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}

	for _, dev := range devices {
		if dev.Accessor.Kind == config.AccessorKindPath {
			accessorPath, err := filepath.EvalSymlinks(dev.Accessor.Path)
			if err != nil {
				accessorPath = dev.Accessor.Path
			}

			if accessorPath == resolved {
				return dev.Accessor, true
			}

			continue
		}

		node, err := evdev.Open(path)
		if err != nil {
			return config.DeviceAccessor{}, false
		}

		name, nameErr := node.Name()
		unique, _ := node.UniqueName()
		node.Close()

		if nameErr != nil {
			continue
		}

		names := append([]string{dev.Accessor.Name}, dev.Aliases...)
		if matchesAny(strings.TrimSpace(unique), strings.TrimSpace(name), names) ||
			(dev.Virtual && strings.Contains(strings.ToLower(name), "virtual")) {
			return dev.Accessor, true
		}
	}

	return config.DeviceAccessor{}, false
}
