//go:build linux

package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DrStormWalker/comb/internal/config"
	"github.com/DrStormWalker/comb/internal/pipeline"
	"github.com/DrStormWalker/comb/linux/evdev"
)

// fakeMultiplexer records Add/Remove calls in place of a real
// multiplex.Multiplexer, so reconciliation can be tested without
// epoll or real device fds.
type fakeMultiplexer struct {
	added   []string
	removed []string
}

func (f *fakeMultiplexer) Add(id string, dev *evdev.Device) { f.added = append(f.added, id) }
func (f *fakeMultiplexer) Remove(id string)                 { f.removed = append(f.removed, id) }

// fakeExecutor records UpdateConfig calls in place of a real
// action.Executor.
type fakeExecutor struct {
	updates int
}

func (f *fakeExecutor) UpdateConfig(cfg *config.Config) error { f.updates++; return nil }
func (f *fakeExecutor) HandleInput(di pipeline.DeviceInput)   {}
func (f *fakeExecutor) Close() error                          { return nil }

// writeTemp writes contents to a fresh file under t.TempDir and
// returns its path. evdev.Open happily opens a plain regular file (it
// never ioctls at open time), so a temp file stands in for a
// /dev/input node in these path-accessor tests.
func writeTemp(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dev")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

func TestAddedDevicesExcludesExistingIDs(t *testing.T) {
	oldIDs := map[string]struct{}{"name:pad": {}}

	devices := []config.Device{
		{Accessor: config.NewNameAccessor("pad")},
		{Accessor: config.NewNameAccessor("keyboard")},
	}

	added := addedDevices(oldIDs, devices)

	if len(added) != 1 || added[0].Accessor.DeviceID() != "name:keyboard" {
		t.Fatalf("addedDevices = %+v, want only name:keyboard", added)
	}
}

func TestHandleConfigWatchDoesNotReaddUnchangedDevice(t *testing.T) {
	devPath := writeTemp(t, "")
	cfgPath := writeConfig(t, `
[[devices]]
path = "`+devPath+`"
`)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	mux := &fakeMultiplexer{}
	exec := &fakeExecutor{}

	d := &Dispatcher{
		configPath: cfgPath,
		cfg:        cfg,
		mux:        mux,
		exec:       exec,
	}

	// First reload: config is byte-identical, so the set of accessor
	// ids is unchanged. The already-subscribed device must not be
	// re-opened and re-added a second time.
	d.handleConfigWatch(pipeline.NewConfigWatchEvent(cfgPath))

	if len(mux.added) != 0 {
		t.Errorf("mux.added = %v after no-op reload, want empty (device already subscribed)", mux.added)
	}
	if len(mux.removed) != 0 {
		t.Errorf("mux.removed = %v after no-op reload, want empty", mux.removed)
	}
	if exec.updates != 1 {
		t.Errorf("exec.updates = %d, want 1", exec.updates)
	}
}

func TestHandleConfigWatchAddsNewAndRemovesDropped(t *testing.T) {
	keptPath := writeTemp(t, "")
	newPath := writeTemp(t, "")

	cfgPath := writeConfig(t, `
[[devices]]
path = "`+keptPath+`"

[[devices]]
name = "dropped"
`)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	mux := &fakeMultiplexer{}
	exec := &fakeExecutor{}

	d := &Dispatcher{
		configPath: cfgPath,
		cfg:        cfg,
		mux:        mux,
		exec:       exec,
	}

	if err := os.WriteFile(cfgPath, []byte(`
[[devices]]
path = "`+keptPath+`"

[[devices]]
path = "`+newPath+`"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d.handleConfigWatch(pipeline.NewConfigWatchEvent(cfgPath))

	if len(mux.added) != 1 || mux.added[0] != "path:"+newPath {
		t.Errorf("mux.added = %v, want exactly [path:%s]", mux.added, newPath)
	}
	if len(mux.removed) != 1 || mux.removed[0] != "name:dropped" {
		t.Errorf("mux.removed = %v, want exactly [name:dropped]", mux.removed)
	}
}
