package devicewatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DrStormWalker/comb/internal/pipeline"
)

func withScratchDevInput(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	old := devInputDir
	devInputDir = dir
	t.Cleanup(func() { devInputDir = old })

	return dir
}

func TestWatcherEmitsAddedOnCreate(t *testing.T) {
	dir := withScratchDevInput(t)

	if err := os.WriteFile(filepath.Join(dir, "event0"), nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tx, rx := pipeline.New(8)

	w, err := New(tx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	go w.Run()

	if err := os.WriteFile(filepath.Join(dir, "event1"), nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case e := <-recvChan(rx):
		if e.Kind != pipeline.KindDeviceWatch || len(e.Added) != 1 {
			t.Fatalf("got %+v, want DeviceWatchEvent with one added path", e)
		}
		if e.Added[0] != filepath.Join(dir, "event1") {
			t.Errorf("Added[0] = %q, want event1", e.Added[0])
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for DeviceWatchEvent")
	}
}

func TestWatcherEmitsRemovedOnDelete(t *testing.T) {
	dir := withScratchDevInput(t)

	path := filepath.Join(dir, "event0")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tx, rx := pipeline.New(8)

	w, err := New(tx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	go w.Run()

	if err := os.Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	select {
	case e := <-recvChan(rx):
		if e.Kind != pipeline.KindDeviceWatch || len(e.Removed) != 1 || e.Removed[0] != path {
			t.Fatalf("got %+v, want DeviceWatchEvent removing %s", e, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for DeviceWatchEvent")
	}
}

func recvChan(rx pipeline.Receiver) <-chan pipeline.Event {
	out := make(chan pipeline.Event, 1)
	go func() {
		if e, ok := rx.Recv(); ok {
			out <- e
		}
	}()
	return out
}
