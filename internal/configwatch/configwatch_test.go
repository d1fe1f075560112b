package configwatch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DrStormWalker/comb/internal/pipeline"
)

func TestWatcherDebouncesBurstIntoOneEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tx, rx := pipeline.New(8)

	w, err := New(path, tx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()

	go w.Run()

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("x y"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	select {
	case e := <-recvChan(rx):
		if e.Kind != pipeline.KindConfigWatch || e.ConfigPath != path {
			t.Fatalf("got %+v, want ConfigWatchEvent(%s)", e, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for debounced ConfigWatchEvent")
	}
}

// recvChan adapts pipeline.Receiver to a channel usable in a select
// statement for the test's timeout guard.
func recvChan(rx pipeline.Receiver) <-chan pipeline.Event {
	out := make(chan pipeline.Event, 1)
	go func() {
		if e, ok := rx.Recv(); ok {
			out <- e
		}
	}()
	return out
}
