package device

import (
	"path/filepath"
	"testing"

	"github.com/DrStormWalker/comb/internal/config"
)

func TestMatchesAny(t *testing.T) {
	cases := []struct {
		unique, name string
		candidates   []string
		want         bool
	}{
		{"", "Microsoft X-Box One S pad", []string{"Microsoft X-Box One S pad"}, true},
		{"abc123", "generic hid", []string{"abc123"}, true},
		{"", "keyboard", []string{"mouse"}, false},
		{"", "name", nil, false},
	}

	for _, c := range cases {
		if got := matchesAny(c.unique, c.name, c.candidates); got != c.want {
			t.Errorf("matchesAny(%q, %q, %v) = %v, want %v", c.unique, c.name, c.candidates, got, c.want)
		}
	}
}

func TestMatchPathByPathAccessor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "event7")

	devices := []config.Device{
		{Accessor: config.NewPathAccessor(path)},
	}

	accessor, ok := MatchPath(path, devices)
	if !ok {
		t.Fatal("MatchPath did not match configured path accessor")
	}

	if accessor.DeviceID() != config.NewPathAccessor(path).DeviceID() {
		t.Errorf("matched accessor = %+v, want path accessor for %s", accessor, path)
	}
}

func TestMatchPathNoAccessors(t *testing.T) {
	if _, ok := MatchPath("/dev/input/event0", nil); ok {
		t.Error("MatchPath with no devices configured returned ok=true")
	}
}
