package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DrStormWalker/comb/internal/taxonomy"
)

const sampleConfig = `
[[devices]]
name = "Microsoft X-Box One S pad"

[[devices.actions]]
bind = "btn:south"
cmd  = "notify-send hi"
when = "pressed"

[[devices.actions]]
bind = "key:capslock"
to   = "key:esc"

[[devices.actions]]
bind = "rel_axis:wheel"
print = "scroll"
when = ">0"
`

func writeTemp(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")

	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

func TestLoadSampleConfig(t *testing.T) {
	path := writeTemp(t, sampleConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Devices) != 1 {
		t.Fatalf("len(Devices) = %d, want 1", len(cfg.Devices))
	}

	dev := cfg.Devices[0]

	if dev.Accessor.Kind != AccessorKindName || dev.Accessor.Name != "Microsoft X-Box One S pad" {
		t.Errorf("Accessor = %+v, want name accessor", dev.Accessor)
	}

	if len(dev.Actions) != 3 {
		t.Fatalf("len(Actions) = %d, want 3", len(dev.Actions))
	}

	hook := dev.Actions[0]
	if hook.Action.Tag != ActionKindHook || hook.Action.HookCmd != "notify-send hi" {
		t.Errorf("Actions[0] = %+v, want Hook", hook.Action)
	}

	bind := dev.Actions[1]
	if bind.Action.Tag != ActionKindBind || bind.Action.BindTo != taxonomy.NewKeyInput(taxonomy.KeyEsc) {
		t.Errorf("Actions[1] = %+v, want Bind to key:esc", bind.Action)
	}

	if bind.Action.BindWhen != nil {
		t.Errorf("Actions[1].BindWhen = %+v, want nil (always fire)", bind.Action.BindWhen)
	}

	print := dev.Actions[2]
	if print.Action.Tag != ActionKindPrint || print.Action.PrintText != "scroll" {
		t.Errorf("Actions[2] = %+v, want Print", print.Action)
	}

	if !print.Action.When.Test(3) || print.Action.When.Test(-3) {
		t.Errorf("Actions[2].When did not parse as >0")
	}
}

func TestLoadMalformedReturnsDefault(t *testing.T) {
	path := writeTemp(t, "this is not [ valid toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Devices) != 0 {
		t.Errorf("len(Devices) = %d, want 0 for malformed config", len(cfg.Devices))
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of missing file succeeded, want IO error")
	}
}

func TestReloadKeepsOldOnParseFailure(t *testing.T) {
	path := writeTemp(t, "not toml at all [[[")

	_, ok, err := Reload(path)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if ok {
		t.Error("Reload() ok = true, want false for malformed TOML")
	}
}

func TestImportsAreMerged(t *testing.T) {
	dir := t.TempDir()

	importPath := filepath.Join(dir, "extra.toml")
	if err := os.WriteFile(importPath, []byte(`
[[devices]]
path = "/dev/input/event9"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	mainPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(mainPath, []byte(`
imports = ["extra.toml"]

[[devices]]
name = "keyboard"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(mainPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(cfg.Devices) != 2 {
		t.Fatalf("len(Devices) = %d, want 2 after import merge", len(cfg.Devices))
	}
}
