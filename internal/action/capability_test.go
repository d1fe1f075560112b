package action

import (
	"testing"

	"github.com/DrStormWalker/comb/internal/config"
	"github.com/DrStormWalker/comb/internal/taxonomy"
)

func TestRequiredCapabilities(t *testing.T) {
	cfg := &config.Config{
		Devices: []config.Device{
			{
				Accessor: config.NewNameAccessor("pad"),
				Actions: []config.Action{
					{Bind: taxonomy.NewKeyInput(taxonomy.KeyCapslock), Action: config.ActionKind{
						Tag: config.ActionKindBind, BindTo: taxonomy.NewKeyInput(taxonomy.KeyEsc),
					}},
					{Bind: taxonomy.NewKeyInput(taxonomy.KeyA), Action: config.ActionKind{
						Tag: config.ActionKindHook, HookCmd: "true",
					}},
				},
			},
		},
	}

	caps := requiredCapabilities(cfg)

	evType, code := taxonomy.NewKeyInput(taxonomy.KeyEsc).RawCode()
	if _, ok := caps[evType][code]; !ok {
		t.Fatalf("requiredCapabilities missing bind target key:esc, got %+v", caps)
	}

	if len(caps) != 1 {
		t.Errorf("requiredCapabilities included non-Bind actions: %+v", caps)
	}
}

func TestSubsetOfAndUnion(t *testing.T) {
	a := capabilitySet{1: {10: {}, 11: {}}}
	b := capabilitySet{1: {11: {}, 12: {}}}

	if subsetOf(b, a) {
		t.Fatal("subsetOf(b, a) = true, want false (a is missing code 12)")
	}

	merged := union(a, b)
	if !subsetOf(b, merged) || !subsetOf(a, merged) {
		t.Fatalf("union(a, b) = %+v, not a superset of both inputs", merged)
	}
}
