package config

import "github.com/DrStormWalker/comb/internal/taxonomy"

// ActionKindTag tags which variant of ActionKind is populated.
type ActionKindTag int

const (
	ActionKindHook ActionKindTag = iota
	ActionKindBind
	ActionKindPrint
)

// ActionKind is one of Hook, Bind, or Print, selected by Tag.
type ActionKind struct {
	Tag ActionKindTag

	// Hook fields.
	HookCmd string

	// Bind fields.
	BindTo   taxonomy.Input
	BindWhen *WhenCondition // nil means "always fire"

	// Print fields.
	PrintText string

	// When is the gating condition for Hook and Print (defaults to
	// Pressed when absent from TOML); Bind uses BindWhen instead since
	// its default ("always fire", i.e. no gating at all) differs from
	// Hook/Print's "pressed" default.
	When WhenCondition
}

// Action pairs a bound Input with the ActionKind that fires for it.
type Action struct {
	Bind   taxonomy.Input
	Action ActionKind
}

// Device pairs a DeviceAccessor with the actions configured for it,
// plus the matching supplements from original_source: Aliases
// (additional names a name accessor also matches against a device's
// name or unique name) and Virtual (also match devices whose advertised
// name contains "virtual").
type Device struct {
	Accessor DeviceAccessor
	Actions  []Action
	Aliases  []string
	Virtual  bool
}
