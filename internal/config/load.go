package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/DrStormWalker/comb/internal/taxonomy"
	"github.com/DrStormWalker/comb/xdg"
)

// configFileRelPath is the config file's location relative to the XDG
// config base directory.
const configFileRelPath = "comb/config.toml"

// rawConfig mirrors the TOML document's top-level schema. BurntSushi/toml
// has no serde-style untagged-enum support, so the sum-typed fields of
// Config's richer model (DeviceAccessor, ActionKind, WhenCondition) are
// decoded into this flat, all-optional intermediate shape first and then
// resolved by convertConfig.
type rawConfig struct {
	Imports []string    `toml:"imports"`
	Errors  rawErrors   `toml:"errors"`
	Devices []rawDevice `toml:"devices"`
}

type rawErrors struct {
	UnsupportedOption string `toml:"unsupported_option"`
}

type rawDevice struct {
	Name    string      `toml:"name"`
	Path    string      `toml:"path"`
	Alias   any         `toml:"alias"`
	Virtual bool        `toml:"virtual"`
	Actions []rawAction `toml:"actions"`
}

type rawAction struct {
	Bind  string  `toml:"bind"`
	Cmd   *string `toml:"cmd"`
	To    *string `toml:"to"`
	Print *string `toml:"print"`
	When  *string `toml:"when"`
}

// Locate resolves $XDG_CONFIG_HOME/comb/config.toml (or its XDG
// fallback), creating the file and any parent directories if absent,
// and returns the resolved path.
func Locate() (string, error) {
	file, err := xdg.ConfigFile(configFileRelPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return file.Name(), nil
}

// Load reads and parses the config at path. A TOML syntax error is
// logged and the default (empty) config is returned — it is never
// propagated as a fatal error. IO errors opening or reading the file
// are returned to the caller, who is responsible for treating them as
// fatal only at startup (spec.md §4.2/§7).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	cfg, ok := parse(string(data))
	if !ok {
		return DefaultConfig(), nil
	}

	resolveImports(cfg, filepath.Dir(path))
	Canonicalize(cfg)

	return cfg, nil
}

// Reload re-reads and re-parses the config at path. ok is false only on
// a TOML syntax failure, in which case the caller should keep its
// previous config; IO errors are returned as err and are the caller's
// concern.
func Reload(path string) (cfg *Config, ok bool, err error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, false, err
	}

	cfg, ok = parse(string(data))
	if !ok {
		return nil, false, nil
	}

	resolveImports(cfg, filepath.Dir(path))
	Canonicalize(cfg)

	return cfg, true, nil
}

func parse(data string) (*Config, bool) {
	var raw rawConfig

	meta, err := toml.Decode(data, &raw)
	if err != nil {
		log.Printf("config: %v, using defaults", err)
		return nil, false
	}

	cfg := convertConfig(&raw)
	if !applyUnsupportedOptionPolicy(cfg, meta) {
		return nil, false
	}

	return cfg, true
}

// applyUnsupportedOptionPolicy reports undecoded TOML keys according to
// cfg's policy. It returns false when the "error" policy rejects the
// document, which parse then treats like a decode failure.
func applyUnsupportedOptionPolicy(cfg *Config, meta toml.MetaData) bool {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return true
	}

	switch cfg.Errors.UnsupportedOption {
	case PolicyIgnore:
		return true
	case PolicyWarning:
		for _, key := range undecoded {
			log.Printf("config: %v: %s", ErrUnsupportedOption, key)
		}

		return true
	default:
		for _, key := range undecoded {
			log.Printf("config: %v: %s, using defaults", ErrUnsupportedOption, key)
		}

		return false
	}
}

func resolveImports(cfg *Config, baseDir string) {
	for _, rel := range cfg.Imports {
		path := rel
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			log.Printf("config: import %s: %v, skipping", path, err)
			continue
		}

		imported, ok := parse(string(data))
		if !ok {
			log.Printf("config: import %s: parse failed, skipping", path)
			continue
		}

		cfg.Devices = append(cfg.Devices, imported.Devices...)
	}
}

func convertConfig(raw *rawConfig) *Config {
	cfg := &Config{
		Imports: raw.Imports,
		Errors:  Errors{UnsupportedOption: parseErrorPolicy(raw.Errors.UnsupportedOption)},
		Devices: make([]Device, 0, len(raw.Devices)),
	}

	for _, rd := range raw.Devices {
		dev, ok := convertDevice(rd)
		if !ok {
			continue
		}

		cfg.Devices = append(cfg.Devices, dev)
	}

	return cfg
}

func convertDevice(rd rawDevice) (Device, bool) {
	var accessor DeviceAccessor

	switch {
	case rd.Path != "":
		accessor = NewPathAccessor(rd.Path)
	case rd.Name != "":
		accessor = NewNameAccessor(rd.Name)
	default:
		log.Printf("config: device entry missing name/path, skipping")
		return Device{}, false
	}

	dev := Device{
		Accessor: accessor,
		Aliases:  convertAlias(rd.Alias),
		Virtual:  rd.Virtual,
		Actions:  make([]Action, 0, len(rd.Actions)),
	}

	for _, ra := range rd.Actions {
		action, ok := convertAction(ra)
		if !ok {
			continue
		}

		dev.Actions = append(dev.Actions, action)
	}

	return dev, true
}

func convertAlias(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []any:
		aliases := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				aliases = append(aliases, s)
			}
		}

		return aliases
	default:
		return nil
	}
}

func convertAction(ra rawAction) (Action, bool) {
	bind, err := taxonomy.ParseInput(ra.Bind)
	if err != nil {
		log.Printf("config: action bind %q: %v, skipping", ra.Bind, err)
		return Action{}, false
	}

	switch {
	case ra.Cmd != nil:
		when := PressedWhen()
		if ra.When != nil {
			parsed, err := ParseWhenCondition(*ra.When)
			if err != nil {
				log.Printf("config: action when %q: %v, skipping", *ra.When, err)
				return Action{}, false
			}

			when = parsed
		}

		return Action{Bind: bind, Action: ActionKind{Tag: ActionKindHook, HookCmd: *ra.Cmd, When: when}}, true

	case ra.To != nil:
		to, err := taxonomy.ParseInput(*ra.To)
		if err != nil {
			log.Printf("config: action to %q: %v, skipping", *ra.To, err)
			return Action{}, false
		}

		var when *WhenCondition
		if ra.When != nil {
			parsed, err := ParseWhenCondition(*ra.When)
			if err != nil {
				log.Printf("config: action when %q: %v, skipping", *ra.When, err)
				return Action{}, false
			}

			when = &parsed
		}

		return Action{Bind: bind, Action: ActionKind{Tag: ActionKindBind, BindTo: to, BindWhen: when}}, true

	case ra.Print != nil:
		when := PressedWhen()
		if ra.When != nil {
			parsed, err := ParseWhenCondition(*ra.When)
			if err != nil {
				log.Printf("config: action when %q: %v, skipping", *ra.When, err)
				return Action{}, false
			}

			when = parsed
		}

		return Action{Bind: bind, Action: ActionKind{Tag: ActionKindPrint, PrintText: *ra.Print, When: when}}, true

	default:
		log.Printf("config: action bind %q has none of cmd/to/print, skipping", ra.Bind)
		return Action{}, false
	}
}

// Canonicalize walks cfg.Devices and resolves every Path accessor to
// its canonical form via filepath.EvalSymlinks, falling back to
// filepath.Abs when the path doesn't exist yet (e.g. a device not
// currently plugged in). Failures leave the accessor unchanged.
func Canonicalize(cfg *Config) {
	for i := range cfg.Devices {
		accessor := &cfg.Devices[i].Accessor
		if accessor.Kind != AccessorKindPath {
			continue
		}

		resolved, err := filepath.EvalSymlinks(accessor.Path)
		if err == nil {
			accessor.Path = resolved
			continue
		}

		abs, err := filepath.Abs(accessor.Path)
		if err == nil {
			accessor.Path = abs
		}
	}
}
