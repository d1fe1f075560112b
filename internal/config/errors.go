// Package config implements the declarative TOML binding document: its
// data model (devices, actions, when-conditions), the loader that
// locates and parses it under the XDG config directory, and the
// canonicalisation/reload operations the dispatcher drives it with.
package config

import "errors"

// ErrBadCondition is returned when a "when" predicate string fails to
// parse as a relational condition.
var ErrBadCondition = errors.New("bad condition")

// ErrUnsupportedOption reports a TOML key with no field in the Config
// schema, surfaced according to the configured error policy.
var ErrUnsupportedOption = errors.New("unsupported config option")
