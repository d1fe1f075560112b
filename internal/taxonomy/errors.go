package taxonomy

import "errors"

// ErrUnknownSymbol is returned when a string does not name a known
// symbol in one of the taxonomy's closed enumerations.
var ErrUnknownSymbol = errors.New("unknown symbol")

// ErrUnmappedCode is returned when a kernel raw event code has no
// corresponding symbol in one of the taxonomy's closed enumerations.
var ErrUnmappedCode = errors.New("unmapped raw code")

// ErrBadGrammar is returned when an Input string fails the
// "<class>:<name>" grammar (wrong class, missing or trailing ':').
var ErrBadGrammar = errors.New("bad input grammar")
