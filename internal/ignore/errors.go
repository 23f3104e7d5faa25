package ignore

import "errors"

var (
	// ErrInvalidPattern reports a rule pattern that cannot be compiled.
	ErrInvalidPattern = errors.New("invalid ignore pattern")
	// ErrUnknownSemantics reports an unsupported matching semantics name.
	ErrUnknownSemantics = errors.New("unknown ignore semantics")
)
