package compiler

// Options toggles grammar extensions that exist as precedence slots and
// scattered scaffolding but were never completed end to end in the
// snapshots this compiler is rewritten from. They default to the safest,
// fully-wired subset.
type Options struct {
	// EnableTernary turns on the "? :" conditional expression at the
	// Ternary precedence level, sitting between Assignment and Or. When
	// false, '?' is not a valid infix operator and parsing it is a syntax
	// error.
	EnableTernary bool
}

// DefaultOptions returns the Options used when a caller doesn't need to
// override anything: ternary enabled, matching the reference behavior of
// the feature once it is turned on.
func DefaultOptions() Options {
	return Options{EnableTernary: true}
}
