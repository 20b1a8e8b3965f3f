package pyhover

// Resolution is the outcome of classifying a token in context.
type Resolution struct {
	Key ResolutionKey

	// ContextWarning is a non-fatal advisory about the surrounding syntax,
	// e.g. "await outside async". Resolution itself never fails for it;
	// hosts decide whether to surface it.
	ContextWarning string
}

// Resolver determines which documentation entry a raw token refers to.
//
// Resolve inspects a bounded window of source around cursorOffset, never the
// whole file. It is pure: no I/O, no shared state. A token the context
// cannot tie to any documented symbol yields EUNRESOLVABLE, which is a valid
// terminal outcome rather than a failure.
type Resolver interface {
	Resolve(source string, cursorOffset int, token string) (*Resolution, error)
}
