package pyhover

// DictionaryEntry locates the canonical documentation for a symbol.
type DictionaryEntry struct {
	// Slug is the documentation identifier relative to the source root,
	// e.g. "library/stdtypes.html#str.upper".
	Slug string

	// Summary is a one-line description shown while content loads.
	Summary string
}

// Dictionary is the injected, read-only mapping from (symbol, category) to a
// canonical documentation identifier. It is supplied by an external
// collaborator at startup and never mutated by the core; the core does not
// build or guarantee completeness of the table.
type Dictionary interface {
	// Lookup returns the entry for a symbol in a category, if known.
	Lookup(symbol string, category Category) (DictionaryEntry, bool)

	// Symbols returns every known symbol name, across categories, without
	// duplicates. Used to size membership prefilters.
	Symbols() []string
}
