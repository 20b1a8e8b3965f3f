package mock

import "github.com/KiidxAtlas/pyhover"

var _ pyhover.Dictionary = (*Dictionary)(nil)

// Dictionary is a mock implementation of pyhover.Dictionary.
type Dictionary struct {
	LookupFn  func(symbol string, category pyhover.Category) (pyhover.DictionaryEntry, bool)
	SymbolsFn func() []string
}

func (d *Dictionary) Lookup(symbol string, category pyhover.Category) (pyhover.DictionaryEntry, bool) {
	return d.LookupFn(symbol, category)
}

func (d *Dictionary) Symbols() []string {
	return d.SymbolsFn()
}
