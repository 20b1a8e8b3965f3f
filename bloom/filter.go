// Package bloom provides a fast membership prefilter over the symbol
// dictionary.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SymbolFilter answers "could this token possibly be documented?" without
// touching the dictionary's category maps. False positives are possible;
// false negatives are not, so a failed test is a definitive rejection.
type SymbolFilter struct {
	f *bloom.BloomFilter
}

// NewSymbolFilter creates a filter seeded with the given symbols at the
// given false positive rate.
func NewSymbolFilter(symbols []string, fpRate float64) *SymbolFilter {
	n := uint(len(symbols))
	if n == 0 {
		n = 1
	}
	f := bloom.NewWithEstimates(n, fpRate)
	for _, s := range symbols {
		f.AddString(s)
	}
	return &SymbolFilter{f: f}
}

// MayContain returns true if the symbol might be documented.
func (s *SymbolFilter) MayContain(symbol string) bool {
	return s.f.TestString(symbol)
}

// EstimatedCount returns the approximate number of seeded symbols.
func (s *SymbolFilter) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
