package pydict_test

import (
	"slices"
	"testing"

	"github.com/KiidxAtlas/pyhover"
	"github.com/KiidxAtlas/pyhover/pydict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary_Lookup(t *testing.T) {
	t.Parallel()

	d := pydict.New()

	tests := []struct {
		symbol   string
		category pyhover.Category
		found    bool
	}{
		{"len", pyhover.CategoryBuiltin, true},
		{"print", pyhover.CategoryBuiltin, true},
		{"upper", pyhover.CategoryStringMethod, true},
		{"append", pyhover.CategoryListMethod, true},
		{"get", pyhover.CategoryDictMethod, true},
		{"union", pyhover.CategorySetMethod, true},
		{"for", pyhover.CategoryKeyword, true},
		{"os", pyhover.CategoryModule, true},
		{"json", pyhover.CategoryModule, true},
		{"str", pyhover.CategoryOther, true},
		{"self", pyhover.CategoryOther, true},

		// Right symbol, wrong category.
		{"len", pyhover.CategoryKeyword, false},
		{"upper", pyhover.CategoryListMethod, false},
		// Unknown symbol.
		{"zzgrobble", pyhover.CategoryBuiltin, false},
	}

	for _, tt := range tests {
		entry, ok := d.Lookup(tt.symbol, tt.category)
		assert.Equal(t, tt.found, ok, "%s/%s", tt.symbol, tt.category)
		if tt.found {
			assert.NotEmpty(t, entry.Slug, "%s/%s", tt.symbol, tt.category)
		}
	}
}

func TestDictionary_SlugsAreRelative(t *testing.T) {
	t.Parallel()

	d := pydict.New()

	entry, ok := d.Lookup("len", pyhover.CategoryBuiltin)
	require.True(t, ok)
	assert.Equal(t, "library/functions.html#len", entry.Slug)

	entry, ok = d.Lookup("os", pyhover.CategoryModule)
	require.True(t, ok)
	assert.Equal(t, "library/os.html", entry.Slug)
}

func TestDictionary_Symbols(t *testing.T) {
	t.Parallel()

	d := pydict.New()
	symbols := d.Symbols()

	require.NotEmpty(t, symbols)
	assert.True(t, slices.IsSorted(symbols))

	// Deduplicated: "pop" exists in several categories but appears once.
	count := 0
	for _, s := range symbols {
		if s == "pop" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	assert.Contains(t, symbols, "len")
	assert.Contains(t, symbols, "for")
	assert.Contains(t, symbols, "os")
}
