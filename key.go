package pyhover

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Category classifies what kind of documentation entry a symbol refers to.
// Dotted access on a known receiver shape always wins over the bare-name
// categories, so "x.class" is an attribute, never the class keyword.
type Category string

// Category constants for ResolutionKey.
const (
	CategoryKeyword      Category = "keyword"
	CategoryBuiltin      Category = "builtin"
	CategoryStringMethod Category = "str_method"
	CategoryListMethod   Category = "list_method"
	CategoryDictMethod   Category = "dict_method"
	CategorySetMethod    Category = "set_method"
	CategoryModule       Category = "module"
	CategoryOther        Category = "other"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryKeyword, CategoryBuiltin, CategoryStringMethod,
		CategoryListMethod, CategoryDictMethod, CategorySetMethod,
		CategoryModule, CategoryOther:
		return true
	}
	return false
}

// ResolutionKey is the disambiguated identity of a looked-up symbol.
// It is an immutable value; two keys are equal iff all fields match, so it
// can be used directly as a map key.
type ResolutionKey struct {
	// Symbol is the token text, e.g. "upper" or "len".
	Symbol string `json:"symbol" toml:"symbol"`

	// Category disambiguates overloaded names, e.g. a string "pop" from a
	// dict "pop".
	Category Category `json:"category" toml:"category"`

	// VersionTag identifies the documentation source version (e.g. "3.12").
	// Changing the tag invalidates all cached entries for the old tag.
	VersionTag string `json:"versionTag" toml:"versionTag"`
}

// Validate returns an error if the key contains invalid fields.
func (k ResolutionKey) Validate() error {
	if k.Symbol == "" {
		return Errorf(EINVALID, "resolution key symbol required")
	}
	if !k.Category.Valid() {
		return Errorf(EINVALID, "unknown category %q", k.Category)
	}
	return nil
}

// String returns a human-readable form used in logs.
func (k ResolutionKey) String() string {
	return fmt.Sprintf("%s/%s@%s", k.Category, k.Symbol, k.VersionTag)
}

// StorageKey returns a stable byte key for the persisted tier. Fields are
// separated by a unit separator so distinct keys can never collide.
func (k ResolutionKey) StorageKey() []byte {
	h := xxhash.New()
	_, _ = h.WriteString(k.Symbol)
	_, _ = h.Write([]byte{0x1f})
	_, _ = h.WriteString(string(k.Category))
	_, _ = h.Write([]byte{0x1f})
	_, _ = h.WriteString(k.VersionTag)
	return fmt.Appendf(nil, "%016x", h.Sum64())
}
