// Package mock provides test doubles for pyhover domain interfaces.
package mock

import "github.com/KiidxAtlas/pyhover"

var _ pyhover.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of pyhover.Resolver.
type Resolver struct {
	ResolveFn func(source string, cursorOffset int, token string) (*pyhover.Resolution, error)
}

func (r *Resolver) Resolve(source string, cursorOffset int, token string) (*pyhover.Resolution, error) {
	return r.ResolveFn(source, cursorOffset, token)
}
