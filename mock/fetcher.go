package mock

import (
	"context"

	"github.com/KiidxAtlas/pyhover"
)

var _ pyhover.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of pyhover.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error) {
	return f.FetchFn(ctx, key)
}
