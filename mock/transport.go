package mock

import (
	"context"

	"github.com/KiidxAtlas/pyhover"
)

var _ pyhover.Transport = (*Transport)(nil)

// Transport is a mock implementation of pyhover.Transport.
type Transport struct {
	RequestFn func(ctx context.Context, url string, headers map[string]string) (*pyhover.TransportResponse, error)
}

func (t *Transport) Request(ctx context.Context, url string, headers map[string]string) (*pyhover.TransportResponse, error) {
	return t.RequestFn(ctx, url, headers)
}
