// Package lookup wires the resolver, cache, and fetcher into the lookup
// façade hosts call. It performs no caching or retry logic of its own.
package lookup

import (
	"context"
	"errors"

	"github.com/KiidxAtlas/pyhover"
	"github.com/KiidxAtlas/pyhover/bloom"
)

// Result is the outcome of a successful lookup.
type Result struct {
	Key     pyhover.ResolutionKey
	Content []byte

	// ContextWarning carries a resolver advisory such as "await outside
	// async" for the host to surface next to the content.
	ContextWarning string
}

// Service orchestrates a lookup: resolve the token, then serve content from
// the cache with the fetcher as the miss handler.
type Service struct {
	resolver pyhover.Resolver
	cache    pyhover.Cache
	fetcher  pyhover.Fetcher
	filter   *bloom.SymbolFilter
}

// Option configures a Service.
type Option func(*Service)

// WithSymbolFilter installs a membership prefilter: tokens that fail it are
// rejected before the resolver or cache is consulted.
func WithSymbolFilter(f *bloom.SymbolFilter) Option {
	return func(s *Service) { s.filter = f }
}

// NewService creates the lookup façade.
func NewService(resolver pyhover.Resolver, cache pyhover.Cache, fetcher pyhover.Fetcher, opts ...Option) *Service {
	s := &Service{resolver: resolver, cache: cache, fetcher: fetcher}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup resolves token at cursorOffset and returns its documentation
// content. An unresolvable token returns EUNRESOLVABLE without touching the
// cache or the network; a resolvable token whose content cannot be retrieved
// returns EUNAVAILABLE so hosts can render different guidance for the two.
func (s *Service) Lookup(ctx context.Context, source string, cursorOffset int, token string) (*Result, error) {
	if s.filter != nil && !s.filter.MayContain(token) {
		return nil, pyhover.Errorf(pyhover.EUNRESOLVABLE, "%q is not a documented symbol", token)
	}

	res, err := s.resolver.Resolve(source, cursorOffset, token)
	if err != nil {
		return nil, err
	}

	entry, err := s.cache.GetOrFetch(ctx, res.Key, s.fetcher.Fetch)
	if err != nil {
		return nil, mapFetchErr(res.Key, err)
	}

	return &Result{
		Key:            res.Key,
		Content:        entry.Payload,
		ContextWarning: res.ContextWarning,
	}, nil
}

// Refresh drops any cached content for the token at the current context and
// fetches it again.
func (s *Service) Refresh(ctx context.Context, source string, cursorOffset int, token string) (*Result, error) {
	if s.filter != nil && !s.filter.MayContain(token) {
		return nil, pyhover.Errorf(pyhover.EUNRESOLVABLE, "%q is not a documented symbol", token)
	}

	res, err := s.resolver.Resolve(source, cursorOffset, token)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, res.Key); err != nil {
		return nil, err
	}

	entry, err := s.cache.GetOrFetch(ctx, res.Key, s.fetcher.Fetch)
	if err != nil {
		return nil, mapFetchErr(res.Key, err)
	}

	return &Result{
		Key:            res.Key,
		Content:        entry.Payload,
		ContextWarning: res.ContextWarning,
	}, nil
}

// mapFetchErr translates miss-handler failures into lookup error codes.
func mapFetchErr(key pyhover.ResolutionKey, err error) error {
	var fe *pyhover.FetchError
	if errors.As(err, &fe) {
		return pyhover.WrapErrorf(err, pyhover.EUNAVAILABLE, "documentation for %s is unavailable", key)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var ae *pyhover.Error
	if errors.As(err, &ae) {
		return err
	}
	return pyhover.WrapErrorf(err, pyhover.EINTERNAL, "cache failure for %s", key)
}
