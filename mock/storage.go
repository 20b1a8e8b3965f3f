package mock

import (
	"context"
	"time"

	"github.com/KiidxAtlas/pyhover"
)

var _ pyhover.Storage = (*Storage)(nil)

// Storage is a mock implementation of pyhover.Storage.
type Storage struct {
	GetFn           func(ctx context.Context, key []byte) ([]byte, bool, error)
	PutFn           func(ctx context.Context, key []byte, value []byte, versionTag string, expiresAt time.Time) error
	DeleteFn        func(ctx context.Context, key []byte) error
	DeleteVersionFn func(ctx context.Context, versionTag string) error
	SweepExpiredFn  func(ctx context.Context, now time.Time) (int, error)
}

func (s *Storage) Get(ctx context.Context, key []byte) ([]byte, bool, error) {
	return s.GetFn(ctx, key)
}

func (s *Storage) Put(ctx context.Context, key []byte, value []byte, versionTag string, expiresAt time.Time) error {
	return s.PutFn(ctx, key, value, versionTag, expiresAt)
}

func (s *Storage) Delete(ctx context.Context, key []byte) error {
	return s.DeleteFn(ctx, key)
}

func (s *Storage) DeleteVersion(ctx context.Context, versionTag string) error {
	return s.DeleteVersionFn(ctx, versionTag)
}

func (s *Storage) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	return s.SweepExpiredFn(ctx, now)
}
