package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/KiidxAtlas/pyhover"
	"github.com/google/uuid"
)

// Ensure LoggingFetcher implements pyhover.Fetcher.
var _ pyhover.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-request logging, including the
// attempt log carried by terminal fetch errors.
type LoggingFetcher struct {
	next   pyhover.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next pyhover.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome under a
// request-scoped ID.
func (f *LoggingFetcher) Fetch(ctx context.Context, key pyhover.ResolutionKey) ([]byte, error) {
	requestID := uuid.New().String()
	begin := time.Now()

	body, err := f.next.Fetch(ctx, key)
	if err == nil {
		f.logger.Info("fetch",
			"requestId", requestID,
			"key", key.String(),
			"bytes", len(body),
			"duration", time.Since(begin),
		)
		return body, nil
	}

	var fe *pyhover.FetchError
	if errors.As(err, &fe) {
		f.logger.Warn("fetch failed",
			"requestId", requestID,
			"key", key.String(),
			"kind", string(fe.Kind),
			"attempts", len(fe.Attempts),
			"duration", time.Since(begin),
			"err", fe.Cause,
		)
	} else {
		f.logger.Warn("fetch failed",
			"requestId", requestID,
			"key", key.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}
	return nil, err
}
