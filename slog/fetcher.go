// Package slog provides logging decorators for domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/wrlin/tshiau"
)

// Ensure LoggingFetcher implements tshiau.Fetcher at compile time.
var _ tshiau.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with per-round outcome logging.
type LoggingFetcher struct {
	next   tshiau.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next tshiau.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchAll delegates to the wrapped fetcher and logs the round's duration
// and outcome counts.
func (f *LoggingFetcher) FetchAll(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error) {
	begin := time.Now()
	outcomes, err := f.next.FetchAll(ctx, keys)
	if err != nil {
		f.logger.Error("fetch round failed",
			"keys", len(keys),
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}

	var found, notFound, failed int
	for _, outcome := range outcomes {
		switch outcome.Status {
		case tshiau.StatusFound:
			found++
		case tshiau.StatusNotFound:
			notFound++
		case tshiau.StatusError:
			failed++
			f.logger.Warn("lookup failed", "key", outcome.Key, "err", outcome.Err)
		}
	}

	f.logger.Info("fetch round",
		"keys", len(keys),
		"found", found,
		"not_found", notFound,
		"failed", failed,
		"duration", time.Since(begin),
	)
	return outcomes, nil
}
