package mock

import (
	"context"

	"github.com/wrlin/tshiau"
)

var _ tshiau.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of tshiau.Fetcher.
type Fetcher struct {
	FetchAllFn func(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error)
}

func (f *Fetcher) FetchAll(ctx context.Context, keys []string) (map[string]tshiau.FetchOutcome, error) {
	return f.FetchAllFn(ctx, keys)
}
