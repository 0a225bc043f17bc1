package app

import (
	"context"

	"github.com/santiago/autovidriera/internal/catalog"
	"github.com/santiago/autovidriera/internal/feed"
)

// normalizerAdapter bridges the feed normalizer to the catalog
// service's normalizer interface. The two packages stay decoupled;
// only the wiring layer knows both result types.
type normalizerAdapter struct {
	inner *feed.Normalizer
}

func (a *normalizerAdapter) Normalize(ctx context.Context, rawFeedText string) (*catalog.NormalizeResult, error) {
	result, err := a.inner.Normalize(ctx, rawFeedText)
	if err != nil {
		return nil, err
	}
	return &catalog.NormalizeResult{
		Records:     result.Records,
		RowsDropped: result.RowsDropped,
	}, nil
}
