package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/santiago/autovidriera/internal/filter"
	"github.com/santiago/autovidriera/internal/model"
)

// FeedSource fetches the raw delimited feed text.
type FeedSource interface {
	FetchRaw(ctx context.Context) (string, error)
}

// RecordNormalizer parses raw feed text into canonical records.
type RecordNormalizer interface {
	Normalize(ctx context.Context, rawFeedText string) (*NormalizeResult, error)
}

// NormalizeResult mirrors the feed normalizer's outcome. The service
// consumes it through this local type so the catalog package does not
// import feed; the app layer adapts between the two.
type NormalizeResult struct {
	Records     []model.CanonicalVehicle
	RowsDropped int
}

// MetricsRecorder receives load observations.
type MetricsRecorder interface {
	RecordLoadSuccess(vehicleCount, rowsDropped int)
	RecordLoadFailure()
	RecordLoadLatency(d time.Duration)
}

// Service orchestrates a catalog load: fetch, normalize, map, derive
// the filter domain, publish.
type Service struct {
	source     FeedSource
	normalizer RecordNormalizer
	sanitizer  *Sanitizer
	store      *Store
	metrics    MetricsRecorder
	logger     *slog.Logger
}

// NewService wires a catalog Service.
func NewService(source FeedSource, normalizer RecordNormalizer, sanitizer *Sanitizer, store *Store, metrics MetricsRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		source:     source,
		normalizer: normalizer,
		sanitizer:  sanitizer,
		store:      store,
		metrics:    metrics,
		logger:     logger,
	}
}

// Refresh performs one full catalog load. A fetch or parse failure is
// fail-closed: the error is returned and an empty snapshot is
// published for this load's generation, so the catalog shows zero
// vehicles rather than stale or partial data. Per-row problems never
// reach here; the normalizer absorbs them.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	generation := s.store.BeginLoad()

	raw, err := s.source.FetchRaw(ctx)
	if err != nil {
		return s.failLoad(generation, model.NewFeedUnavailableError(err.Error()))
	}

	result, err := s.normalizer.Normalize(ctx, raw)
	if err != nil {
		return s.failLoad(generation, model.NewFeedMalformedError(err.Error()))
	}

	vehicles := MapVehicles(result.Records, s.sanitizer)
	domain := filter.ComputeDomain(vehicles)

	published := s.store.Publish(generation, vehicles, domain)
	duration := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordLoadSuccess(len(vehicles), result.RowsDropped)
		s.metrics.RecordLoadLatency(duration)
	}

	s.logger.Info("catalog load completed",
		slog.Uint64("generation", generation),
		slog.Int("vehicle_count", len(vehicles)),
		slog.Int("rows_dropped", result.RowsDropped),
		slog.Bool("published", published),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	)

	return s.store.Current(), nil
}

// failLoad publishes an empty snapshot for the failed generation and
// returns the error.
func (s *Service) failLoad(generation uint64, err error) (Snapshot, error) {
	s.store.Publish(generation, nil, filter.ComputeDomain(nil))

	if s.metrics != nil {
		s.metrics.RecordLoadFailure()
	}

	s.logger.Error("catalog load failed",
		slog.Uint64("generation", generation),
		slog.String("error", err.Error()),
	)

	return s.store.Current(), err
}

// Snapshot returns the current catalog state. Before any load has
// published, the domain still carries the baseline bounds.
func (s *Service) Snapshot() Snapshot {
	snap := s.store.Current()
	if snap.Generation == 0 {
		snap.Domain = filter.ComputeDomain(nil)
	}
	return snap
}

// StartPeriodicRefresh reloads the catalog on a fixed interval until
// the context is cancelled. The initial load is the caller's job; this
// only keeps it fresh.
func (s *Service) StartPeriodicRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("periodic catalog refresh started",
		slog.Duration("interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("periodic catalog refresh stopped")
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx); err != nil {
				s.logger.Error("periodic refresh failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
