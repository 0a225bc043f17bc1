// Package media resolves a vehicle's media assets from the object
// store using folder-name heuristics.
package media

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/santiago/autovidriera/internal/config"
	"github.com/santiago/autovidriera/internal/model"
	"github.com/santiago/autovidriera/internal/storage"
)

// ObjectStore is the slice of the storage client the resolver needs.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]storage.Object, error)
	PublicURL(key string) string
}

// MetricsRecorder receives resolution observations. May be nil.
type MetricsRecorder interface {
	RecordMediaResolveFailure()
	RecordResolveLatency(d time.Duration)
}

// legacyPrefix is the path prefix older feed revisions carried in the
// folder column. It is stripped before listing.
var legacyPrefix = regexp.MustCompile(`(?i)^autos/`)

// Resolver turns a folder hint into an ordered list of classified,
// publicly dereferenceable media assets.
type Resolver struct {
	store   ObjectStore
	policy  config.MediaPolicy
	metrics MetricsRecorder
	logger  *slog.Logger
}

// NewResolver returns a Resolver using the given store and policy.
func NewResolver(store ObjectStore, policy config.MediaPolicy, metrics MetricsRecorder, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, policy: policy, metrics: metrics, logger: logger}
}

// CleanHint normalizes a raw folder hint: trims whitespace, strips the
// legacy "autos/" prefix and surrounding slashes.
func CleanHint(raw string) string {
	h := strings.TrimSpace(raw)
	h = legacyPrefix.ReplaceAllString(h, "")
	return strings.Trim(h, "/")
}

// Resolve queries the store for files under candidate spellings of the
// folder hint and returns ordered, deduplicated, classified public
// URLs. Images are listed before videos; within a class, entries keep
// name order. Resolve never fails: transport errors and hints with no
// matching folder yield an empty list, so one vehicle's broken media
// cannot abort a feed load.
func (r *Resolver) Resolve(ctx context.Context, folderHint string) []model.MediaAsset {
	start := time.Now()
	defer func() {
		if r.metrics != nil {
			r.metrics.RecordResolveLatency(time.Since(start))
		}
	}()

	for _, candidate := range candidates(folderHint) {
		objects, ok := r.listWithRetry(ctx, candidate)
		if !ok {
			continue
		}
		return r.buildAssets(candidate, objects)
	}

	if r.metrics != nil {
		r.metrics.RecordMediaResolveFailure()
	}
	return nil
}

// candidates returns the ordered, deduplicated path spellings to try:
// the raw trimmed hint, the hint without the legacy prefix, and the
// same with surrounding slashes stripped. Empty spellings are skipped.
func candidates(folderHint string) []string {
	c1 := strings.TrimSpace(folderHint)
	c2 := legacyPrefix.ReplaceAllString(c1, "")
	c3 := strings.Trim(c2, "/")

	seen := make(map[string]struct{}, 3)
	var out []string
	for _, c := range []string{c1, c2, c3} {
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// listWithRetry lists one candidate path, retrying once with a
// trailing separator when the first attempt comes back empty. The
// store distinguishes exact-path listings from prefix listings, so the
// two spellings can differ in result.
func (r *Resolver) listWithRetry(ctx context.Context, candidate string) ([]storage.Object, bool) {
	objects, err := r.store.List(ctx, candidate)
	if err != nil {
		r.logger.Warn("media listing failed",
			slog.String("path", candidate),
			slog.String("error", err.Error()),
		)
	} else if len(objects) > 0 {
		return objects, true
	}

	alt := strings.TrimRight(candidate, "/") + "/"
	if alt == candidate {
		return nil, false
	}

	objects, err = r.store.List(ctx, alt)
	if err != nil {
		r.logger.Warn("media listing failed",
			slog.String("path", alt),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	if len(objects) == 0 {
		return nil, false
	}
	return objects, true
}

// buildAssets filters a listing by the active policy, resolves public
// URLs and applies the ordering invariant.
func (r *Resolver) buildAssets(folder string, objects []storage.Object) []model.MediaAsset {
	folder = strings.TrimRight(folder, "/")

	type entry struct {
		name  string
		asset model.MediaAsset
	}
	var entries []entry

	for _, obj := range objects {
		kind, mime, ok := Classify(obj.Name)
		if !ok {
			continue
		}
		if kind == model.MediaKindVideo && r.policy != config.MediaPolicyAll {
			continue
		}

		asset := model.MediaAsset{
			URL:  r.store.PublicURL(folder + "/" + obj.Name),
			Kind: kind,
		}
		if kind == model.MediaKindVideo {
			asset.MIME = mime
		}
		entries = append(entries, entry{name: obj.Name, asset: asset})
	}

	// Images before videos, then by name.
	sort.SliceStable(entries, func(i, j int) bool {
		ki, kj := entries[i].asset.Kind, entries[j].asset.Kind
		if ki != kj {
			return ki == model.MediaKindImage
		}
		return entries[i].name < entries[j].name
	})

	assets := make([]model.MediaAsset, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.asset.URL]; dup {
			continue
		}
		seen[e.asset.URL] = struct{}{}
		assets = append(assets, e.asset)
	}
	return assets
}
