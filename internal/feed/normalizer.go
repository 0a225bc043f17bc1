package feed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/santiago/autovidriera/internal/media"
	"github.com/santiago/autovidriera/internal/model"
)

// MediaResolver resolves a folder hint into classified media assets.
// It never fails; unresolvable hints yield an empty list.
type MediaResolver interface {
	Resolve(ctx context.Context, folderHint string) []model.MediaAsset
}

// Normalizer parses raw feed text into canonical vehicle records,
// resolving each row's media concurrently.
type Normalizer struct {
	resolver      MediaResolver
	aliases       FieldAliases
	maxConcurrent int
	logger        *slog.Logger
}

// NewNormalizer returns a Normalizer. maxConcurrent bounds the media
// resolution fan-out; values below 1 fall back to 10.
func NewNormalizer(resolver MediaResolver, aliases FieldAliases, maxConcurrent int, logger *slog.Logger) *Normalizer {
	if maxConcurrent < 1 {
		maxConcurrent = 10
	}
	if aliases == nil {
		aliases = DefaultAliases()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		resolver:      resolver,
		aliases:       aliases,
		maxConcurrent: maxConcurrent,
		logger:        logger,
	}
}

// Result carries the outcome of one normalization pass.
type Result struct {
	Records     []model.CanonicalVehicle
	RowsDropped int
}

// Normalize parses the raw delimited text and returns canonical
// records in feed row order. A malformed document is a hard error and
// the whole feed must be treated as unavailable. Rows missing brand or
// model are dropped silently; that is the only per-row validity gate.
func (n *Normalizer) Normalize(ctx context.Context, rawFeedText string) (*Result, error) {
	rows, err := parseRows(rawFeedText)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := &Result{}
	for _, row := range rows {
		brand := strings.TrimSpace(n.aliases.lookup(row, FieldBrand))
		mdl := strings.TrimSpace(n.aliases.lookup(row, FieldModel))
		if brand == "" || mdl == "" {
			result.RowsDropped++
			continue
		}

		result.Records = append(result.Records, model.CanonicalVehicle{
			Brand:        brand,
			Model:        mdl,
			Year:         strings.TrimSpace(n.aliases.lookup(row, FieldYear)),
			Price:        strings.TrimSpace(n.aliases.lookup(row, FieldPrice)),
			Color:        strings.TrimSpace(n.aliases.lookup(row, FieldColor)),
			Mileage:      strings.TrimSpace(n.aliases.lookup(row, FieldMileage)),
			Transmission: strings.TrimSpace(n.aliases.lookup(row, FieldTransmission)),
			FuelType:     strings.TrimSpace(n.aliases.lookup(row, FieldFuelType)),
			Description:  strings.TrimSpace(n.aliases.lookup(row, FieldDescription)),
			FolderHint:   media.CleanHint(n.aliases.lookup(row, FieldFolder)),
		})
	}

	n.resolveMedia(ctx, result.Records)

	if result.RowsDropped > 0 {
		n.logger.Info("rows dropped during normalization",
			slog.Int("dropped", result.RowsDropped),
			slog.Int("kept", len(result.Records)),
		)
	}

	return result, nil
}

// resolveMedia fans out one resolver call per record with a bounded
// semaphore and gathers results positionally, so feed row order is
// preserved regardless of completion order. A row with an empty hint
// short-circuits to no media without touching the resolver.
func (n *Normalizer) resolveMedia(ctx context.Context, records []model.CanonicalVehicle) {
	sem := make(chan struct{}, n.maxConcurrent)
	var wg sync.WaitGroup

	for i := range records {
		if records[i].FolderHint == "" {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}

		go func(rec *model.CanonicalVehicle) {
			defer wg.Done()
			defer func() { <-sem }()

			rec.Media = n.resolver.Resolve(ctx, rec.FolderHint)
		}(&records[i])
	}

	wg.Wait()
}

// parseRows reads the header-first delimited text into one
// column-name-to-value map per record line. Ragged rows are tolerated
// (missing trailing columns read as empty); quoting errors are not.
func parseRows(rawFeedText string) ([]map[string]string, error) {
	// Spreadsheet exports occasionally lead with a BOM.
	rawFeedText = strings.TrimPrefix(rawFeedText, "\uFEFF")

	r := csv.NewReader(strings.NewReader(rawFeedText))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(map[string]string, len(header))
		empty := true
		for i, col := range header {
			if i >= len(record) {
				break
			}
			v := record[i]
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			row[col] = v
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
