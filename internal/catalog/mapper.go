package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/santiago/autovidriera/internal/model"
)

// Fallback values for unparseable numeric fields.
const (
	fallbackYear = 2000
	idHexLength  = 12
)

// placeholderImages is the fixed two-entry media fallback: a generic
// front view and a generic interior view.
var placeholderImages = []string{
	"/placeholder.svg?height=600&width=800",
	"/placeholder.svg?height=600&width=800&text=Interior",
}

// MapVehicles converts canonical records into UI-typed vehicles. The
// mapping is total: every canonical record yields exactly one vehicle,
// whatever the state of its optional fields.
func MapVehicles(records []model.CanonicalVehicle, sanitizer *Sanitizer) []model.Vehicle {
	vehicles := make([]model.Vehicle, 0, len(records))
	seen := make(map[string]int, len(records))

	for i, rec := range records {
		id := contentID(rec)
		// Identical (brand, model, year, folder) tuples get a stable
		// ordinal suffix instead of colliding.
		seen[id]++
		if n := seen[id]; n > 1 {
			id = fmt.Sprintf("%s-%d", id, n)
		}

		description := rec.Description
		if sanitizer != nil {
			description = sanitizer.Sanitize(description)
		}
		if description == "" {
			description = strings.TrimSpace(fmt.Sprintf("%s %s %s", rec.Brand, rec.Model, rec.Year))
		}

		images := make([]string, 0, len(rec.Media))
		for _, asset := range rec.Media {
			images = append(images, asset.URL)
		}
		if len(images) == 0 {
			images = append(images, placeholderImages...)
		}

		vehicles = append(vehicles, model.Vehicle{
			ID:           id,
			Position:     i + 1,
			Brand:        rec.Brand,
			Model:        rec.Model,
			Price:        coerceDigits(rec.Price),
			Year:         coerceYear(rec.Year),
			Color:        rec.Color,
			Mileage:      coerceDigits(rec.Mileage),
			Transmission: rec.Transmission,
			FuelType:     rec.FuelType,
			Description:  description,
			Images:       images,
			Media:        rec.Media,
		})
	}

	return vehicles
}

// contentID derives a stable identifier from the fields that identify
// a vehicle across feed reorderings: brand, model, year and folder
// hint.
func contentID(rec model.CanonicalVehicle) string {
	key := strings.ToLower(strings.Join([]string{
		strings.TrimSpace(rec.Brand),
		strings.TrimSpace(rec.Model),
		strings.TrimSpace(rec.Year),
		rec.FolderHint,
	}, "\x00"))

	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:idHexLength]
}

// coerceDigits strips every non-digit character and parses the rest.
// Currency symbols, thousands separators and stray text all reduce to
// their digits; an empty or digit-free input yields 0.
func coerceDigits(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// coerceYear parses the year directly; anything unparseable falls back
// to the fixed default rather than 0 so range filters stay sane.
func coerceYear(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallbackYear
	}
	return n
}
