// Package model defines the domain model.
package model

// MediaKind classifies a resolved media asset.
type MediaKind string

const (
	// MediaKindImage marks a still image asset.
	MediaKindImage MediaKind = "image"
	// MediaKindVideo marks a playable video asset.
	MediaKindVideo MediaKind = "video"
)

// MediaAsset is a publicly dereferenceable media URL with its derived
// classification. Immutable once resolved.
type MediaAsset struct {
	URL  string    `json:"url"`
	Kind MediaKind `json:"kind"`
	// MIME carries the inferred content type for playback. Populated
	// for videos; empty when the resolver runs under the images-only
	// policy.
	MIME string `json:"mime,omitempty"`
}

// CanonicalVehicle is the normalized per-vehicle record after feed
// parsing. All scalar fields keep the feed's string form; numeric
// coercion happens in the catalog mapper. Brand and Model are always
// non-empty (rows failing that gate are dropped during normalization).
type CanonicalVehicle struct {
	Brand        string
	Model        string
	Year         string // as published, e.g. "2015"
	Price        string // locale formatted, e.g. "$12.345"
	Color        string
	Mileage      string
	Transmission string
	FuelType     string
	Description  string // optional free text
	FolderHint   string // cleaned media folder hint, may be empty
	Media        []MediaAsset
}

// Vehicle is the UI-typed record derived one-to-one from a
// CanonicalVehicle. IDs are content hashes of (brand, model, year,
// folder hint) so they survive feed reordering; Position records the
// feed row order for display sorting only.
type Vehicle struct {
	ID           string       `json:"id"`
	Position     int          `json:"position"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	Price        int          `json:"price"`
	Year         int          `json:"year"`
	Color        string       `json:"color"`
	Mileage      int          `json:"mileage"`
	Transmission string       `json:"transmission"`
	FuelType     string       `json:"fuel_type"`
	Description  string       `json:"description"`
	Images       []string     `json:"images"` // never empty
	Media        []MediaAsset `json:"media,omitempty"`
}
