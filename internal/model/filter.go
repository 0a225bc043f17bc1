package model

// Baseline bounds the filter domain is widened against. The UI never
// presents a narrower range than these even when the live dataset is
// smaller.
const (
	DefaultPriceCeiling   = 50000
	DefaultYearFloor      = 2000
	DefaultYearCeiling    = 2025
	DefaultMileageCeiling = 300000
)

// Range is an inclusive numeric interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies within the inclusive interval.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// FilterSpec is the user-selected filter state. An empty selection set
// means "no constraint" (all values pass), not "nothing passes".
type FilterSpec struct {
	Search        string
	Brands        []string
	Transmissions []string
	Colors        []string
	FuelTypes     []string
	PriceRange    Range
	YearRange     Range
	MileageRange  Range
}

// FilterDomain is the derived set of selectable values and observed
// numeric bounds, recomputed whenever the vehicle collection changes.
type FilterDomain struct {
	Brands        []string `json:"brands"`
	Transmissions []string `json:"transmissions"`
	Colors        []string `json:"colors"`
	FuelTypes     []string `json:"fuel_types"`
	PriceRange    Range    `json:"price_range"`
	YearRange     Range    `json:"year_range"`
	MileageRange  Range    `json:"mileage_range"`
}

// ChipKind identifies which constraint an active-filter chip represents.
type ChipKind string

const (
	ChipBrand        ChipKind = "brand"
	ChipTransmission ChipKind = "transmission"
	ChipColor        ChipKind = "color"
	ChipFuelType     ChipKind = "fuel_type"
	ChipPrice        ChipKind = "price"
	ChipYear         ChipKind = "year"
	ChipMileage      ChipKind = "mileage"
	ChipSearch       ChipKind = "search"
)

// Chip is one human-readable active-filter summary entry. Removing a
// chip resets exactly the constraint it names back to its default.
type Chip struct {
	Kind  ChipKind `json:"kind"`
	Value string   `json:"value,omitempty"` // the selected categorical value, if any
	Label string   `json:"label"`
}
