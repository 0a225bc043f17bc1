// Package filter derives filter option domains and evaluates filter
// specifications over the vehicle collection. Every function here is
// pure: same inputs, same outputs, no mutation of arguments, safe to
// re-run on every change to the records or the spec.
package filter

import (
	"sort"
	"strings"

	"github.com/santiago/autovidriera/internal/model"
)

// ComputeDomain returns the distinct categorical values and observed
// numeric bounds of the collection. Numeric bounds are widened, never
// narrowed, against the fixed baselines so the UI never presents a
// range smaller than the defaults.
func ComputeDomain(vehicles []model.Vehicle) model.FilterDomain {
	domain := model.FilterDomain{
		Brands:        distinct(vehicles, func(v model.Vehicle) string { return v.Brand }),
		Transmissions: distinct(vehicles, func(v model.Vehicle) string { return v.Transmission }),
		Colors:        distinct(vehicles, func(v model.Vehicle) string { return v.Color }),
		FuelTypes:     distinct(vehicles, func(v model.Vehicle) string { return v.FuelType }),
		PriceRange:    model.Range{Min: 0, Max: model.DefaultPriceCeiling},
		YearRange:     model.Range{Min: model.DefaultYearFloor, Max: model.DefaultYearCeiling},
		MileageRange:  model.Range{Min: 0, Max: model.DefaultMileageCeiling},
	}

	for _, v := range vehicles {
		if v.Price > domain.PriceRange.Max {
			domain.PriceRange.Max = v.Price
		}
		if v.Year < domain.YearRange.Min {
			domain.YearRange.Min = v.Year
		}
		if v.Year > domain.YearRange.Max {
			domain.YearRange.Max = v.Year
		}
		if v.Mileage > domain.MileageRange.Max {
			domain.MileageRange.Max = v.Mileage
		}
	}

	return domain
}

// DefaultSpec returns the all-pass specification for a domain: no
// categorical selections, no search, numeric ranges at the domain
// bounds.
func DefaultSpec(domain model.FilterDomain) model.FilterSpec {
	return model.FilterSpec{
		PriceRange:   domain.PriceRange,
		YearRange:    domain.YearRange,
		MileageRange: domain.MileageRange,
	}
}

// Evaluate returns the vehicles passing every constraint of the spec,
// in input order. All dimensions are conjunctive. An empty categorical
// selection set means "no constraint", not "nothing passes".
func Evaluate(vehicles []model.Vehicle, spec model.FilterSpec) []model.Vehicle {
	search := strings.ToLower(strings.TrimSpace(spec.Search))

	out := make([]model.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if search != "" &&
			!strings.Contains(strings.ToLower(v.Brand), search) &&
			!strings.Contains(strings.ToLower(v.Model), search) {
			continue
		}
		if !selectionPasses(spec.Brands, v.Brand) {
			continue
		}
		if !selectionPasses(spec.Transmissions, v.Transmission) {
			continue
		}
		if !selectionPasses(spec.Colors, v.Color) {
			continue
		}
		if !selectionPasses(spec.FuelTypes, v.FuelType) {
			continue
		}
		if !spec.PriceRange.Contains(v.Price) {
			continue
		}
		if !spec.YearRange.Contains(v.Year) {
			continue
		}
		if !spec.MileageRange.Contains(v.Mileage) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// selectionPasses reports whether the value passes the selection set.
// Empty set means no constraint.
func selectionPasses(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

// distinct collects the sorted distinct non-empty values of one field.
func distinct(vehicles []model.Vehicle, field func(model.Vehicle) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, v := range vehicles {
		val := field(v)
		if val == "" {
			continue
		}
		if _, dup := seen[val]; dup {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	sort.Strings(out)
	return out
}
