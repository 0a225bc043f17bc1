package filter

import (
	"fmt"

	"github.com/santiago/autovidriera/internal/model"
)

// ActiveChips derives one human-readable chip per constraint that
// differs from the domain defaults: one chip per selected categorical
// value, one per narrowed numeric range, one for a non-empty search
// term. Which constraints count as active requires knowing the default
// domain bounds, which is why this lives with the evaluator.
func ActiveChips(spec model.FilterSpec, domain model.FilterDomain) []model.Chip {
	var chips []model.Chip

	for _, b := range spec.Brands {
		chips = append(chips, model.Chip{Kind: model.ChipBrand, Value: b, Label: "Marca: " + b})
	}
	for _, tr := range spec.Transmissions {
		chips = append(chips, model.Chip{Kind: model.ChipTransmission, Value: tr, Label: "Transmisión: " + tr})
	}
	for _, c := range spec.Colors {
		chips = append(chips, model.Chip{Kind: model.ChipColor, Value: c, Label: "Color: " + c})
	}
	for _, f := range spec.FuelTypes {
		chips = append(chips, model.Chip{Kind: model.ChipFuelType, Value: f, Label: "Combustible: " + f})
	}

	if spec.PriceRange != domain.PriceRange {
		chips = append(chips, model.Chip{
			Kind:  model.ChipPrice,
			Label: fmt.Sprintf("Precio: %d–%d", spec.PriceRange.Min, spec.PriceRange.Max),
		})
	}
	if spec.YearRange != domain.YearRange {
		chips = append(chips, model.Chip{
			Kind:  model.ChipYear,
			Label: fmt.Sprintf("Año: %d–%d", spec.YearRange.Min, spec.YearRange.Max),
		})
	}
	if spec.MileageRange != domain.MileageRange {
		chips = append(chips, model.Chip{
			Kind:  model.ChipMileage,
			Label: fmt.Sprintf("Kilometraje: %d–%d", spec.MileageRange.Min, spec.MileageRange.Max),
		})
	}

	if s := spec.Search; s != "" {
		chips = append(chips, model.Chip{Kind: model.ChipSearch, Value: s, Label: "Búsqueda: " + s})
	}

	return chips
}

// RemoveChip returns a copy of the spec with only the constraint the
// chip names reset to its "no constraint" state. All other constraints
// are untouched.
func RemoveChip(spec model.FilterSpec, domain model.FilterDomain, chip model.Chip) model.FilterSpec {
	out := spec
	switch chip.Kind {
	case model.ChipBrand:
		out.Brands = without(spec.Brands, chip.Value)
	case model.ChipTransmission:
		out.Transmissions = without(spec.Transmissions, chip.Value)
	case model.ChipColor:
		out.Colors = without(spec.Colors, chip.Value)
	case model.ChipFuelType:
		out.FuelTypes = without(spec.FuelTypes, chip.Value)
	case model.ChipPrice:
		out.PriceRange = domain.PriceRange
	case model.ChipYear:
		out.YearRange = domain.YearRange
	case model.ChipMileage:
		out.MileageRange = domain.MileageRange
	case model.ChipSearch:
		out.Search = ""
	}
	return out
}

// without returns a new slice with every occurrence of value removed.
func without(values []string, value string) []string {
	var out []string
	for _, v := range values {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
