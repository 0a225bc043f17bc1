package filter

import (
	"reflect"
	"testing"

	"github.com/santiago/autovidriera/internal/model"
)

func sampleVehicles() []model.Vehicle {
	return []model.Vehicle{
		{ID: "a", Brand: "Toyota", Model: "Corolla", Price: 18000, Year: 2018, Mileage: 60000, Color: "Blanco", Transmission: "Automática", FuelType: "Nafta"},
		{ID: "b", Brand: "Ford", Model: "Fiesta", Price: 8500, Year: 2015, Mileage: 95000, Color: "Rojo", Transmission: "Manual", FuelType: "Nafta"},
		{ID: "c", Brand: "Volkswagen", Model: "Gol Trend", Price: 9500, Year: 2016, Mileage: 120000, Color: "Gris", Transmission: "Manual", FuelType: "GNC"},
		{ID: "d", Brand: "Toyota", Model: "Hilux", Price: 35000, Year: 2021, Mileage: 30000, Color: "Blanco", Transmission: "Manual", FuelType: "Diésel"},
	}
}

func ids(vehicles []model.Vehicle) []string {
	out := make([]string, len(vehicles))
	for i, v := range vehicles {
		out[i] = v.ID
	}
	return out
}

func TestComputeDomain_DistinctSortedValues(t *testing.T) {
	domain := ComputeDomain(sampleVehicles())

	wantBrands := []string{"Ford", "Toyota", "Volkswagen"}
	if !reflect.DeepEqual(domain.Brands, wantBrands) {
		t.Errorf("Brands = %v, want %v", domain.Brands, wantBrands)
	}

	wantFuels := []string{"Diésel", "GNC", "Nafta"}
	if !reflect.DeepEqual(domain.FuelTypes, wantFuels) {
		t.Errorf("FuelTypes = %v, want %v", domain.FuelTypes, wantFuels)
	}
}

func TestComputeDomain_WidensAgainstBaselines(t *testing.T) {
	domain := ComputeDomain(sampleVehicles())

	// Observed max price 35000 < baseline ceiling 50000.
	if domain.PriceRange != (model.Range{Min: 0, Max: 50000}) {
		t.Errorf("PriceRange = %+v, want {0 50000}", domain.PriceRange)
	}
	if domain.YearRange != (model.Range{Min: 2000, Max: 2025}) {
		t.Errorf("YearRange = %+v, want {2000 2025}", domain.YearRange)
	}
	if domain.MileageRange != (model.Range{Min: 0, Max: 300000}) {
		t.Errorf("MileageRange = %+v, want {0 300000}", domain.MileageRange)
	}
}

func TestComputeDomain_ObservedMaxBeyondBaselineWins(t *testing.T) {
	vehicles := []model.Vehicle{
		{Brand: "Mercedes", Model: "Sprinter", Price: 72000, Year: 2026, Mileage: 410000},
	}

	domain := ComputeDomain(vehicles)

	if domain.PriceRange.Max != 72000 {
		t.Errorf("PriceRange.Max = %d, want 72000", domain.PriceRange.Max)
	}
	if domain.YearRange.Max != 2026 {
		t.Errorf("YearRange.Max = %d, want 2026", domain.YearRange.Max)
	}
	if domain.MileageRange.Max != 410000 {
		t.Errorf("MileageRange.Max = %d, want 410000", domain.MileageRange.Max)
	}
}

func TestComputeDomain_EmptyCollection_YieldsBaselines(t *testing.T) {
	domain := ComputeDomain(nil)

	if domain.PriceRange != (model.Range{Min: 0, Max: 50000}) {
		t.Errorf("PriceRange = %+v", domain.PriceRange)
	}
	if len(domain.Brands) != 0 {
		t.Errorf("Brands = %v, want empty", domain.Brands)
	}
}

func TestEvaluate_DefaultSpecPassesEverything(t *testing.T) {
	vehicles := sampleVehicles()
	spec := DefaultSpec(ComputeDomain(vehicles))

	got := Evaluate(vehicles, spec)

	if !reflect.DeepEqual(ids(got), ids(vehicles)) {
		t.Errorf("ids = %v, want full pass-through %v", ids(got), ids(vehicles))
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	vehicles := sampleVehicles()
	domain := ComputeDomain(vehicles)
	spec := DefaultSpec(domain)
	spec.Brands = []string{"Toyota"}
	spec.Search = "co"

	first := Evaluate(vehicles, spec)
	second := Evaluate(vehicles, spec)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated evaluation differs: %v vs %v", ids(first), ids(second))
	}
}

func TestEvaluate_SearchCaseInsensitive(t *testing.T) {
	vehicles := sampleVehicles()
	domain := ComputeDomain(vehicles)

	for _, term := range []string{"toy", "TOY", "ToY"} {
		spec := DefaultSpec(domain)
		spec.Search = term

		got := Evaluate(vehicles, spec)
		if !reflect.DeepEqual(ids(got), []string{"a", "d"}) {
			t.Errorf("search %q ids = %v, want [a d]", term, ids(got))
		}
	}
}

func TestEvaluate_SearchMatchesModelToo(t *testing.T) {
	vehicles := sampleVehicles()
	spec := DefaultSpec(ComputeDomain(vehicles))
	spec.Search = "gol"

	got := Evaluate(vehicles, spec)
	if !reflect.DeepEqual(ids(got), []string{"c"}) {
		t.Errorf("ids = %v, want [c]", ids(got))
	}
}

func TestEvaluate_ConjunctiveNarrowing(t *testing.T) {
	vehicles := sampleVehicles()
	domain := ComputeDomain(vehicles)

	specA := DefaultSpec(domain)
	specA.Transmissions = []string{"Manual"}

	specB := specA
	specB.Brands = []string{"Toyota"}

	resultA := Evaluate(vehicles, specA)
	resultB := Evaluate(vehicles, specB)

	if len(resultB) > len(resultA) {
		t.Fatalf("narrowed spec returned more: %d > %d", len(resultB), len(resultA))
	}
	inA := make(map[string]struct{})
	for _, v := range resultA {
		inA[v.ID] = struct{}{}
	}
	for _, v := range resultB {
		if _, ok := inA[v.ID]; !ok {
			t.Errorf("vehicle %s in narrowed result but not in wider one", v.ID)
		}
	}
}

func TestEvaluate_NumericRanges(t *testing.T) {
	vehicles := sampleVehicles()
	domain := ComputeDomain(vehicles)

	spec := DefaultSpec(domain)
	spec.PriceRange = model.Range{Min: 9000, Max: 20000}

	got := Evaluate(vehicles, spec)
	if !reflect.DeepEqual(ids(got), []string{"a", "c"}) {
		t.Errorf("ids = %v, want [a c]", ids(got))
	}

	// Inclusive bounds.
	spec = DefaultSpec(domain)
	spec.PriceRange = model.Range{Min: 8500, Max: 8500}

	got = Evaluate(vehicles, spec)
	if !reflect.DeepEqual(ids(got), []string{"b"}) {
		t.Errorf("ids = %v, want [b]", ids(got))
	}
}

func TestEvaluate_MultipleSelectionsWithinDimensionAreUnion(t *testing.T) {
	vehicles := sampleVehicles()
	spec := DefaultSpec(ComputeDomain(vehicles))
	spec.Brands = []string{"Ford", "Volkswagen"}

	got := Evaluate(vehicles, spec)
	if !reflect.DeepEqual(ids(got), []string{"b", "c"}) {
		t.Errorf("ids = %v, want [b c]", ids(got))
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	vehicles := sampleVehicles()
	before := ids(vehicles)
	spec := DefaultSpec(ComputeDomain(vehicles))
	spec.Brands = []string{"Ford"}

	Evaluate(vehicles, spec)

	if !reflect.DeepEqual(ids(vehicles), before) {
		t.Error("Evaluate reordered the input slice")
	}
}

func TestActiveChips_DefaultSpecHasNone(t *testing.T) {
	domain := ComputeDomain(sampleVehicles())

	chips := ActiveChips(DefaultSpec(domain), domain)
	if len(chips) != 0 {
		t.Errorf("chips = %v, want none", chips)
	}
}

func TestActiveChips_OnePerConstraint(t *testing.T) {
	domain := ComputeDomain(sampleVehicles())

	spec := DefaultSpec(domain)
	spec.Brands = []string{"Toyota", "Ford"}
	spec.PriceRange = model.Range{Min: 0, Max: 20000}
	spec.Search = "co"

	chips := ActiveChips(spec, domain)

	if len(chips) != 4 {
		t.Fatalf("len(chips) = %d, want 4: %v", len(chips), chips)
	}

	kinds := map[model.ChipKind]int{}
	for _, c := range chips {
		kinds[c.Kind]++
	}
	if kinds[model.ChipBrand] != 2 {
		t.Errorf("brand chips = %d, want 2", kinds[model.ChipBrand])
	}
	if kinds[model.ChipPrice] != 1 || kinds[model.ChipSearch] != 1 {
		t.Errorf("chip kinds = %v", kinds)
	}
}

func TestRemoveChip_ResetsOnlyThatConstraint(t *testing.T) {
	domain := ComputeDomain(sampleVehicles())

	spec := DefaultSpec(domain)
	spec.Brands = []string{"Toyota", "Ford"}
	spec.PriceRange = model.Range{Min: 0, Max: 20000}
	spec.Search = "co"

	out := RemoveChip(spec, domain, model.Chip{Kind: model.ChipBrand, Value: "Toyota"})
	if !reflect.DeepEqual(out.Brands, []string{"Ford"}) {
		t.Errorf("Brands = %v, want [Ford]", out.Brands)
	}
	if out.PriceRange != spec.PriceRange || out.Search != spec.Search {
		t.Error("RemoveChip touched unrelated constraints")
	}

	out = RemoveChip(spec, domain, model.Chip{Kind: model.ChipPrice})
	if out.PriceRange != domain.PriceRange {
		t.Errorf("PriceRange = %+v, want domain default %+v", out.PriceRange, domain.PriceRange)
	}

	out = RemoveChip(spec, domain, model.Chip{Kind: model.ChipSearch})
	if out.Search != "" {
		t.Errorf("Search = %q, want empty", out.Search)
	}
}
