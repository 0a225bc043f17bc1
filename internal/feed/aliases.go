package feed

// FieldAliases maps each logical feed field to the ordered list of
// column headers it may appear under. The feed schema drifted across
// revisions, so lookup takes the first non-empty match. The
// "CarpetaFirebas" entry is a misspelling preserved on purpose: the
// published sheet still uses it.
type FieldAliases map[Field][]string

// Field names a logical feed column.
type Field string

const (
	FieldBrand        Field = "brand"
	FieldModel        Field = "model"
	FieldYear         Field = "year"
	FieldPrice        Field = "price"
	FieldColor        Field = "color"
	FieldMileage      Field = "mileage"
	FieldTransmission Field = "transmission"
	FieldFuelType     Field = "fuel_type"
	FieldDescription  Field = "description"
	FieldFolder       Field = "folder"
)

// DefaultAliases returns the alias table covering every header spelling
// observed across feed revisions.
func DefaultAliases() FieldAliases {
	return FieldAliases{
		FieldBrand:        {"Marca", "marca"},
		FieldModel:        {"Modelo", "modelo"},
		FieldYear:         {"Año", "año", "Ano"},
		FieldPrice:        {"Precio", "precio"},
		FieldColor:        {"Color", "color"},
		FieldMileage:      {"Kilometraje", "kilometraje", "Km"},
		FieldTransmission: {"Transmisión", "transmisión", "Transmision"},
		FieldFuelType:     {"Combustible", "combustible"},
		FieldDescription:  {"Descripción", "descripción", "Descripcion"},
		FieldFolder: {
			"fotos", "Fotos",
			"CarpetaFirebase",
			"CarpetaFirebas", // preserved misspelling
			"carpeta", "folder", "imagesFolder",
		},
	}
}

// lookup returns the first non-empty value among the field's aliases.
func (a FieldAliases) lookup(row map[string]string, field Field) string {
	for _, header := range a[field] {
		if v := row[header]; v != "" {
			return v
		}
	}
	return ""
}
