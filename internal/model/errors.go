package model

import "fmt"

// APIError is the unified error format. Category and Action feed the
// UI's error presentation.
type APIError struct {
	Code     string // machine-readable error code
	Message  string // human-readable message
	Category string // one of: validation, feed, catalog, system
	Action   string // suggested user action
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Defined error codes.
const (
	ErrCodeVehicleNotFound    = "VEHICLE_NOT_FOUND"
	ErrCodeInvalidFilterParam = "INVALID_FILTER_PARAM"
	ErrCodeFeedUnavailable    = "FEED_UNAVAILABLE"
	ErrCodeFeedMalformed      = "FEED_MALFORMED"
	ErrCodeContactUnavailable = "CONTACT_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// NewVehicleNotFoundError reports an unknown vehicle ID.
func NewVehicleNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeVehicleNotFound,
		Message:  fmt.Sprintf("No se encontró el vehículo: %s", id),
		Category: "catalog",
		Action:   "Verificá el identificador del vehículo.",
	}
}

// NewInvalidFilterParamError reports an unparseable filter query parameter.
func NewInvalidFilterParamError(param, value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidFilterParam,
		Message:  fmt.Sprintf("Parámetro de filtro inválido: %s=%q", param, value),
		Category: "validation",
		Action:   "Los rangos numéricos deben ser enteros.",
	}
}

// NewFeedUnavailableError reports a failed feed fetch.
func NewFeedUnavailableError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeFeedUnavailable,
		Message:  fmt.Sprintf("No se pudo obtener el listado de vehículos: %s", reason),
		Category: "feed",
		Action:   "Intentá nuevamente en unos minutos.",
	}
}

// NewFeedMalformedError reports a feed document that failed to parse.
func NewFeedMalformedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeFeedMalformed,
		Message:  fmt.Sprintf("El listado de vehículos tiene un formato inválido: %s", reason),
		Category: "feed",
		Action:   "Revisá la planilla publicada.",
	}
}

// NewContactUnavailableError reports that no contact phone is configured.
func NewContactUnavailableError() *APIError {
	return &APIError{
		Code:     ErrCodeContactUnavailable,
		Message:  "No hay un teléfono de contacto configurado.",
		Category: "system",
		Action:   "Configurá CONTACT_PHONE en el servidor.",
	}
}

// NewInternalError reports an unexpected server-side failure.
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Ocurrió un error interno.",
		Category: "system",
		Action:   "Intentá nuevamente más tarde.",
	}
}
