// Package handler exposes the catalog over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/santiago/autovidriera/internal/catalog"
	"github.com/santiago/autovidriera/internal/filter"
	"github.com/santiago/autovidriera/internal/middleware"
	"github.com/santiago/autovidriera/internal/model"
)

// CatalogService is the catalog surface the HTTP layer depends on.
type CatalogService interface {
	Snapshot() catalog.Snapshot
	Refresh(ctx context.Context) (catalog.Snapshot, error)
}

// VehicleHandler serves the vehicle listing, detail, contact and
// filter endpoints from the current catalog snapshot.
type VehicleHandler struct {
	catalog      CatalogService
	contactPhone string
	logger       *slog.Logger
}

// NewVehicleHandler creates a VehicleHandler.
func NewVehicleHandler(catalogService CatalogService, contactPhone string, logger *slog.Logger) *VehicleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &VehicleHandler{
		catalog:      catalogService,
		contactPhone: contactPhone,
		logger:       logger,
	}
}

// listResponse is the body of GET /api/vehicles.
type listResponse struct {
	Vehicles []model.Vehicle    `json:"vehicles"`
	Total    int                `json:"total"`
	Domain   model.FilterDomain `json:"domain"`
	Chips    []model.Chip       `json:"chips"`
}

// ListVehicles handles GET /api/vehicles. Query parameters narrow the
// default filter state; an absent parameter means no constraint.
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	snap := h.catalog.Snapshot()

	spec, apiErr := specFromQuery(r.URL.Query(), snap.Domain)
	if apiErr != nil {
		middleware.WriteErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	matched := filter.Evaluate(snap.Vehicles, spec)

	writeJSON(w, http.StatusOK, listResponse{
		Vehicles: matched,
		Total:    len(matched),
		Domain:   snap.Domain,
		Chips:    filter.ActiveChips(spec, snap.Domain),
	})
}

// GetVehicle handles GET /api/vehicles/{id}.
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vehicle, ok := h.findVehicle(id)
	if !ok {
		middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewVehicleNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, vehicle)
}

// contactResponse is the body of GET /api/vehicles/{id}/contact.
type contactResponse struct {
	URL     string `json:"url"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// GetContact handles GET /api/vehicles/{id}/contact: the WhatsApp deep
// link with the inquiry text prefilled for this vehicle.
func (h *VehicleHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vehicle, ok := h.findVehicle(id)
	if !ok {
		middleware.WriteErrorResponse(w, http.StatusNotFound, model.NewVehicleNotFoundError(id))
		return
	}

	if h.contactPhone == "" {
		middleware.WriteErrorResponse(w, http.StatusServiceUnavailable, model.NewContactUnavailableError())
		return
	}

	message := fmt.Sprintf("Hola! Me interesa el %s %s %d", vehicle.Brand, vehicle.Model, vehicle.Year)
	link := fmt.Sprintf("https://wa.me/%s?text=%s", h.contactPhone, url.QueryEscape(message))

	writeJSON(w, http.StatusOK, contactResponse{
		URL:     link,
		Phone:   h.contactPhone,
		Message: message,
	})
}

// filtersResponse is the body of GET /api/filters.
type filtersResponse struct {
	Domain model.FilterDomain `json:"domain"`
}

// GetFilters handles GET /api/filters: the currently selectable values
// and numeric bounds.
func (h *VehicleHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	snap := h.catalog.Snapshot()
	writeJSON(w, http.StatusOK, filtersResponse{Domain: snap.Domain})
}

// findVehicle looks an ID up in the current snapshot.
func (h *VehicleHandler) findVehicle(id string) (model.Vehicle, bool) {
	for _, v := range h.catalog.Snapshot().Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return model.Vehicle{}, false
}

// specFromQuery builds the filter state from query parameters, starting
// from the domain's defaults. Repeated categorical parameters form a
// selection set; numeric bounds override one edge of their range. Any
// unparseable numeric value is a 400.
func specFromQuery(query url.Values, domain model.FilterDomain) (model.FilterSpec, *model.APIError) {
	spec := filter.DefaultSpec(domain)

	spec.Search = query.Get("q")
	spec.Brands = query["brand"]
	spec.Transmissions = query["transmission"]
	spec.Colors = query["color"]
	spec.FuelTypes = query["fuel"]

	bounds := []struct {
		param  string
		target *int
	}{
		{"price_min", &spec.PriceRange.Min},
		{"price_max", &spec.PriceRange.Max},
		{"year_min", &spec.YearRange.Min},
		{"year_max", &spec.YearRange.Max},
		{"mileage_min", &spec.MileageRange.Min},
		{"mileage_max", &spec.MileageRange.Max},
	}
	for _, b := range bounds {
		raw := query.Get(b.param)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return model.FilterSpec{}, model.NewInvalidFilterParamError(b.param, raw)
		}
		*b.target = n
	}

	return spec, nil
}

// writeJSON writes a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// handleServiceError maps a catalog error onto the unified response
// format. Unknown errors become a generic 500.
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case model.ErrCodeFeedUnavailable, model.ErrCodeFeedMalformed:
			middleware.WriteErrorResponse(w, http.StatusBadGateway, apiErr)
			return
		}
	}
	middleware.WriteInternalServerError(w)
}
