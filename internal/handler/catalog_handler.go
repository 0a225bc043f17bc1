package handler

import (
	"log/slog"
	"net/http"
	"time"
)

// CatalogHandler serves the catalog maintenance endpoints.
type CatalogHandler struct {
	catalog CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalogService CatalogService, logger *slog.Logger) *CatalogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandler{catalog: catalogService, logger: logger}
}

// refreshResponse is the body of POST /api/catalog/refresh.
type refreshResponse struct {
	VehicleCount int       `json:"vehicle_count"`
	Generation   uint64    `json:"generation"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// RefreshCatalog handles POST /api/catalog/refresh: a forced reload of
// the feed. A feed failure answers 502; the snapshot is already empty
// by then, so callers see the same state the catalog serves.
func (c *CatalogHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	snap, err := c.catalog.Refresh(r.Context())
	if err != nil {
		c.logger.Error("manual catalog refresh failed",
			slog.String("error", err.Error()),
		)
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{
		VehicleCount: len(snap.Vehicles),
		Generation:   snap.Generation,
		LoadedAt:     snap.LoadedAt,
	})
}
