package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/santiago/autovidriera/internal/model"
)

// ErrorResponseBody is the unified API error response format. Category
// and action tell the caller what kind of failure it was and what to do.
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// WriteErrorResponse writes an error in the unified format. Every API
// endpoint answers errors through this.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// WriteInternalServerError writes the generic internal-error response.
// Details go to the log only; the caller gets a generic message.
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}
