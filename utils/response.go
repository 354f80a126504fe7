package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-commerce/services"
)

// ApiResponse is the JSON envelope every endpoint returns.
type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
}

// RespondJSON writes a success envelope.
func RespondJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ApiResponse{Success: true, Data: data, Message: message})
}

// RespondError writes a failure envelope, mapping known service errors to
// their HTTP status.
func RespondError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(err))
	json.NewEncoder(w).Encode(ApiResponse{Success: false, Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrCartNotFound),
		errors.Is(err, services.ErrCouponInvalid),
		errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponInactive),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidDiscount):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrPaymentFailed):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
