package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightsim/internal/domain"
)

// statusFor maps the expected domain outcomes onto HTTP statuses; anything
// unexpected is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSeatsAvailable),
		errors.Is(err, domain.ErrAlreadyCancelled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
