package domain

import "errors"

// Expected domain outcomes. Anything not listed here is treated as a
// storage/system fault and surfaced generically.
var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrNoSeatsAvailable  = errors.New("no seats available")
	ErrPaymentFailed     = errors.New("payment failed")
	ErrAlreadyCancelled  = errors.New("booking already cancelled")
	ErrInvalidDate       = errors.New("invalid date format, expected YYYY-MM-DD")
)
