package domain

import "time"

type BookingStatus string

const (
	// BookingStatusPending is the tentative in-transaction state; a booking
	// never survives a commit as PENDING.
	BookingStatusPending       BookingStatus = "PENDING"
	BookingStatusConfirmed     BookingStatus = "CONFIRMED"
	BookingStatusPaymentFailed BookingStatus = "PAYMENT_FAILED"
	BookingStatusCancelled     BookingStatus = "CANCELLED"
)

type Booking struct {
	ID           int64
	FlightID     int64
	PassengerID  int64
	PNR          string
	SeatNumber   string
	Status       BookingStatus
	PricePerSeat float64
	TotalPrice   float64
	BookingDate  time.Time
	UpdatedAt    time.Time
}
