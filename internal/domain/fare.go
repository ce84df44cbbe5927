package domain

import "time"

// FareRecord is an append-only audit entry of a computed dynamic price.
type FareRecord struct {
	ID         int64
	FlightID   int64
	RecordedAt time.Time
	Price      float64
}
