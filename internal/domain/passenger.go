package domain

import "time"

// Passenger is created lazily on first booking. Email, when present, is the
// natural dedup key (matched case-insensitively); bookings without an email
// always create a fresh passenger row.
type Passenger struct {
	ID        int64
	FullName  string
	Email     string
	Phone     string
	CreatedAt time.Time
}
