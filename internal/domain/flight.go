package domain

import "time"

type PricingTier string

const (
	TierEconomy  PricingTier = "economy"
	TierStandard PricingTier = "standard"
	TierPremium  PricingTier = "premium"
)

type Flight struct {
	ID             int64
	Airline        string
	FlightNumber   string
	Source         string
	Destination    string
	DepartureTime  time.Time
	ArrivalTime    time.Time
	TotalSeats     int
	AvailableSeats int
	BaseFare       float64
	PricingTier    PricingTier
	Demand         int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (f *Flight) DurationMinutes() int {
	return int(f.ArrivalTime.Sub(f.DepartureTime).Minutes())
}
