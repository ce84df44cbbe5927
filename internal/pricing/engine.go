package pricing

import (
	"math"

	"github.com/Domenick1991/flightsim/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Engine computes the dynamic price for a flight snapshot. It is a pure
// function of the snapshot and the injected clock; callers decide whether to
// persist the result in fare history.
type Engine struct {
	clock clockwork.Clock
}

func NewEngine(clock clockwork.Clock) *Engine {
	return &Engine{clock: clock}
}

// Quote multiplies the base fare by demand, seat-scarcity, time-to-departure
// and tier factors and rounds to two decimals.
func (e *Engine) Quote(f *domain.Flight) float64 {
	price := f.BaseFare *
		demandFactor(f.Demand) *
		seatFactor(f.AvailableSeats, f.TotalSeats) *
		timeFactor(e.hoursToDeparture(f)) *
		tierFactor(f.PricingTier)
	return round2(price)
}

// demandFactor maps demand 0..100 onto [0.8, 1.6].
func demandFactor(demand int) float64 {
	return 0.8 + (float64(demand)/100.0)*0.8
}

func seatFactor(available, total int) float64 {
	if total < 1 {
		total = 1
	}
	remainingPct := float64(available) / float64(total) * 100
	switch {
	case remainingPct <= 10:
		return 2.0
	case remainingPct <= 30:
		return 1.4
	case remainingPct <= 60:
		return 1.0
	default:
		return 0.9
	}
}

func timeFactor(hoursLeft float64) float64 {
	switch {
	case hoursLeft <= 6:
		return 1.5
	case hoursLeft <= 24:
		return 1.2
	case hoursLeft <= 72:
		return 1.0
	default:
		return 0.85
	}
}

func tierFactor(tier domain.PricingTier) float64 {
	switch tier {
	case domain.TierEconomy:
		return 0.95
	case domain.TierPremium:
		return 1.35
	default:
		return 1.0
	}
}

func (e *Engine) hoursToDeparture(f *domain.Flight) float64 {
	hours := f.DepartureTime.Sub(e.clock.Now()).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
