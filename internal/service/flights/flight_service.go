package flights

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/Domenick1991/flightsim/internal/domain"
	"github.com/Domenick1991/flightsim/internal/metrics"
	"github.com/Domenick1991/flightsim/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context, sortBy, order string) ([]PricedFlight, error)
	Search(ctx context.Context, params SearchParams) ([]PricedFlight, error)
	GetWithPrice(ctx context.Context, id int64) (*PricedFlight, error)
	AirlineSchedules(ctx context.Context, airline string) ([]domain.Flight, error)
	FareHistory(ctx context.Context, flightID int64, limit int) ([]domain.FareRecord, error)
}

// PricedFlight is a flight snapshot with its dynamic price at the moment of
// the query.
type PricedFlight struct {
	Flight          domain.Flight
	DurationMinutes int
	DynamicPrice    float64
}

type SearchParams struct {
	Origin      string
	Destination string
	Date        string // optional, YYYY-MM-DD
	SortBy      string // "price" or anything else for duration
	Order       string // "asc" (default) or "desc"
}

type Quoter interface {
	Quote(f *domain.Flight) float64
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
}

type FlightService struct {
	repo   repository.FlightRepository
	fares  repository.FareRepository
	pricer Quoter
	cache  Cache
}

func NewFlightService(repo repository.FlightRepository, fares repository.FareRepository, pricer Quoter, cache Cache) *FlightService {
	return &FlightService{repo: repo, fares: fares, pricer: pricer, cache: cache}
}

// List returns all flights with fresh prices. The raw flight list is served
// cache-aside; prices are recomputed per call since they depend on the clock.
// Listings are ephemeral quotes and do not touch fare history.
func (s *FlightService) List(ctx context.Context, sortBy, order string) ([]PricedFlight, error) {
	flights, err := s.cachedFlights(ctx)
	if err != nil {
		return nil, err
	}

	priced := s.priceAll(flights)
	sortPriced(priced, sortBy, order)
	return priced, nil
}

func (s *FlightService) Search(ctx context.Context, params SearchParams) ([]PricedFlight, error) {
	if params.Origin == "" || params.Destination == "" {
		return nil, errors.New("origin and destination are required")
	}

	flights, err := s.repo.Search(ctx, params.Origin, params.Destination)
	if err != nil {
		return nil, err
	}

	if params.Date != "" {
		date, err := time.Parse("2006-01-02", params.Date)
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		filtered := flights[:0]
		for _, f := range flights {
			y1, m1, d1 := f.DepartureTime.UTC().Date()
			y2, m2, d2 := date.Date()
			if y1 == y2 && m1 == m2 && d1 == d2 {
				filtered = append(filtered, f)
			}
		}
		flights = filtered
	}

	if len(flights) == 0 {
		return nil, domain.ErrFlightNotFound
	}

	priced := s.priceAll(flights)
	sortPriced(priced, params.SortBy, params.Order)
	return priced, nil
}

// GetWithPrice computes a fresh dynamic price and appends it to fare history
// as a side effect. The append is diagnostic and never fails the call.
func (s *FlightService) GetWithPrice(ctx context.Context, id int64) (*PricedFlight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	price := s.pricer.Quote(flight)
	if err := s.fares.Record(ctx, flight.ID, price); err != nil {
		metrics.FareRecordFailures.Inc()
		log.Printf("WARNING: fare history append failed for flight %d: %v", flight.ID, err)
	} else {
		metrics.FareRecordsTotal.Inc()
	}

	return &PricedFlight{
		Flight:          *flight,
		DurationMinutes: flight.DurationMinutes(),
		DynamicPrice:    price,
	}, nil
}

func (s *FlightService) AirlineSchedules(ctx context.Context, airline string) ([]domain.Flight, error) {
	return s.repo.ListByAirline(ctx, airline)
}

func (s *FlightService) FareHistory(ctx context.Context, flightID int64, limit int) ([]domain.FareRecord, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	if _, err := s.repo.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	return s.fares.ListByFlight(ctx, flightID, limit)
}

func (s *FlightService) cachedFlights(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) priceAll(flights []domain.Flight) []PricedFlight {
	priced := make([]PricedFlight, 0, len(flights))
	for i := range flights {
		f := flights[i]
		priced = append(priced, PricedFlight{
			Flight:          f,
			DurationMinutes: f.DurationMinutes(),
			DynamicPrice:    s.pricer.Quote(&f),
		})
	}
	return priced
}

// sortPriced sorts by price when asked, duration otherwise; unknown sort
// keys fall through to duration.
func sortPriced(priced []PricedFlight, sortBy, order string) {
	if sortBy == "" {
		return
	}
	desc := order == "desc"
	sort.SliceStable(priced, func(i, j int) bool {
		a, b := sortKey(priced[i], sortBy), sortKey(priced[j], sortBy)
		if desc {
			return a > b
		}
		return a < b
	})
}

func sortKey(p PricedFlight, sortBy string) float64 {
	if sortBy == "price" {
		return p.DynamicPrice
	}
	return float64(p.DurationMinutes)
}

var _ FlightUseCase = (*FlightService)(nil)
