package booking

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Domenick1991/flightsim/internal/domain"
	"github.com/Domenick1991/flightsim/internal/kafka"
	"github.com/Domenick1991/flightsim/internal/metrics"
	"github.com/Domenick1991/flightsim/internal/repository"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	RetryPayment(ctx context.Context, pnr string, force *bool) (*domain.Booking, error)
	CancelBooking(ctx context.Context, pnr string) (*domain.Booking, error)
	GetBooking(ctx context.Context, pnr string) (*domain.Booking, error)
	ListBookings(ctx context.Context, limit int) ([]domain.Booking, error)
}

// Quoter computes the dynamic price for a flight snapshot.
type Quoter interface {
	Quote(f *domain.Flight) float64
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Rand is the randomness source for payment outcomes and PNR generation.
// Injected so tests can script outcomes; *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type BookingService struct {
	txm                repository.Transactor
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	passengers         repository.PassengerRepository
	fares              repository.FareRepository
	pricer             Quoter
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	rng                Rand
	clock              clockwork.Clock
}

type CreateBookingInput struct {
	FlightID       int64  `json:"flight_id"`
	PassengerName  string `json:"passenger_name"`
	PassengerEmail string `json:"passenger_email"`
	PassengerPhone string `json:"passenger_phone"`
	SeatNumber     string `json:"seat_number"`
	ForcePayment   *bool  `json:"force_payment_success"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	txm repository.Transactor,
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	fares repository.FareRepository,
	pricer Quoter,
	producer Producer,
	bookingTopic string,
	rng Rand,
	clock clockwork.Clock,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		txm:          txm,
		bookings:     bookings,
		flights:      flights,
		passengers:   passengers,
		fares:        fares,
		pricer:       pricer,
		producer:     producer,
		bookingTopic: bookingTopic,
		rng:          rng,
		clock:        clock,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking runs the whole reservation as one transaction: lock the
// flight row, take exactly one seat, resolve the passenger, price the
// decremented snapshot, simulate payment and persist the booking. Payment
// failure still commits (seat held, PAYMENT_FAILED row) so the attempt is
// auditable and retryable; the caller additionally gets ErrPaymentFailed.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if strings.TrimSpace(input.PassengerName) == "" {
		return nil, errors.New("passenger name is required")
	}

	var created *domain.Booking
	var paymentRef string

	err := s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		flight, err := s.flights.GetForUpdate(ctx, input.FlightID)
		if err != nil {
			return err
		}
		if flight.AvailableSeats <= 0 {
			return domain.ErrNoSeatsAvailable
		}

		flight.AvailableSeats--
		if err := s.flights.UpdateSeats(ctx, flight.ID, flight.AvailableSeats); err != nil {
			return err
		}

		passenger, err := s.resolvePassenger(ctx, input)
		if err != nil {
			return err
		}

		price := s.pricer.Quote(flight)

		paid, ref := s.simulatePayment(input.ForcePayment)
		paymentRef = ref
		status := domain.BookingStatusConfirmed
		if !paid {
			status = domain.BookingStatusPaymentFailed
		}

		b := &domain.Booking{
			FlightID:     flight.ID,
			PassengerID:  passenger.ID,
			PNR:          s.generatePNR(),
			SeatNumber:   input.SeatNumber,
			Status:       status,
			PricePerSeat: price,
			TotalPrice:   price,
			BookingDate:  s.clock.Now().UTC(),
		}
		if err := s.bookings.Create(ctx, b); err != nil {
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordFare(ctx, created.FlightID, created.PricePerSeat)
	metrics.BookingsTotal.WithLabelValues(string(created.Status)).Inc()

	if created.Status == domain.BookingStatusPaymentFailed {
		s.publish(ctx, "payment_failed", created, paymentRef)
		return created, domain.ErrPaymentFailed
	}
	s.publish(ctx, "booking_confirmed", created, paymentRef)
	return created, nil
}

// RetryPayment re-runs the payment simulation for a PAYMENT_FAILED booking.
// The seat is already held, so no inventory re-validation happens here.
func (s *BookingService) RetryPayment(ctx context.Context, pnr string, force *bool) (*domain.Booking, error) {
	current, err := s.bookings.GetByPNR(ctx, pnr)
	if err != nil {
		return nil, err
	}
	switch current.Status {
	case domain.BookingStatusConfirmed:
		return current, nil
	case domain.BookingStatusCancelled:
		return nil, domain.ErrAlreadyCancelled
	}

	paid, ref := s.simulatePayment(force)
	status := domain.BookingStatusConfirmed
	if !paid {
		status = domain.BookingStatusPaymentFailed
	}

	updated, err := s.bookings.UpdateStatus(ctx, pnr, status)
	if err != nil {
		return nil, err
	}

	if !paid {
		s.publish(ctx, "payment_failed", updated, ref)
		return updated, domain.ErrPaymentFailed
	}
	s.publish(ctx, "payment_retried", updated, ref)
	return updated, nil
}

// CancelBooking locks the booking and its flight in one transaction,
// releases the held seat (capped at total_seats) and marks the booking
// CANCELLED. Works from CONFIRMED and from PAYMENT_FAILED, where the seat is
// also still held.
func (s *BookingService) CancelBooking(ctx context.Context, pnr string) (*domain.Booking, error) {
	var cancelled *domain.Booking

	err := s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.bookings.GetByPNRForUpdate(ctx, pnr)
		if err != nil {
			return err
		}
		if current.Status == domain.BookingStatusCancelled {
			return domain.ErrAlreadyCancelled
		}

		flight, err := s.flights.GetForUpdate(ctx, current.FlightID)
		if err != nil {
			return err
		}

		seats := flight.AvailableSeats + 1
		if seats > flight.TotalSeats {
			seats = flight.TotalSeats
		}
		if err := s.flights.UpdateSeats(ctx, flight.ID, seats); err != nil {
			return err
		}

		cancelled, err = s.bookings.UpdateStatus(ctx, pnr, domain.BookingStatusCancelled)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.CancellationsTotal.Inc()
	s.publish(ctx, "booking_cancelled", cancelled, "")
	return cancelled, nil
}

func (s *BookingService) GetBooking(ctx context.Context, pnr string) (*domain.Booking, error) {
	return s.bookings.GetByPNR(ctx, pnr)
}

func (s *BookingService) ListBookings(ctx context.Context, limit int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	return s.bookings.ListRecent(ctx, limit)
}

// resolvePassenger reuses an existing passenger by case-insensitive email
// match. Without an email every booking gets a fresh passenger row; name
// collisions are not deduplicated.
func (s *BookingService) resolvePassenger(ctx context.Context, input CreateBookingInput) (*domain.Passenger, error) {
	if input.PassengerEmail != "" {
		p, err := s.passengers.GetByEmail(ctx, input.PassengerEmail)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, domain.ErrPassengerNotFound) {
			return nil, err
		}
	}

	p := &domain.Passenger{
		FullName: input.PassengerName,
		Email:    input.PassengerEmail,
		Phone:    input.PassengerPhone,
	}
	if err := s.passengers.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// simulatePayment succeeds with 80% probability unless forced either way.
func (s *BookingService) simulatePayment(force *bool) (bool, string) {
	ref := uuid.NewString()
	if force != nil {
		return *force, ref
	}
	return s.rng.Intn(10) < 8, ref
}

const pnrAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generatePNR builds a 6-char random prefix plus an MMDDhhmmss timestamp
// suffix, practically unique per process.
func (s *BookingService) generatePNR() string {
	prefix := make([]byte, 6)
	for i := range prefix {
		prefix[i] = pnrAlphabet[s.rng.Intn(len(pnrAlphabet))]
	}
	return string(prefix) + s.clock.Now().UTC().Format("0102150405")
}

// recordFare appends to fare history after the booking transaction has
// committed. Fare history is diagnostic: failures are logged and dropped.
func (s *BookingService) recordFare(ctx context.Context, flightID int64, price float64) {
	if s.fares == nil {
		return
	}
	if err := s.fares.Record(ctx, flightID, price); err != nil {
		metrics.FareRecordFailures.Inc()
		log.Printf("WARNING: fare history append failed for flight %d: %v", flightID, err)
		return
	}
	metrics.FareRecordsTotal.Inc()
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking, paymentRef string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		PNR:         b.PNR,
		FlightID:    b.FlightID,
		PassengerID: b.PassengerID,
		Status:      string(b.Status),
		TotalPrice:  b.TotalPrice,
		PaymentRef:  paymentRef,
		OccurredAt:  s.clock.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, b.PNR, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %s: %v", eventType, b.PNR, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, b.PNR, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for booking %s: %v", eventType, b.PNR, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
