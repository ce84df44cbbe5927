package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/flightsim/internal/domain"
	"github.com/Domenick1991/flightsim/internal/pricing"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// fakeTransactor runs the function directly; rollback behaviour is covered
// by the in-memory store tests.
type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedRand always returns the same value, which scripts both the payment
// draw (v < 8 succeeds) and the PNR prefix characters.
type fixedRand struct{ v int }

func (r fixedRand) Intn(n int) int { return r.v % n }

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByPNRForUpdate(ctx context.Context, pnr string) (*domain.Booking, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, pnr string, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, pnr, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListRecent(ctx context.Context, limit int) ([]domain.Booking, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListForUpdate(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListByAirline(ctx context.Context, airline string) ([]domain.Flight, error) {
	args := m.Called(ctx, airline)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) UpdateSeats(ctx context.Context, id int64, availableSeats int) error {
	args := m.Called(ctx, id, availableSeats)
	return args.Error(0)
}

func (m *MockFlightRepository) UpdateDemandAndSeats(ctx context.Context, id int64, demand, availableSeats int) error {
	args := m.Called(ctx, id, demand, availableSeats)
	return args.Error(0)
}

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

type MockFareRepository struct {
	mock.Mock
}

func (m *MockFareRepository) Record(ctx context.Context, flightID int64, price float64) error {
	args := m.Called(ctx, flightID, price)
	return args.Error(0)
}

func (m *MockFareRepository) ListByFlight(ctx context.Context, flightID int64, limit int) ([]domain.FareRecord, error) {
	args := m.Called(ctx, flightID, limit)
	return args.Get(0).([]domain.FareRecord), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type serviceMocks struct {
	bookings   *MockBookingRepository
	flights    *MockFlightRepository
	passengers *MockPassengerRepository
	fares      *MockFareRepository
	producer   *MockProducer
}

func newTestService(rng Rand) (*BookingService, *serviceMocks) {
	mocks := &serviceMocks{
		bookings:   &MockBookingRepository{},
		flights:    &MockFlightRepository{},
		passengers: &MockPassengerRepository{},
		fares:      &MockFareRepository{},
		producer:   &MockProducer{},
	}
	clock := clockwork.NewFakeClockAt(testNow)
	service := &BookingService{
		txm:          fakeTransactor{},
		bookings:     mocks.bookings,
		flights:      mocks.flights,
		passengers:   mocks.passengers,
		fares:        mocks.fares,
		pricer:       pricing.NewEngine(clock),
		producer:     mocks.producer,
		bookingTopic: "booking_topic",
		rng:          rng,
		clock:        clock,
	}
	return service, mocks
}

func testFlight() *domain.Flight {
	return &domain.Flight{
		ID:             4,
		Airline:        "IndiGo",
		FlightNumber:   "6E203",
		Source:         "Delhi",
		Destination:    "Mumbai",
		BaseFare:       4000,
		TotalSeats:     180,
		AvailableSeats: 150,
		Demand:         60,
		PricingTier:    domain.TierStandard,
		DepartureTime:  testNow.Add(6 * time.Hour),
		ArrivalTime:    testNow.Add(8 * time.Hour),
	}
}

func boolPtr(v bool) *bool { return &v }

func TestBookingService_CreateBooking_Success(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	input := CreateBookingInput{
		FlightID:       4,
		PassengerName:  "Asha Verma",
		PassengerEmail: "asha@example.com",
		SeatNumber:     "12A",
	}

	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(testFlight(), nil).Once()
	mocks.flights.On("UpdateSeats", ctx, int64(4), 149).Return(nil).Once()
	mocks.passengers.On("GetByEmail", ctx, "asha@example.com").Return(nil, domain.ErrPassengerNotFound).Once()
	mocks.passengers.On("Create", ctx, mock.AnythingOfType("*domain.Passenger")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Passenger).ID = 7
		}).Return(nil).Once()
	mocks.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Booking).ID = 1
		}).Return(nil).Once()
	mocks.fares.On("Record", ctx, int64(4), 6912.00).Return(nil).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(nil).Once()

	created, err := service.CreateBooking(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, domain.BookingStatusConfirmed, created.Status)
	assert.Equal(t, int64(7), created.PassengerID)
	// 149/180 seats remaining (82%) keeps seat factor 0.9: 4000*1.28*0.9*1.5
	assert.Equal(t, 6912.00, created.PricePerSeat)
	assert.Equal(t, 6912.00, created.TotalPrice)
	assert.Equal(t, "AAAAAA0301120000", created.PNR)
	assert.Equal(t, testNow, created.BookingDate)

	mocks.flights.AssertExpectations(t)
	mocks.passengers.AssertExpectations(t)
	mocks.bookings.AssertExpectations(t)
	mocks.fares.AssertExpectations(t)
	mocks.producer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_RequiresPassengerName(t *testing.T) {
	service, _ := newTestService(fixedRand{v: 0})

	created, err := service.CreateBooking(context.Background(), CreateBookingInput{FlightID: 4})

	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Contains(t, err.Error(), "passenger name is required")
}

func TestBookingService_CreateBooking_FlightNotFound(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	mocks.flights.On("GetForUpdate", ctx, int64(99)).Return(nil, domain.ErrFlightNotFound).Once()

	created, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: 99, PassengerName: "Asha Verma"})

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.Nil(t, created)
	mocks.bookings.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_NoSeatsAvailable(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	full := testFlight()
	full.AvailableSeats = 0
	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(full, nil).Once()

	created, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: 4, PassengerName: "Asha Verma"})

	assert.ErrorIs(t, err, domain.ErrNoSeatsAvailable)
	assert.Nil(t, created)
	mocks.flights.AssertNotCalled(t, "UpdateSeats")
	mocks.bookings.AssertNotCalled(t, "Create")
	mocks.fares.AssertNotCalled(t, "Record")
}

func TestBookingService_CreateBooking_PaymentFailurePersistsBooking(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	input := CreateBookingInput{
		FlightID:      4,
		PassengerName: "Asha Verma",
		ForcePayment:  boolPtr(false),
	}

	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(testFlight(), nil).Once()
	mocks.flights.On("UpdateSeats", ctx, int64(4), 149).Return(nil).Once()
	mocks.passengers.On("Create", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()

	var persisted *domain.Booking
	mocks.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*domain.Booking)
		}).Return(nil).Once()
	mocks.fares.On("Record", ctx, int64(4), 6912.00).Return(nil).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(nil).Once()

	created, err := service.CreateBooking(ctx, input)

	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
	assert.NotNil(t, created)
	assert.Equal(t, domain.BookingStatusPaymentFailed, created.Status)
	assert.Equal(t, persisted, created)
	mocks.bookings.AssertExpectations(t)
	mocks.fares.AssertExpectations(t)
}

func TestBookingService_CreateBooking_RandomPaymentFailure(t *testing.T) {
	// draws of 9 fail the 80% check
	service, mocks := newTestService(fixedRand{v: 9})
	ctx := context.Background()

	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(testFlight(), nil).Once()
	mocks.flights.On("UpdateSeats", ctx, int64(4), 149).Return(nil).Once()
	mocks.passengers.On("Create", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()
	mocks.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mocks.fares.On("Record", ctx, int64(4), 6912.00).Return(nil).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(nil).Once()

	created, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: 4, PassengerName: "Asha Verma"})

	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
	assert.Equal(t, domain.BookingStatusPaymentFailed, created.Status)
}

func TestBookingService_CreateBooking_ReusesPassengerByEmail(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	existing := &domain.Passenger{ID: 42, FullName: "Asha Verma", Email: "asha@example.com"}

	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(testFlight(), nil).Once()
	mocks.flights.On("UpdateSeats", ctx, int64(4), 149).Return(nil).Once()
	mocks.passengers.On("GetByEmail", ctx, "ASHA@example.com").Return(existing, nil).Once()
	mocks.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mocks.fares.On("Record", ctx, int64(4), 6912.00).Return(nil).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(nil).Once()

	created, err := service.CreateBooking(ctx, CreateBookingInput{
		FlightID:       4,
		PassengerName:  "Asha Verma",
		PassengerEmail: "ASHA@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), created.PassengerID)
	mocks.passengers.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_NoEmailAlwaysCreatesPassenger(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(testFlight(), nil).Once()
	mocks.flights.On("UpdateSeats", ctx, int64(4), 149).Return(nil).Once()
	mocks.passengers.On("Create", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()
	mocks.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mocks.fares.On("Record", ctx, int64(4), 6912.00).Return(nil).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: 4, PassengerName: "Asha Verma"})

	assert.NoError(t, err)
	mocks.passengers.AssertNotCalled(t, "GetByEmail")
	mocks.passengers.AssertExpectations(t)
}

func TestBookingService_CreateBooking_StorageErrorSurfacesGenerically(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	storageErr := errors.New("connection reset")

	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(testFlight(), nil).Once()
	mocks.flights.On("UpdateSeats", ctx, int64(4), 149).Return(nil).Once()
	mocks.passengers.On("Create", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()
	mocks.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(storageErr).Once()

	created, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: 4, PassengerName: "Asha Verma"})

	assert.ErrorIs(t, err, storageErr)
	assert.Nil(t, created)
	mocks.fares.AssertNotCalled(t, "Record")
	mocks.producer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CreateBooking_FareAppendFailureIsSwallowed(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(testFlight(), nil).Once()
	mocks.flights.On("UpdateSeats", ctx, int64(4), 149).Return(nil).Once()
	mocks.passengers.On("Create", ctx, mock.AnythingOfType("*domain.Passenger")).Return(nil).Once()
	mocks.bookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mocks.fares.On("Record", ctx, int64(4), 6912.00).Return(errors.New("disk full")).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", mock.Anything, mock.Anything).Return(nil).Once()

	created, err := service.CreateBooking(ctx, CreateBookingInput{FlightID: 4, PassengerName: "Asha Verma"})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, created.Status)
}

func TestBookingService_RetryPayment_IdempotentWhenConfirmed(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	confirmed := &domain.Booking{ID: 1, PNR: "ABC1230301120000", Status: domain.BookingStatusConfirmed}
	mocks.bookings.On("GetByPNR", ctx, confirmed.PNR).Return(confirmed, nil).Once()

	updated, err := service.RetryPayment(ctx, confirmed.PNR, nil)

	assert.NoError(t, err)
	assert.Equal(t, confirmed, updated)
	mocks.bookings.AssertNotCalled(t, "UpdateStatus")
}

func TestBookingService_RetryPayment_FlipsToConfirmed(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	failed := &domain.Booking{ID: 1, PNR: "ABC1230301120000", FlightID: 4, Status: domain.BookingStatusPaymentFailed}
	confirmed := &domain.Booking{ID: 1, PNR: failed.PNR, FlightID: 4, Status: domain.BookingStatusConfirmed}

	mocks.bookings.On("GetByPNR", ctx, failed.PNR).Return(failed, nil).Once()
	mocks.bookings.On("UpdateStatus", ctx, failed.PNR, domain.BookingStatusConfirmed).Return(confirmed, nil).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", failed.PNR, mock.Anything).Return(nil).Once()

	updated, err := service.RetryPayment(ctx, failed.PNR, boolPtr(true))

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)
	mocks.bookings.AssertExpectations(t)
}

func TestBookingService_RetryPayment_FailsAgain(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	failed := &domain.Booking{ID: 1, PNR: "ABC1230301120000", FlightID: 4, Status: domain.BookingStatusPaymentFailed}

	mocks.bookings.On("GetByPNR", ctx, failed.PNR).Return(failed, nil).Once()
	mocks.bookings.On("UpdateStatus", ctx, failed.PNR, domain.BookingStatusPaymentFailed).Return(failed, nil).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", failed.PNR, mock.Anything).Return(nil).Once()

	updated, err := service.RetryPayment(ctx, failed.PNR, boolPtr(false))

	assert.ErrorIs(t, err, domain.ErrPaymentFailed)
	assert.Equal(t, domain.BookingStatusPaymentFailed, updated.Status)
}

func TestBookingService_RetryPayment_NotFound(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	mocks.bookings.On("GetByPNR", ctx, "MISSING").Return(nil, domain.ErrBookingNotFound).Once()

	updated, err := service.RetryPayment(ctx, "MISSING", nil)

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.Nil(t, updated)
}

func TestBookingService_RetryPayment_RejectsCancelled(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	cancelled := &domain.Booking{ID: 1, PNR: "ABC1230301120000", Status: domain.BookingStatusCancelled}
	mocks.bookings.On("GetByPNR", ctx, cancelled.PNR).Return(cancelled, nil).Once()

	updated, err := service.RetryPayment(ctx, cancelled.PNR, nil)

	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Nil(t, updated)
	mocks.bookings.AssertNotCalled(t, "UpdateStatus")
}

func TestBookingService_CancelBooking_ReleasesSeat(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	booked := &domain.Booking{ID: 1, PNR: "ABC1230301120000", FlightID: 4, Status: domain.BookingStatusConfirmed}
	cancelled := &domain.Booking{ID: 1, PNR: booked.PNR, FlightID: 4, Status: domain.BookingStatusCancelled}
	flight := testFlight()
	flight.AvailableSeats = 149

	mocks.bookings.On("GetByPNRForUpdate", ctx, booked.PNR).Return(booked, nil).Once()
	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(flight, nil).Once()
	mocks.flights.On("UpdateSeats", ctx, int64(4), 150).Return(nil).Once()
	mocks.bookings.On("UpdateStatus", ctx, booked.PNR, domain.BookingStatusCancelled).Return(cancelled, nil).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", booked.PNR, mock.Anything).Return(nil).Once()

	result, err := service.CancelBooking(ctx, booked.PNR)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)
	mocks.flights.AssertExpectations(t)
	mocks.bookings.AssertExpectations(t)
}

func TestBookingService_CancelBooking_SeatReleaseCappedAtTotal(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	booked := &domain.Booking{ID: 1, PNR: "ABC1230301120000", FlightID: 4, Status: domain.BookingStatusConfirmed}
	cancelled := &domain.Booking{ID: 1, PNR: booked.PNR, FlightID: 4, Status: domain.BookingStatusCancelled}
	flight := testFlight()
	flight.AvailableSeats = flight.TotalSeats

	mocks.bookings.On("GetByPNRForUpdate", ctx, booked.PNR).Return(booked, nil).Once()
	mocks.flights.On("GetForUpdate", ctx, int64(4)).Return(flight, nil).Once()
	mocks.flights.On("UpdateSeats", ctx, int64(4), flight.TotalSeats).Return(nil).Once()
	mocks.bookings.On("UpdateStatus", ctx, booked.PNR, domain.BookingStatusCancelled).Return(cancelled, nil).Once()
	mocks.producer.On("Publish", ctx, "booking_topic", booked.PNR, mock.Anything).Return(nil).Once()

	_, err := service.CancelBooking(ctx, booked.PNR)

	assert.NoError(t, err)
	mocks.flights.AssertExpectations(t)
}

func TestBookingService_CancelBooking_AlreadyCancelled(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	cancelled := &domain.Booking{ID: 1, PNR: "ABC1230301120000", FlightID: 4, Status: domain.BookingStatusCancelled}
	mocks.bookings.On("GetByPNRForUpdate", ctx, cancelled.PNR).Return(cancelled, nil).Once()

	result, err := service.CancelBooking(ctx, cancelled.PNR)

	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Nil(t, result)
	mocks.flights.AssertNotCalled(t, "UpdateSeats")
	mocks.bookings.AssertNotCalled(t, "UpdateStatus")
}

func TestBookingService_CancelBooking_NotFound(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	mocks.bookings.On("GetByPNRForUpdate", ctx, "MISSING").Return(nil, domain.ErrBookingNotFound).Once()

	result, err := service.CancelBooking(ctx, "MISSING")

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.Nil(t, result)
}

func TestBookingService_ListBookings_DefaultsLimit(t *testing.T) {
	service, mocks := newTestService(fixedRand{v: 0})
	ctx := context.Background()

	mocks.bookings.On("ListRecent", ctx, 100).Return([]domain.Booking{}, nil).Once()

	_, err := service.ListBookings(ctx, 0)

	assert.NoError(t, err)
	mocks.bookings.AssertExpectations(t)
}

func TestBookingService_GeneratePNRFormat(t *testing.T) {
	service, _ := newTestService(fixedRand{v: 10})

	pnr := service.generatePNR()

	assert.Len(t, pnr, 16)
	assert.Equal(t, "KKKKKK", pnr[:6])     // alphabet index 10
	assert.Equal(t, "0301120000", pnr[6:]) // MMDDhhmmss at the fake clock
}
