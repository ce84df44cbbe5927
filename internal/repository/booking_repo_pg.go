package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightsim/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	GetByPNRForUpdate(ctx context.Context, pnr string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, pnr string, status domain.BookingStatus) (*domain.Booking, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Booking, error)
}

const bookingColumns = `id, flight_id, passenger_id, pnr, seat_number, status, price_per_seat, total_price, booking_date, updated_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return queryTarget(ctx, r.db).QueryRow(ctx,
		`INSERT INTO bookings (flight_id, passenger_id, pnr, seat_number, status, price_per_seat, total_price, booking_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, updated_at`,
		booking.FlightID, booking.PassengerID, booking.PNR, booking.SeatNumber,
		booking.Status, booking.PricePerSeat, booking.TotalPrice, booking.BookingDate).
		Scan(&booking.ID, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1`, pnr)
	return scanBooking(row)
}

func (r *PGBookingRepository) GetByPNRForUpdate(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1 FOR UPDATE`, pnr)
	return scanBooking(row)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, pnr string, status domain.BookingStatus) (*domain.Booking, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx,
		`UPDATE bookings SET status=$1, updated_at=now() WHERE pnr=$2 RETURNING `+bookingColumns, status, pnr)
	return scanBooking(row)
}

func (r *PGBookingRepository) ListRecent(ctx context.Context, limit int) ([]domain.Booking, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.FlightID, &b.PassengerID, &b.PNR, &b.SeatNumber,
			&b.Status, &b.PricePerSeat, &b.TotalPrice, &b.BookingDate, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.FlightID, &b.PassengerID, &b.PNR, &b.SeatNumber,
		&b.Status, &b.PricePerSeat, &b.TotalPrice, &b.BookingDate, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
