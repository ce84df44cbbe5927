package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightsim/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	ListForUpdate(ctx context.Context) ([]domain.Flight, error)
	Search(ctx context.Context, origin, destination string) ([]domain.Flight, error)
	ListByAirline(ctx context.Context, airline string) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Flight, error)
	UpdateSeats(ctx context.Context, id int64, availableSeats int) error
	UpdateDemandAndSeats(ctx context.Context, id int64, demand, availableSeats int) error
}

const flightColumns = `id, airline, flight_number, source, destination, departure_time, arrival_time, total_seats, available_seats, base_fare, pricing_tier, demand, created_at, updated_at`

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

// ListForUpdate locks every flight row for the duration of the surrounding
// transaction. Used by the demand simulator so a pass and concurrent
// bookings serialize per flight.
func (r *PGFlightRepository) ListForUpdate(ctx context.Context) ([]domain.Flight, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id FOR UPDATE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) Search(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+flightColumns+` FROM flights WHERE lower(source)=lower($1) AND lower(destination)=lower($2) ORDER BY departure_time`,
		origin, destination)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) ListByAirline(ctx context.Context, airline string) ([]domain.Flight, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT `+flightColumns+` FROM flights WHERE lower(airline)=lower($1) ORDER BY departure_time`, airline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	return scanFlight(row)
}

// GetForUpdate reads the flight row with SELECT ... FOR UPDATE. Only
// meaningful inside a Transactor transaction.
func (r *PGFlightRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Flight, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1 FOR UPDATE`, id)
	return scanFlight(row)
}

func (r *PGFlightRepository) UpdateSeats(ctx context.Context, id int64, availableSeats int) error {
	cmd, err := queryTarget(ctx, r.db).Exec(ctx,
		`UPDATE flights SET available_seats=$1, updated_at=now() WHERE id=$2`, availableSeats, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func (r *PGFlightRepository) UpdateDemandAndSeats(ctx context.Context, id int64, demand, availableSeats int) error {
	cmd, err := queryTarget(ctx, r.db).Exec(ctx,
		`UPDATE flights SET demand=$1, available_seats=$2, updated_at=now() WHERE id=$3`, demand, availableSeats, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.Source, &f.Destination,
		&f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats,
		&f.BaseFare, &f.PricingTier, &f.Demand, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.Source, &f.Destination,
			&f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats,
			&f.BaseFare, &f.PricingTier, &f.Demand, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
