package repository

import (
	"context"

	"github.com/Domenick1991/flightsim/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FareRepository is an append-only log of computed prices. Callers treat
// append failures as diagnostic noise, never as transaction failures.
type FareRepository interface {
	Record(ctx context.Context, flightID int64, price float64) error
	ListByFlight(ctx context.Context, flightID int64, limit int) ([]domain.FareRecord, error)
}

type PGFareRepository struct {
	db *pgxpool.Pool
}

func NewFareRepository(db *pgxpool.Pool) FareRepository {
	return &PGFareRepository{db: db}
}

func (r *PGFareRepository) Record(ctx context.Context, flightID int64, price float64) error {
	_, err := queryTarget(ctx, r.db).Exec(ctx,
		`INSERT INTO fare_history (flight_id, price) VALUES ($1, $2)`, flightID, price)
	return err
}

func (r *PGFareRepository) ListByFlight(ctx context.Context, flightID int64, limit int) ([]domain.FareRecord, error) {
	rows, err := queryTarget(ctx, r.db).Query(ctx,
		`SELECT id, flight_id, recorded_at, price FROM fare_history WHERE flight_id=$1 ORDER BY recorded_at DESC LIMIT $2`,
		flightID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.FareRecord, 0)
	for rows.Next() {
		var fr domain.FareRecord
		if err := rows.Scan(&fr.ID, &fr.FlightID, &fr.RecordedAt, &fr.Price); err != nil {
			return nil, err
		}
		records = append(records, fr)
	}
	return records, rows.Err()
}

var _ FareRepository = (*PGFareRepository)(nil)
