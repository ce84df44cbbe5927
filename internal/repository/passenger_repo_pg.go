package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightsim/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PassengerRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Passenger, error)
	Create(ctx context.Context, passenger *domain.Passenger) error
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

// GetByEmail matches case-insensitively. Rows with a NULL email never match.
func (r *PGPassengerRepository) GetByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	row := queryTarget(ctx, r.db).QueryRow(ctx,
		`SELECT id, full_name, COALESCE(email, ''), COALESCE(phone, ''), created_at
		 FROM passengers WHERE lower(email)=lower($1)`, email)

	var p domain.Passenger
	if err := row.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPassengerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	return queryTarget(ctx, r.db).QueryRow(ctx,
		`INSERT INTO passengers (full_name, email, phone)
		 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
		 RETURNING id, created_at`,
		passenger.FullName, passenger.Email, passenger.Phone).
		Scan(&passenger.ID, &passenger.CreatedAt)
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
