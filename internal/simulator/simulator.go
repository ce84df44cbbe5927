package simulator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/flightsim/internal/metrics"
	"github.com/Domenick1991/flightsim/internal/repository"
	"github.com/go-co-op/gocron/v2"
)

// Rand covers the perturbation draws; *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Simulator is the background demand/inventory perturbation. Each pass runs
// as one transaction over all flights; a failed pass rolls back and the
// scheduler keeps going.
type Simulator struct {
	txm       repository.Transactor
	flights   repository.FlightRepository
	rng       Rand
	interval  time.Duration
	scheduler gocron.Scheduler
}

func New(txm repository.Transactor, flights repository.FlightRepository, rng Rand, interval time.Duration) *Simulator {
	return &Simulator{txm: txm, flights: flights, rng: rng, interval: interval}
}

func (s *Simulator) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			if err := s.RunPass(ctx); err != nil {
				metrics.SimulatorPasses.WithLabelValues("error").Inc()
				log.Printf("demand simulator pass failed: %v", err)
				return
			}
			metrics.SimulatorPasses.WithLabelValues("ok").Inc()
		}),
	)
	if err != nil {
		return fmt.Errorf("schedule simulator job: %w", err)
	}

	s.scheduler = scheduler
	scheduler.Start()
	log.Printf("demand simulator started, interval %s", s.interval)
	return nil
}

func (s *Simulator) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}

// RunPass applies one perturbation round: demand takes a random walk step in
// [-8,10] clamped to 0..100; with p~0.12 a flight loses 1..3 seats to
// simulated third-party sales, else with p~0.005 it gets one seat back.
func (s *Simulator) RunPass(ctx context.Context) error {
	return s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		flights, err := s.flights.ListForUpdate(ctx)
		if err != nil {
			return err
		}

		for _, f := range flights {
			demand := clamp(f.Demand+s.rng.Intn(19)-8, 0, 100)

			seats := f.AvailableSeats
			if s.rng.Float64() < 0.12 && seats > 0 {
				maxDec := seats
				if maxDec > 3 {
					maxDec = 3
				}
				seats -= 1 + s.rng.Intn(maxDec)
				if seats < 0 {
					seats = 0
				}
			} else if s.rng.Float64() > 0.995 && seats < f.TotalSeats {
				seats++
			}

			if err := s.flights.UpdateDemandAndSeats(ctx, f.ID, demand, seats); err != nil {
				return err
			}
		}
		return nil
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
