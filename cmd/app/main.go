package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightsim/config"
	"github.com/Domenick1991/flightsim/internal/bootstrap"
	"github.com/Domenick1991/flightsim/internal/cache"
	"github.com/Domenick1991/flightsim/internal/kafka"
	"github.com/Domenick1991/flightsim/internal/pricing"
	"github.com/Domenick1991/flightsim/internal/repository"
	"github.com/Domenick1991/flightsim/internal/service/booking"
	"github.com/Domenick1991/flightsim/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
)

// systemRand delegates to the process-global locked source so concurrent
// request handlers can share it.
type systemRand struct{}

func (systemRand) Intn(n int) int { return rand.Intn(n) }

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	txm := repository.NewTxManager(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	fareRepo := repository.NewFareRepository(pool)

	clock := clockwork.NewRealClock()
	engine := pricing.NewEngine(clock)

	flightService := flights.NewFlightService(flightRepo, fareRepo, engine, redisCache)
	bookingService := booking.NewBookingService(
		txm,
		bookingRepo,
		flightRepo,
		passengerRepo,
		fareRepo,
		engine,
		producer,
		cfg.Kafka.BookingTopic,
		systemRand{},
		clock,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
