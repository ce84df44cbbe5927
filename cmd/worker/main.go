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
	"github.com/Domenick1991/flightsim/internal/email"
	"github.com/Domenick1991/flightsim/internal/kafka"
	"github.com/Domenick1991/flightsim/internal/repository"
	"github.com/Domenick1991/flightsim/internal/simulator"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

	txm := repository.NewTxManager(pool)
	flightRepo := repository.NewFlightRepository(pool)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sim := simulator.New(txm, flightRepo, rng, time.Duration(cfg.Simulator.IntervalSeconds)*time.Second)
	if err := sim.Start(ctx); err != nil {
		log.Fatalf("start demand simulator: %v", err)
	}
	defer func() {
		if err := sim.Stop(); err != nil {
			log.Printf("stop demand simulator: %v", err)
		}
	}()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, emailSender.Send); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("received shutdown signal, stopping worker")
}
