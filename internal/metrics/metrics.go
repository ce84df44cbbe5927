package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightsim_bookings_total",
		Help: "Booking attempts by final status.",
	}, []string{"status"})

	CancellationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightsim_cancellations_total",
		Help: "Confirmed cancellations.",
	})

	FareRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightsim_fare_records_total",
		Help: "Fare history rows appended.",
	})

	FareRecordFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flightsim_fare_record_failures_total",
		Help: "Fare history appends that were dropped.",
	})

	SimulatorPasses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flightsim_simulator_passes_total",
		Help: "Demand simulator passes by result.",
	}, []string{"result"})
)
