package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8080"
database:
  host: "localhost"
  port: 5432
  user: "flightsim"
  password: "secret"
  name: "flightsim"
  ssl_mode: "disable"
kafka:
  brokers: ["localhost:9092"]
  booking_topic: "booking-events"
simulator:
  interval_seconds: 15
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 15, cfg.Simulator.IntervalSeconds)
	assert.Equal(t,
		"host=localhost port=5432 user=flightsim password=secret dbname=flightsim sslmode=disable",
		cfg.Database.DSN(),
	)
}

func TestLoadConfig_DefaultsSimulatorInterval(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8080"
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Simulator.IntervalSeconds)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "http: [not: valid")

	_, err := LoadConfig(path)

	assert.Error(t, err)
}
