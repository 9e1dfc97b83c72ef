package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.PostgresHost)
	assert.Equal(t, "5432", cfg.PostgresPort)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, 50, cfg.InsertBatchSize)
	assert.Equal(t, 2*time.Second, cfg.ConnectRetryDelay)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("MAX_CONCURRENCY", "8")
	t.Setenv("CSV_INPUT_PATH", "/data/in.csv")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.PostgresHost)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, "/data/in.csv", cfg.CSVInputPath)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost:     "localhost",
		PostgresPort:     "5432",
		PostgresUser:     "pipeline",
		PostgresPassword: "secret",
		PostgresDB:       "rental_db",
		PostgresSSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=pipeline password=secret dbname=rental_db sslmode=disable",
		cfg.DSN())
}
