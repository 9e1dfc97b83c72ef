package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"pipeline"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"pipeline123"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"rental_db"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	CSVInputPath    string `env:"CSV_INPUT_PATH" envDefault:"./data/raw_listings.csv"`
	RejectsCSVPath  string `env:"REJECTS_CSV_PATH" envDefault:"./output/rejected_listings.csv"`
	MaxConcurrency  int    `env:"MAX_CONCURRENCY" envDefault:"4"`
	InsertBatchSize int    `env:"INSERT_BATCH_SIZE" envDefault:"50"`

	ConnectRetries    int           `env:"CONNECT_RETRIES" envDefault:"5"`
	ConnectRetryDelay time.Duration `env:"CONNECT_RETRY_DELAY" envDefault:"2s"`
}

// Load reads the .env file (if present) and parses the environment into a
// Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
