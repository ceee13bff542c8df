package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionBackendMemory   = "memory"
	SessionBackendDatabase = "database"
)

// Config represents the service configuration.
type Config struct {
	Port             string
	DatabaseDriver   string
	DatabaseDSN      string
	SessionBackend   string
	SimulatedLatency time.Duration
	LogLevel         string
	SeedOnStart      bool
	AllowedOrigins   []string
}

// Default returns the configuration used when no environment is set.
func Default() (cfg Config) {
	cfg = Config{
		Port:             "8080",
		DatabaseDriver:   DriverSQLite,
		DatabaseDSN:      "marketplace.sqlite",
		SessionBackend:   SessionBackendDatabase,
		SimulatedLatency: time.Second,
		LogLevel:         "info",
		SeedOnStart:      true,
	}
	return cfg
}

// Load reads an optional .env file and applies environment overrides on top of Default.
func Load(envFile string) (cfg Config, err error) {
	if envFile == "" {
		envFile = ".env"
	}

	err = godotenv.Load(envFile)
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		err = errors.Wrapf(err, "failed to load env file: %s", envFile)
		return cfg, err
	}

	cfg, err = FromEnv(os.Getenv)
	return cfg, err
}

// FromEnv builds a Config from a lookup function so tests need not touch the process env.
func FromEnv(getenv func(string) string) (cfg Config, err error) {
	cfg = Default()

	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("DATABASE_DRIVER"); v != "" {
		cfg.DatabaseDriver = strings.ToLower(v)
	}
	if v := getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := getenv("SESSION_BACKEND"); v != "" {
		cfg.SessionBackend = strings.ToLower(v)
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := getenv("SIMULATED_LATENCY"); v != "" {
		cfg.SimulatedLatency, err = time.ParseDuration(v)
		if err != nil {
			err = errors.Wrapf(err, "invalid SIMULATED_LATENCY %q", v)
			return cfg, err
		}
	}
	if v := getenv("SEED_ON_START"); v != "" {
		cfg.SeedOnStart, err = strconv.ParseBool(v)
		if err != nil {
			err = errors.Wrapf(err, "invalid SEED_ON_START %q", v)
			return cfg, err
		}
	}
	if v := getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() (err error) {
	if c.Port == "" {
		err = errors.New("PORT must not be empty")
		return err
	}

	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		err = errors.Errorf("unsupported DATABASE_DRIVER %q (want postgres or sqlite)", c.DatabaseDriver)
		return err
	}

	if c.DatabaseDSN == "" {
		err = errors.New("DATABASE_DSN must not be empty")
		return err
	}

	switch c.SessionBackend {
	case SessionBackendMemory, SessionBackendDatabase:
	default:
		err = errors.Errorf("unsupported SESSION_BACKEND %q (want memory or database)", c.SessionBackend)
		return err
	}

	if c.SimulatedLatency < 0 {
		err = errors.New("SIMULATED_LATENCY must not be negative")
		return err
	}

	return err
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
