package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"Boltcalc/internal/calc/boltgroup"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	DatabaseURL string
	TokenKey    []byte

	// RateLimit is requests per second per client IP on /api.
	RateLimit float64
	RateBurst int

	LogLevel     string
	Solver       boltgroup.Options
	BatchWorkers int
}

// Load reads an optional .env file and then the process environment.
// TOKEN_KEY is required; a malformed number is an error.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	c := Config{
		Addr:        getenv("ADDR", ":443"),
		TLSCert:     getenv("TLS_CERT", "server.crt"),
		TLSKey:      getenv("TLS_KEY", "server.key"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenKey:    []byte(os.Getenv("TOKEN_KEY")),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Solver:      boltgroup.DefaultOptions(),
	}
	if len(c.TokenKey) == 0 {
		return Config{}, errors.New("TOKEN_KEY environment variable is not set")
	}

	var err error
	if c.RateLimit, err = floatEnv("RATE_LIMIT", 1); err != nil {
		return Config{}, err
	}
	if c.RateBurst, err = intEnv("RATE_BURST", 3); err != nil {
		return Config{}, err
	}
	if c.Solver.Tolerance, err = floatEnv("SOLVER_TOLERANCE", boltgroup.DefaultTolerance); err != nil {
		return Config{}, err
	}
	if c.Solver.MaxIterations, err = intEnv("SOLVER_MAX_ITERATIONS", boltgroup.DefaultMaxIterations); err != nil {
		return Config{}, err
	}
	if c.BatchWorkers, err = intEnv("BATCH_WORKERS", 0); err != nil {
		return Config{}, err
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return Config{}, errors.New("RATE_LIMIT and RATE_BURST must be positive")
	}
	if c.Solver.Tolerance <= 0 || c.Solver.MaxIterations <= 0 {
		return Config{}, errors.New("SOLVER_TOLERANCE and SOLVER_MAX_ITERATIONS must be positive")
	}
	return c, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return f, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}
