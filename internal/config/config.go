package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Supported values for DB_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds every runtime setting of the server. It is built once in main
// and passed explicitly to the components that need it.
type Config struct {
	Port    string
	BaseURL string

	DBDriver string
	DBDSN    string

	CacheCapacity int

	GlobalRateLimit  int
	GlobalRateWindow time.Duration
	CreateRateLimit  int
	CreateRateWindow time.Duration
	SweepInterval    time.Duration
	TrustProxy       bool

	LogLevel  string
	LogFormat string
	GinMode   string
}

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset or unparsable.
func Load() *Config {
	port := getEnv("PORT", "8008")

	return &Config{
		Port:             port,
		BaseURL:          strings.TrimRight(getEnv("BASE_URL", "http://localhost:"+port), "/"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", DriverMemory)),
		DBDSN:            getEnv("DB_DSN", "links.db"),
		CacheCapacity:    getEnvInt("CACHE_CAPACITY", 50),
		GlobalRateLimit:  getEnvInt("RATE_LIMIT_GLOBAL_MAX", 100),
		GlobalRateWindow: getEnvDuration("RATE_LIMIT_GLOBAL_WINDOW", time.Minute),
		CreateRateLimit:  getEnvInt("RATE_LIMIT_CREATE_MAX", 10),
		CreateRateWindow: getEnvDuration("RATE_LIMIT_CREATE_WINDOW", time.Minute),
		SweepInterval:    getEnvDuration("RATE_LIMIT_SWEEP_INTERVAL", time.Minute),
		TrustProxy:       getEnvBool("TRUST_PROXY", false),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		GinMode:          os.Getenv("GIN_MODE"),
	}
}

// Validate reports the first setting that cannot be used to start the server.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDriver != DriverMemory && c.DBDSN == "" {
		return errors.New("DB_DSN is required for a database driver")
	}
	if c.CacheCapacity < 0 {
		return errors.New("CACHE_CAPACITY must be >= 0")
	}
	if c.GlobalRateLimit <= 0 || c.CreateRateLimit <= 0 {
		return errors.New("rate limit thresholds must be > 0")
	}
	if c.GlobalRateWindow <= 0 || c.CreateRateWindow <= 0 {
		return errors.New("rate limit windows must be > 0")
	}
	if c.SweepInterval <= 0 {
		return errors.New("RATE_LIMIT_SWEEP_INTERVAL must be > 0")
	}
	return nil
}

// Addr is the listen address for http.Server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
