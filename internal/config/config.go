package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Durations and counts are ints, identifiers and
// secrets are strings.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	DBUser            string // database username
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	SessionTTLDays    int    // session lifetime in days
	PBKDF2Iterations  int    // PBKDF2 iteration count for password hashing
	FallbackFareCents int64  // fare applied when a flight has no sold tickets yet
}

// minPBKDF2Iterations is the floor for the configured iteration count.
const minPBKDF2Iterations = 100_000

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"), // empty allowed
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		SessionTTLDays:    mustInt("SESSION_TTL_DAYS"),
		PBKDF2Iterations:  mustInt("PBKDF2_ITERATIONS"),
		FallbackFareCents: 9900,
	}
	if cfg.PBKDF2Iterations < minPBKDF2Iterations {
		log.Fatalf("PBKDF2_ITERATIONS must be >= %d, got %d", minPBKDF2Iterations, cfg.PBKDF2Iterations)
	}
	if v := os.Getenv("FALLBACK_FARE_CENTS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			log.Fatalf("invalid FALLBACK_FARE_CENTS: %q", v)
		}
		cfg.FallbackFareCents = n
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
