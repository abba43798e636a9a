// Package config loads the settings of the web server from the environment
// and of the terminal client from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageCached   = "cached"
)

var (
	ErrMissingSecret  = errors.New("config: SESSION_SECRET is required")
	ErrUnknownStorage = errors.New("config: unknown session storage")
)

type Database struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// DSN is the pgx connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

type Server struct {
	Port            string
	BackendURL      string
	BackendTimeout  time.Duration
	SessionSecret   string
	SessionIssuer   string
	SessionTTL      time.Duration
	CookieSecure    bool
	CORSOrigin      string
	Storage         string
	RateLimit       int
	RateWindow      time.Duration
	JanitorInterval time.Duration
	LogLevel        string
	Database        Database
	Redis           Redis
}

// LoadServer reads the environment after loading the given .env files.
// Missing .env files are not an error.
func LoadServer(envFiles ...string) (*Server, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	cfg := &Server{
		Port:            getEnv("PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:5000"),
		BackendTimeout:  getDuration("BACKEND_TIMEOUT", 10*time.Second),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionIssuer:   getEnv("SESSION_ISSUER", "niyam-buddy"),
		SessionTTL:      getDuration("SESSION_TTL", 7*24*time.Hour),
		CookieSecure:    getBool("COOKIE_SECURE", false),
		CORSOrigin:      os.Getenv("CORS_ORIGIN"),
		Storage:         strings.ToLower(getEnv("SESSION_STORAGE", StorageMemory)),
		RateLimit:       getInt("RATE_LIMIT", 100),
		RateWindow:      getDuration("RATE_WINDOW", time.Minute),
		JanitorInterval: getDuration("JANITOR_INTERVAL", time.Hour),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Database: Database{
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
		},
		Redis: Redis{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Server) Validate() error {
	if c.SessionSecret == "" {
		return ErrMissingSecret
	}
	switch c.Storage {
	case StorageMemory, StoragePostgres, StorageRedis, StorageCached:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.Storage)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
