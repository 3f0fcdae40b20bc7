package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StorageInMemory = "inmemory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Postgres    PostgresConfig
	SQLite      SQLiteConfig
	HTTP        HTTPConfig
	Session     SessionConfig
	Stream      StreamConfig
	Log         LogConfig
	StorageType string
	BcryptCost  int
}

type PostgresConfig struct {
	User     string
	Password string
	DB       string
	Host     string
	Port     int
	SSLMode  string
}

func (pc PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.User,
		pc.Password,
		pc.Host,
		pc.Port,
		pc.DB,
		pc.SSLMode,
	)
}

type SQLiteConfig struct {
	Path string
}

type HTTPConfig struct {
	Port string
}

type SessionConfig struct {
	Lifetime     time.Duration
	CookieSecure bool
}

type StreamConfig struct {
	KeepAliveSeconds int
}

type LogConfig struct {
	Level  string
	Format string
}

func LoadConfig() Config {
	storageType := getEnv("STORAGE_TYPE", StorageInMemory)

	cfg := Config{
		StorageType: storageType,
		HTTP: HTTPConfig{
			Port: getEnv("HTTP_PORT", "8080"),
		},
		Session: SessionConfig{
			Lifetime:     time.Duration(getInt("SESSION_LIFETIME_HOURS", 24)) * time.Hour,
			CookieSecure: getBool("SESSION_COOKIE_SECURE", false),
		},
		Stream: StreamConfig{
			KeepAliveSeconds: getInt("STREAM_KEEPALIVE_SECONDS", 15),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		BcryptCost: getInt("BCRYPT_COST", 12),
	}

	switch storageType {
	case StoragePostgres:
		cfg.Postgres = PostgresConfig{
			User:     mustGetEnv("POSTGRES_USER"),
			Password: mustGetEnv("POSTGRES_PASSWORD"),
			DB:       mustGetEnv("POSTGRES_DB"),
			Host:     mustGetEnv("POSTGRES_HOST"),
			Port:     mustGetInt("POSTGRES_PORT"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		}
	case StorageSQLite:
		cfg.SQLite = SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "postboard.db"),
		}
	case StorageInMemory:
	default:
		panic("unsupported STORAGE_TYPE: " + storageType)
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("missing required env var: " + key)
	}
	return val
}

func mustGetInt(key string) int {
	val := mustGetEnv(key)
	i, err := strconv.Atoi(val)
	if err != nil {
		panic("invalid int for env var " + key + ": " + val)
	}
	return i
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getInt(key string, def int) int {
	if os.Getenv(key) == "" {
		return def
	}
	return mustGetInt(key)
}

func getBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		panic("invalid bool for env var " + key + ": " + val)
	}
	return b
}
