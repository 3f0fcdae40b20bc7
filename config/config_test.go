package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("BCRYPT_COST", "")

	cfg := LoadConfig()

	require.Equal(t, StorageInMemory, cfg.StorageType)
	require.Equal(t, "8080", cfg.HTTP.Port)
	require.Equal(t, 24*time.Hour, cfg.Session.Lifetime)
	require.False(t, cfg.Session.CookieSecure)
	require.Equal(t, 12, cfg.BcryptCost)
	require.Equal(t, 15, cfg.Stream.KeepAliveSeconds)
}

func TestLoadConfig_Postgres(t *testing.T) {
	t.Setenv("STORAGE_TYPE", StoragePostgres)
	t.Setenv("POSTGRES_USER", "board")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "postboard")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_SSLMODE", "")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg := LoadConfig()

	require.Equal(t, "postgres://board:pw@db:5432/postboard?sslmode=disable", cfg.Postgres.GetDSN())
	require.True(t, cfg.Session.CookieSecure)
}

func TestLoadConfig_Panics(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing postgres host", env: map[string]string{"STORAGE_TYPE": StoragePostgres, "POSTGRES_HOST": ""}},
		{name: "unknown storage", env: map[string]string{"STORAGE_TYPE": "mongo"}},
		{name: "bad int", env: map[string]string{"STORAGE_TYPE": StorageSQLite, "BCRYPT_COST": "high"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			require.Panics(t, func() { LoadConfig() })
		})
	}
}
