package app

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"postboard/config"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewApp_Backends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{
			name: "inmemory",
			cfg:  config.Config{StorageType: config.StorageInMemory},
		},
		{
			name: "sqlite",
			cfg: config.Config{
				StorageType: config.StorageSQLite,
				SQLite:      config.SQLiteConfig{Path: ":memory:"},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.cfg
			cfg.HTTP.Port = "0"
			cfg.BcryptCost = bcrypt.MinCost
			cfg.Session.Lifetime = time.Hour

			a, err := NewApp(context.Background(), cfg)
			require.NoError(t, err)
			t.Cleanup(a.close)

			srv := httptest.NewServer(a.srv.Handler)
			t.Cleanup(srv.Close)

			jar, err := cookiejar.New(nil)
			require.NoError(t, err)
			c := &http.Client{Jar: jar}

			resp, err := c.Get(srv.URL + "/healthz")
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			require.Equal(t, "ok", string(body))
			require.NotEmpty(t, resp.Header.Get("X-Request-ID"))

			creds := `{"username":"alice","password":"secret1"}`
			for _, path := range []string{"/api/auth/register", "/api/auth/login"} {
				resp, err = c.Post(srv.URL+path, "application/json", strings.NewReader(creds))
				require.NoError(t, err)
				resp.Body.Close()
				require.Equal(t, http.StatusOK, resp.StatusCode, path)
			}

			resp, err = c.Get(srv.URL + "/profile")
			require.NoError(t, err)
			body, _ = io.ReadAll(resp.Body)
			resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Contains(t, string(body), "Mi Perfil")
		})
	}
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	t.Parallel()

	a, err := NewApp(context.Background(), config.Config{
		StorageType: config.StorageInMemory,
		HTTP:        config.HTTPConfig{Port: "0"},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return")
	}
}
