package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

const (
	CookieName = "postboard_session"

	userIDKey = "user_id"
	flashKey  = "flash"
)

type Config struct {
	Lifetime     time.Duration
	CookieSecure bool
}

// Manager keeps the signed-in user id in a server-side session.
type Manager struct {
	sm *scs.SessionManager
}

func New(cfg Config, store scs.Store) *Manager {
	sm := scs.New()
	if cfg.Lifetime > 0 {
		sm.Lifetime = cfg.Lifetime
	}
	if store != nil {
		sm.Store = store
	}
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = cfg.CookieSecure
	sm.Cookie.Path = "/"

	return &Manager{sm: sm}
}

func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.sm.LoadAndSave(next)
}

// Login binds userID to a fresh session token.
func (m *Manager) Login(ctx context.Context, userID int64) error {
	if err := m.sm.RenewToken(ctx); err != nil {
		return err
	}
	m.sm.Put(ctx, userIDKey, userID)
	return nil
}

func (m *Manager) Logout(ctx context.Context) error {
	return m.sm.Destroy(ctx)
}

func (m *Manager) UserID(ctx context.Context) (int64, bool) {
	id := m.sm.GetInt64(ctx, userIDKey)
	return id, id > 0
}

func (m *Manager) SetFlash(ctx context.Context, msg string) {
	m.sm.Put(ctx, flashKey, msg)
}

func (m *Manager) PopFlash(ctx context.Context) string {
	return m.sm.PopString(ctx, flashKey)
}

func MemoryStore() scs.Store {
	return memstore.New()
}

// PostgresStore and SQLiteStore expect the sessions table created by the
// storage schema.
func PostgresStore(db *sql.DB) scs.Store {
	return postgresstore.New(db)
}

func SQLiteStore(db *sql.DB) scs.Store {
	return sqlite3store.New(db)
}
