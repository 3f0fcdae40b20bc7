package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"postboard/config"
	"postboard/internal/adapter/in/middleware"
	"postboard/internal/adapter/in/rest"
	"postboard/internal/adapter/in/web"
	inmemorybus "postboard/internal/adapter/out/pubsub/inmemory"
	memstore "postboard/internal/adapter/out/storage/inmemory"
	pgstore "postboard/internal/adapter/out/storage/postgres"
	sqlitestore "postboard/internal/adapter/out/storage/sqlite"
	"postboard/internal/service"
	"postboard/internal/session"
	"postboard/pkg/logger"

	"github.com/alexedwards/scs/v2"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg  config.Config
	srv  *http.Server
	bus  *inmemorybus.CommentBus
	pool *pgxpool.Pool

	// sessionDB is the database/sql view of pool used by the session store
	sessionDB    *sql.DB
	sqliteDB     *sqlx.DB
	sessionStore scs.Store
}

type storages struct {
	users     service.UserStorage
	postTypes service.PostTypeStorage
	posts     service.PostStorage
	comments  service.CommentStorage
	tx        service.Transactor
}

func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	log := logger.FromContext(ctx)
	a := &App{cfg: cfg}

	st, err := a.openStorage(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	a.bus = inmemorybus.New(0)

	authSvc := service.NewAuthService(st.users, st.tx, cfg.BcryptCost)
	userSvc := service.NewUserService(st.users, st.tx)
	postTypeSvc := service.NewPostTypeService(st.postTypes, st.tx)
	postSvc := service.NewPostService(st.posts, st.tx)
	commentSvc := service.NewCommentService(st.comments, a.bus, st.tx)

	sessions := session.New(session.Config{
		Lifetime:     cfg.Session.Lifetime,
		CookieSecure: cfg.Session.CookieSecure,
	}, a.sessionStore)

	api := rest.NewHandler(rest.Services{
		Auth:      authSvc,
		Users:     userSvc,
		PostTypes: postTypeSvc,
		Posts:     postSvc,
		Comments:  commentSvc,
	}, sessions, time.Duration(cfg.Stream.KeepAliveSeconds)*time.Second)

	pages, err := web.NewHandler(web.Services{
		Auth:      authSvc,
		Users:     userSvc,
		PostTypes: postTypeSvc,
		Posts:     postSvc,
		Comments:  commentSvc,
	}, sessions)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("web handler: %w", err)
	}

	tel, err := middleware.NewTelemetry(nil, nil)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("telemetry: %w", err)
	}

	mux := http.NewServeMux()
	api.Register(mux)
	pages.Register(mux)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// telemetry sits right above the mux so that it sees the matched route
	handler := middleware.Chain(mux,
		middleware.RequestLogger(log),
		middleware.Recoverer,
		sessions.LoadAndSave,
		tel.Middleware,
	)

	addr := ":" + cfg.HTTP.Port
	a.srv = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("app initialized", "addr", addr, "storage", cfg.StorageType)
	return a, nil
}

func (a *App) openStorage(ctx context.Context) (storages, error) {
	switch a.cfg.StorageType {
	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, a.cfg.Postgres.GetDSN())
		if err != nil {
			return storages{}, fmt.Errorf("pgxpool: %w", err)
		}
		a.pool = pool

		if err := pool.Ping(ctx); err != nil {
			return storages{}, fmt.Errorf("ping postgres: %w", err)
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			return storages{}, err
		}

		a.sessionDB = stdlib.OpenDBFromPool(pool)
		a.sessionStore = session.PostgresStore(a.sessionDB)

		getter := trmpgx.DefaultCtxGetter
		return storages{
			users:     pgstore.NewUserStorage(pool, getter),
			postTypes: pgstore.NewPostTypeStorage(pool, getter),
			posts:     pgstore.NewPostStorage(pool, getter),
			comments:  pgstore.NewCommentStorage(pool, getter),
			tx:        manager.Must(trmpgx.NewDefaultFactory(pool)),
		}, nil

	case config.StorageSQLite:
		db, err := sqlitestore.Open(ctx, a.cfg.SQLite.Path)
		if err != nil {
			return storages{}, err
		}
		a.sqliteDB = db
		a.sessionStore = session.SQLiteStore(db.DB)

		getter := trmsqlx.DefaultCtxGetter
		return storages{
			users:     sqlitestore.NewUserStorage(db, getter),
			postTypes: sqlitestore.NewPostTypeStorage(db, getter),
			posts:     sqlitestore.NewPostStorage(db, getter),
			comments:  sqlitestore.NewCommentStorage(db, getter),
			tx:        manager.Must(trmsqlx.NewDefaultFactory(db)),
		}, nil

	default:
		store := memstore.NewStore()
		a.sessionStore = session.MemoryStore()
		return storages{
			users:     memstore.NewUserStorage(store),
			postTypes: memstore.NewPostTypeStorage(store),
			posts:     memstore.NewPostStorage(store),
			comments:  memstore.NewCommentStorage(store),
			tx:        memstore.NewTxManager(),
		}, nil
	}
}

func (a *App) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", a.srv.Addr)
		errCh <- a.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
		// open comment streams end once the bus is closed
		a.bus.Close()

		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.srv.Shutdown(shCtx); err != nil {
			log.Warn("http shutdown", "error", err)
		}
		a.close()
		return nil

	case err := <-errCh:
		a.close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// close releases storage and session resources; it is safe on a partially
// built App.
func (a *App) close() {
	if a.bus != nil {
		a.bus.Close()
	}
	if c, ok := a.sessionStore.(interface{ StopCleanup() }); ok {
		c.StopCleanup()
	}
	if a.sessionDB != nil {
		_ = a.sessionDB.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.sqliteDB != nil {
		_ = a.sqliteDB.Close()
	}
}
