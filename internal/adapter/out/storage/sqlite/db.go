package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"postboard/internal/service"

	sq "github.com/Masterminds/squirrel"
	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

var ErrBuildingQuery = errors.New("error building sql-query")

//go:embed schema.sql
var schema string

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Open connects to the database file at path, enables foreign keys and
// creates the schema. ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	// sqlite serializes writers anyway; one connection also keeps a
	// ":memory:" database alive and shared.
	db.SetMaxOpenConns(1)

	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return service.ErrNotFound
	}

	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", service.ErrAlreadyExists, se)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", service.ErrInvalidReference, se)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// execAffectingOne runs a write that must touch exactly one row.
func execAffectingOne(ctx context.Context, tr trmsqlx.Tr, op string, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	res, err := tr.ExecContext(ctx, query, args...)
	if err != nil {
		return mapError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return service.ErrNotFound
	}
	return nil
}

// insertID runs an insert and returns the new rowid.
func insertID(ctx context.Context, tr trmsqlx.Tr, op string, b sq.InsertBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	res, err := tr.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapError(op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}
	return id, nil
}

func now() time.Time {
	return time.Now().UTC()
}
