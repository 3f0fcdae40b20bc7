package postgres

import (
	"context"
	"errors"
	"testing"

	"postboard/internal/service"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	m, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

func Test_mapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "no rows", in: pgx.ErrNoRows, want: service.ErrNotFound},
		{name: "unique", in: &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_username_key"}, want: service.ErrAlreadyExists},
		{name: "foreign key", in: &pgconn.PgError{Code: foreignKeyViolation}, want: service.ErrInvalidReference},
		{name: "other pg error", in: &pgconn.PgError{Code: "42P01"}},
		{name: "plain", in: errors.New("conn reset")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mapError("op", tt.in)
			if tt.want != nil {
				require.ErrorIs(t, got, tt.want)
				return
			}
			require.ErrorIs(t, got, tt.in)
			require.NotErrorIs(t, got, service.ErrNotFound)
			require.Contains(t, got.Error(), "op: ")
		})
	}
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	m.ExpectExec("CREATE TABLE IF NOT EXISTS users").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, EnsureSchema(context.Background(), m))
	require.NoError(t, m.ExpectationsWereMet())
}

func TestEnsureSchema_Error(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	m.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

	err := EnsureSchema(context.Background(), m)
	require.ErrorContains(t, err, "permission denied")
}

func TestStorage_JoinsManagedTransaction(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	trm := manager.Must(trmpgx.NewDefaultFactory(m))
	st := NewPostStorage(m, trmpgx.DefaultCtxGetter)

	m.ExpectBegin()
	m.ExpectQuery("SELECT author_id FROM posts").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"author_id"}).AddRow(int64(7)))
	m.ExpectExec("DELETE FROM posts").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	m.ExpectCommit()

	err := trm.Do(context.Background(), func(ctx context.Context) error {
		authorID, err := st.GetPostAuthorID(ctx, 1)
		if err != nil {
			return err
		}
		require.Equal(t, int64(7), authorID)
		return st.DeletePost(ctx, 1)
	})
	require.NoError(t, err)
	require.NoError(t, m.ExpectationsWereMet())
}
