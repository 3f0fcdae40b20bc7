package postgres

import (
	"context"
	"testing"
	"time"

	"postboard/internal/service"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "username", "password_hash", "created_at"}

func TestUserStorage_CreateUser(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		wantErr error
	}{
		{
			name: "success",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("INSERT INTO users").
					WithArgs("alice", "hash").
					WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(1), "alice", "hash", now))
			},
		},
		{
			name: "duplicate username",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery("INSERT INTO users").
					WithArgs("alice", "hash").
					WillReturnError(&pgconn.PgError{Code: uniqueViolation})
			},
			wantErr: service.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newMock(t)
			tt.setup(m)

			st := NewUserStorage(m, trmpgx.DefaultCtxGetter)
			got, err := st.CreateUser(context.Background(), "alice", "hash")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, int64(1), got.ID)
				require.Equal(t, now, got.CreatedAt)
			}
			require.NoError(t, m.ExpectationsWereMet())
		})
	}
}

func TestUserStorage_GetUserByUsername(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	st := NewUserStorage(m, trmpgx.DefaultCtxGetter)

	m.ExpectQuery("SELECT id, username, password_hash, created_at FROM users WHERE username = \\$1").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(int64(1), "alice", "hash", time.Now()))
	u, err := st.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "hash", u.PasswordHash)

	m.ExpectQuery("FROM users WHERE id = \\$1").
		WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)
	_, err = st.GetUserByID(context.Background(), 2)
	require.ErrorIs(t, err, service.ErrNotFound)

	require.NoError(t, m.ExpectationsWereMet())
}

func TestUserStorage_GetUsersWithPostCount(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	st := NewUserStorage(m, trmpgx.DefaultCtxGetter)

	now := time.Now()
	m.ExpectQuery("LEFT JOIN posts ON posts.author_id = users.id GROUP BY users.id ORDER BY users.created_at DESC").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "created_at", "post_count"}).
			AddRow(int64(2), "bob", now, int64(0)).
			AddRow(int64(1), "alice", now.Add(-time.Hour), int64(3)))

	got, err := st.GetUsersWithPostCount(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "alice", got[1].Username)
	require.Equal(t, int64(3), got[1].PostCount)
	require.NoError(t, m.ExpectationsWereMet())
}

func TestUserStorage_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	m := newMock(t)
	st := NewUserStorage(m, trmpgx.DefaultCtxGetter)

	m.ExpectExec("UPDATE users SET password_hash = \\$1 WHERE id = \\$2").
		WithArgs("new", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, st.UpdatePasswordHash(context.Background(), 1, "new"))

	m.ExpectExec("UPDATE users").
		WithArgs("new", int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, st.UpdatePasswordHash(context.Background(), 9, "new"), service.ErrNotFound)

	m.ExpectExec("DELETE FROM users WHERE id = \\$1").
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, st.DeleteUser(context.Background(), 1))

	require.NoError(t, m.ExpectationsWereMet())
}
