package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"postboard/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		req     RegisterRequest
		setup   func(ms *MockUserStorage)
		wantErr error
	}{
		{
			name:    "missing fields",
			req:     RegisterRequest{Username: "  ", Password: "secret1"},
			setup:   func(_ *MockUserStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "short password",
			req:     RegisterRequest{Username: "alice", Password: "12345"},
			setup:   func(_ *MockUserStorage) {},
			wantErr: ErrPasswordTooShort,
		},
		{
			name: "duplicate username",
			req:  RegisterRequest{Username: "alice", Password: "secret1"},
			setup: func(ms *MockUserStorage) {
				ms.EXPECT().
					CreateUser(gomock.Any(), "alice", gomock.Any()).
					Return(model.User{}, ErrAlreadyExists)
			},
			wantErr: ErrAlreadyExists,
		},
		{
			name: "success",
			req:  RegisterRequest{Username: " alice ", Password: "secret1"},
			setup: func(ms *MockUserStorage) {
				ms.EXPECT().
					CreateUser(gomock.Any(), "alice", gomock.Any()).
					DoAndReturn(func(_ context.Context, username, hash string) (model.User, error) {
						require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret1")))
						return model.User{ID: 1, Username: username, PasswordHash: hash, CreatedAt: now}, nil
					})
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := NewMockUserStorage(ctrl)
			tt.setup(ms)

			svc := NewAuthService(ms, &inlineTx{}, bcrypt.MinCost)
			got, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(1), got.ID)
			require.Equal(t, "alice", got.Username)
			require.Empty(t, got.PasswordHash)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	hash := mustHash(t, "secret1")
	dbFail := errors.New("connection refused")

	tests := []struct {
		name      string
		req       LoginRequest
		setup     func(ms *MockUserStorage)
		wantErr   error
		wantInfra bool
	}{
		{
			name:    "missing password",
			req:     LoginRequest{Username: "alice"},
			setup:   func(_ *MockUserStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "unknown user",
			req:  LoginRequest{Username: "bob", Password: "secret1"},
			setup: func(ms *MockUserStorage) {
				ms.EXPECT().GetUserByUsername(gomock.Any(), "bob").Return(model.User{}, ErrNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			req:  LoginRequest{Username: "alice", Password: "nope123"},
			setup: func(ms *MockUserStorage) {
				ms.EXPECT().GetUserByUsername(gomock.Any(), "alice").
					Return(model.User{ID: 1, Username: "alice", PasswordHash: hash}, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "storage failure is not a credentials error",
			req:  LoginRequest{Username: "alice", Password: "secret1"},
			setup: func(ms *MockUserStorage) {
				ms.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(model.User{}, dbFail)
			},
			wantErr:   dbFail,
			wantInfra: true,
		},
		{
			name: "success",
			req:  LoginRequest{Username: "alice", Password: "secret1"},
			setup: func(ms *MockUserStorage) {
				ms.EXPECT().GetUserByUsername(gomock.Any(), "alice").
					Return(model.User{ID: 1, Username: "alice", PasswordHash: hash}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := NewMockUserStorage(ctrl)
			tt.setup(ms)

			svc := NewAuthService(ms, &inlineTx{}, bcrypt.MinCost)
			got, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantInfra {
					require.NotErrorIs(t, err, ErrInvalidCredentials)
				}
				require.Zero(t, got.ID)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(1), got.ID)
			require.Empty(t, got.PasswordHash)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	t.Parallel()

	hash := mustHash(t, "secret1")

	tests := []struct {
		name    string
		req     ChangePasswordRequest
		setup   func(ms *MockUserStorage)
		wantErr error
		wantTx  bool
	}{
		{
			name:    "missing current password",
			req:     ChangePasswordRequest{UserID: 1, NewPassword: "newpass"},
			setup:   func(_ *MockUserStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "new password too short",
			req:     ChangePasswordRequest{UserID: 1, CurrentPassword: "secret1", NewPassword: "123"},
			setup:   func(_ *MockUserStorage) {},
			wantErr: ErrPasswordTooShort,
		},
		{
			name: "user not found",
			req:  ChangePasswordRequest{UserID: 9, CurrentPassword: "secret1", NewPassword: "newpass"},
			setup: func(ms *MockUserStorage) {
				ms.EXPECT().GetUserByID(gomock.Any(), int64(9)).Return(model.User{}, ErrNotFound)
			},
			wantErr: ErrNotFound,
			wantTx:  true,
		},
		{
			name: "wrong current password",
			req:  ChangePasswordRequest{UserID: 1, CurrentPassword: "wrong12", NewPassword: "newpass"},
			setup: func(ms *MockUserStorage) {
				ms.EXPECT().GetUserByID(gomock.Any(), int64(1)).
					Return(model.User{ID: 1, PasswordHash: hash}, nil)
			},
			wantErr: ErrInvalidCredentials,
			wantTx:  true,
		},
		{
			name: "success",
			req:  ChangePasswordRequest{UserID: 1, CurrentPassword: "secret1", NewPassword: "newpass"},
			setup: func(ms *MockUserStorage) {
				ms.EXPECT().GetUserByID(gomock.Any(), int64(1)).
					Return(model.User{ID: 1, PasswordHash: hash}, nil)
				ms.EXPECT().UpdatePasswordHash(gomock.Any(), int64(1), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, newHash string) error {
						require.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("newpass")))
						return nil
					})
			},
			wantTx: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := NewMockUserStorage(ctrl)
			tt.setup(ms)

			tx := &inlineTx{}
			svc := NewAuthService(ms, tx, bcrypt.MinCost)
			err := svc.ChangePassword(context.Background(), tt.req)

			if tt.wantTx {
				require.Equal(t, 1, tx.calls)
			} else {
				require.Zero(t, tx.calls)
			}
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAuthService_GetUserByID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := NewMockUserStorage(ctrl)
	svc := NewAuthService(ms, &inlineTx{}, bcrypt.MinCost)

	_, err := svc.GetUserByID(context.Background(), 0)
	require.ErrorIs(t, err, ErrInvalidRequest)

	ms.EXPECT().GetUserByID(gomock.Any(), int64(3)).
		Return(model.User{ID: 3, Username: "carol", PasswordHash: "x"}, nil)

	got, err := svc.GetUserByID(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "carol", got.Username)
	require.Empty(t, got.PasswordHash)
}
