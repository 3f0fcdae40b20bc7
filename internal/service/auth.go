package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"postboard/internal/model"

	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 12

//go:generate mockgen -source=auth.go -destination=./user_storage_mock.go -package=service
type UserStorage interface {
	CreateUser(ctx context.Context, username, passwordHash string) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
	GetUsersWithPostCount(ctx context.Context) ([]model.UserWithPostCount, error)
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
	DeleteUser(ctx context.Context, userID int64) error
}

type AuthService struct {
	userStorage UserStorage
	tx          Transactor
	cost        int
}

func NewAuthService(userStorage UserStorage, tx Transactor, cost int) *AuthService {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &AuthService{
		userStorage: userStorage,
		tx:          tx,
		cost:        cost,
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(req); err != nil {
		return model.User{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userStorage.CreateUser(ctx, req.Username, string(hash))
	if err != nil {
		return model.User{}, err
	}
	return user.Public(), nil
}

// Login returns ErrInvalidCredentials for an unknown user or a wrong password.
// Storage failures are returned as they are.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(req); err != nil {
		return model.User{}, err
	}

	user, err := s.userStorage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := comparePassword(user.PasswordHash, req.Password); err != nil {
		return model.User{}, err
	}
	return user.Public(), nil
}

func (s *AuthService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		user, err := s.userStorage.GetUserByID(ctx, req.UserID)
		if err != nil {
			return err
		}

		if err := comparePassword(user.PasswordHash, req.CurrentPassword); err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		return s.userStorage.UpdatePasswordHash(ctx, req.UserID, string(hash))
	})
}

func (s *AuthService) GetUserByID(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, fmt.Errorf("userID must be > 0: %w", ErrInvalidRequest)
	}
	user, err := s.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	return user.Public(), nil
}

func comparePassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("compare password: %w", err)
	}
}
