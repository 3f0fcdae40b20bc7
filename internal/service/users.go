package service

import (
	"context"
	"fmt"

	"postboard/internal/model"
)

type UserService struct {
	userStorage UserStorage
	tx          Transactor
}

func NewUserService(userStorage UserStorage, tx Transactor) *UserService {
	return &UserService{
		userStorage: userStorage,
		tx:          tx,
	}
}

func (s *UserService) GetUsers(ctx context.Context) ([]model.UserWithPostCount, error) {
	return s.userStorage.GetUsersWithPostCount(ctx)
}

// DeleteUser removes the account together with its posts and comments.
// Only the account owner may delete it.
func (s *UserService) DeleteUser(ctx context.Context, userID, actorID int64) error {
	if userID <= 0 {
		return fmt.Errorf("userID must be > 0: %w", ErrInvalidRequest)
	}
	if userID != actorID {
		return fmt.Errorf("%w: not the account owner", ErrForbidden)
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := s.userStorage.GetUserByID(ctx, userID); err != nil {
			return err
		}
		return s.userStorage.DeleteUser(ctx, userID)
	})
}
