package inmemory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"postboard/internal/model"
	"postboard/internal/service"
)

type UserStorage struct {
	store *Store
}

func NewUserStorage(store *Store) *UserStorage {
	return &UserStorage{store: store}
}

func (s *UserStorage) CreateUser(_ context.Context, username, passwordHash string) (model.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, u := range s.store.users {
		if u.Username == username {
			return model.User{}, service.ErrAlreadyExists
		}
	}

	s.store.lastUserID++
	u := model.User{
		ID:           s.store.lastUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.store.users[u.ID] = u
	return u, nil
}

func (s *UserStorage) GetUserByUsername(_ context.Context, username string) (model.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, u := range s.store.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, service.ErrNotFound
}

func (s *UserStorage) GetUserByID(_ context.Context, userID int64) (model.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if u, ok := s.store.users[userID]; ok {
		return u, nil
	}
	return model.User{}, service.ErrNotFound
}

func (s *UserStorage) GetUsersWithPostCount(_ context.Context) ([]model.UserWithPostCount, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	counts := make(map[int64]int64, len(s.store.users))
	for _, p := range s.store.posts {
		counts[p.AuthorID]++
	}

	out := make([]model.UserWithPostCount, 0, len(s.store.users))
	for _, u := range s.store.users {
		out = append(out, model.UserWithPostCount{
			ID:        u.ID,
			Username:  u.Username,
			CreatedAt: u.CreatedAt,
			PostCount: counts[u.ID],
		})
	}
	slices.SortFunc(out, func(a, b model.UserWithPostCount) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (s *UserStorage) UpdatePasswordHash(_ context.Context, userID int64, passwordHash string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	u, ok := s.store.users[userID]
	if !ok {
		return service.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.store.users[userID] = u
	return nil
}

// DeleteUser removes the user, the user's posts, and every comment that was
// written by the user or left under one of those posts.
func (s *UserStorage) DeleteUser(_ context.Context, userID int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.users[userID]; !ok {
		return service.ErrNotFound
	}

	for id, p := range s.store.posts {
		if p.AuthorID == userID {
			s.store.deletePostLocked(id)
		}
	}
	for id, c := range s.store.comments {
		if c.AuthorID == userID {
			delete(s.store.comments, id)
		}
	}
	delete(s.store.users, userID)
	return nil
}
