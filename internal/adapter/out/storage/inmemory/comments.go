package inmemory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"postboard/internal/adapter/out/storage"
	"postboard/internal/model"
	"postboard/internal/service"
)

type CommentStorage struct {
	store *Store
}

func NewCommentStorage(store *Store) *CommentStorage {
	return &CommentStorage{store: store}
}

func (s *CommentStorage) CreateComment(_ context.Context, in model.Comment) (model.Comment, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.posts[in.PostID]; !ok {
		return model.Comment{}, service.ErrInvalidReference
	}
	if _, ok := s.store.users[in.AuthorID]; !ok {
		return model.Comment{}, service.ErrInvalidReference
	}

	s.store.lastCommentID++
	c := model.Comment{
		ID:        s.store.lastCommentID,
		PostID:    in.PostID,
		AuthorID:  in.AuthorID,
		Content:   in.Content,
		CreatedAt: time.Now(),
	}
	s.store.comments[c.ID] = c
	return s.store.joinComment(c), nil
}

func (s *CommentStorage) GetCommentByID(_ context.Context, commentID int64) (model.Comment, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if c, ok := s.store.comments[commentID]; ok {
		return s.store.joinComment(c), nil
	}
	return model.Comment{}, service.ErrNotFound
}

func (s *CommentStorage) GetComments(_ context.Context, params storage.GetCommentsParams) ([]model.Comment, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]model.Comment, 0)
	for _, c := range s.store.comments {
		if params.ByPost(c.PostID) {
			out = append(out, s.store.joinComment(c))
		}
	}
	slices.SortFunc(out, func(a, b model.Comment) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *CommentStorage) GetCommentAuthorID(_ context.Context, commentID int64) (int64, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	c, ok := s.store.comments[commentID]
	if !ok {
		return 0, service.ErrNotFound
	}
	return c.AuthorID, nil
}

func (s *CommentStorage) UpdateComment(_ context.Context, commentID int64, content string) (model.Comment, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c, ok := s.store.comments[commentID]
	if !ok {
		return model.Comment{}, service.ErrNotFound
	}
	now := time.Now()
	c.Content = content
	c.UpdatedAt = &now
	s.store.comments[commentID] = c
	return s.store.joinComment(c), nil
}

func (s *CommentStorage) DeleteComment(_ context.Context, commentID int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.comments[commentID]; !ok {
		return service.ErrNotFound
	}
	delete(s.store.comments, commentID)
	return nil
}
