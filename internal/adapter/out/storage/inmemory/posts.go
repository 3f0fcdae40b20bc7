package inmemory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"postboard/internal/model"
	"postboard/internal/service"
)

type PostStorage struct {
	store *Store
}

func NewPostStorage(store *Store) *PostStorage {
	return &PostStorage{store: store}
}

func (s *PostStorage) CreatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.users[in.AuthorID]; !ok {
		return model.Post{}, service.ErrInvalidReference
	}
	if _, ok := s.store.postTypes[in.PostTypeID]; !ok {
		return model.Post{}, service.ErrInvalidReference
	}

	s.store.lastPostID++
	p := model.Post{
		ID:         s.store.lastPostID,
		AuthorID:   in.AuthorID,
		PostTypeID: in.PostTypeID,
		Title:      in.Title,
		Content:    in.Content,
		CreatedAt:  time.Now(),
	}
	s.store.posts[p.ID] = p
	return s.store.joinPost(p), nil
}

func (s *PostStorage) GetPostByID(_ context.Context, postID int64) (model.Post, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if p, ok := s.store.posts[postID]; ok {
		return s.store.joinPost(p), nil
	}
	return model.Post{}, service.ErrNotFound
}

func (s *PostStorage) GetPosts(_ context.Context) ([]model.Post, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]model.Post, 0, len(s.store.posts))
	for _, p := range s.store.posts {
		out = append(out, s.store.joinPost(p))
	}
	slices.SortFunc(out, func(a, b model.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (s *PostStorage) GetPostAuthorID(_ context.Context, postID int64) (int64, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	p, ok := s.store.posts[postID]
	if !ok {
		return 0, service.ErrNotFound
	}
	return p.AuthorID, nil
}

func (s *PostStorage) UpdatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	p, ok := s.store.posts[in.ID]
	if !ok {
		return model.Post{}, service.ErrNotFound
	}
	if _, ok := s.store.postTypes[in.PostTypeID]; !ok {
		return model.Post{}, service.ErrInvalidReference
	}

	now := time.Now()
	p.PostTypeID = in.PostTypeID
	p.Title = in.Title
	p.Content = in.Content
	p.UpdatedAt = &now
	s.store.posts[p.ID] = p
	return s.store.joinPost(p), nil
}

func (s *PostStorage) DeletePost(_ context.Context, postID int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.posts[postID]; !ok {
		return service.ErrNotFound
	}
	s.store.deletePostLocked(postID)
	return nil
}

// deletePostLocked drops the post and its comments; callers hold s.mu.
func (s *Store) deletePostLocked(postID int64) {
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	delete(s.posts, postID)
}
