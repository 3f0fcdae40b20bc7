package inmemory

import (
	"context"
	"slices"
	"strings"

	"postboard/internal/model"
	"postboard/internal/service"
)

type PostTypeStorage struct {
	store *Store
}

func NewPostTypeStorage(store *Store) *PostTypeStorage {
	return &PostTypeStorage{store: store}
}

func (s *PostTypeStorage) CreatePostType(_ context.Context, pt model.PostType) (model.PostType, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.nameTakenLocked(pt.Name, 0) {
		return model.PostType{}, service.ErrAlreadyExists
	}

	s.store.lastPostTypeID++
	pt.ID = s.store.lastPostTypeID
	s.store.postTypes[pt.ID] = pt
	return pt, nil
}

func (s *PostTypeStorage) GetPostTypeByID(_ context.Context, postTypeID int64) (model.PostType, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if pt, ok := s.store.postTypes[postTypeID]; ok {
		return pt, nil
	}
	return model.PostType{}, service.ErrNotFound
}

func (s *PostTypeStorage) GetPostTypes(_ context.Context) ([]model.PostType, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]model.PostType, 0, len(s.store.postTypes))
	for _, pt := range s.store.postTypes {
		out = append(out, pt)
	}
	slices.SortFunc(out, func(a, b model.PostType) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (s *PostTypeStorage) UpdatePostType(_ context.Context, pt model.PostType) (model.PostType, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.postTypes[pt.ID]; !ok {
		return model.PostType{}, service.ErrNotFound
	}
	if s.nameTakenLocked(pt.Name, pt.ID) {
		return model.PostType{}, service.ErrAlreadyExists
	}
	s.store.postTypes[pt.ID] = pt
	return pt, nil
}

// DeletePostType refuses to remove a type that posts still point to, the way
// an ON DELETE RESTRICT key would.
func (s *PostTypeStorage) DeletePostType(_ context.Context, postTypeID int64) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.postTypes[postTypeID]; !ok {
		return service.ErrNotFound
	}
	for _, p := range s.store.posts {
		if p.PostTypeID == postTypeID {
			return service.ErrInvalidReference
		}
	}
	delete(s.store.postTypes, postTypeID)
	return nil
}

func (s *PostTypeStorage) CountPostsByType(_ context.Context, postTypeID int64) (int64, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var n int64
	for _, p := range s.store.posts {
		if p.PostTypeID == postTypeID {
			n++
		}
	}
	return n, nil
}

func (s *PostTypeStorage) nameTakenLocked(name string, exceptID int64) bool {
	for id, pt := range s.store.postTypes {
		if id != exceptID && pt.Name == name {
			return true
		}
	}
	return false
}
