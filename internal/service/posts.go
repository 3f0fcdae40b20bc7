package service

import (
	"context"
	"fmt"
	"strings"

	"postboard/internal/model"
)

//go:generate mockgen -source=posts.go -destination=./post_storage_mock.go -package=service
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	GetPosts(ctx context.Context) ([]model.Post, error)
	GetPostAuthorID(ctx context.Context, postID int64) (int64, error)
	UpdatePost(ctx context.Context, post model.Post) (model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

type PostService struct {
	postStorage PostStorage
	tx          Transactor
}

func NewPostService(postStorage PostStorage, tx Transactor) *PostService {
	return &PostService{
		postStorage: postStorage,
		tx:          tx,
	}
}

func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (model.Post, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(req); err != nil {
		return model.Post{}, err
	}
	return s.postStorage.CreatePost(ctx, model.Post{
		AuthorID:   req.AuthorID,
		PostTypeID: req.PostTypeID,
		Title:      req.Title,
		Content:    req.Content,
	})
}

func (s *PostService) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	if postID <= 0 {
		return model.Post{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	p, err := s.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}
	return p, nil
}

func (s *PostService) GetPosts(ctx context.Context) ([]model.Post, error) {
	return s.postStorage.GetPosts(ctx)
}

func (s *PostService) UpdatePost(ctx context.Context, req UpdatePostRequest) (model.Post, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(req); err != nil {
		return model.Post{}, err
	}

	var out model.Post
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.checkOwner(ctx, req.ID, req.ActorID); err != nil {
			return err
		}
		var err error
		out, err = s.postStorage.UpdatePost(ctx, model.Post{
			ID:         req.ID,
			PostTypeID: req.PostTypeID,
			Title:      req.Title,
			Content:    req.Content,
		})
		return err
	})
	return out, err
}

func (s *PostService) DeletePost(ctx context.Context, postID, actorID int64) error {
	if postID <= 0 || actorID <= 0 {
		return ErrInvalidRequest
	}
	return s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.checkOwner(ctx, postID, actorID); err != nil {
			return err
		}
		return s.postStorage.DeletePost(ctx, postID)
	})
}

func (s *PostService) checkOwner(ctx context.Context, postID, actorID int64) error {
	ownerID, err := s.postStorage.GetPostAuthorID(ctx, postID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return fmt.Errorf("%w: not a post owner", ErrForbidden)
	}
	return nil
}
