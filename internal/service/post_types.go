package service

import (
	"context"
	"fmt"
	"strings"

	"postboard/internal/model"
)

//go:generate mockgen -source=post_types.go -destination=./post_type_storage_mock.go -package=service
type PostTypeStorage interface {
	CreatePostType(ctx context.Context, pt model.PostType) (model.PostType, error)
	GetPostTypeByID(ctx context.Context, postTypeID int64) (model.PostType, error)
	GetPostTypes(ctx context.Context) ([]model.PostType, error)
	UpdatePostType(ctx context.Context, pt model.PostType) (model.PostType, error)
	DeletePostType(ctx context.Context, postTypeID int64) error
	CountPostsByType(ctx context.Context, postTypeID int64) (int64, error)
}

type PostTypeService struct {
	postTypeStorage PostTypeStorage
	tx              Transactor
}

func NewPostTypeService(postTypeStorage PostTypeStorage, tx Transactor) *PostTypeService {
	return &PostTypeService{
		postTypeStorage: postTypeStorage,
		tx:              tx,
	}
}

func (s *PostTypeService) CreatePostType(ctx context.Context, req CreatePostTypeRequest) (model.PostType, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return model.PostType{}, err
	}
	return s.postTypeStorage.CreatePostType(ctx, model.PostType{
		Name:        req.Name,
		Description: trimOptional(req.Description),
	})
}

func (s *PostTypeService) GetPostTypeByID(ctx context.Context, postTypeID int64) (model.PostType, error) {
	if postTypeID <= 0 {
		return model.PostType{}, fmt.Errorf("postTypeID must be > 0: %w", ErrInvalidRequest)
	}
	return s.postTypeStorage.GetPostTypeByID(ctx, postTypeID)
}

func (s *PostTypeService) GetPostTypes(ctx context.Context) ([]model.PostType, error) {
	return s.postTypeStorage.GetPostTypes(ctx)
}

func (s *PostTypeService) UpdatePostType(ctx context.Context, req UpdatePostTypeRequest) (model.PostType, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(req); err != nil {
		return model.PostType{}, err
	}

	var out model.PostType
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := s.postTypeStorage.GetPostTypeByID(ctx, req.ID); err != nil {
			return err
		}
		var err error
		out, err = s.postTypeStorage.UpdatePostType(ctx, model.PostType{
			ID:          req.ID,
			Name:        req.Name,
			Description: trimOptional(req.Description),
		})
		return err
	})
	return out, err
}

// DeletePostType fails with *PostTypeInUseError while posts still reference the type.
func (s *PostTypeService) DeletePostType(ctx context.Context, postTypeID int64) error {
	if postTypeID <= 0 {
		return fmt.Errorf("postTypeID must be > 0: %w", ErrInvalidRequest)
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := s.postTypeStorage.GetPostTypeByID(ctx, postTypeID); err != nil {
			return err
		}

		count, err := s.postTypeStorage.CountPostsByType(ctx, postTypeID)
		if err != nil {
			return err
		}
		if count > 0 {
			return &PostTypeInUseError{Count: count}
		}

		return s.postTypeStorage.DeletePostType(ctx, postTypeID)
	})
}
