package service

import (
	"context"
	"fmt"
	"strings"

	"postboard/internal/adapter/out/storage"
	"postboard/internal/model"
	"postboard/pkg/logger"
)

//go:generate mockgen -source=comments.go -destination=./comment_storage_mock.go -package=service
type CommentStorage interface {
	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error)
	GetComments(ctx context.Context, params storage.GetCommentsParams) ([]model.Comment, error)
	GetCommentAuthorID(ctx context.Context, commentID int64) (int64, error)
	UpdateComment(ctx context.Context, commentID int64, content string) (model.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) error
}

type CommentBus interface {
	Subscribe(ctx context.Context, postID int64) (<-chan model.Comment, error)
	Publish(ctx context.Context, postID int64, c model.Comment) error
}

type CommentService struct {
	commentStorage CommentStorage
	commentBus     CommentBus
	tx             Transactor
}

func NewCommentService(commentStorage CommentStorage, commentBus CommentBus, tx Transactor) *CommentService {
	return &CommentService{
		commentStorage: commentStorage,
		commentBus:     commentBus,
		tx:             tx,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, req CreateCommentRequest) (model.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(req); err != nil {
		return model.Comment{}, err
	}

	comment, err := s.commentStorage.CreateComment(ctx, model.Comment{
		PostID:   req.PostID,
		AuthorID: req.AuthorID,
		Content:  req.Content,
	})
	if err != nil {
		return model.Comment{}, err
	}

	if s.commentBus != nil {
		if err := s.commentBus.Publish(ctx, req.PostID, comment); err != nil {
			logger.FromContext(ctx).Warn("publish comment", "post_id", req.PostID, "error", err)
		}
	}
	return comment, nil
}

func (s *CommentService) GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error) {
	if commentID <= 0 {
		return model.Comment{}, fmt.Errorf("commentID must be > 0: %w", ErrInvalidRequest)
	}
	return s.commentStorage.GetCommentByID(ctx, commentID)
}

func (s *CommentService) GetComments(ctx context.Context, postID *int64) ([]model.Comment, error) {
	if postID != nil && *postID <= 0 {
		return nil, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	return s.commentStorage.GetComments(ctx, storage.GetCommentsParams{PostID: postID})
}

func (s *CommentService) UpdateComment(ctx context.Context, req UpdateCommentRequest) (model.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(req); err != nil {
		return model.Comment{}, err
	}

	var out model.Comment
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.checkOwner(ctx, req.ID, req.ActorID); err != nil {
			return err
		}
		var err error
		out, err = s.commentStorage.UpdateComment(ctx, req.ID, req.Content)
		return err
	})
	return out, err
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, actorID int64) error {
	if commentID <= 0 || actorID <= 0 {
		return ErrInvalidRequest
	}
	return s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.checkOwner(ctx, commentID, actorID); err != nil {
			return err
		}
		return s.commentStorage.DeleteComment(ctx, commentID)
	})
}

// Listen streams comments created on postID until ctx is done.
func (s *CommentService) Listen(ctx context.Context, postID int64) (<-chan model.Comment, error) {
	if s.commentBus == nil {
		return nil, fmt.Errorf("no bus configured")
	}
	if postID <= 0 {
		return nil, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	return s.commentBus.Subscribe(ctx, postID)
}

func (s *CommentService) checkOwner(ctx context.Context, commentID, actorID int64) error {
	ownerID, err := s.commentStorage.GetCommentAuthorID(ctx, commentID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return fmt.Errorf("%w: not a comment owner", ErrForbidden)
	}
	return nil
}
