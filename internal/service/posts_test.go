package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"postboard/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		req     CreatePostRequest
		setup   func(ms *MockPostStorage)
		wantErr error
	}{
		{
			name:    "validation error",
			req:     CreatePostRequest{AuthorID: 1, PostTypeID: 1, Title: "  ", Content: "World"},
			setup:   func(_ *MockPostStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "missing post type",
			req:     CreatePostRequest{AuthorID: 1, Title: "Hello", Content: "World"},
			setup:   func(_ *MockPostStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "unknown post type",
			req:  CreatePostRequest{AuthorID: 1, PostTypeID: 99, Title: "Hello", Content: "World"},
			setup: func(ms *MockPostStorage) {
				ms.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(model.Post{}, ErrInvalidReference)
			},
			wantErr: ErrInvalidReference,
		},
		{
			name: "success",
			req:  CreatePostRequest{AuthorID: 1, PostTypeID: 2, Title: " Hello ", Content: "World"},
			setup: func(ms *MockPostStorage) {
				ms.EXPECT().
					CreatePost(gomock.Any(), model.Post{AuthorID: 1, PostTypeID: 2, Title: "Hello", Content: "World"}).
					Return(model.Post{ID: 7, AuthorID: 1, PostTypeID: 2, Title: "Hello", Content: "World", CreatedAt: now}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := NewMockPostStorage(ctrl)
			tt.setup(ms)

			svc := NewPostService(ms, &inlineTx{})
			got, err := svc.CreatePost(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(7), got.ID)
			require.Equal(t, "Hello", got.Title)
		})
	}
}

func TestPostService_GetPostByID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ms := NewMockPostStorage(ctrl)
	svc := NewPostService(ms, &inlineTx{})

	_, err := svc.GetPostByID(context.Background(), -1)
	require.ErrorIs(t, err, ErrInvalidRequest)

	ms.EXPECT().GetPostByID(gomock.Any(), int64(404)).Return(model.Post{}, ErrNotFound)
	_, err = svc.GetPostByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)

	ms.EXPECT().GetPostByID(gomock.Any(), int64(1)).
		Return(model.Post{ID: 1, Title: "Hello", PostTypeName: "Tech", AuthorUsername: "alice"}, nil)
	got, err := svc.GetPostByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Tech", got.PostTypeName)
}

func TestPostService_UpdatePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     UpdatePostRequest
		setup   func(ms *MockPostStorage)
		wantErr error
	}{
		{
			name:    "validation error",
			req:     UpdatePostRequest{ID: 1, ActorID: 1, PostTypeID: 1, Title: "t"},
			setup:   func(_ *MockPostStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "not found",
			req:  UpdatePostRequest{ID: 1, ActorID: 1, PostTypeID: 1, Title: "t", Content: "c"},
			setup: func(ms *MockPostStorage) {
				ms.EXPECT().GetPostAuthorID(gomock.Any(), int64(1)).Return(int64(0), ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "not the owner",
			req:  UpdatePostRequest{ID: 1, ActorID: 2, PostTypeID: 1, Title: "t", Content: "c"},
			setup: func(ms *MockPostStorage) {
				ms.EXPECT().GetPostAuthorID(gomock.Any(), int64(1)).Return(int64(1), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name: "success",
			req:  UpdatePostRequest{ID: 1, ActorID: 1, PostTypeID: 3, Title: "t", Content: "c"},
			setup: func(ms *MockPostStorage) {
				ms.EXPECT().GetPostAuthorID(gomock.Any(), int64(1)).Return(int64(1), nil)
				ms.EXPECT().UpdatePost(gomock.Any(), model.Post{ID: 1, PostTypeID: 3, Title: "t", Content: "c"}).
					Return(model.Post{ID: 1, AuthorID: 1, PostTypeID: 3, Title: "t", Content: "c"}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := NewMockPostStorage(ctrl)
			tt.setup(ms)

			svc := NewPostService(ms, &inlineTx{})
			got, err := svc.UpdatePost(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(3), got.PostTypeID)
		})
	}
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		postID  int64
		actorID int64
		setup   func(ms *MockPostStorage)
		wantErr error
	}{
		{
			name:    "invalid id",
			postID:  0,
			actorID: 1,
			setup:   func(_ *MockPostStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "not the owner",
			postID:  1,
			actorID: 5,
			setup: func(ms *MockPostStorage) {
				ms.EXPECT().GetPostAuthorID(gomock.Any(), int64(1)).Return(int64(1), nil)
			},
			wantErr: ErrForbidden,
		},
		{
			name:    "storage error",
			postID:  1,
			actorID: 1,
			setup: func(ms *MockPostStorage) {
				ms.EXPECT().GetPostAuthorID(gomock.Any(), int64(1)).Return(int64(1), nil)
				ms.EXPECT().DeletePost(gomock.Any(), int64(1)).Return(errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
		{
			name:    "success",
			postID:  1,
			actorID: 1,
			setup: func(ms *MockPostStorage) {
				ms.EXPECT().GetPostAuthorID(gomock.Any(), int64(1)).Return(int64(1), nil)
				ms.EXPECT().DeletePost(gomock.Any(), int64(1)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := NewMockPostStorage(ctrl)
			tt.setup(ms)

			svc := NewPostService(ms, &inlineTx{})
			err := svc.DeletePost(context.Background(), tt.postID, tt.actorID)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidRequest) || errors.Is(tt.wantErr, ErrForbidden) {
					require.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
		})
	}
}
