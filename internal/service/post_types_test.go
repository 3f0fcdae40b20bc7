package service

import (
	"context"
	"errors"
	"testing"

	"postboard/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPostTypeService_CreatePostType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     CreatePostTypeRequest
		setup   func(ms *MockPostTypeStorage)
		wantErr error
	}{
		{
			name:    "blank name",
			req:     CreatePostTypeRequest{Name: "   "},
			setup:   func(_ *MockPostTypeStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "name taken",
			req:  CreatePostTypeRequest{Name: "Tech"},
			setup: func(ms *MockPostTypeStorage) {
				ms.EXPECT().CreatePostType(gomock.Any(), model.PostType{Name: "Tech"}).
					Return(model.PostType{}, ErrAlreadyExists)
			},
			wantErr: ErrAlreadyExists,
		},
		{
			name: "trims and drops blank description",
			req:  CreatePostTypeRequest{Name: " Tech ", Description: ptrStr("  ")},
			setup: func(ms *MockPostTypeStorage) {
				ms.EXPECT().CreatePostType(gomock.Any(), model.PostType{Name: "Tech"}).
					Return(model.PostType{ID: 1, Name: "Tech"}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := NewMockPostTypeStorage(ctrl)
			tt.setup(ms)

			svc := NewPostTypeService(ms, &inlineTx{})
			got, err := svc.CreatePostType(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(1), got.ID)
		})
	}
}

func TestPostTypeService_UpdatePostType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     UpdatePostTypeRequest
		setup   func(ms *MockPostTypeStorage)
		wantErr error
	}{
		{
			name:    "missing name",
			req:     UpdatePostTypeRequest{ID: 1},
			setup:   func(_ *MockPostTypeStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "not found",
			req:  UpdatePostTypeRequest{ID: 5, Name: "News"},
			setup: func(ms *MockPostTypeStorage) {
				ms.EXPECT().GetPostTypeByID(gomock.Any(), int64(5)).Return(model.PostType{}, ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "success",
			req:  UpdatePostTypeRequest{ID: 1, Name: "News", Description: ptrStr(" daily ")},
			setup: func(ms *MockPostTypeStorage) {
				ms.EXPECT().GetPostTypeByID(gomock.Any(), int64(1)).Return(model.PostType{ID: 1, Name: "Tech"}, nil)
				ms.EXPECT().UpdatePostType(gomock.Any(), model.PostType{ID: 1, Name: "News", Description: ptrStr("daily")}).
					Return(model.PostType{ID: 1, Name: "News", Description: ptrStr("daily")}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := NewMockPostTypeStorage(ctrl)
			tt.setup(ms)

			svc := NewPostTypeService(ms, &inlineTx{})
			got, err := svc.UpdatePostType(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "News", got.Name)
			require.Equal(t, "daily", *got.Description)
		})
	}
}

func TestPostTypeService_DeletePostType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		id        int64
		setup     func(ms *MockPostTypeStorage)
		wantErr   error
		wantCount int64
	}{
		{
			name:    "invalid id",
			id:      0,
			setup:   func(_ *MockPostTypeStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "not found",
			id:   3,
			setup: func(ms *MockPostTypeStorage) {
				ms.EXPECT().GetPostTypeByID(gomock.Any(), int64(3)).Return(model.PostType{}, ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "referenced by posts",
			id:   1,
			setup: func(ms *MockPostTypeStorage) {
				ms.EXPECT().GetPostTypeByID(gomock.Any(), int64(1)).Return(model.PostType{ID: 1}, nil)
				ms.EXPECT().CountPostsByType(gomock.Any(), int64(1)).Return(int64(2), nil)
			},
			wantErr:   ErrPostTypeInUse,
			wantCount: 2,
		},
		{
			name: "count fails",
			id:   1,
			setup: func(ms *MockPostTypeStorage) {
				ms.EXPECT().GetPostTypeByID(gomock.Any(), int64(1)).Return(model.PostType{ID: 1}, nil)
				ms.EXPECT().CountPostsByType(gomock.Any(), int64(1)).Return(int64(0), errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
		{
			name: "unreferenced",
			id:   1,
			setup: func(ms *MockPostTypeStorage) {
				ms.EXPECT().GetPostTypeByID(gomock.Any(), int64(1)).Return(model.PostType{ID: 1}, nil)
				ms.EXPECT().CountPostsByType(gomock.Any(), int64(1)).Return(int64(0), nil)
				ms.EXPECT().DeletePostType(gomock.Any(), int64(1)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ms := NewMockPostTypeStorage(ctrl)
			tt.setup(ms)

			svc := NewPostTypeService(ms, &inlineTx{})
			err := svc.DeletePostType(context.Background(), tt.id)

			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if errors.Is(tt.wantErr, ErrPostTypeInUse) {
				var inUse *PostTypeInUseError
				require.ErrorAs(t, err, &inUse)
				require.Equal(t, tt.wantCount, inUse.Count)
				require.ErrorIs(t, err, ErrPostTypeInUse)
				return
			}
			if errors.Is(tt.wantErr, ErrInvalidRequest) || errors.Is(tt.wantErr, ErrNotFound) {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
