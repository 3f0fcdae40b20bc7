package inmemory

import (
	"context"
	"testing"
	"time"

	"postboard/internal/model"
	"postboard/internal/service"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *Store
	users     *UserStorage
	postTypes *PostTypeStorage
	posts     *PostStorage
	comments  *CommentStorage
}

func newFixture() fixture {
	st := NewStore()
	return fixture{
		store:     st,
		users:     NewUserStorage(st),
		postTypes: NewPostTypeStorage(st),
		posts:     NewPostStorage(st),
		comments:  NewCommentStorage(st),
	}
}

func (f fixture) seed(t *testing.T) (model.User, model.PostType) {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), "alice", "hash")
	require.NoError(t, err)
	pt, err := f.postTypes.CreatePostType(context.Background(), model.PostType{Name: "Tech"})
	require.NoError(t, err)
	return u, pt
}

func TestPostStorage_CreateAndGetByID(t *testing.T) {
	t.Parallel()

	f := newFixture()
	u, pt := f.seed(t)

	tests := []struct {
		name    string
		input   model.Post
		wantID  int64
		wantErr error
	}{
		{
			name:   "first post",
			input:  model.Post{AuthorID: u.ID, PostTypeID: pt.ID, Title: "t1", Content: "b1"},
			wantID: 1,
		},
		{
			name:   "second post",
			input:  model.Post{AuthorID: u.ID, PostTypeID: pt.ID, Title: "t2", Content: "b2"},
			wantID: 2,
		},
		{
			name:    "unknown author",
			input:   model.Post{AuthorID: 99, PostTypeID: pt.ID, Title: "t", Content: "b"},
			wantErr: service.ErrInvalidReference,
		},
		{
			name:    "unknown post type",
			input:   model.Post{AuthorID: u.ID, PostTypeID: 99, Title: "t", Content: "b"},
			wantErr: service.ErrInvalidReference,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.posts.CreatePost(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, out.ID)
			require.Equal(t, tt.input.Title, out.Title)
			require.Equal(t, "alice", out.AuthorUsername)
			require.Equal(t, "Tech", out.PostTypeName)
			require.Nil(t, out.UpdatedAt)
			require.WithinDuration(t, time.Now(), out.CreatedAt, time.Second)

			got, err := f.posts.GetPostByID(context.Background(), tt.wantID)
			require.NoError(t, err)
			require.Equal(t, out, got)
		})
	}
}

func TestPostStorage_GetPostByID_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture()

	_, err := f.posts.GetPostByID(context.Background(), 10)
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.posts.GetPostAuthorID(context.Background(), 10)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostStorage_GetPosts_NewestFirst(t *testing.T) {
	t.Parallel()

	f := newFixture()
	u, pt := f.seed(t)

	for _, title := range []string{"a", "b", "c"} {
		_, err := f.posts.CreatePost(context.Background(), model.Post{AuthorID: u.ID, PostTypeID: pt.ID, Title: title, Content: "x"})
		require.NoError(t, err)
	}

	got, err := f.posts.GetPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []int64{3, 2, 1}, []int64{got[0].ID, got[1].ID, got[2].ID})
}

func TestPostStorage_UpdatePost(t *testing.T) {
	t.Parallel()

	f := newFixture()
	u, pt := f.seed(t)
	other, err := f.postTypes.CreatePostType(context.Background(), model.PostType{Name: "News"})
	require.NoError(t, err)

	p, err := f.posts.CreatePost(context.Background(), model.Post{AuthorID: u.ID, PostTypeID: pt.ID, Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = f.posts.UpdatePost(context.Background(), model.Post{ID: 42, PostTypeID: pt.ID, Title: "x", Content: "y"})
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = f.posts.UpdatePost(context.Background(), model.Post{ID: p.ID, PostTypeID: 99, Title: "x", Content: "y"})
	require.ErrorIs(t, err, service.ErrInvalidReference)

	upd, err := f.posts.UpdatePost(context.Background(), model.Post{ID: p.ID, PostTypeID: other.ID, Title: "x", Content: "y"})
	require.NoError(t, err)
	require.Equal(t, "x", upd.Title)
	require.Equal(t, "News", upd.PostTypeName)
	require.Equal(t, u.ID, upd.AuthorID)
	require.NotNil(t, upd.UpdatedAt)
}

func TestPostStorage_DeletePost_CascadesComments(t *testing.T) {
	t.Parallel()

	f := newFixture()
	u, pt := f.seed(t)

	p, err := f.posts.CreatePost(context.Background(), model.Post{AuthorID: u.ID, PostTypeID: pt.ID, Title: "t", Content: "c"})
	require.NoError(t, err)
	c, err := f.comments.CreateComment(context.Background(), model.Comment{PostID: p.ID, AuthorID: u.ID, Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, f.posts.DeletePost(context.Background(), p.ID))
	require.ErrorIs(t, f.posts.DeletePost(context.Background(), p.ID), service.ErrNotFound)

	_, err = f.comments.GetCommentByID(context.Background(), c.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}
