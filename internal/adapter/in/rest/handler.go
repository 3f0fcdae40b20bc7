package rest

import (
	"context"
	"net/http"
	"time"

	"postboard/internal/model"
	"postboard/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, req service.RegisterRequest) (model.User, error)
	Login(ctx context.Context, req service.LoginRequest) (model.User, error)
	ChangePassword(ctx context.Context, req service.ChangePasswordRequest) error
	GetUserByID(ctx context.Context, userID int64) (model.User, error)
}

type UserService interface {
	GetUsers(ctx context.Context) ([]model.UserWithPostCount, error)
	DeleteUser(ctx context.Context, userID, actorID int64) error
}

type PostTypeService interface {
	CreatePostType(ctx context.Context, req service.CreatePostTypeRequest) (model.PostType, error)
	GetPostTypeByID(ctx context.Context, postTypeID int64) (model.PostType, error)
	GetPostTypes(ctx context.Context) ([]model.PostType, error)
	UpdatePostType(ctx context.Context, req service.UpdatePostTypeRequest) (model.PostType, error)
	DeletePostType(ctx context.Context, postTypeID int64) error
}

type PostService interface {
	CreatePost(ctx context.Context, req service.CreatePostRequest) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	GetPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, req service.UpdatePostRequest) (model.Post, error)
	DeletePost(ctx context.Context, postID, actorID int64) error
}

type CommentService interface {
	CreateComment(ctx context.Context, req service.CreateCommentRequest) (model.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error)
	GetComments(ctx context.Context, postID *int64) ([]model.Comment, error)
	UpdateComment(ctx context.Context, req service.UpdateCommentRequest) (model.Comment, error)
	DeleteComment(ctx context.Context, commentID, actorID int64) error
	Listen(ctx context.Context, postID int64) (<-chan model.Comment, error)
}

type Sessions interface {
	Login(ctx context.Context, userID int64) error
	Logout(ctx context.Context) error
	UserID(ctx context.Context) (int64, bool)
}

type Services struct {
	Auth      AuthService
	Users     UserService
	PostTypes PostTypeService
	Posts     PostService
	Comments  CommentService
}

const defaultStreamKeepAlive = 15 * time.Second

type Handler struct {
	auth      AuthService
	users     UserService
	postTypes PostTypeService
	posts     PostService
	comments  CommentService
	sessions  Sessions

	streamKeepAlive time.Duration
}

// NewHandler serves the JSON API. keepAlive is the comment stream ping
// interval; zero selects the default.
func NewHandler(svc Services, sessions Sessions, keepAlive time.Duration) *Handler {
	if keepAlive <= 0 {
		keepAlive = defaultStreamKeepAlive
	}
	return &Handler{
		auth:            svc.Auth,
		users:           svc.Users,
		postTypes:       svc.PostTypes,
		posts:           svc.Posts,
		comments:        svc.Comments,
		sessions:        sessions,
		streamKeepAlive: keepAlive,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("POST /api/auth/logout", h.logout)
	mux.HandleFunc("GET /api/auth/me", h.me)
	mux.HandleFunc("POST /api/auth/change-password", h.changePassword)

	mux.HandleFunc("GET /api/users", h.listUsers)
	mux.HandleFunc("DELETE /api/users/{id}", h.deleteUser)

	mux.HandleFunc("GET /api/post-types", h.listPostTypes)
	mux.HandleFunc("POST /api/post-types", h.createPostType)
	mux.HandleFunc("GET /api/post-types/{id}", h.getPostType)
	mux.HandleFunc("PUT /api/post-types/{id}", h.updatePostType)
	mux.HandleFunc("DELETE /api/post-types/{id}", h.deletePostType)

	mux.HandleFunc("GET /api/posts", h.listPosts)
	mux.HandleFunc("POST /api/posts", h.createPost)
	mux.HandleFunc("GET /api/posts/{id}", h.getPost)
	mux.HandleFunc("PUT /api/posts/{id}", h.updatePost)
	mux.HandleFunc("DELETE /api/posts/{id}", h.deletePost)

	mux.HandleFunc("GET /api/comments", h.listComments)
	mux.HandleFunc("POST /api/comments", h.createComment)
	mux.HandleFunc("GET /api/comments/stream", h.streamComments)
	mux.HandleFunc("GET /api/comments/{id}", h.getComment)
	mux.HandleFunc("PUT /api/comments/{id}", h.updateComment)
	mux.HandleFunc("DELETE /api/comments/{id}", h.deleteComment)
}

// actor returns the session user or errUnauthenticated.
func (h *Handler) actor(r *http.Request) (int64, error) {
	id, ok := h.sessions.UserID(r.Context())
	if !ok {
		return 0, errUnauthenticated
	}
	return id, nil
}
