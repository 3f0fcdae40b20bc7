package web

import (
	"context"
	"errors"
	"net/http"

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
	GetComments(ctx context.Context, postID *int64) ([]model.Comment, error)
	UpdateComment(ctx context.Context, req service.UpdateCommentRequest) (model.Comment, error)
	DeleteComment(ctx context.Context, commentID, actorID int64) error
}

type Sessions interface {
	Login(ctx context.Context, userID int64) error
	Logout(ctx context.Context) error
	UserID(ctx context.Context) (int64, bool)
	SetFlash(ctx context.Context, msg string)
	PopFlash(ctx context.Context) string
}

type Services struct {
	Auth      AuthService
	Users     UserService
	PostTypes PostTypeService
	Posts     PostService
	Comments  CommentService
}

// Handler serves the HTML pages. Every page except login and register needs
// a signed-in user.
type Handler struct {
	auth      AuthService
	users     UserService
	postTypes PostTypeService
	posts     PostService
	comments  CommentService
	sessions  Sessions
	pages     *pages
}

func NewHandler(svc Services, sessions Sessions) (*Handler, error) {
	p, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Handler{
		auth:      svc.Auth,
		users:     svc.Users,
		postTypes: svc.PostTypes,
		posts:     svc.Posts,
		comments:  svc.Comments,
		sessions:  sessions,
		pages:     p,
	}, nil
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	})

	mux.HandleFunc("GET /login", h.loginPage)
	mux.HandleFunc("POST /login", h.loginSubmit)
	mux.HandleFunc("GET /register", h.registerPage)
	mux.HandleFunc("POST /register", h.registerSubmit)
	mux.HandleFunc("POST /logout", h.logoutSubmit)

	mux.HandleFunc("GET /posts", h.withUser(h.postsPage))
	mux.HandleFunc("GET /posts/new", h.withUser(h.newPostPage))
	mux.HandleFunc("POST /posts", h.withUser(h.createPostSubmit))
	mux.HandleFunc("GET /posts/{id}", h.withUser(h.postPage))
	mux.HandleFunc("GET /posts/{id}/edit", h.withUser(h.editPostPage))
	mux.HandleFunc("POST /posts/{id}/edit", h.withUser(h.updatePostSubmit))
	mux.HandleFunc("POST /posts/{id}/delete", h.withUser(h.deletePostSubmit))

	mux.HandleFunc("POST /posts/{id}/comments", h.withUser(h.createCommentSubmit))
	mux.HandleFunc("POST /comments/{id}/edit", h.withUser(h.updateCommentSubmit))
	mux.HandleFunc("POST /comments/{id}/delete", h.withUser(h.deleteCommentSubmit))

	mux.HandleFunc("GET /types", h.withUser(h.typesPage))
	mux.HandleFunc("POST /types", h.withUser(h.createTypeSubmit))
	mux.HandleFunc("POST /types/{id}/edit", h.withUser(h.updateTypeSubmit))
	mux.HandleFunc("POST /types/{id}/delete", h.withUser(h.deleteTypeSubmit))

	mux.HandleFunc("GET /users", h.withUser(h.usersPage))

	mux.HandleFunc("GET /profile", h.withUser(h.profilePage))
	mux.HandleFunc("POST /profile/password", h.withUser(h.changePasswordSubmit))
	mux.HandleFunc("POST /profile/delete", h.withUser(h.deleteAccountSubmit))
}

type userHandlerFunc func(w http.ResponseWriter, r *http.Request, user model.User)

// withUser redirects to the login page unless the session names an
// existing user.
func (h *Handler) withUser(next userHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := h.sessions.UserID(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		user, err := h.auth.GetUserByID(r.Context(), userID)
		if errors.Is(err, service.ErrNotFound) {
			_ = h.sessions.Logout(r.Context())
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err != nil {
			h.renderError(w, r, nil, err)
			return
		}
		next(w, r, user)
	}
}
