package web

import (
	"net/http"
	"sort"
	"strings"

	"postboard/internal/model"
)

type postsData struct {
	Posts   []model.Post
	Types   []model.PostType
	Authors []string

	Query  string
	TypeID int64
	Author string
}

type postData struct {
	Post     model.Post
	Comments []model.Comment
	ActorID  int64
}

type postFormData struct {
	Post  model.Post
	Types []model.PostType
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", view{Title: "Iniciar sesión"})
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", view{Title: "Registro"})
}

func (h *Handler) postsPage(w http.ResponseWriter, r *http.Request, user model.User) {
	ctx := r.Context()

	posts, err := h.posts.GetPosts(ctx)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	types, err := h.postTypes.GetPostTypes(ctx)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}

	q := r.URL.Query()
	data := postsData{
		Types:   types,
		Authors: authorsOf(posts),
		Query:   strings.TrimSpace(q.Get("q")),
		Author:  q.Get("author"),
	}
	if raw := q.Get("type"); raw != "" {
		// an unparsable type filter shows everything
		data.TypeID, _ = parseID(raw)
	}
	data.Posts = filterPosts(posts, data.Query, data.TypeID, data.Author)

	h.render(w, r, http.StatusOK, "posts.html", view{Title: "Posts", User: &user, Data: data})
}

// filterPosts keeps the posts whose title or content contains query
// (case-insensitive) and that match the type and author when those are set.
func filterPosts(posts []model.Post, query string, typeID int64, author string) []model.Post {
	query = strings.ToLower(query)

	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Title), query) &&
			!strings.Contains(strings.ToLower(p.Content), query) {
			continue
		}
		if typeID != 0 && p.PostTypeID != typeID {
			continue
		}
		if author != "" && p.AuthorUsername != author {
			continue
		}
		out = append(out, p)
	}
	return out
}

func authorsOf(posts []model.Post) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range posts {
		if _, ok := seen[p.AuthorUsername]; ok {
			continue
		}
		seen[p.AuthorUsername] = struct{}{}
		out = append(out, p.AuthorUsername)
	}
	sort.Strings(out)
	return out
}

func (h *Handler) postPage(w http.ResponseWriter, r *http.Request, user model.User) {
	postID, err := pathID(r)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}

	post, err := h.posts.GetPostByID(r.Context(), postID)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	comments, err := h.comments.GetComments(r.Context(), &postID)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}

	h.render(w, r, http.StatusOK, "post.html", view{
		Title: post.Title,
		User:  &user,
		Data:  postData{Post: post, Comments: comments, ActorID: user.ID},
	})
}

func (h *Handler) newPostPage(w http.ResponseWriter, r *http.Request, user model.User) {
	types, err := h.postTypes.GetPostTypes(r.Context())
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	h.render(w, r, http.StatusOK, "post_form.html", view{
		Title: "Crear Nuevo Post",
		User:  &user,
		Data:  postFormData{Types: types},
	})
}

func (h *Handler) editPostPage(w http.ResponseWriter, r *http.Request, user model.User) {
	postID, err := pathID(r)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}

	post, err := h.posts.GetPostByID(r.Context(), postID)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	if post.AuthorID != user.ID {
		h.render(w, r, http.StatusForbidden, "error.html", view{Title: "Error", User: &user, Error: "No autorizado"})
		return
	}

	types, err := h.postTypes.GetPostTypes(r.Context())
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	h.render(w, r, http.StatusOK, "post_form.html", view{
		Title: "Editar Post",
		User:  &user,
		Data:  postFormData{Post: post, Types: types},
	})
}

func (h *Handler) typesPage(w http.ResponseWriter, r *http.Request, user model.User) {
	types, err := h.postTypes.GetPostTypes(r.Context())
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	h.render(w, r, http.StatusOK, "types.html", view{Title: "Tipos de Posts", User: &user, Data: types})
}

func (h *Handler) usersPage(w http.ResponseWriter, r *http.Request, user model.User) {
	users, err := h.users.GetUsers(r.Context())
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	h.render(w, r, http.StatusOK, "users.html", view{Title: "Usuarios", User: &user, Data: users})
}

func (h *Handler) profilePage(w http.ResponseWriter, r *http.Request, user model.User) {
	h.render(w, r, http.StatusOK, "profile.html", view{Title: "Mi Perfil", User: &user})
}
