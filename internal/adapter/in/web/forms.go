package web

import (
	"errors"
	"fmt"
	"net/http"

	"postboard/internal/model"
	"postboard/internal/service"
)

const deleteConfirmation = "ELIMINAR"

func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Login(r.Context(), service.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		status, msg := h.errorText(r, err, "")
		h.render(w, r, status, "login.html", view{Title: "Iniciar sesión", Error: msg})
		return
	}

	if err := h.sessions.Login(r.Context(), user.ID); err != nil {
		h.renderError(w, r, nil, fmt.Errorf("start session: %w", err))
		return
	}
	h.redirectWithFlash(w, r, "/posts", "Bienvenido, "+user.Username)
}

func (h *Handler) registerSubmit(w http.ResponseWriter, r *http.Request) {
	password := r.PostFormValue("password")
	if password != r.PostFormValue("confirm") {
		h.render(w, r, http.StatusBadRequest, "register.html", view{Title: "Registro", Error: "Las contraseñas no coinciden"})
		return
	}

	_, err := h.auth.Register(r.Context(), service.RegisterRequest{
		Username: r.PostFormValue("username"),
		Password: password,
	})
	if err != nil {
		status, msg := h.errorText(r, err, "El usuario ya existe")
		h.render(w, r, status, "register.html", view{Title: "Registro", Error: msg})
		return
	}
	h.redirectWithFlash(w, r, "/login", "Usuario creado exitosamente. Inicia sesión.")
}

func (h *Handler) logoutSubmit(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.renderError(w, r, nil, fmt.Errorf("end session: %w", err))
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) createPostSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	typeID, err := formID(r, "post_type_id")
	if err != nil {
		h.redirectWithError(w, r, "/posts/new", err, "")
		return
	}

	post, err := h.posts.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID:   user.ID,
		PostTypeID: typeID,
		Title:      r.PostFormValue("title"),
		Content:    r.PostFormValue("content"),
	})
	if err != nil {
		h.redirectWithError(w, r, "/posts/new", err, "")
		return
	}
	h.redirectWithFlash(w, r, fmt.Sprintf("/posts/%d", post.ID), "Post creado correctamente")
}

func (h *Handler) updatePostSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	postID, err := pathID(r)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	editPath := fmt.Sprintf("/posts/%d/edit", postID)

	typeID, err := formID(r, "post_type_id")
	if err != nil {
		h.redirectWithError(w, r, editPath, err, "")
		return
	}

	_, err = h.posts.UpdatePost(r.Context(), service.UpdatePostRequest{
		ID:         postID,
		ActorID:    user.ID,
		PostTypeID: typeID,
		Title:      r.PostFormValue("title"),
		Content:    r.PostFormValue("content"),
	})
	if err != nil {
		h.redirectWithError(w, r, editPath, err, "")
		return
	}
	h.redirectWithFlash(w, r, fmt.Sprintf("/posts/%d", postID), "Post actualizado correctamente")
}

func (h *Handler) deletePostSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	postID, err := pathID(r)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}

	if err := h.posts.DeletePost(r.Context(), postID, user.ID); err != nil {
		h.redirectWithError(w, r, fmt.Sprintf("/posts/%d", postID), err, "")
		return
	}
	h.redirectWithFlash(w, r, "/posts", "Post eliminado correctamente")
}

func (h *Handler) createCommentSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	postID, err := pathID(r)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	target := fmt.Sprintf("/posts/%d", postID)

	_, err = h.comments.CreateComment(r.Context(), service.CreateCommentRequest{
		PostID:   postID,
		AuthorID: user.ID,
		Content:  r.PostFormValue("content"),
	})
	if err != nil {
		h.redirectWithError(w, r, target, err, "")
		return
	}
	h.redirectWithFlash(w, r, target, "Comentario agregado")
}

func (h *Handler) updateCommentSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	commentID, err := pathID(r)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	target := commentReturnPath(r)

	_, err = h.comments.UpdateComment(r.Context(), service.UpdateCommentRequest{
		ID:      commentID,
		ActorID: user.ID,
		Content: r.PostFormValue("content"),
	})
	if err != nil {
		h.redirectWithError(w, r, target, err, "")
		return
	}
	h.redirectWithFlash(w, r, target, "Comentario actualizado")
}

func (h *Handler) deleteCommentSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	commentID, err := pathID(r)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}
	target := commentReturnPath(r)

	if err := h.comments.DeleteComment(r.Context(), commentID, user.ID); err != nil {
		h.redirectWithError(w, r, target, err, "")
		return
	}
	h.redirectWithFlash(w, r, target, "Comentario eliminado")
}

// commentReturnPath is the post page named by the post_id form field, or
// the post list when it is missing.
func commentReturnPath(r *http.Request) string {
	postID, err := formID(r, "post_id")
	if err != nil || postID == 0 {
		return "/posts"
	}
	return fmt.Sprintf("/posts/%d", postID)
}

func (h *Handler) createTypeSubmit(w http.ResponseWriter, r *http.Request, _ model.User) {
	_, err := h.postTypes.CreatePostType(r.Context(), service.CreatePostTypeRequest{
		Name:        r.PostFormValue("name"),
		Description: optionalForm(r, "description"),
	})
	if err != nil {
		h.redirectWithError(w, r, "/types", err, "Ya existe un tipo con ese nombre")
		return
	}
	h.redirectWithFlash(w, r, "/types", "Tipo creado correctamente")
}

func (h *Handler) updateTypeSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	typeID, err := pathID(r)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}

	_, err = h.postTypes.UpdatePostType(r.Context(), service.UpdatePostTypeRequest{
		ID:          typeID,
		Name:        r.PostFormValue("name"),
		Description: optionalForm(r, "description"),
	})
	if err != nil {
		h.redirectWithError(w, r, "/types", err, "Ya existe un tipo con ese nombre")
		return
	}
	h.redirectWithFlash(w, r, "/types", "Tipo actualizado correctamente")
}

func (h *Handler) deleteTypeSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	typeID, err := pathID(r)
	if err != nil {
		h.renderError(w, r, &user, err)
		return
	}

	if err := h.postTypes.DeletePostType(r.Context(), typeID); err != nil {
		h.redirectWithError(w, r, "/types", err, "")
		return
	}
	h.redirectWithFlash(w, r, "/types", "Tipo eliminado correctamente")
}

func (h *Handler) changePasswordSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	newPassword := r.PostFormValue("new_password")
	if newPassword != r.PostFormValue("confirm") {
		h.redirectWithFlash(w, r, "/profile", "Las nuevas contraseñas no coinciden")
		return
	}

	err := h.auth.ChangePassword(r.Context(), service.ChangePasswordRequest{
		UserID:          user.ID,
		CurrentPassword: r.PostFormValue("current_password"),
		NewPassword:     newPassword,
	})
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		h.redirectWithFlash(w, r, "/profile", "La contraseña actual es incorrecta")
	case err != nil:
		h.redirectWithError(w, r, "/profile", err, "")
	default:
		h.redirectWithFlash(w, r, "/profile", "Contraseña actualizada exitosamente")
	}
}

func (h *Handler) deleteAccountSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	if r.PostFormValue("confirm") != deleteConfirmation {
		h.redirectWithFlash(w, r, "/profile", "Escribe ELIMINAR para confirmar")
		return
	}

	if err := h.users.DeleteUser(r.Context(), user.ID, user.ID); err != nil {
		h.redirectWithError(w, r, "/profile", err, "")
		return
	}
	if err := h.sessions.Logout(r.Context()); err != nil {
		h.renderError(w, r, nil, fmt.Errorf("end session: %w", err))
		return
	}
	h.redirectWithFlash(w, r, "/login", "Cuenta eliminada")
}

func optionalForm(r *http.Request, key string) *string {
	v := r.PostFormValue(key)
	if v == "" {
		return nil
	}
	return &v
}
