package rest

import (
	"fmt"
	"net/http"

	"postboard/internal/service"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, authMessages)
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterRequest{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		writeError(w, r, err, authMessages)
		return
	}
	writeJSON(w, http.StatusOK, userMessageBody{Message: "Usuario creado exitosamente", User: toUserDTO(user)})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, authMessages)
		return
	}

	user, err := h.auth.Login(r.Context(), service.LoginRequest{
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		writeError(w, r, err, authMessages)
		return
	}

	if err := h.sessions.Login(r.Context(), user.ID); err != nil {
		writeError(w, r, fmt.Errorf("start session: %w", err), authMessages)
		return
	}
	writeJSON(w, http.StatusOK, userMessageBody{Message: "Login exitoso", User: toUserDTO(user)})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		writeError(w, r, fmt.Errorf("end session: %w", err), authMessages)
		return
	}
	writeMessage(w, "Sesión cerrada")
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	actorID, err := h.actor(r)
	if err != nil {
		writeError(w, r, err, authMessages)
		return
	}

	user, err := h.auth.GetUserByID(r.Context(), actorID)
	if err != nil {
		writeError(w, r, err, authMessages)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user))
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	actorID, err := h.actor(r)
	if err != nil {
		writeError(w, r, err, passwordMessages)
		return
	}

	var body changePasswordBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, passwordMessages)
		return
	}
	if body.UserID != nil && *body.UserID != actorID {
		writeError(w, r, service.ErrForbidden, passwordMessages)
		return
	}

	err = h.auth.ChangePassword(r.Context(), service.ChangePasswordRequest{
		UserID:          actorID,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	})
	if err != nil {
		writeError(w, r, err, passwordMessages)
		return
	}
	writeMessage(w, "Contraseña actualizada exitosamente")
}
