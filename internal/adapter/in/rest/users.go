package rest

import (
	"net/http"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetUsers(r.Context())
	if err != nil {
		writeError(w, r, err, userMessages)
		return
	}
	writeJSON(w, http.StatusOK, toUserWithPostCountDTOs(users))
}

// deleteUser removes the caller's own account and ends the session.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r)
	if err != nil {
		writeError(w, r, err, userMessages)
		return
	}
	actorID, err := h.actor(r)
	if err != nil {
		writeError(w, r, err, userMessages)
		return
	}

	if err := h.users.DeleteUser(r.Context(), userID, actorID); err != nil {
		writeError(w, r, err, userMessages)
		return
	}
	if err := h.sessions.Logout(r.Context()); err != nil {
		writeError(w, r, err, userMessages)
		return
	}
	writeMessage(w, "Usuario eliminado exitosamente")
}
