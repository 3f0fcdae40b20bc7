package rest

import (
	"net/http"

	"postboard/internal/service"
)

func (h *Handler) listPostTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.postTypes.GetPostTypes(r.Context())
	if err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}
	writeJSON(w, http.StatusOK, toPostTypeDTOs(types))
}

func (h *Handler) getPostType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}

	pt, err := h.postTypes.GetPostTypeByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}
	writeJSON(w, http.StatusOK, toPostTypeDTO(pt))
}

func (h *Handler) createPostType(w http.ResponseWriter, r *http.Request) {
	if _, err := h.actor(r); err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}

	var body postTypeBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}

	pt, err := h.postTypes.CreatePostType(r.Context(), service.CreatePostTypeRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}
	writeJSON(w, http.StatusOK, toPostTypeDTO(pt))
}

func (h *Handler) updatePostType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}
	if _, err := h.actor(r); err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}

	var body postTypeBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}

	pt, err := h.postTypes.UpdatePostType(r.Context(), service.UpdatePostTypeRequest{
		ID:          id,
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}
	writeJSON(w, http.StatusOK, toPostTypeDTO(pt))
}

func (h *Handler) deletePostType(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}
	if _, err := h.actor(r); err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}

	if err := h.postTypes.DeletePostType(r.Context(), id); err != nil {
		writeError(w, r, err, postTypeMessages)
		return
	}
	writeMessage(w, "Tipo eliminado correctamente")
}
