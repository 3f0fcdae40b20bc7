package rest

import (
	"net/http"

	"postboard/internal/service"
)

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.GetPosts(r.Context())
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTOs(posts))
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}

	post, err := h.posts.GetPostByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	actorID, err := h.actor(r)
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}

	var body postBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, postMessages)
		return
	}

	post, err := h.posts.CreatePost(r.Context(), service.CreatePostRequest{
		AuthorID:   actorID,
		PostTypeID: body.PostTypeID,
		Title:      body.Title,
		Content:    body.Content,
	})
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}
	actorID, err := h.actor(r)
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}

	var body postBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, postMessages)
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), service.UpdatePostRequest{
		ID:         id,
		ActorID:    actorID,
		PostTypeID: body.PostTypeID,
		Title:      body.Title,
		Content:    body.Content,
	})
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(post))
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}
	actorID, err := h.actor(r)
	if err != nil {
		writeError(w, r, err, postMessages)
		return
	}

	if err := h.posts.DeletePost(r.Context(), id, actorID); err != nil {
		writeError(w, r, err, postMessages)
		return
	}
	writeMessage(w, "Post eliminado correctamente")
}
