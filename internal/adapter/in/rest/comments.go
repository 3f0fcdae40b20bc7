package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"postboard/internal/service"
	"postboard/pkg/logger"
)

func (h *Handler) listComments(w http.ResponseWriter, r *http.Request) {
	var postID *int64
	if raw := r.URL.Query().Get("postId"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			writeError(w, r, err, commentMessages)
			return
		}
		postID = &id
	}

	comments, err := h.comments.GetComments(r.Context(), postID)
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTOs(comments))
}

func (h *Handler) getComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}

	c, err := h.comments.GetCommentByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTO(c))
}

func (h *Handler) createComment(w http.ResponseWriter, r *http.Request) {
	actorID, err := h.actor(r)
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}

	var body commentBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, commentMessages)
		return
	}

	c, err := h.comments.CreateComment(r.Context(), service.CreateCommentRequest{
		PostID:   body.PostID,
		AuthorID: actorID,
		Content:  body.Content,
	})
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTO(c))
}

func (h *Handler) updateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}
	actorID, err := h.actor(r)
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}

	var body commentBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err, commentMessages)
		return
	}

	c, err := h.comments.UpdateComment(r.Context(), service.UpdateCommentRequest{
		ID:      id,
		ActorID: actorID,
		Content: body.Content,
	})
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}
	writeJSON(w, http.StatusOK, toCommentDTO(c))
}

func (h *Handler) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}
	actorID, err := h.actor(r)
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}

	if err := h.comments.DeleteComment(r.Context(), id, actorID); err != nil {
		writeError(w, r, err, commentMessages)
		return
	}
	writeMessage(w, "Comentario eliminado correctamente")
}

// streamComments sends comments created on ?postId= as server-sent events
// until the client goes away.
func (h *Handler) streamComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	postID, err := parseID(r.URL.Query().Get("postId"))
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}
	if _, err := h.posts.GetPostByID(ctx, postID); err != nil {
		writeError(w, r, err, postMessages)
		return
	}

	ch, err := h.comments.Listen(ctx, postID)
	if err != nil {
		writeError(w, r, err, commentMessages)
		return
	}

	rc := http.NewResponseController(w)
	// the stream outlives the server write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		log.Warn("comment stream: flush unsupported", "error", err)
		return
	}

	ping := time.NewTicker(h.streamKeepAlive)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case c, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(toCommentDTO(c))
			if err != nil {
				log.Error("comment stream: encode", "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: comment\ndata: %s\n\n", data); err != nil {
				return
			}
		case <-ping.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}
