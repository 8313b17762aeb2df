package api

import "net/http"

// POST /api/v1/threads/{key}/posts
func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	author, ok := userFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Payload{Success: false, Message: "unauthorized"})
		return
	}

	thread, err := h.threads.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if thread == nil {
		writeJSON(w, http.StatusNotFound, Payload{Success: false, Message: "thread not found"})
		return
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := decode(r, &input); err != nil || input.Body == "" {
		writeJSON(w, http.StatusBadRequest, Payload{Success: false, Message: "post body is required"})
		return
	}

	post, err := h.posts.Create(r.Context(), thread.Key, input.Body, author)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Payload{Success: true, Data: post})
}

// GET /api/v1/threads/{key}/posts
func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	thread, err := h.threads.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if thread == nil {
		writeJSON(w, http.StatusNotFound, Payload{Success: false, Message: "thread not found"})
		return
	}

	posts, err := h.posts.List(r.Context(), thread, queryInt(r, "limit"), queryInt(r, "page"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Payload{Success: true, Data: posts})
}

// DELETE /api/v1/posts/{key}
func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	requester, ok := userFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Payload{Success: false, Message: "unauthorized"})
		return
	}

	if err := h.posts.Delete(r.Context(), r.PathValue("key"), requester); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
