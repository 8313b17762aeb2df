package api

import (
	"net/http"
	"strconv"
)

// POST /api/v1/threads
func (h *Handler) createThread(w http.ResponseWriter, r *http.Request) {
	author, ok := userFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Payload{Success: false, Message: "unauthorized"})
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := decode(r, &input); err != nil || input.Name == "" {
		writeJSON(w, http.StatusBadRequest, Payload{Success: false, Message: "thread name is required"})
		return
	}

	thread, err := h.threads.Create(r.Context(), input.Name, author)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Payload{Success: true, Data: thread})
}

// GET /api/v1/threads
func (h *Handler) listThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.threads.List(r.Context(), queryInt(r, "limit"), queryInt(r, "page"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Payload{Success: true, Data: threads})
}

// GET /api/v1/threads/{key}
func (h *Handler) getThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.threads.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if thread == nil {
		writeJSON(w, http.StatusNotFound, Payload{Success: false, Message: "thread not found"})
		return
	}
	writeJSON(w, http.StatusOK, Payload{Success: true, Data: thread})
}

// queryInt parses an integer query parameter, 0 when absent or malformed.
// Services substitute their own defaults for non-positive values.
func queryInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return n
}
