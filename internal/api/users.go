package api

import "net/http"

// POST /api/v1/signup
func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email       string `json:"email"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Password    string `json:"password"`
	}
	if err := decode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, Payload{Success: false, Message: "invalid input"})
		return
	}
	if input.Email == "" || input.Name == "" || input.Password == "" {
		writeJSON(w, http.StatusBadRequest, Payload{Success: false, Message: "email, name and password are required"})
		return
	}

	user, err := h.users.Signup(r.Context(), input.Email, input.Name, input.Description, input.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, Payload{Success: true, Data: user})
}

// POST /api/v1/signin
func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &input); err != nil {
		writeJSON(w, http.StatusBadRequest, Payload{Success: false, Message: "invalid input"})
		return
	}

	user, err := h.users.Signin(r.Context(), input.Email, input.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Payload{Success: true, Data: user})
}

// GET /api/v1/users/{key}
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByKey(r.Context(), r.PathValue("key"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Payload{Success: true, Data: user})
}
