package handlers

import (
	"net/http"

	"github.com/raymundoht/Task-Manager/services"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetUserOptions returns the select-list options. Note the seeding
// behavior documented on UserService.Options: an empty user collection
// gains a default "admin" record on this read.
func (h *UserHandler) GetUserOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, options)
}
