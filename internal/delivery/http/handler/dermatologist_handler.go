package handler

import (
	"net/http"

	"dermassist/internal/delivery/dto"
	"dermassist/internal/service"
	"dermassist/pkg/response"
)

type DermatologistHandler struct {
	userService service.UserService
}

func NewDermatologistHandler(userService service.UserService) *DermatologistHandler {
	return &DermatologistHandler{userService: userService}
}

func (h *DermatologistHandler) Search(w http.ResponseWriter, r *http.Request) {
	var query dto.DermatologistSearchQuery
	if err := queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid query parameters", nil)
		return
	}

	users, err := h.userService.SearchDermatologists(r.Context(), query.Search)
	if err != nil {
		response.InternalServerError(w, "Failed to search dermatologists")
		return
	}

	response.Success(w, http.StatusOK, "Dermatologists retrieved successfully", users)
}
