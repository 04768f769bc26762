package handler

import (
	"net/http"

	"dermassist/internal/service"
	"dermassist/pkg/response"

	"github.com/gorilla/mux"
)

type TreatmentHandler struct {
	treatmentService service.TreatmentService
}

func NewTreatmentHandler(treatmentService service.TreatmentService) *TreatmentHandler {
	return &TreatmentHandler{treatmentService: treatmentService}
}

func (h *TreatmentHandler) GetTreatments(w http.ResponseWriter, r *http.Request) {
	treatments, err := h.treatmentService.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get treatments")
		return
	}

	response.Success(w, http.StatusOK, "Treatments retrieved successfully", treatments)
}

func (h *TreatmentHandler) GetTreatment(w http.ResponseWriter, r *http.Request) {
	treatment, err := h.treatmentService.GetByName(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		switch err {
		case service.ErrTreatmentNotFound:
			response.NotFound(w, "Treatment suggestion not found")
		default:
			response.InternalServerError(w, "Failed to get treatment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Treatment retrieved successfully", treatment)
}
