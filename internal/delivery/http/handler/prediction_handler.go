package handler

import (
	"io"
	"net/http"
	"strconv"

	"dermassist/internal/service"
	"dermassist/pkg/response"

	"github.com/gorilla/mux"
)

// maxImageSize bounds a single upload.
const maxImageSize = 10 << 20

type PredictionHandler struct {
	predictionService service.PredictionService
}

func NewPredictionHandler(predictionService service.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictionService: predictionService}
}

// Predict accepts a multipart upload with the image under the "image" field.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, _, err := r.FormFile("image")
	if err != nil {
		response.ValidationError(w, map[string]string{"Image": "Image is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Failed to read image", nil)
		return
	}

	prediction, err := h.predictionService.Predict(r.Context(), caller.ID, data)
	if err != nil {
		switch err {
		case service.ErrInvalidImage:
			response.ValidationError(w, map[string]string{"Image": "Image must be a supported image file"})
		default:
			response.InternalServerError(w, "Failed to analyze image")
		}
		return
	}

	withImageURL(r, prediction)
	response.Success(w, http.StatusCreated, "Prediction created successfully", prediction)
}

func (h *PredictionHandler) GetMyPredictions(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	predictions, err := h.predictionService.List(r.Context(), caller.ID)
	if err != nil {
		response.InternalServerError(w, "Failed to get predictions")
		return
	}
	for i := range predictions {
		withImageURL(r, &predictions[i])
	}

	response.Success(w, http.StatusOK, "Predictions retrieved successfully", predictions)
}

func (h *PredictionHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	prediction, err := h.predictionService.Get(r.Context(), caller.ID, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case service.ErrPredictionNotFound:
			response.NotFound(w, "Prediction not found")
		case service.ErrNotPredictionOwner:
			response.Forbidden(w, "You don't have access to this prediction")
		default:
			response.InternalServerError(w, "Failed to get prediction")
		}
		return
	}

	withImageURL(r, prediction)
	response.Success(w, http.StatusOK, "Prediction retrieved successfully", prediction)
}

func (h *PredictionHandler) DeletePrediction(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	err := h.predictionService.Delete(r.Context(), caller.ID, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case service.ErrPredictionNotFound:
			response.NotFound(w, "Prediction not found")
		case service.ErrNotPredictionOwner:
			response.Forbidden(w, "You can only delete your own predictions")
		default:
			response.InternalServerError(w, "Failed to delete prediction")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prediction deleted successfully", nil)
}

// GetImage serves the stored upload. Image URLs are unguessable and public so
// the report renderer can fetch them without a token.
func (h *PredictionHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := h.predictionService.Image(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case service.ErrPredictionNotFound:
			response.NotFound(w, "Image not found")
		default:
			response.InternalServerError(w, "Failed to get image")
		}
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
