package profile

import (
	"encoding/json"
	"net/http"

	"github.com/loveos/loveos-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetMyVectors(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	bundle, err := h.service.GetBundle(r.Context(), userID)
	if err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile vectors")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bundle)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var dto SubmitQuizDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	bundle, err := h.service.SubmitQuizResults(r.Context(), userID, &dto)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save quiz results")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, bundle)
}

func (h *Handler) UpdateVectors(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var dto UpdateVectorsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	bundle, err := h.service.UpdateVectors(r.Context(), userID, &dto)
	if err != nil {
		if err == ErrProfileNotFound {
			utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile vectors")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bundle)
}
