package matching

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/loveos/loveos-backend/internal/common/utils"
	"github.com/loveos/loveos-backend/internal/profile"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Act handles POST /matches/{userId}/like with a body selecting like or pass.
func (h *Handler) Act(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	targetID := mux.Vars(r)["userId"]

	var dto ActionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if dto.Action == ActionPass {
		if err := h.service.Pass(r.Context(), userID, targetID); err != nil {
			respondWithMatchError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, ActionResponseDTO{
			Message: "Passed successfully",
		})
		return
	}

	result, err := h.service.Like(r.Context(), userID, targetID)
	if err != nil {
		respondWithMatchError(w, err)
		return
	}

	response := ActionResponseDTO{
		Message: "Liked successfully",
		IsMatch: result.IsMatch,
		MatchID: result.MatchID,
	}
	if result.IsMatch {
		response.Message = "It's a match!"
		response.ChatRoomID = result.ChatRoomID
		response.CompatibilityScore = result.CompatibilityScore
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *Handler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	targetID := mux.Vars(r)["userId"]

	result, err := h.service.GetCompatibility(r.Context(), userID, targetID)
	if err != nil {
		respondWithMatchError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) Discover(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	offset := 0
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	results, err := h.service.Discover(r.Context(), userID, limit, offset)
	if err != nil {
		respondWithMatchError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"matches": results,
		"total":   len(results),
	})
}

func (h *Handler) GetMutualMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	matches, err := h.service.GetMutualMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get mutual matches")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	stats, err := h.service.GetStats(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get match stats")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	matchID, err := strconv.ParseInt(mux.Vars(r)["matchId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	record, err := h.service.GetMatch(r.Context(), userID, matchID)
	if err != nil {
		respondWithMatchError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, record)
}

func (h *Handler) Unmatch(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	matchID, err := strconv.ParseInt(mux.Vars(r)["matchId"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid match ID")
		return
	}

	if err := h.service.Unmatch(r.Context(), userID, matchID); err != nil {
		respondWithMatchError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Unmatched successfully"})
}

// respondWithMatchError maps service sentinels to HTTP status codes.
func respondWithMatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSelfAction):
		utils.RespondWithError(w, http.StatusBadRequest, "Cannot like yourself")
	case errors.Is(err, ErrInvalidAction), errors.Is(err, ErrInvalidPair):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrProfileIncomplete):
		utils.RespondWithError(w, http.StatusBadRequest, "Please complete your personality quiz first")
	case errors.Is(err, profile.ErrProfileNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, ErrMatchNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Match not found")
	case errors.Is(err, ErrAlreadyMatched):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrPairBlocked):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
	}
}
