package matching

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/loveos/loveos-backend/internal/common/utils"
)

// AdminHandler exposes the moderation path. Blocking a pair is not reachable
// through like/pass; only moderation can set the blocked status.
type AdminHandler struct {
	service Service
}

func NewAdminHandler(service Service) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) BlockMatch(w http.ResponseWriter, r *http.Request) {
	pairKey := mux.Vars(r)["pairKey"]

	if err := h.service.Block(r.Context(), pairKey); err != nil {
		respondWithMatchError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Match blocked"})
}

// RegisterAdminRoutes mounts moderation endpoints behind the admin
// middleware.
func RegisterAdminRoutes(router *mux.Router, handler *AdminHandler, adminMiddleware mux.MiddlewareFunc) {
	api := router.PathPrefix("/api/v1/admin/matches").Subrouter()
	api.Use(adminMiddleware)

	api.HandleFunc("/{pairKey}/block", handler.BlockMatch).Methods("POST")
}
