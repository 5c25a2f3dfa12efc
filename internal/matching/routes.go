package matching

import (
	"github.com/gorilla/mux"

	"github.com/loveos/loveos-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matches").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Discovery & compatibility
	api.HandleFunc("/discover", handler.Discover).Methods("GET")
	api.HandleFunc("/compatibility/{userId}", handler.GetCompatibility).Methods("GET")

	// Lifecycle
	api.HandleFunc("/mutual", handler.GetMutualMatches).Methods("GET")
	api.HandleFunc("/stats", handler.GetStats).Methods("GET")
	api.HandleFunc("/{userId}/like", handler.Act).Methods("POST")
	api.HandleFunc("/{matchId:[0-9]+}", handler.GetMatch).Methods("GET")
	api.HandleFunc("/{matchId:[0-9]+}/unmatch", handler.Unmatch).Methods("POST")
}
