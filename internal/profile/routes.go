package profile

import (
	"github.com/gorilla/mux"

	"github.com/loveos/loveos-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/profile").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/vectors", handler.GetMyVectors).Methods("GET")
	api.HandleFunc("/vectors", handler.UpdateVectors).Methods("PUT")
	api.HandleFunc("/quiz", handler.SubmitQuiz).Methods("POST")
}
