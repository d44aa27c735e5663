package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const serviceName = "learning-log"

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	authHandler *AuthHandler,
	topicHandler *TopicHandler,
	readerHandler *ReaderHandler,
	authMiddleware func(http.Handler) http.Handler,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()
	router.Use(MetricsMiddleware)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"service": serviceName,
			"message": "Keep a log of the topics you are learning about",
		})
	}).Methods("GET")

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": serviceName})
	}).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected routes (require authentication)
	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/auth/profile", authHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/auth/validate", authHandler.ValidateToken).Methods("GET")

	protected.HandleFunc("/topics", topicHandler.ListTopics).Methods("GET")
	protected.HandleFunc("/topics", topicHandler.CreateTopic).Methods("POST")
	protected.HandleFunc("/topics/{id:[0-9]+}", topicHandler.GetTopic).Methods("GET")
	protected.HandleFunc("/topics/{id:[0-9]+}/entries", topicHandler.CreateEntry).Methods("POST")
	protected.HandleFunc("/entries/{id:[0-9]+}", topicHandler.UpdateEntry).Methods("PUT")

	protected.HandleFunc("/read_pdf", readerHandler.ReadPDF).Methods("GET", "POST")

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
