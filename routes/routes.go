package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lawmate-ai/backend/app"
	"github.com/lawmate-ai/backend/handlers"
	"github.com/lawmate-ai/backend/middleware"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(deps.Config.Server.RequestTimeout))

	// CORS: fixed front-end origin allow-list. Preflight OPTIONS requests
	// are answered here and never reach the handlers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.UserIDHeader},
		MaxAge:         300,
	}))

	// Caller identity from X-User-ID
	r.Use(middleware.Identity)

	healthHandler := handlers.NewHealthHandler(deps.DB.DB, deps.Logger)
	retrievalStatusHandler := handlers.NewRetrievalStatusHandler(deps.Retrieval, deps.Logger)
	chatHandler := handlers.NewChatHandler(deps.Chat, deps.Logger)
	formHandler := handlers.NewFormHandler(deps.Forms, deps.Logger)
	professionalsHandler := handlers.NewProfessionalsHandler(deps.Professionals, deps.Logger)

	// Health
	r.Get("/", healthHandler.HandleHealth)
	r.Get("/healthz", healthHandler.HandleHealth)
	r.Get("/readyz", healthHandler.HandleReadiness)

	// Vector index status
	r.Get("/retrieval/status", retrievalStatusHandler.HandleStatus)

	// Forms and professional lookup
	r.Post("/submit-form", formHandler.HandleSubmit)
	r.Get("/legal_professionals", professionalsHandler.HandleList)

	// Chat per service category
	r.Route("/{service}", func(r chi.Router) {
		r.Post("/chat", chatHandler.HandleChat)
		r.Get("/history", chatHandler.HandleHistory)
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
