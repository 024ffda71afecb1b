package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phitabs24/concourcm/internal/auth"
	"github.com/phitabs24/concourcm/internal/quiz"
)

func NewRouter(service *quiz.Service, settings Settings) http.Handler {
	api := NewAPI(service, settings)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(settings.Logger, defaultMaxLogBytes), middleware.Recoverer)
	if len(settings.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: settings.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         int((12 * time.Hour).Seconds()),
		}))
	}
	r.Use(auth.Middleware(settings.Verifier))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", api.HandleCreateSession)
		sr.Get("/{session_id}", api.HandleGetSession)
		sr.Put("/{session_id}/selections/{index}", api.HandleSelect)
		sr.Post("/{session_id}/submit", api.HandleSubmit)
	})

	r.Get("/results", api.HandleRecentResults)
	r.Post("/results", api.HandleSaveResult)

	return r
}
