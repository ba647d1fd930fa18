package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Swagger documentation. The UI fetches its spec from the doc.json route
	// below; the exact path wins over the wildcard.
	r.Handle("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(swaggerDoc))
	})

	// Health check (for Railway, k8s, etc.)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/resume/upload", a.UploadResumeHandler)
		r.Get("/record", a.RecordHandler)
		r.Get("/history", a.HistoryHandler)
		r.Post("/history/{id}/select", a.SelectHistoryHandler)
		r.Post("/logout", a.LogoutHandler)
		r.Get("/messages", a.MessagesHandler)
		r.Get("/series/{platform}", a.SeriesHandler)
		r.Get("/report", a.ReportHandler)
	})

	return r
}
