package router

import (
	"net/http"

	"cms-backend/internal/http-server/handler/content"
	"cms-backend/internal/http-server/handler/upload"
	"cms-backend/internal/http-server/middleware"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	ContentHandler *content.ContentHandler
	UploadHandler  *upload.UploadHandler
}

func SetupRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RecoveryMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/content/{kind}", func(r chi.Router) {
			r.Post("/", h.ContentHandler.Create)
			r.Get("/", h.ContentHandler.List)
			r.Get("/{id}", h.ContentHandler.Get)
			r.Put("/{id}", h.ContentHandler.Update)
			r.Delete("/{id}", h.ContentHandler.Delete)
		})

		r.Post("/images/upload", h.UploadHandler.Upload)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})
	})

	return r
}
