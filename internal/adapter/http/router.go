package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/plastinin/pdfcheck-web/internal/adapter/http/handler"
	httpmiddleware "github.com/plastinin/pdfcheck-web/internal/adapter/http/middleware"
	"github.com/plastinin/pdfcheck-web/internal/web"
	"go.uber.org/zap"
)

// NewRouter создаёт и настраивает HTTP роутер
func NewRouter(
	widgetHandler *handler.WidgetHandler,
	historyHandler *handler.HistoryHandler,
	healthHandler *handler.HealthHandler,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httpmiddleware.NewLoggingMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(httpmiddleware.SecurityHeaders)

	r.Get("/health", healthHandler.Check)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.StaticFS)))

	// Страницы
	r.Get("/", widgetHandler.Page)
	r.Post("/select", widgetHandler.Select)
	r.Post("/submit", widgetHandler.Submit)
	r.Get("/history", historyHandler.Page)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", widgetHandler.State)

		r.Route("/submissions", func(r chi.Router) {
			r.Get("/", historyHandler.List)
			r.Get("/{id}", historyHandler.GetByID)
		})
	})

	return r
}
