package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// reserved endpoints, outside the mocked surface
	router.Group(func(r chi.Router) {
		r.Get("/healthz", h.healthz)
		r.Get("/api/version/", h.getServerVersion)
		r.Post("/api/admin/reset", h.resetResources)
	})

	// one route per operation of the loaded document
	for _, op := range h.document.Operations {
		pattern := h.document.BasePath + op.Pattern

		router.Method(op.Method, pattern, h.withOperation(op,
			h.checkSecurity(http.HandlerFunc(h.serveResource))))

		h.logger.Debug().
			Str("method", op.Method).
			Str("pattern", pattern).
			Str("operation_id", op.OperationID).
			Msg("route registered")
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
