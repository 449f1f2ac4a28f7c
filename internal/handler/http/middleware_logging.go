package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/specmock/specmock/internal/logger"
)

// withLogging emits one entry per request after the handler chain returns.
// Server errors are logged at error level, client errors at warn.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log := logger.FromRequest(r)

		level := zerolog.InfoLevel
		switch {
		case lw.status >= http.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case lw.status >= http.StatusBadRequest:
			level = zerolog.WarnLevel
		}

		log.WithLevel(level).
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
