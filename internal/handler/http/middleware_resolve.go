// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/openapi"
)

// withOperation binds the resolved document operation to the request context
// so that the security checker and the CRUD handler can consume it without
// re-matching the route. The request-scoped logger is enriched with the
// operation's identity at the same time.
func (h *Handler) withOperation(op *openapi.Operation, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := openapi.WithOperation(r.Context(), op)

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			if op.OperationID != "" {
				c = c.Str("operation_id", op.OperationID)
			}
			return c.Str("pattern", op.Pattern)
		})

		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}
