// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/specmock/specmock/internal/utils"
	"github.com/specmock/specmock/models"
)

// CheckHTTPMethod returns an [http.HandlerFunc] intended to be registered as
// the router's MethodNotAllowed handler.
//
// Chi's default behaviour is to respond with HTTP 405 Method Not Allowed
// whenever a request path matches a registered route but the HTTP method is
// not handled. A mocked API should not reveal routes through verbs its
// document never declared, so this handler responds with HTTP 404 Not Found
// instead. Requests whose method turns out to be registered after all are
// forwarded to the router's normal pipeline.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.NewRouteContext()
		if router.Match(rctx, r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		utils.WriteJSON(w, models.ErrorResponse{Error: "not found"}, http.StatusNotFound)
	}
}
