// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/openapi"
	"github.com/specmock/specmock/internal/store"
	"github.com/specmock/specmock/internal/utils"
	"github.com/specmock/specmock/models"
)

// serveResource synthesizes REST semantics for the resolved operation from
// its route shape and HTTP verb alone:
//
//	GET    collection -> list (filtered by query-parameter equality)
//	GET    item       -> fetch one document
//	POST   collection -> create (id synthesized when absent)
//	PUT    item       -> overwrite whole document
//	PATCH  item       -> deep-merge into stored document
//	DELETE item       -> remove
//
// A verb/shape combination outside this table answers 405: the document
// declared the route, but the mock cannot give it a meaningful effect.
func (h *Handler) serveResource(w http.ResponseWriter, r *http.Request) {
	op, ok := openapi.OperationFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().
			Str("func", "*Handler.serveResource").
			Msg("no operation bound to request context")
		utils.WriteJSON(w, models.ErrorResponse{Error: "internal error"}, http.StatusInternalServerError)
		return
	}

	switch {
	case op.Method == http.MethodGet && !op.IsItem():
		h.listResources(w, r, op)
	case op.Method == http.MethodGet:
		h.getResource(w, r, op)
	case op.Method == http.MethodPost && !op.IsItem():
		h.createResource(w, r, op)
	case op.Method == http.MethodPut && op.IsItem():
		h.replaceResource(w, r, op)
	case op.Method == http.MethodPatch && op.IsItem():
		h.mergeResource(w, r, op)
	case op.Method == http.MethodDelete && op.IsItem():
		h.deleteResource(w, r, op)
	default:
		utils.WriteJSON(w, models.ErrorResponse{Error: "method not allowed"}, http.StatusMethodNotAllowed)
	}
}

func (h *Handler) listResources(w http.ResponseWriter, r *http.Request, op *openapi.Operation) {
	filter := filterFromQuery(r, h.credentialQueryParams(op))

	docs, err := h.services.ResourceService.ListResources(r.Context(), collectionKey(r, op), filter)
	if err != nil {
		h.writeError(w, r, err, "*Handler.listResources")
		return
	}

	utils.WriteJSON(w, docs, http.StatusOK)
}

func (h *Handler) getResource(w http.ResponseWriter, r *http.Request, op *openapi.Operation) {
	id := chi.URLParam(r, op.ItemParam)

	doc, err := h.services.ResourceService.GetResource(r.Context(), collectionKey(r, op), id)
	if err != nil {
		h.writeError(w, r, err, "*Handler.getResource")
		return
	}

	utils.WriteJSON(w, doc, http.StatusOK)
}

func (h *Handler) createResource(w http.ResponseWriter, r *http.Request, op *openapi.Operation) {
	doc, ok := h.decodeDocument(w, r)
	if !ok {
		return
	}

	created, err := h.services.ResourceService.CreateResource(r.Context(), collectionKey(r, op), doc)
	if err != nil {
		h.writeError(w, r, err, "*Handler.createResource")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) replaceResource(w http.ResponseWriter, r *http.Request, op *openapi.Operation) {
	doc, ok := h.decodeDocument(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, op.ItemParam)

	replaced, err := h.services.ResourceService.ReplaceResource(r.Context(), collectionKey(r, op), id, doc)
	if err != nil {
		h.writeError(w, r, err, "*Handler.replaceResource")
		return
	}

	utils.WriteJSON(w, replaced, http.StatusOK)
}

func (h *Handler) mergeResource(w http.ResponseWriter, r *http.Request, op *openapi.Operation) {
	patch, ok := h.decodeDocument(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, op.ItemParam)

	merged, err := h.services.ResourceService.MergeResource(r.Context(), collectionKey(r, op), id, patch)
	if err != nil {
		h.writeError(w, r, err, "*Handler.mergeResource")
		return
	}

	utils.WriteJSON(w, merged, http.StatusOK)
}

func (h *Handler) deleteResource(w http.ResponseWriter, r *http.Request, op *openapi.Operation) {
	id := chi.URLParam(r, op.ItemParam)

	if err := h.services.ResourceService.DeleteResource(r.Context(), collectionKey(r, op), id); err != nil {
		h.writeError(w, r, err, "*Handler.deleteResource")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeDocument reads a JSON object from the request body. On malformed
// input it answers 400 and reports ok=false.
func (h *Handler) decodeDocument(w http.ResponseWriter, r *http.Request) (models.Document, bool) {
	var doc models.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		logger.FromRequest(r).Err(err).
			Str("func", "*Handler.decodeDocument").
			Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return nil, false
	}

	return doc, true
}

// collectionKey resolves the operation's collection pattern against the
// request's path parameters, so nested routes like /users/{userId}/posts
// keep a separate collection per parent.
func collectionKey(r *http.Request, op *openapi.Operation) string {
	key := op.Collection()
	if !strings.Contains(key, "{") {
		return key
	}

	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return key
	}

	for i, name := range rctx.URLParams.Keys {
		if name == op.ItemParam {
			continue
		}
		key = strings.ReplaceAll(key, "{"+name+"}", rctx.URLParams.Values[i])
	}

	return key
}

// credentialQueryParams collects the query parameter names that carry apiKey
// credentials for the operation's security requirements. Those parameters
// authenticate the request and must not be mistaken for filter fields.
func (h *Handler) credentialQueryParams(op *openapi.Operation) map[string]struct{} {
	var params map[string]struct{}

	for _, requirement := range op.Security {
		for name := range requirement {
			scheme, known := h.document.Schemes[name]
			if !known || scheme.Type != openapi.SchemeTypeAPIKey || scheme.In != openapi.InQuery {
				continue
			}

			if params == nil {
				params = make(map[string]struct{})
			}
			params[scheme.ParamName] = struct{}{}
		}
	}

	return params
}

// filterFromQuery turns the request's query parameters into an equality
// filter, skipping the excluded credential parameters. Only the first value
// of a repeated parameter is considered.
func filterFromQuery(r *http.Request, exclude map[string]struct{}) store.Filter {
	values := r.URL.Query()

	filter := make(store.Filter, len(values))
	for key, vals := range values {
		if _, skip := exclude[key]; skip {
			continue
		}
		if len(vals) > 0 {
			filter[key] = vals[0]
		}
	}

	if len(filter) == 0 {
		return nil
	}

	return filter
}
