package http

import (
	"net/http"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/utils"
	"github.com/specmock/specmock/models"
)

// healthz answers liveness probes. It reports nothing about the store or
// the loaded document; a running process is a healthy mock.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// resetResources drops every stored document. Test runs call this between
// scenarios to start from a clean slate.
func (h *Handler) resetResources(w http.ResponseWriter, r *http.Request) {
	if err := h.services.ResourceService.ResetResources(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).
			Str("func", "*Handler.resetResources").
			Msg("error resetting resources")
		utils.WriteJSON(w, models.ErrorResponse{Error: "internal error"}, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
