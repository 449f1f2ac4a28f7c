package http

import (
	"net/http"

	"github.com/specmock/specmock/internal/utils"
	"github.com/specmock/specmock/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	utils.WriteJSON(w, models.NewBuildInfo(version, h.build.Date, h.build.Commit), http.StatusOK)
}
