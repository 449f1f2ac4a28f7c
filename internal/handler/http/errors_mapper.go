package http

import (
	"errors"
	"net/http"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/service"
	"github.com/specmock/specmock/internal/store"
	"github.com/specmock/specmock/internal/utils"
	"github.com/specmock/specmock/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,
	service.ErrInvalidToken:        http.StatusUnauthorized,
	service.ErrWrongCredentials:    http.StatusUnauthorized,

	store.ErrResourceNotFound: http.StatusNotFound,
	store.ErrResourceExists:   http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
	store.ErrEncodingDocument: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps a service or store error onto an HTTP status and writes a
// JSON error body. Server-side failures are logged with the originating
// function and answered with a generic message.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, origin string) {
	status := statusFromError(err)

	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Str("func", origin).Msg("request failed")
		utils.WriteJSON(w, models.ErrorResponse{Error: "internal error"}, status)
		return
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: err.Error()}, status)
}
