package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/specmock/specmock/internal/config"
	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/mock"
	"github.com/specmock/specmock/internal/openapi"
	"github.com/specmock/specmock/internal/service"
	"github.com/specmock/specmock/models"
)

// newTestHandler builds a Handler over the given document with a nop logger.
func newTestHandler(services *service.Services, document *openapi.Document) *Handler {
	if document == nil {
		document = &openapi.Document{Schemes: map[string]openapi.Scheme{}}
	}

	return &Handler{
		services: services,
		document: document,
		build:    models.NewBuildInfo("test", "", ""),
		logger:   logger.Nop(),
	}
}

// mockedServices wires all three service interfaces to gomock mocks.
func mockedServices(ctrl *gomock.Controller) (*service.Services, *mock.MockResourceService, *mock.MockAuthService, *mock.MockAppInfoService) {
	resources := mock.NewMockResourceService(ctrl)
	auth := mock.NewMockAuthService(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)

	return &service.Services{
		ResourceService: resources,
		AuthService:     auth,
		AppInfoService:  appInfo,
	}, resources, auth, appInfo
}

// withRouteParams attaches a chi route context carrying the given URL
// parameters, the way the router would during normal dispatch.
func withRouteParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withOperationCtx binds op to the request context, standing in for the
// resolve middleware.
func withOperationCtx(r *http.Request, op *openapi.Operation) *http.Request {
	return r.WithContext(openapi.WithOperation(r.Context(), op))
}

// noopAuthServices carries a presence-only auth service, the default posture
// when no strict mode is configured.
func noopAuthServices() *service.Services {
	return &service.Services{
		AuthService: service.NewAuthService(config.App{}, logger.Nop()),
	}
}
