package service

import (
	"context"

	"github.com/specmock/specmock/internal/store"
	"github.com/specmock/specmock/models"
)

// ResourceService implements the REST semantics the CRUD handler synthesizes
// from path and verb: create with id synthesis, whole-document overwrite,
// deep merge, and plain reads/deletes over the pluggable store.
type ResourceService interface {
	ListResources(ctx context.Context, collection string, filter store.Filter) ([]models.Document, error)
	GetResource(ctx context.Context, collection, id string) (models.Document, error)

	CreateResource(ctx context.Context, collection string, doc models.Document) (models.Document, error)
	ReplaceResource(ctx context.Context, collection, id string, doc models.Document) (models.Document, error)
	MergeResource(ctx context.Context, collection, id string, patch models.Document) (models.Document, error)

	DeleteResource(ctx context.Context, collection, id string) error
	ResetResources(ctx context.Context) error
}

// AuthService performs the optional strict verification of authentication
// artifacts the security checker has already found present. When the
// corresponding strict mode is off, Verify* methods succeed without
// inspecting the credential.
type AuthService interface {
	// VerifyBearer checks a bearer token. With a configured sign key the
	// token must be a valid, unexpired HMAC-SHA256 JWT.
	VerifyBearer(ctx context.Context, token string) error

	// VerifyBasic checks Basic credentials against the configured user set.
	VerifyBasic(ctx context.Context, login, password string) error
}

// AppInfoService serves application metadata for the version endpoint.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
