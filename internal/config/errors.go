package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrSpecLocationRequired indicates that no OpenAPI document location
	// was provided; without one there is nothing to mock.
	ErrSpecLocationRequired = errors.New("openapi document location is required")
	// ErrUnknownStorageDriver indicates a storage driver outside the
	// supported set (memory, sqlite, postgres).
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	// ErrStorageDSNRequired indicates a SQL storage driver was selected
	// without a DSN to connect with.
	ErrStorageDSNRequired = errors.New("storage dsn is required for sql drivers")
	// ErrTokenIssuerWithoutKey indicates a token issuer was configured while
	// strict token checking is disabled (no sign key).
	ErrTokenIssuerWithoutKey = errors.New("token issuer requires a token sign key")
)
