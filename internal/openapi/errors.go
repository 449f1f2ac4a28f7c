package openapi

import "errors"

var (
	// ErrLoadingDocument is returned when the document cannot be read from
	// its file path or URL.
	ErrLoadingDocument = errors.New("error loading openapi document")

	// ErrInvalidDocument is returned when the document parses but fails
	// OpenAPI 3 validation.
	ErrInvalidDocument = errors.New("invalid openapi document")
)
