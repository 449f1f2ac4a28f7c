package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrResourceNotFound is returned when an operation targets a resource
	// (identified by collection and id) that is not in the store.
	ErrResourceNotFound = errors.New("resource was not found")

	// ErrResourceExists is returned when a create targets a (collection, id)
	// pair that is already taken.
	ErrResourceExists = errors.New("resource already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by the
// SQL-backed store when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan resource row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan resource rows")

	// ErrEncodingDocument is returned when a document cannot be serialized
	// for storage or deserialized from a stored row.
	ErrEncodingDocument = errors.New("failed to encode resource document")
)
