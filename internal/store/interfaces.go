// Package store holds the pluggable data store the mocked resources live in.
// Implementations exist for process memory and for SQL databases (SQLite,
// PostgreSQL).
package store

import (
	"context"

	"github.com/specmock/specmock/models"
)

// Filter restricts List results to documents whose top-level fields equal the
// given values. Values are compared against the document field rendered as a
// string, so `?age=3` matches a JSON number 3.
type Filter map[string]string

// ResourceStore is the pluggable persistence contract the CRUD handler is
// written against.
type ResourceStore interface {
	// List returns every resource in collection matching filter, ordered by
	// id. An unknown collection yields an empty slice, not an error.
	List(ctx context.Context, collection string, filter Filter) ([]models.Resource, error)

	// Get returns the resource identified by (collection, id).
	// Returns ErrResourceNotFound when absent.
	Get(ctx context.Context, collection, id string) (models.Resource, error)

	// Create persists a new resource and returns it with timestamps set.
	// Returns ErrResourceExists when (collection, id) is already taken.
	Create(ctx context.Context, resource models.Resource) (models.Resource, error)

	// Replace overwrites the document of an existing resource and returns
	// the stored result. Returns ErrResourceNotFound when absent.
	Replace(ctx context.Context, resource models.Resource) (models.Resource, error)

	// Delete removes the resource identified by (collection, id).
	// Returns ErrResourceNotFound when absent.
	Delete(ctx context.Context, collection, id string) error

	// Reset drops every stored resource. Schema (for SQL backends) stays
	// intact.
	Reset(ctx context.Context) error
}
