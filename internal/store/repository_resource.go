// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/models"
)

const resourcesTable = "resources"

var resourceColumns = []string{"collection", "resource_id", "document", "created_at", "updated_at"}

// sqlResourceStore is the SQL-backed implementation of [ResourceStore],
// shared by the SQLite and PostgreSQL backends. All resources live in a
// single "resources" table keyed by (collection, resource_id); documents are
// stored as JSON text.
//
// Queries are built with squirrel against the placeholder format carried by
// the embedded [*DB], so the same code serves both dialects.
type sqlResourceStore struct {
	*DB
	logger *logger.Logger
}

// NewSQLResourceStore constructs a [ResourceStore] backed by the provided
// database connection and logger.
func NewSQLResourceStore(db *DB, logger *logger.Logger) ResourceStore {
	logger.Debug().Msg("creating sql resource store")
	return &sqlResourceStore{
		DB:     db,
		logger: logger,
	}
}

// List retrieves every resource in collection ordered by id. The filter is
// applied in Go after decoding, keeping filtering semantics identical across
// backends regardless of their JSON querying capabilities.
func (s *sqlResourceStore) List(ctx context.Context, collection string, filter Filter) ([]models.Resource, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select(resourceColumns...).
		From(resourcesTable).
		Where("collection = ?", collection).
		OrderBy("resource_id").
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqlResourceStore.List").
			Str("collection", collection).
			Msg("failed to build select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlResourceStore.List").
			Str("collection", collection).
			Msg("failed to execute query for listing resources")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Resource, 0, 50)

	for rows.Next() {
		res, scanErr := scanResource(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "sqlResourceStore.List").
				Str("collection", collection).
				Msg("failed to scan resource row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if !matchesFilter(res.Document, filter) {
			continue
		}

		results = append(results, res)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "sqlResourceStore.List").
			Str("collection", collection).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Get retrieves the resource identified by (collection, id), or
// [ErrResourceNotFound] when the row is absent.
func (s *sqlResourceStore) Get(ctx context.Context, collection, id string) (models.Resource, error) {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Select(resourceColumns...).
		From(resourcesTable).
		Where("collection = ?", collection).
		Where("resource_id = ?", id).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqlResourceStore.Get").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to build select query")
		return models.Resource{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, scanErr := scanResource(s.DB.QueryRowContext(ctx, query, args...))
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Resource{}, ErrResourceNotFound
		}

		log.Err(scanErr).
			Str("func", "sqlResourceStore.Get").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to scan resource row")
		return models.Resource{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return res, nil
}

// Create inserts a new resource. A primary-key conflict on
// (collection, resource_id) is mapped to [ErrResourceExists] via the
// driver-specific classifier.
func (s *sqlResourceStore) Create(ctx context.Context, resource models.Resource) (models.Resource, error) {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(resource.Document)
	if err != nil {
		return models.Resource{}, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	now := time.Now().UTC()
	resource.CreatedAt = now
	resource.UpdatedAt = now

	query, args, err := s.builder.
		Insert(resourcesTable).
		Columns(resourceColumns...).
		Values(resource.Collection, resource.ID, string(raw), resource.CreatedAt, resource.UpdatedAt).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqlResourceStore.Create").
			Str("collection", resource.Collection).
			Str("id", resource.ID).
			Msg("failed to build insert query")
		return models.Resource{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.DB.ExecContext(ctx, query, args...); err != nil {
		if s.classifier.IsUniqueViolation(err) {
			log.Warn().
				Str("func", "sqlResourceStore.Create").
				Str("collection", resource.Collection).
				Str("id", resource.ID).
				Msg("create rejected: id already taken")
			return models.Resource{}, ErrResourceExists
		}

		log.Err(err).
			Str("func", "sqlResourceStore.Create").
			Str("collection", resource.Collection).
			Str("id", resource.ID).
			Msg("failed to insert resource")
		return models.Resource{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return resource, nil
}

// Replace overwrites the stored document, or returns [ErrResourceNotFound]
// when no row was affected.
func (s *sqlResourceStore) Replace(ctx context.Context, resource models.Resource) (models.Resource, error) {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(resource.Document)
	if err != nil {
		return models.Resource{}, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	resource.UpdatedAt = time.Now().UTC()

	query, args, err := s.builder.
		Update(resourcesTable).
		Set("document", string(raw)).
		Set("updated_at", resource.UpdatedAt).
		Where("collection = ?", resource.Collection).
		Where("resource_id = ?", resource.ID).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqlResourceStore.Replace").
			Str("collection", resource.Collection).
			Str("id", resource.ID).
			Msg("failed to build update query")
		return models.Resource{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlResourceStore.Replace").
			Str("collection", resource.Collection).
			Str("id", resource.ID).
			Msg("failed to update resource")
		return models.Resource{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Resource{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "sqlResourceStore.Replace").
			Str("collection", resource.Collection).
			Str("id", resource.ID).
			Msg("replace rejected: resource not found")
		return models.Resource{}, ErrResourceNotFound
	}

	return s.Get(ctx, resource.Collection, resource.ID)
}

// Delete removes the resource, or returns [ErrResourceNotFound] when no row
// was affected.
func (s *sqlResourceStore) Delete(ctx context.Context, collection, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.
		Delete(resourcesTable).
		Where("collection = ?", collection).
		Where("resource_id = ?", id).
		ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "sqlResourceStore.Delete").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to build delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlResourceStore.Delete").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to delete resource")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		log.Warn().
			Str("func", "sqlResourceStore.Delete").
			Str("collection", collection).
			Str("id", id).
			Msg("delete rejected: resource not found")
		return ErrResourceNotFound
	}

	return nil
}

// Reset deletes every row from the resources table. The schema stays intact.
func (s *sqlResourceStore) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := s.builder.Delete(resourcesTable).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlResourceStore.Reset").
			Msg("failed to reset resources table")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	dropped, _ := result.RowsAffected()
	log.Info().
		Int64("dropped", dropped).
		Msg("sql store reset")

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (models.Resource, error) {
	var res models.Resource
	var rawDocument string

	if err := row.Scan(
		&res.Collection,
		&res.ID,
		&rawDocument,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return models.Resource{}, err
	}

	if err := json.Unmarshal([]byte(rawDocument), &res.Document); err != nil {
		return models.Resource{}, fmt.Errorf("%w: %w", ErrEncodingDocument, err)
	}

	return res, nil
}
