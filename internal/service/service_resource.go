// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"

	"dario.cat/mergo"
	"github.com/google/uuid"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/store"
	"github.com/specmock/specmock/models"
)

type resourceService struct {
	resources store.ResourceStore

	logger *logger.Logger
}

// NewResourceService constructs a [ResourceService] on top of the given
// store.
func NewResourceService(resources store.ResourceStore, logger *logger.Logger) ResourceService {
	logger.Debug().Msg("creating resource service")
	return &resourceService{
		resources: resources,
		logger:    logger,
	}
}

func (s *resourceService) ListResources(ctx context.Context, collection string, filter store.Filter) ([]models.Document, error) {
	stored, err := s.resources.List(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(stored))
	for _, res := range stored {
		docs = append(docs, res.Document)
	}

	return docs, nil
}

func (s *resourceService) GetResource(ctx context.Context, collection, id string) (models.Document, error) {
	res, err := s.resources.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	return res.Document, nil
}

// CreateResource stores a new document in collection. A document without an
// id field gets a generated UUID; a document carrying one keeps it, and a
// collision with an existing resource surfaces as [store.ErrResourceExists].
func (s *resourceService) CreateResource(ctx context.Context, collection string, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	if doc == nil {
		return nil, ErrInvalidDataProvided
	}

	id := doc.ID()
	if id == "" {
		id = uuid.NewString()
		doc.SetID(id)
		log.Debug().
			Str("collection", collection).
			Str("id", id).
			Msg("document carried no id, synthesized one")
	}

	created, err := s.resources.Create(ctx, models.Resource{
		Collection: collection,
		ID:         id,
		Document:   doc,
	})
	if err != nil {
		return nil, err
	}

	return created.Document, nil
}

// ReplaceResource overwrites the whole stored document. The id addressed by
// the path always wins over any id field in the body.
func (s *resourceService) ReplaceResource(ctx context.Context, collection, id string, doc models.Document) (models.Document, error) {
	if doc == nil {
		return nil, ErrInvalidDataProvided
	}

	doc.SetID(id)

	replaced, err := s.resources.Replace(ctx, models.Resource{
		Collection: collection,
		ID:         id,
		Document:   doc,
	})
	if err != nil {
		return nil, err
	}

	return replaced.Document, nil
}

// MergeResource deep-merges patch into the stored document: patch fields win,
// nested objects merge recursively, fields absent from the patch survive.
// The resource id is never changed by a merge.
func (s *resourceService) MergeResource(ctx context.Context, collection, id string, patch models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	if patch == nil {
		return nil, ErrInvalidDataProvided
	}

	current, err := s.resources.Get(ctx, collection, id)
	if err != nil {
		return nil, err
	}

	merged, err := current.Document.Clone()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := mergo.Merge(&merged, patch, mergo.WithOverride); err != nil {
		log.Err(err).
			Str("func", "resourceService.MergeResource").
			Str("collection", collection).
			Str("id", id).
			Msg("failed to merge patch into stored document")
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	merged.SetID(id)

	replaced, err := s.resources.Replace(ctx, models.Resource{
		Collection: collection,
		ID:         id,
		Document:   merged,
	})
	if err != nil {
		return nil, err
	}

	return replaced.Document, nil
}

func (s *resourceService) DeleteResource(ctx context.Context, collection, id string) error {
	return s.resources.Delete(ctx, collection, id)
}

func (s *resourceService) ResetResources(ctx context.Context) error {
	return s.resources.Reset(ctx)
}
