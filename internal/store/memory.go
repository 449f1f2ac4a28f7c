// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/models"
)

// memoryStore is the in-process implementation of [ResourceStore] and the
// default backend. Collections map resource ids to stored resources; a single
// RWMutex guards the whole two-level map, which is plenty for a mock server.
type memoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]models.Resource

	logger *logger.Logger
}

// NewMemoryStore constructs an empty in-memory [ResourceStore].
func NewMemoryStore(logger *logger.Logger) ResourceStore {
	logger.Debug().Msg("creating in-memory resource store")
	return &memoryStore{
		collections: make(map[string]map[string]models.Resource),
		logger:      logger,
	}
}

func (m *memoryStore) List(_ context.Context, collection string, filter Filter) ([]models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.collections[collection]

	results := make([]models.Resource, 0, len(items))
	for _, res := range items {
		if !matchesFilter(res.Document, filter) {
			continue
		}
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })

	return results, nil
}

func (m *memoryStore) Get(_ context.Context, collection, id string) (models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res, ok := m.collections[collection][id]
	if !ok {
		return models.Resource{}, ErrResourceNotFound
	}

	return res, nil
}

func (m *memoryStore) Create(ctx context.Context, resource models.Resource) (models.Resource, error) {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	items, ok := m.collections[resource.Collection]
	if !ok {
		items = make(map[string]models.Resource)
		m.collections[resource.Collection] = items
	}

	if _, taken := items[resource.ID]; taken {
		log.Warn().
			Str("collection", resource.Collection).
			Str("id", resource.ID).
			Msg("create rejected: id already taken")
		return models.Resource{}, ErrResourceExists
	}

	now := time.Now().UTC()
	resource.CreatedAt = now
	resource.UpdatedAt = now
	items[resource.ID] = resource

	return resource, nil
}

func (m *memoryStore) Replace(ctx context.Context, resource models.Resource) (models.Resource, error) {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.collections[resource.Collection][resource.ID]
	if !ok {
		log.Warn().
			Str("collection", resource.Collection).
			Str("id", resource.ID).
			Msg("replace rejected: resource not found")
		return models.Resource{}, ErrResourceNotFound
	}

	resource.CreatedAt = current.CreatedAt
	resource.UpdatedAt = time.Now().UTC()
	m.collections[resource.Collection][resource.ID] = resource

	return resource, nil
}

func (m *memoryStore) Delete(ctx context.Context, collection, id string) error {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.collections[collection][id]; !ok {
		log.Warn().
			Str("collection", collection).
			Str("id", id).
			Msg("delete rejected: resource not found")
		return ErrResourceNotFound
	}

	delete(m.collections[collection], id)
	if len(m.collections[collection]) == 0 {
		delete(m.collections, collection)
	}

	return nil
}

func (m *memoryStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, items := range m.collections {
		count += len(items)
	}

	m.collections = make(map[string]map[string]models.Resource)

	logger.FromContext(ctx).Info().
		Int("dropped", count).
		Msg("in-memory store reset")

	return nil
}
