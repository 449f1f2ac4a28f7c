package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/models"
)

func newTestMemoryStore() ResourceStore {
	return NewMemoryStore(logger.Nop())
}

func petResource(id string, doc models.Document) models.Resource {
	if doc == nil {
		doc = models.Document{}
	}
	doc.SetID(id)
	return models.Resource{Collection: "/pets", ID: id, Document: doc}
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, petResource("1", models.Document{"name": "rex"}))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := s.Get(ctx, "/pets", "1")
	require.NoError(t, err)
	assert.Equal(t, "rex", got.Document["name"])
}

func TestMemoryStore_Create_DuplicateID(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	_, err := s.Create(ctx, petResource("1", nil))
	require.NoError(t, err)

	_, err = s.Create(ctx, petResource("1", nil))
	assert.ErrorIs(t, err, ErrResourceExists)
}

func TestMemoryStore_Get_NotFound(t *testing.T) {
	s := newTestMemoryStore()

	_, err := s.Get(context.Background(), "/pets", "missing")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestMemoryStore_List_OrderedAndIsolated(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		_, err := s.Create(ctx, petResource(id, nil))
		require.NoError(t, err)
	}
	_, err := s.Create(ctx, models.Resource{Collection: "/stores", ID: "a", Document: models.Document{}})
	require.NoError(t, err)

	pets, err := s.List(ctx, "/pets", nil)
	require.NoError(t, err)
	require.Len(t, pets, 3)
	assert.Equal(t, "a", pets[0].ID)
	assert.Equal(t, "b", pets[1].ID)
	assert.Equal(t, "c", pets[2].ID)
}

func TestMemoryStore_List_EmptyCollection(t *testing.T) {
	s := newTestMemoryStore()

	results, err := s.List(context.Background(), "/nothing", nil)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestMemoryStore_List_Filter(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	_, err := s.Create(ctx, petResource("1", models.Document{"kind": "dog", "age": float64(3)}))
	require.NoError(t, err)
	_, err = s.Create(ctx, petResource("2", models.Document{"kind": "cat", "age": float64(3)}))
	require.NoError(t, err)

	dogs, err := s.List(ctx, "/pets", Filter{"kind": "dog"})
	require.NoError(t, err)
	require.Len(t, dogs, 1)
	assert.Equal(t, "1", dogs[0].ID)

	threes, err := s.List(ctx, "/pets", Filter{"age": "3"})
	require.NoError(t, err)
	assert.Len(t, threes, 2)

	none, err := s.List(ctx, "/pets", Filter{"kind": "dog", "age": "9"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStore_Replace(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	created, err := s.Create(ctx, petResource("1", models.Document{"name": "rex"}))
	require.NoError(t, err)

	replaced, err := s.Replace(ctx, petResource("1", models.Document{"name": "bob"}))
	require.NoError(t, err)
	assert.Equal(t, "bob", replaced.Document["name"])
	assert.Equal(t, created.CreatedAt, replaced.CreatedAt)
}

func TestMemoryStore_Replace_NotFound(t *testing.T) {
	s := newTestMemoryStore()

	_, err := s.Replace(context.Background(), petResource("ghost", nil))
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	_, err := s.Create(ctx, petResource("1", nil))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "/pets", "1"))

	_, err = s.Get(ctx, "/pets", "1")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "/pets", "1"), ErrResourceNotFound)
}

func TestMemoryStore_Reset(t *testing.T) {
	s := newTestMemoryStore()
	ctx := context.Background()

	_, err := s.Create(ctx, petResource("1", nil))
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	results, err := s.List(ctx, "/pets", nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
