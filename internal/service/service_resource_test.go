package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/specmock/specmock/internal/logger"
	"github.com/specmock/specmock/internal/mock"
	"github.com/specmock/specmock/internal/store"
	"github.com/specmock/specmock/models"
)

func newResourceServiceWithMock(t *testing.T) (ResourceService, *mock.MockResourceStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	resources := mock.NewMockResourceStore(ctrl)

	return NewResourceService(resources, logger.Nop()), resources
}

func TestResourceService_ListResources(t *testing.T) {
	ctx := context.Background()

	// ---- documents are unwrapped from stored resources ----
	svc, resources := newResourceServiceWithMock(t)
	resources.EXPECT().
		List(ctx, "pets", store.Filter{"status": "sold"}).
		Return([]models.Resource{
			{Collection: "pets", ID: "1", Document: models.Document{"id": "1", "name": "rex"}},
			{Collection: "pets", ID: "2", Document: models.Document{"id": "2", "name": "milo"}},
		}, nil)

	docs, err := svc.ListResources(ctx, "pets", store.Filter{"status": "sold"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "rex", docs[0]["name"])
	assert.Equal(t, "milo", docs[1]["name"])

	// ---- empty collection yields an empty, non-nil slice ----
	resources.EXPECT().List(ctx, "orders", nil).Return(nil, nil)

	docs, err = svc.ListResources(ctx, "orders", nil)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	// ---- store errors pass through ----
	storeErr := errors.New("boom")
	resources.EXPECT().List(ctx, "pets", nil).Return(nil, storeErr)

	_, err = svc.ListResources(ctx, "pets", nil)
	assert.ErrorIs(t, err, storeErr)
}

func TestResourceService_GetResource(t *testing.T) {
	ctx := context.Background()
	svc, resources := newResourceServiceWithMock(t)

	// ---- found ----
	resources.EXPECT().
		Get(ctx, "pets", "1").
		Return(models.Resource{Collection: "pets", ID: "1", Document: models.Document{"id": "1", "name": "rex"}}, nil)

	doc, err := svc.GetResource(ctx, "pets", "1")
	require.NoError(t, err)
	assert.Equal(t, "rex", doc["name"])

	// ---- missing ----
	resources.EXPECT().
		Get(ctx, "pets", "404").
		Return(models.Resource{}, store.ErrResourceNotFound)

	_, err = svc.GetResource(ctx, "pets", "404")
	assert.ErrorIs(t, err, store.ErrResourceNotFound)
}

func TestResourceService_CreateResource(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps the id the document carries", func(t *testing.T) {
		svc, resources := newResourceServiceWithMock(t)
		resources.EXPECT().
			Create(ctx, models.Resource{
				Collection: "pets",
				ID:         "42",
				Document:   models.Document{"id": "42", "name": "rex"},
			}).
			DoAndReturn(func(_ context.Context, res models.Resource) (models.Resource, error) {
				return res, nil
			})

		created, err := svc.CreateResource(ctx, "pets", models.Document{"id": "42", "name": "rex"})
		require.NoError(t, err)
		assert.Equal(t, "42", created.ID())
	})

	t.Run("synthesizes an id when the document has none", func(t *testing.T) {
		svc, resources := newResourceServiceWithMock(t)

		var storedID string
		resources.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, res models.Resource) (models.Resource, error) {
				storedID = res.ID
				return res, nil
			})

		created, err := svc.CreateResource(ctx, "pets", models.Document{"name": "rex"})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID())
		assert.Equal(t, storedID, created.ID())
	})

	t.Run("rejects a nil document", func(t *testing.T) {
		svc, _ := newResourceServiceWithMock(t)

		_, err := svc.CreateResource(ctx, "pets", nil)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("propagates id conflicts", func(t *testing.T) {
		svc, resources := newResourceServiceWithMock(t)
		resources.EXPECT().
			Create(ctx, gomock.Any()).
			Return(models.Resource{}, store.ErrResourceExists)

		_, err := svc.CreateResource(ctx, "pets", models.Document{"id": "42"})
		assert.ErrorIs(t, err, store.ErrResourceExists)
	})
}

func TestResourceService_ReplaceResource(t *testing.T) {
	ctx := context.Background()

	t.Run("path id overrides the body id", func(t *testing.T) {
		svc, resources := newResourceServiceWithMock(t)
		resources.EXPECT().
			Replace(ctx, models.Resource{
				Collection: "pets",
				ID:         "1",
				Document:   models.Document{"id": "1", "name": "rex"},
			}).
			DoAndReturn(func(_ context.Context, res models.Resource) (models.Resource, error) {
				return res, nil
			})

		replaced, err := svc.ReplaceResource(ctx, "pets", "1", models.Document{"id": "999", "name": "rex"})
		require.NoError(t, err)
		assert.Equal(t, "1", replaced.ID())
	})

	t.Run("rejects a nil document", func(t *testing.T) {
		svc, _ := newResourceServiceWithMock(t)

		_, err := svc.ReplaceResource(ctx, "pets", "1", nil)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})

	t.Run("missing resource surfaces as not found", func(t *testing.T) {
		svc, resources := newResourceServiceWithMock(t)
		resources.EXPECT().
			Replace(ctx, gomock.Any()).
			Return(models.Resource{}, store.ErrResourceNotFound)

		_, err := svc.ReplaceResource(ctx, "pets", "404", models.Document{"name": "rex"})
		assert.ErrorIs(t, err, store.ErrResourceNotFound)
	})
}

func TestResourceService_MergeResource(t *testing.T) {
	ctx := context.Background()

	stored := models.Resource{
		Collection: "pets",
		ID:         "1",
		Document: models.Document{
			"id":     "1",
			"name":   "rex",
			"status": "available",
			"owner":  map[string]any{"name": "alice", "city": "berlin"},
		},
	}

	t.Run("patch fields win, untouched fields survive", func(t *testing.T) {
		svc, resources := newResourceServiceWithMock(t)
		resources.EXPECT().Get(ctx, "pets", "1").Return(stored, nil)
		resources.EXPECT().
			Replace(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, res models.Resource) (models.Resource, error) {
				return res, nil
			})

		merged, err := svc.MergeResource(ctx, "pets", "1", models.Document{
			"status": "sold",
			"owner":  map[string]any{"city": "hamburg"},
		})
		require.NoError(t, err)

		assert.Equal(t, "sold", merged["status"])
		assert.Equal(t, "rex", merged["name"])

		owner, ok := merged["owner"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "hamburg", owner["city"])
		assert.Equal(t, "alice", owner["name"])
	})

	t.Run("the stored id is immune to the patch", func(t *testing.T) {
		svc, resources := newResourceServiceWithMock(t)
		resources.EXPECT().Get(ctx, "pets", "1").Return(stored, nil)
		resources.EXPECT().
			Replace(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, res models.Resource) (models.Resource, error) {
				return res, nil
			})

		merged, err := svc.MergeResource(ctx, "pets", "1", models.Document{"id": "666"})
		require.NoError(t, err)
		assert.Equal(t, "1", merged.ID())
	})

	t.Run("missing resource surfaces as not found", func(t *testing.T) {
		svc, resources := newResourceServiceWithMock(t)
		resources.EXPECT().
			Get(ctx, "pets", "404").
			Return(models.Resource{}, store.ErrResourceNotFound)

		_, err := svc.MergeResource(ctx, "pets", "404", models.Document{"status": "sold"})
		assert.ErrorIs(t, err, store.ErrResourceNotFound)
	})

	t.Run("rejects a nil patch", func(t *testing.T) {
		svc, _ := newResourceServiceWithMock(t)

		_, err := svc.MergeResource(ctx, "pets", "1", nil)
		assert.ErrorIs(t, err, ErrInvalidDataProvided)
	})
}

func TestResourceService_DeleteAndReset(t *testing.T) {
	ctx := context.Background()
	svc, resources := newResourceServiceWithMock(t)

	// ---- delete passes through ----
	resources.EXPECT().Delete(ctx, "pets", "1").Return(nil)
	require.NoError(t, svc.DeleteResource(ctx, "pets", "1"))

	resources.EXPECT().Delete(ctx, "pets", "404").Return(store.ErrResourceNotFound)
	assert.ErrorIs(t, svc.DeleteResource(ctx, "pets", "404"), store.ErrResourceNotFound)

	// ---- reset passes through ----
	resources.EXPECT().Reset(ctx).Return(nil)
	require.NoError(t, svc.ResetResources(ctx))
}
