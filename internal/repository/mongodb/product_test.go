package mongodb_test

import (
	"context"
	"testing"

	"github.com/msomdec/product-catalog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestProductRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := db.Products()
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	p := &domain.Product{Name: "Widget", Price: 9.99, Description: "A widget"}
	require.NoError(t, repo.Create(ctx, p))
	require.NotEmpty(t, p.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
	assert.Equal(t, "Widget", list[0].Name)
	assert.Equal(t, 9.99, list[0].Price)
	assert.Equal(t, "A widget", list[0].Description)

	updated, err := repo.Update(ctx, p.ID, domain.ProductPatch{Price: ptr(12.5)})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, "Widget", updated.Name)
	assert.Equal(t, "A widget", updated.Description)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.Price)

	removed, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestProductRepository_UpdateMissingDoesNotUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := db.Products()
	ctx := context.Background()

	_, err := repo.Update(ctx, "65f000000000000000000000", domain.ProductPatch{Name: ptr("Ghost")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProductRepository_MalformedID(t *testing.T) {
	db := newTestDB(t)
	repo := db.Products()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "bogus")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.Update(ctx, "bogus", domain.ProductPatch{Name: ptr("Ghost")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)

	removed, err := repo.Delete(ctx, "bogus")
	require.Error(t, err)
	assert.False(t, removed)
}
