package repositorytest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	products := NewCollection[model.Product]()

	id, err := products.Set(ctx, "", model.Product{Name: "Mug", Category: "kitchen", Price: 12})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := products.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Mug", got.Name)

	raw, ok := products.Raw(id)
	require.True(t, ok)
	assert.NotContains(t, raw, "id")

	require.NoError(t, products.Update(ctx, id, map[string]any{"price": 15.5}))
	got, err = products.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 15.5, got.Price)
	assert.Equal(t, "Mug", got.Name)

	require.ErrorIs(t, products.Create(ctx, id, model.Product{}), repository.ErrAlreadyExists)
	require.ErrorIs(t, products.Update(ctx, "missing", map[string]any{"price": 1}), repository.ErrNotFound)

	require.NoError(t, products.Delete(ctx, id))
	require.ErrorIs(t, products.Delete(ctx, id), repository.ErrNotFound)
	_, err = products.Get(ctx, id)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCollectionListOrdered(t *testing.T) {
	ctx := context.Background()
	blogs := NewCollection[model.Blog]()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, title := range []string{"old", "new", "mid"} {
		offset := map[string]int{"old": 0, "mid": 1, "new": 2}[title]
		_, err := blogs.Set(ctx, "", model.Blog{
			Title:     title,
			Author:    []string{"ann", "bob", "ann"}[i],
			CreatedAt: base.Add(time.Duration(offset) * time.Hour),
		})
		require.NoError(t, err)
	}

	list, err := blogs.ListOrdered(ctx, nil, "createdAt", repository.Desc)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{list[0].Title, list[1].Title, list[2].Title})

	filtered, err := blogs.List(ctx, &repository.Filter{Field: "author", Equals: "ann"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)
}

func TestCollectionIncrement(t *testing.T) {
	ctx := context.Background()
	counters := NewCollection[model.VisitorCounter]()

	_, err := counters.Increment(ctx, model.VisitorCounterID, "count", 1)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, counters.Create(ctx, model.VisitorCounterID, model.VisitorCounter{Count: 1}))

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := counters.Increment(ctx, model.VisitorCounterID, "count", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := counters.Get(ctx, model.VisitorCounterID)
	require.NoError(t, err)
	assert.Equal(t, int64(51), got.Count)
}

func TestCollectionErr(t *testing.T) {
	ctx := context.Background()
	blogs := NewCollection[model.Blog]()
	blogs.Err = assert.AnError

	_, err := blogs.List(ctx, nil)
	assert.ErrorIs(t, err, assert.AnError)
	assert.ErrorIs(t, blogs.Delete(ctx, "x"), assert.AnError)
}
