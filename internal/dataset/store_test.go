package dataset

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveystat/domain/core"
	domain "surveystat/domain/dataset"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	older := &domain.Dataset{ID: core.NewDatasetID(), Name: "older", LoadedAt: core.NewTimestamp(time.Now().Add(-time.Hour))}
	newer := &domain.Dataset{ID: core.NewDatasetID(), Name: "newer", LoadedAt: core.Now()}
	require.NoError(t, store.Save(ctx, older))
	require.NoError(t, store.Save(ctx, newer))

	got, err := store.Get(ctx, older.ID)
	require.NoError(t, err)
	assert.Same(t, older, got)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)

	require.NoError(t, store.Delete(ctx, older.ID))
	_, err = store.Get(ctx, older.ID)
	assert.True(t, core.IsNotFoundError(err))
	assert.True(t, core.IsNotFoundError(store.Delete(ctx, older.ID)))
}

func TestMemoryStoreAssignsID(t *testing.T) {
	store := NewMemoryStore()
	ds := &domain.Dataset{Name: "anonymous"}
	require.NoError(t, store.Save(context.Background(), ds))
	assert.NotEmpty(t, ds.ID)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ds := &domain.Dataset{ID: core.NewDatasetID(), Name: fmt.Sprintf("ds-%d", i), LoadedAt: core.Now()}
			assert.NoError(t, store.Save(ctx, ds))
			_, err := store.Get(ctx, ds.ID)
			assert.NoError(t, err)
			_, err = store.List(ctx)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemoryStore().List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
