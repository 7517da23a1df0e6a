package repositories_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/mkarvon/sleuthline/internal/models"
	"github.com/mkarvon/sleuthline/internal/repositories"
	"github.com/mkarvon/sleuthline/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestProgressRepository_UpsertIfGreater(t *testing.T) {
	dbs := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewProgressRepository(dbs, logger)
	ctx := context.Background()

	progress, err := repo.List(ctx, "game-1")
	require.NoError(t, err)
	require.Empty(t, progress, "fresh game should have no progress records")

	// First step on a fresh path inserts.
	applied, err := repo.UpsertIfGreater(ctx, "game-1", "coat", 1)
	require.NoError(t, err)
	require.True(t, applied)

	// Advancing applies.
	applied, err = repo.UpsertIfGreater(ctx, "game-1", "coat", 2)
	require.NoError(t, err)
	require.True(t, applied)

	// Re-applying the same step is rejected.
	applied, err = repo.UpsertIfGreater(ctx, "game-1", "coat", 2)
	require.NoError(t, err)
	require.False(t, applied)

	// A stale smaller step is rejected.
	applied, err = repo.UpsertIfGreater(ctx, "game-1", "coat", 1)
	require.NoError(t, err)
	require.False(t, applied)

	progress, err = repo.List(ctx, "game-1")
	require.NoError(t, err)
	require.Equal(t, []models.PathProgress{{PathID: "coat", LastCompletedStep: 2}}, progress)
}

func TestProgressRepository_UpsertIfGreater_concurrent(t *testing.T) {
	dbs := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewProgressRepository(dbs, logger)
	ctx := context.Background()

	// Many goroutines race to apply the same transition; exactly one wins.
	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		applies int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			applied, err := repo.UpsertIfGreater(ctx, "game-1", "desk", 1)
			require.NoError(t, err)
			if applied {
				mu.Lock()
				applies++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, applies, "exactly one concurrent upsert should apply")

	progress, err := repo.List(ctx, "game-1")
	require.NoError(t, err)
	require.Equal(t, []models.PathProgress{{PathID: "desk", LastCompletedStep: 1}}, progress)
}
