package repositories_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/mkarvon/sleuthline/internal/repositories"
	"github.com/mkarvon/sleuthline/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func TestEvidenceRepository_UnlockOnce(t *testing.T) {
	dbs := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewEvidenceRepository(dbs, logger)
	ctx := context.Background()

	inserted, err := repo.UnlockOnce(ctx, "game-1", "handkerchief")
	require.NoError(t, err)
	require.True(t, inserted)

	// The second unlock for the same pair is a no-op, not an error.
	inserted, err = repo.UnlockOnce(ctx, "game-1", "handkerchief")
	require.NoError(t, err)
	require.False(t, inserted)

	unlocked, err := repo.ListUnlocked(ctx, "game-1")
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	require.Equal(t, "handkerchief", unlocked[0].ID)
	require.Equal(t, "A silk handkerchief embroidered with the initials C.V.", unlocked[0].Description)
}

func TestEvidenceRepository_UnlockOnce_concurrent(t *testing.T) {
	dbs := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	repo := repositories.NewEvidenceRepository(dbs, logger)
	ctx := context.Background()

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inserts int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inserted, err := repo.UnlockOnce(ctx, "game-1", "vial-cap")
			require.NoError(t, err)
			if inserted {
				mu.Lock()
				inserts++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, inserts, "evidence must unlock exactly once")

	unlocked, err := repo.ListUnlocked(ctx, "game-1")
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
}
