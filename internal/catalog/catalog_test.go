package catalog_test

import (
	"context"
	"io"
	"testing"

	"github.com/mkarvon/sleuthline/internal/catalog"
	"github.com/mkarvon/sleuthline/internal/models"
	"github.com/mkarvon/sleuthline/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	paths []models.Path
}

func (s *countingSource) Steps(_ context.Context, _ string) ([]models.Path, error) {
	s.calls++
	return s.paths, nil
}

func TestService_cachesPerCase(t *testing.T) {
	source := &countingSource{paths: []models.Path{{ID: "coat"}}}
	service := catalog.NewService(source, testhelpers.NewLogger(io.Discard))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		paths, err := service.Paths(ctx, "velvet-study")
		require.NoError(t, err)
		require.Len(t, paths, 1)
	}
	require.Equal(t, 1, source.calls, "catalog should load once per case")

	service.Invalidate("velvet-study")
	_, err := service.Paths(ctx, "velvet-study")
	require.NoError(t, err)
	require.Equal(t, 2, source.calls, "invalidation should force a reload")
}
