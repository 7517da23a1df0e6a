package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mkarvon/sleuthline/internal/models"
)

// StepSource loads a case's discovery paths from persistence.
type StepSource interface {
	Steps(ctx context.Context, caseID string) ([]models.Path, error)
}

// Service caches discovery paths per case. Case content is immutable after
// loading, so entries never expire; Invalidate exists for operator reloads.
type Service struct {
	source StepSource
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string][]models.Path
}

func NewService(source StepSource, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
		cache:  make(map[string][]models.Path),
	}
}

// Paths returns the case's discovery paths in catalog load order.
func (s *Service) Paths(ctx context.Context, caseID string) ([]models.Path, error) {
	s.mu.RLock()
	paths, ok := s.cache[caseID]
	s.mu.RUnlock()
	if ok {
		return paths, nil
	}

	paths, err := s.source.Steps(ctx, caseID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cache[caseID] = paths
	s.mu.Unlock()
	s.logger.LogAttrs(ctx, slog.LevelDebug, "catalog loaded",
		slog.String("case_id", caseID),
		slog.Int("paths", len(paths)))
	return paths, nil
}

// Invalidate drops the cached catalog for a case after a reload.
func (s *Service) Invalidate(caseID string) {
	s.mu.Lock()
	delete(s.cache, caseID)
	s.mu.Unlock()
}
