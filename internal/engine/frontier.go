package engine

import (
	"log/slog"

	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

// Frontier resolves the set of steps the player can complete next: for every
// discovery path, the step after the last completed one, or the first step
// when the path has no progress record. Fully completed paths contribute
// nothing. The result preserves catalog load order.
func Frontier(paths []models.Path, progress []models.PathProgress) []models.Step {
	completed := make(map[string]int, len(progress))
	for _, p := range progress {
		completed[p.PathID] = p.LastCompletedStep
	}

	var frontier []models.Step
	for _, path := range paths {
		if completed[path.ID] >= path.LastStep() {
			continue
		}
		next := completed[path.ID] + 1
		for _, step := range path.Steps {
			if step.Number == next {
				frontier = append(frontier, step)
				break
			}
		}
	}
	return frontier
}

// validateProgress rejects progress records that contradict the catalog:
// a record for a path the catalog does not know, or one claiming a step
// past the path's last step. Such records mean corrupted state and must
// not be papered over by the frontier resolver.
func validateProgress(paths []models.Path, progress []models.PathProgress) error {
	lastSteps := make(map[string]int, len(paths))
	for _, path := range paths {
		lastSteps[path.ID] = path.LastStep()
	}
	for _, p := range progress {
		last, ok := lastSteps[p.PathID]
		if !ok {
			return errors.New("progress references unknown path",
				slog.String("path_id", p.PathID),
				slog.Int("last_completed_step", p.LastCompletedStep))
		}
		if p.LastCompletedStep > last {
			return errors.New("progress past the end of path",
				slog.String("path_id", p.PathID),
				slog.Int("last_completed_step", p.LastCompletedStep),
				slog.Int("last_step", last))
		}
	}
	return nil
}
