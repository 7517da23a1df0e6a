package engine

import (
	"context"
	"log/slog"

	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

// commit records a matched transition: a monotonic progress upsert followed
// by an at-most-once evidence unlock. The unlock runs even when the upsert
// lost a race, which repairs a missing evidence record left by a crash
// between the two writes.
func (e *Engine) commit(ctx context.Context, gameID string, step models.Step) (advanced bool, unlockedID string, err error) {
	advanced, err = e.progress.UpsertIfGreater(ctx, gameID, step.PathID, step.Number)
	if err != nil {
		return false, "", errors.Wrap(err, "commit progress",
			slog.String("game_id", gameID),
			slog.String("path_id", step.PathID),
			slog.Int("step_number", step.Number))
	}
	if !advanced {
		e.logger.LogAttrs(ctx, slog.LevelInfo, "stale transition skipped",
			slog.String("game_id", gameID),
			slog.String("path_id", step.PathID),
			slog.Int("step_number", step.Number))
	}

	if !step.UnlockTrigger || step.EvidenceID == "" {
		return advanced, "", nil
	}
	inserted, err := e.evidence.UnlockOnce(ctx, gameID, step.EvidenceID)
	if err != nil {
		return advanced, "", errors.Wrap(err, "unlock evidence",
			slog.String("game_id", gameID),
			slog.String("evidence_id", step.EvidenceID))
	}
	if inserted {
		unlockedID = step.EvidenceID
	}
	return advanced, unlockedID, nil
}

// repairUnlocks re-inserts evidence records for unlock-trigger steps that
// progress already marks completed. Covers a crash between the progress
// upsert and the unlock insert.
func (e *Engine) repairUnlocks(ctx context.Context, gameID string, paths []models.Path, progress []models.PathProgress) error {
	completed := make(map[string]int, len(progress))
	for _, p := range progress {
		completed[p.PathID] = p.LastCompletedStep
	}
	unlocked, err := e.evidence.ListUnlocked(ctx, gameID)
	if err != nil {
		return errors.Wrap(err, "load unlocked evidence", slog.String("game_id", gameID))
	}
	have := make(map[string]bool, len(unlocked))
	for _, ev := range unlocked {
		have[ev.ID] = true
	}

	for _, path := range paths {
		for _, step := range path.Steps {
			if !step.UnlockTrigger || step.EvidenceID == "" {
				continue
			}
			if step.Number > completed[path.ID] || have[step.EvidenceID] {
				continue
			}
			inserted, err := e.evidence.UnlockOnce(ctx, gameID, step.EvidenceID)
			if err != nil {
				return errors.Wrap(err, "repair evidence unlock",
					slog.String("game_id", gameID),
					slog.String("evidence_id", step.EvidenceID))
			}
			if inserted {
				e.logger.LogAttrs(ctx, slog.LevelWarn, "repaired missing evidence unlock",
					slog.String("game_id", gameID),
					slog.String("path_id", path.ID),
					slog.String("evidence_id", step.EvidenceID))
			}
		}
	}
	return nil
}
