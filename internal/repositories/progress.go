package repositories

import (
	"context"
	"log/slog"

	"github.com/mkarvon/sleuthline/internal/db"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

type ProgressRepository struct {
	dbs    *db.DBs
	logger *slog.Logger
}

func NewProgressRepository(dbs *db.DBs, logger *slog.Logger) *ProgressRepository {
	return &ProgressRepository{
		dbs:    dbs,
		logger: logger.With("source", "ProgressRepository"),
	}
}

func (r *ProgressRepository) List(ctx context.Context, gameID string) ([]models.PathProgress, error) {
	var progress []models.PathProgress
	stmt := `SELECT path_id, last_completed_step FROM game_path_progress WHERE game_id = ? ORDER BY path_id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &progress, stmt, gameID); err != nil {
		return nil, errors.Wrap(err, "select path progress")
	}
	return progress, nil
}

// UpsertIfGreater advances the last completed step for (game, path) but only
// when the new value is greater than the stored one. This keeps progress
// monotonic even when a stale or duplicate match is re-applied under request
// reordering. Returns whether the update was applied.
func (r *ProgressRepository) UpsertIfGreater(ctx context.Context, gameID, pathID string, stepNumber int) (bool, error) {
	stmt := `INSERT INTO game_path_progress (game_id, path_id, last_completed_step)
	VALUES (?, ?, ?)
	ON CONFLICT (game_id, path_id) DO UPDATE
	SET last_completed_step = excluded.last_completed_step
	WHERE excluded.last_completed_step > game_path_progress.last_completed_step`
	result, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, gameID, pathID, stepNumber)
	if err != nil {
		return false, errors.Wrap(err, "upsert path progress",
			slog.String("game_id", gameID), slog.String("path_id", pathID), slog.Int("step_number", stepNumber))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return affected > 0, nil
}
