package repositories

import (
	"context"
	"log/slog"

	"github.com/mkarvon/sleuthline/internal/db"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

type EvidenceRepository struct {
	dbs    *db.DBs
	logger *slog.Logger
}

func NewEvidenceRepository(dbs *db.DBs, logger *slog.Logger) *EvidenceRepository {
	return &EvidenceRepository{
		dbs:    dbs,
		logger: logger.With("source", "EvidenceRepository"),
	}
}

// UnlockOnce records that the player has seen the evidence. The primary key
// on (game_id, evidence_id) rejects concurrent duplicates; the returned bool
// reports whether this call inserted the record.
func (r *EvidenceRepository) UnlockOnce(ctx context.Context, gameID, evidenceID string) (bool, error) {
	stmt := `INSERT INTO evidence_unlocked (game_id, evidence_id) VALUES (?, ?)
	ON CONFLICT (game_id, evidence_id) DO NOTHING`
	result, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, gameID, evidenceID)
	if err != nil {
		return false, errors.Wrap(err, "unlock evidence",
			slog.String("game_id", gameID), slog.String("evidence_id", evidenceID))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return affected > 0, nil
}

// ListUnlocked returns the full detail of every evidence record the game has
// unlocked, in unlock order.
func (r *EvidenceRepository) ListUnlocked(ctx context.Context, gameID string) ([]models.Evidence, error) {
	var evidence []models.Evidence
	stmt := `SELECT e.id, e.case_id, e.name, e.description, e.location, e.is_required
	FROM evidence_unlocked eu
	JOIN evidence e ON e.id = eu.evidence_id
	WHERE eu.game_id = ?
	ORDER BY eu.unlocked_at, e.id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &evidence, stmt, gameID); err != nil {
		return nil, errors.Wrap(err, "select unlocked evidence")
	}
	return evidence, nil
}
