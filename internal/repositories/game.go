package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mkarvon/sleuthline/internal/db"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

type GameRepository struct {
	dbs    *db.DBs
	logger *slog.Logger
}

func NewGameRepository(dbs *db.DBs, logger *slog.Logger) *GameRepository {
	return &GameRepository{
		dbs:    dbs,
		logger: logger.With("source", "GameRepository"),
	}
}

type gameRow struct {
	ID           string         `db:"id"`
	CaseID       string         `db:"case_id"`
	Owner        string         `db:"owner"`
	Summary      sql.NullString `db:"summary"`
	MessageCount int            `db:"message_count"`
	Completed    bool           `db:"is_completed"`
	Outcome      sql.NullString `db:"outcome"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (row gameRow) toModel() (*models.Game, error) {
	game := models.Game{
		ID:           row.ID,
		CaseID:       row.CaseID,
		Owner:        row.Owner,
		Summary:      nil,
		MessageCount: row.MessageCount,
		Completed:    row.Completed,
		Outcome:      nil,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.Summary.Valid {
		game.Summary = &row.Summary.String
	}
	if row.Outcome.Valid {
		var outcome models.Outcome
		if err := json.Unmarshal([]byte(row.Outcome.String), &outcome); err != nil {
			return nil, errors.Wrap(err, "unmarshal outcome", slog.String("game_id", row.ID))
		}
		game.Outcome = &outcome
	}
	return &game, nil
}

func (r *GameRepository) Create(ctx context.Context, gameID, caseID, owner string) error {
	stmt := `INSERT INTO games (id, case_id, owner) VALUES (?, ?, ?)`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, gameID, caseID, owner); err != nil {
		return errors.Wrap(err, "insert game", slog.String("game_id", gameID))
	}
	return nil
}

func (r *GameRepository) Get(ctx context.Context, gameID string) (*models.Game, error) {
	var row gameRow
	stmt := `SELECT id, case_id, owner, summary, message_count, is_completed, outcome, created_at, updated_at
	FROM games WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &row, stmt, gameID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNotFound, "get game", slog.String("game_id", gameID))
		}
		return nil, errors.Wrap(err, "get game")
	}
	return row.toModel()
}

// IncrementMessageCount bumps the player message counter and returns the new
// value. The update is atomic so concurrent exchanges never read stale counts.
func (r *GameRepository) IncrementMessageCount(ctx context.Context, gameID string) (int, error) {
	var count int
	stmt := `UPDATE games
	SET message_count = message_count + 1, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?
	RETURNING message_count`
	if err := r.dbs.ReadWrite.QueryRowContext(ctx, stmt, gameID).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errors.Wrap(ErrNotFound, "increment message count", slog.String("game_id", gameID))
		}
		return 0, errors.Wrap(err, "increment message count")
	}
	return count, nil
}

func (r *GameRepository) SetSummary(ctx context.Context, gameID, summary string) error {
	stmt := `UPDATE games SET summary = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, summary, gameID); err != nil {
		return errors.Wrap(err, "update summary", slog.String("game_id", gameID))
	}
	return nil
}

// Complete marks the game finished and records the final outcome. The
// completion flag guards the update so the outcome is written at most once;
// the returned bool reports whether this call won.
func (r *GameRepository) Complete(ctx context.Context, gameID string, outcome models.Outcome) (bool, error) {
	outcomeJSON, err := json.Marshal(outcome)
	if err != nil {
		return false, errors.Wrap(err, "marshal outcome")
	}
	stmt := `UPDATE games
	SET is_completed = TRUE, outcome = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ? AND is_completed = FALSE`
	result, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, string(outcomeJSON), gameID)
	if err != nil {
		return false, errors.Wrap(err, "complete game", slog.String("game_id", gameID))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "rows affected")
	}
	return affected > 0, nil
}
