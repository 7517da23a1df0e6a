package repositories

import (
	"context"
	"log/slog"

	"github.com/mkarvon/sleuthline/internal/db"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

type MessageRepository struct {
	dbs    *db.DBs
	logger *slog.Logger
}

func NewMessageRepository(dbs *db.DBs, logger *slog.Logger) *MessageRepository {
	return &MessageRepository{
		dbs:    dbs,
		logger: logger.With("source", "MessageRepository"),
	}
}

// Append adds a message to the end of the game transcript and returns its
// sequence number. The sequence is computed and inserted in one statement on
// the single write connection, so numbers are gapless and strictly increasing.
func (r *MessageRepository) Append(
	ctx context.Context,
	gameID string,
	sender models.Sender,
	content string,
) (int64, error) {
	var seq int64
	stmt := `INSERT INTO messages (game_id, seq, sender, content)
	SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ? FROM messages WHERE game_id = ?
	RETURNING seq`
	if err := r.dbs.ReadWrite.QueryRowContext(ctx, stmt, gameID, sender, content, gameID).Scan(&seq); err != nil {
		return 0, errors.Wrap(err, "append message", slog.String("game_id", gameID))
	}
	return seq, nil
}

// Recent returns the last limit messages in chronological order.
func (r *MessageRepository) Recent(ctx context.Context, gameID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	stmt := `SELECT game_id, seq, sender, content, created_at FROM (
		SELECT game_id, seq, sender, content, created_at
		FROM messages
		WHERE game_id = ?
		ORDER BY seq DESC
		LIMIT ?
	) ORDER BY seq`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &messages, stmt, gameID, limit); err != nil {
		return nil, errors.Wrap(err, "select recent messages")
	}
	return messages, nil
}

// All returns the complete transcript in chronological order.
func (r *MessageRepository) All(ctx context.Context, gameID string) ([]models.Message, error) {
	var messages []models.Message
	stmt := `SELECT game_id, seq, sender, content, created_at FROM messages WHERE game_id = ? ORDER BY seq`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &messages, stmt, gameID); err != nil {
		return nil, errors.Wrap(err, "select messages")
	}
	return messages, nil
}
