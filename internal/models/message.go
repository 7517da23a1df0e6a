package models

import "time"

type Sender string

const (
	SenderPlayer    Sender = "player"
	SenderColleague Sender = "colleague"
)

// Message is one entry in a game's append-only chat transcript.
type Message struct {
	GameID string `db:"game_id"`
	// Seq increases strictly within a game and orders the transcript.
	Seq       int64     `db:"seq"`
	Sender    Sender    `db:"sender"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}
