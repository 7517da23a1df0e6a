package models

import "time"

// Outcome records the result of an accusation. It is written exactly once,
// at the moment the game completes.
type Outcome struct {
	AccusedSuspectID  string    `json:"accused_suspect_id"`
	AccusedName       string    `json:"accused_name"`
	GuiltySuspectID   string    `json:"guilty_suspect_id"`
	GuiltyName        string    `json:"guilty_name"`
	Correct           bool      `json:"correct"`
	EvidenceCollected int       `json:"evidence_collected"`
	TotalEvidence     int       `json:"total_evidence"`
	CompletedAt       time.Time `json:"completed_at"`
}

// Game is the aggregate root of one play session.
type Game struct {
	ID     string `db:"id"`
	CaseID string `db:"case_id"`
	// Owner ties the game to the anonymous browser session that created it.
	Owner string `db:"owner"`
	// Summary is the rolling conversation summary, nil until the first
	// summarization has run.
	Summary *string `db:"summary"`
	// MessageCount counts player messages and drives summarization.
	MessageCount int  `db:"message_count"`
	Completed    bool `db:"is_completed"`
	// Outcome is nil until an accusation completes the game.
	Outcome   *Outcome  `db:"-"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
