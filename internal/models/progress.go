package models

// PathProgress is the per-game record of how far one discovery path has
// advanced. LastCompletedStep is 0 until the first step completes and is
// monotonically non-decreasing for the life of the game.
type PathProgress struct {
	PathID            string `db:"path_id"`
	LastCompletedStep int    `db:"last_completed_step"`
}
