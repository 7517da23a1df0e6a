package models

import "strings"

// Step is one unit of progress on a discovery path.
type Step struct {
	PathID string `db:"path_id"`
	// Number starts at 1 within a path and increases without gaps.
	Number int `db:"step_number"`
	// TriggerPhrases is a comma-separated list of phrases. Any phrase
	// contained in a player message completes the step.
	TriggerPhrases string `db:"trigger_phrases"`
	// Narrative is shown to the player on completion and doubles as the
	// spoiler-safe hint for the step. It never contains the trigger phrases.
	Narrative string `db:"narrative"`
	// UnlockTrigger marks the step whose completion unlocks EvidenceID.
	UnlockTrigger bool `db:"is_unlock_trigger"`
	// EvidenceID is empty unless UnlockTrigger is set.
	EvidenceID string `db:"evidence_id"`
}

// Phrases splits the trigger phrase field into normalized (lowercase,
// trimmed) phrases. Empty entries are dropped so that a blank field can
// never match anything.
func (s Step) Phrases() []string {
	var phrases []string
	for _, phrase := range strings.Split(s.TriggerPhrases, ",") {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

// Path is one independent chain of steps within a case. Steps are ordered by
// Number. Independent paths progress concurrently.
type Path struct {
	ID    string
	Steps []Step
}

// LastStep returns the highest step number on the path, 0 for an empty path.
func (p Path) LastStep() int {
	if len(p.Steps) == 0 {
		return 0
	}
	return p.Steps[len(p.Steps)-1].Number
}
