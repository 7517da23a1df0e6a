package models

// Case is the static definition of one investigation. It is immutable after
// authoring: gameplay only ever reads it.
type Case struct {
	ID          string `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	// Persona is the policy text framing the AI colleague at the crime scene.
	Persona string `db:"persona"`
	// Opening describes the initial scene shown when a game starts.
	Opening string `db:"opening"`
}

// Suspect is a person of interest in a case. Guilty is the truth-blind flag
// that must never leave the accusation flow.
type Suspect struct {
	ID        string `db:"id"`
	CaseID    string `db:"case_id"`
	Name      string `db:"name"`
	Backstory string `db:"backstory"`
	Guilty    bool   `db:"is_guilty"`
}

// Evidence is a discoverable fact. Its full description is shown to the
// player only after the owning discovery step unlocks it.
type Evidence struct {
	ID          string `db:"id"`
	CaseID      string `db:"case_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Location    string `db:"location"`
	// Required marks evidence that must be unlocked before an accusation.
	Required bool `db:"is_required"`
}
