// Package catalog loads and serves per-case discovery content. Case
// content ships as a versioned JSON asset validated at load time; at
// runtime the catalog is read-only and cached per case.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

// SchemaVersion is the asset format this build understands.
const SchemaVersion = 1

// Asset is the authored form of one case.
type Asset struct {
	SchemaVersion int             `json:"schema_version" validate:"required"`
	Case          CaseAsset       `json:"case" validate:"required"`
	Suspects      []SuspectAsset  `json:"suspects" validate:"required,min=2,dive"`
	Evidence      []EvidenceAsset `json:"evidence" validate:"required,min=1,dive"`
	Paths         []PathAsset     `json:"paths" validate:"required,min=1,dive"`
}

type CaseAsset struct {
	ID          string `json:"id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Persona     string `json:"persona" validate:"required"`
	Opening     string `json:"opening" validate:"required"`
}

type SuspectAsset struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Backstory string `json:"backstory" validate:"required"`
	Guilty    bool   `json:"is_guilty"`
}

type EvidenceAsset struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location"`
	Required    bool   `json:"is_required"`
}

type PathAsset struct {
	ID    string      `json:"id" validate:"required"`
	Steps []StepAsset `json:"steps" validate:"required,min=1,dive"`
}

type StepAsset struct {
	Number           int      `json:"step_number" validate:"required,min=1"`
	TriggerPhrases   []string `json:"trigger_phrases" validate:"required,min=1,dive,required"`
	Narrative        string   `json:"narrative" validate:"required"`
	UnlockEvidenceID string   `json:"unlock_evidence_id"`
}

// ParseAsset decodes and validates one case asset. Beyond field-level
// validation it enforces the catalog invariants: step numbers start at 1
// without gaps, exactly one suspect is guilty, unlock steps reference known
// evidence and a path carries at most one unlock.
func ParseAsset(data []byte) (*Asset, error) {
	var asset Asset
	if err := json.Unmarshal(data, &asset); err != nil {
		return nil, errors.Wrap(err, "decode case asset")
	}
	if err := validator.New().Struct(asset); err != nil {
		return nil, errors.Wrap(err, "validate case asset")
	}
	if asset.SchemaVersion != SchemaVersion {
		return nil, errors.New("unsupported schema version",
			slog.Int("schema_version", asset.SchemaVersion),
			slog.Int("supported", SchemaVersion))
	}

	guilty := 0
	for _, s := range asset.Suspects {
		if s.Guilty {
			guilty++
		}
	}
	if guilty != 1 {
		return nil, errors.New("case must have exactly one guilty suspect",
			slog.Int("guilty_count", guilty))
	}

	knownEvidence := make(map[string]bool, len(asset.Evidence))
	for _, e := range asset.Evidence {
		if knownEvidence[e.ID] {
			return nil, errors.New("duplicate evidence id", slog.String("evidence_id", e.ID))
		}
		knownEvidence[e.ID] = true
	}

	seenPaths := make(map[string]bool, len(asset.Paths))
	for _, path := range asset.Paths {
		if seenPaths[path.ID] {
			return nil, errors.New("duplicate path id", slog.String("path_id", path.ID))
		}
		seenPaths[path.ID] = true

		unlocks := 0
		for i, step := range path.Steps {
			if step.Number != i+1 {
				return nil, errors.New("step numbers must start at 1 without gaps",
					slog.String("path_id", path.ID),
					slog.Int("step_number", step.Number),
					slog.Int("expected", i+1))
			}
			if step.UnlockEvidenceID == "" {
				continue
			}
			unlocks++
			if !knownEvidence[step.UnlockEvidenceID] {
				return nil, errors.New("unlock step references unknown evidence",
					slog.String("path_id", path.ID),
					slog.String("evidence_id", step.UnlockEvidenceID))
			}
		}
		if unlocks > 1 {
			return nil, errors.New("path has more than one unlock step",
				slog.String("path_id", path.ID))
		}
	}
	return &asset, nil
}

// Models converts the asset into the persistence representation.
func (a *Asset) Models() (models.Case, []models.Suspect, []models.Evidence, []models.Path) {
	c := models.Case{
		ID:          a.Case.ID,
		Title:       a.Case.Title,
		Description: a.Case.Description,
		Persona:     a.Case.Persona,
		Opening:     a.Case.Opening,
	}
	suspects := make([]models.Suspect, 0, len(a.Suspects))
	for _, s := range a.Suspects {
		suspects = append(suspects, models.Suspect{
			ID:        s.ID,
			CaseID:    c.ID,
			Name:      s.Name,
			Backstory: s.Backstory,
			Guilty:    s.Guilty,
		})
	}
	evidence := make([]models.Evidence, 0, len(a.Evidence))
	for _, e := range a.Evidence {
		evidence = append(evidence, models.Evidence{
			ID:          e.ID,
			CaseID:      c.ID,
			Name:        e.Name,
			Description: e.Description,
			Location:    e.Location,
			Required:    e.Required,
		})
	}
	paths := make([]models.Path, 0, len(a.Paths))
	for _, p := range a.Paths {
		path := models.Path{ID: p.ID}
		for _, s := range p.Steps {
			path.Steps = append(path.Steps, models.Step{
				PathID:         p.ID,
				Number:         s.Number,
				TriggerPhrases: strings.Join(s.TriggerPhrases, ", "),
				Narrative:      s.Narrative,
				UnlockTrigger:  s.UnlockEvidenceID != "",
				EvidenceID:     s.UnlockEvidenceID,
			})
		}
		paths = append(paths, path)
	}
	return c, suspects, evidence, paths
}

// Describe renders a short human summary, used by the CLI validate command.
func (a *Asset) Describe() string {
	steps := 0
	for _, p := range a.Paths {
		steps += len(p.Steps)
	}
	return fmt.Sprintf("%s (%q): %d suspects, %d evidence, %d paths, %d steps",
		a.Case.ID, a.Case.Title, len(a.Suspects), len(a.Evidence), len(a.Paths), steps)
}
