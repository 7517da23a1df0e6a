package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/mkarvon/sleuthline/internal/db"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

type CaseRepository struct {
	dbs    *db.DBs
	logger *slog.Logger
}

func NewCaseRepository(dbs *db.DBs, logger *slog.Logger) *CaseRepository {
	return &CaseRepository{
		dbs:    dbs,
		logger: logger.With("source", "CaseRepository"),
	}
}

func (r *CaseRepository) List(ctx context.Context) ([]models.Case, error) {
	var cases []models.Case
	stmt := `SELECT id, title, description, persona, opening FROM cases ORDER BY created_at, id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &cases, stmt); err != nil {
		return nil, errors.Wrap(err, "select cases")
	}
	return cases, nil
}

func (r *CaseRepository) Get(ctx context.Context, caseID string) (*models.Case, error) {
	var c models.Case
	stmt := `SELECT id, title, description, persona, opening FROM cases WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &c, stmt, caseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNotFound, "get case", slog.String("case_id", caseID))
		}
		return nil, errors.Wrap(err, "get case")
	}
	return &c, nil
}

func (r *CaseRepository) Suspects(ctx context.Context, caseID string) ([]models.Suspect, error) {
	var suspects []models.Suspect
	stmt := `SELECT id, case_id, name, backstory, is_guilty FROM suspects WHERE case_id = ? ORDER BY id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &suspects, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "select suspects")
	}
	return suspects, nil
}

func (r *CaseRepository) Evidence(ctx context.Context, caseID string) ([]models.Evidence, error) {
	var evidence []models.Evidence
	stmt := `SELECT id, case_id, name, description, location, is_required FROM evidence WHERE case_id = ? ORDER BY id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &evidence, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "select evidence")
	}
	return evidence, nil
}

// Steps returns the full step catalog for a case grouped into paths. The
// returned order is the catalog load order: paths by id, steps by number.
// This order doubles as the deterministic tie-break for keyword matching.
func (r *CaseRepository) Steps(ctx context.Context, caseID string) ([]models.Path, error) {
	var steps []models.Step
	stmt := `SELECT path_id, step_number, trigger_phrases, narrative, is_unlock_trigger,
		COALESCE(evidence_id, '') AS evidence_id
	FROM discovery_steps
	WHERE case_id = ?
	ORDER BY path_id, step_number`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &steps, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "select discovery steps")
	}

	var paths []models.Path
	for _, step := range steps {
		if len(paths) == 0 || paths[len(paths)-1].ID != step.PathID {
			paths = append(paths, models.Path{ID: step.PathID, Steps: nil})
		}
		last := &paths[len(paths)-1]
		last.Steps = append(last.Steps, step)
	}
	return paths, nil
}

// Import writes a complete case definition in one transaction. It is
// idempotent so that operators can reload an updated case asset.
func (r *CaseRepository) Import(
	ctx context.Context,
	c models.Case,
	suspects []models.Suspect,
	evidence []models.Evidence,
	paths []models.Path,
) error {
	tx, err := r.dbs.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback import", errors.SlogError(rollbackErr))
		}
	}()

	stmt := `INSERT OR REPLACE INTO cases (id, title, description, persona, opening) VALUES (?, ?, ?, ?, ?)`
	if _, err = tx.ExecContext(ctx, stmt, c.ID, c.Title, c.Description, c.Persona, c.Opening); err != nil {
		return errors.Wrap(err, "insert case")
	}

	for _, s := range suspects {
		stmt = `INSERT OR REPLACE INTO suspects (id, case_id, name, backstory, is_guilty) VALUES (?, ?, ?, ?, ?)`
		if _, err = tx.ExecContext(ctx, stmt, s.ID, c.ID, s.Name, s.Backstory, s.Guilty); err != nil {
			return errors.Wrap(err, "insert suspect", slog.String("suspect_id", s.ID))
		}
	}

	for _, e := range evidence {
		stmt = `INSERT OR REPLACE INTO evidence (id, case_id, name, description, location, is_required)
			VALUES (?, ?, ?, ?, ?, ?)`
		if _, err = tx.ExecContext(ctx, stmt, e.ID, c.ID, e.Name, e.Description, e.Location, e.Required); err != nil {
			return errors.Wrap(err, "insert evidence", slog.String("evidence_id", e.ID))
		}
	}

	for _, path := range paths {
		for _, step := range path.Steps {
			var evidenceID any
			if step.EvidenceID != "" {
				evidenceID = step.EvidenceID
			}
			stmt = `INSERT OR REPLACE INTO discovery_steps
				(case_id, path_id, step_number, trigger_phrases, narrative, is_unlock_trigger, evidence_id)
				VALUES (?, ?, ?, ?, ?, ?, ?)`
			if _, err = tx.ExecContext(ctx, stmt,
				c.ID, path.ID, step.Number, step.TriggerPhrases, step.Narrative, step.UnlockTrigger, evidenceID,
			); err != nil {
				return errors.Wrap(err, "insert discovery step",
					slog.String("path_id", path.ID), slog.Int("step_number", step.Number))
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit import")
	}
	return nil
}
