// Package engine advances investigation progress from player messages.
// A message is scanned against the frontier of every discovery path; a
// match commits a monotonic step transition, may unlock evidence, and
// yields the context bundle for narrative generation. All state guards
// live in the stores, so the engine itself stays restart-safe.
package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

// recentWindow is how many trailing messages the context bundle carries.
const recentWindow = 10

// Catalog serves read-only per-case discovery paths in load order.
type Catalog interface {
	Paths(ctx context.Context, caseID string) ([]models.Path, error)
}

// CaseStore serves case descriptions and suspect rosters.
type CaseStore interface {
	Get(ctx context.Context, id string) (*models.Case, error)
	Suspects(ctx context.Context, caseID string) ([]models.Suspect, error)
}

// ProgressStore persists per-path progress with a monotonic guard.
type ProgressStore interface {
	List(ctx context.Context, gameID string) ([]models.PathProgress, error)
	UpsertIfGreater(ctx context.Context, gameID, pathID string, stepNumber int) (bool, error)
}

// EvidenceStore persists evidence unlocks with an at-most-once guard.
type EvidenceStore interface {
	UnlockOnce(ctx context.Context, gameID, evidenceID string) (bool, error)
	ListUnlocked(ctx context.Context, gameID string) ([]models.Evidence, error)
}

// MessageStore serves the trailing conversation window.
type MessageStore interface {
	Recent(ctx context.Context, gameID string, n int) ([]models.Message, error)
}

// Result is the outcome of processing one player message.
type Result struct {
	// Matched reports whether any frontier phrase matched.
	Matched bool
	// MatchedPhrase is the phrase that matched, for logging.
	MatchedPhrase string
	// AdvancedPathID and NewStepNumber are set when the progress record
	// actually moved; a matched but stale transition leaves them empty.
	AdvancedPathID string
	NewStepNumber  int
	// UnlockedEvidenceID is set when this message unlocked evidence.
	UnlockedEvidenceID string
	// NextHint is the matched step's narrative description.
	NextHint string
	// Bundle is the generation context reflecting post-commit state.
	Bundle ContextBundle
}

// Engine wires the frontier resolver, matcher, committer and assembler
// behind a per-game lock.
type Engine struct {
	catalog  Catalog
	cases    CaseStore
	progress ProgressStore
	evidence EvidenceStore
	messages MessageStore
	logger   *slog.Logger
	locks    gameLocks
}

func New(
	catalog Catalog,
	cases CaseStore,
	progress ProgressStore,
	evidence EvidenceStore,
	messages MessageStore,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		catalog:  catalog,
		cases:    cases,
		progress: progress,
		evidence: evidence,
		messages: messages,
		logger:   logger,
	}
}

// ProcessMessage runs the per-message flow for one game: resolve the
// frontier, match the message, commit any transition and assemble the
// generation context. Messages for the same game are serialized; the
// store-level guards stay authoritative across processes.
func (e *Engine) ProcessMessage(ctx context.Context, game *models.Game, message string) (Result, error) {
	unlock := e.locks.lock(game.ID)
	defer unlock()

	paths, err := e.catalog.Paths(ctx, game.CaseID)
	if err != nil {
		return Result{}, errors.Wrap(err, "load catalog", slog.String("case_id", game.CaseID))
	}
	progress, err := e.progress.List(ctx, game.ID)
	if err != nil {
		return Result{}, errors.Wrap(err, "load progress", slog.String("game_id", game.ID))
	}
	if err := validateProgress(paths, progress); err != nil {
		return Result{}, errors.Wrap(err, "corrupt progress", slog.String("game_id", game.ID))
	}
	if err := e.repairUnlocks(ctx, game.ID, paths, progress); err != nil {
		return Result{}, err
	}

	var result Result
	step, phrase, matched := Match(message, Frontier(paths, progress))
	if matched {
		advanced, unlockedID, err := e.commit(ctx, game.ID, step)
		if err != nil {
			return Result{}, err
		}
		result.Matched = true
		result.MatchedPhrase = phrase
		result.NextHint = step.Narrative
		result.UnlockedEvidenceID = unlockedID
		if advanced {
			result.AdvancedPathID = step.PathID
			result.NewStepNumber = step.Number
		}
		e.logger.LogAttrs(ctx, slog.LevelInfo, "transition matched",
			slog.String("game_id", game.ID),
			slog.String("path_id", step.PathID),
			slog.Int("step_number", step.Number),
			slog.Bool("advanced", advanced),
			slog.String("unlocked_evidence_id", unlockedID))
	}

	bundle, err := e.assemble(ctx, game, result.NextHint, message)
	if err != nil {
		return Result{}, err
	}
	result.Bundle = bundle
	return result, nil
}

func (e *Engine) assemble(ctx context.Context, game *models.Game, nextHint, message string) (ContextBundle, error) {
	c, err := e.cases.Get(ctx, game.CaseID)
	if err != nil {
		return ContextBundle{}, errors.Wrap(err, "load case", slog.String("case_id", game.CaseID))
	}
	suspects, err := e.cases.Suspects(ctx, game.CaseID)
	if err != nil {
		return ContextBundle{}, errors.Wrap(err, "load suspects", slog.String("case_id", game.CaseID))
	}
	unlocked, err := e.evidence.ListUnlocked(ctx, game.ID)
	if err != nil {
		return ContextBundle{}, errors.Wrap(err, "load unlocked evidence", slog.String("game_id", game.ID))
	}
	recent, err := e.messages.Recent(ctx, game.ID, recentWindow)
	if err != nil {
		return ContextBundle{}, errors.Wrap(err, "load recent messages", slog.String("game_id", game.ID))
	}
	var summary string
	if game.Summary != nil {
		summary = *game.Summary
	}
	return Assemble(c, suspects, unlocked, nextHint, summary, recent, message), nil
}

// gameLocks hands out one mutex per live game id. Entries are reference
// counted and removed when the last holder releases, so idle games do not
// accumulate.
type gameLocks struct {
	mu    sync.Mutex
	games map[string]*gameLock
}

type gameLock struct {
	sync.Mutex
	refs int
}

func (g *gameLocks) lock(id string) (unlock func()) {
	g.mu.Lock()
	if g.games == nil {
		g.games = make(map[string]*gameLock)
	}
	l, ok := g.games[id]
	if !ok {
		l = &gameLock{}
		g.games[id] = l
	}
	l.refs++
	g.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		g.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(g.games, id)
		}
		g.mu.Unlock()
	}
}
