package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
	"github.com/mkarvon/sleuthline/internal/repositories"
)

func (app *application) createGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseID string `json:"case_id"`
	}
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	c, err := app.cases.Get(ctx, req.CaseID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return
		}
		app.serverError(w, r, err)
		return
	}

	gameID := uuid.NewString()
	if err := app.games.Create(ctx, gameID, c.ID, app.ownerID(r)); err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusCreated, map[string]string{
		"game_id": gameID,
		"case_id": c.ID,
		"opening": c.Opening,
	})
}

// loadOwnedGame fetches the game and checks it belongs to the caller.
// Foreign games read as not found so that game ids cannot be probed.
func (app *application) loadOwnedGame(w http.ResponseWriter, r *http.Request) *models.Game {
	game, err := app.games.Get(r.Context(), r.PathValue("gameID"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			app.notFound(w, r)
			return nil
		}
		app.serverError(w, r, err)
		return nil
	}
	if game.Owner != app.ownerID(r) {
		app.notFound(w, r)
		return nil
	}
	return game
}

type gameState struct {
	GameID           string           `json:"game_id"`
	CaseID           string           `json:"case_id"`
	MessageCount     int              `json:"message_count"`
	Completed        bool             `json:"completed"`
	HasSummary       bool             `json:"has_summary"`
	Outcome          *models.Outcome  `json:"outcome,omitempty"`
	UnlockedEvidence []evidenceDetail `json:"unlocked_evidence"`
}

func (app *application) getGame(w http.ResponseWriter, r *http.Request) {
	game := app.loadOwnedGame(w, r)
	if game == nil {
		return
	}

	unlocked, err := app.evidence.ListUnlocked(r.Context(), game.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, gameState{
		GameID:           game.ID,
		CaseID:           game.CaseID,
		MessageCount:     game.MessageCount,
		Completed:        game.Completed,
		HasSummary:       game.Summary != nil,
		Outcome:          game.Outcome,
		UnlockedEvidence: evidenceDetails(unlocked),
	})
}
