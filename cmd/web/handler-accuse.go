package main

import (
	"net/http"
	"time"

	"github.com/mkarvon/sleuthline/internal/models"
)

type accuseResponse struct {
	Correct bool           `json:"correct"`
	Outcome models.Outcome `json:"outcome"`
}

// accuse ends the game. It requires every required piece of evidence to be
// unlocked, records the outcome exactly once and reveals the guilty suspect.
func (app *application) accuse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SuspectID string `json:"suspect_id"`
	}
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	game := app.loadOwnedGame(w, r)
	if game == nil {
		return
	}
	if game.Completed {
		app.clientError(w, r, http.StatusConflict, "game is already completed")
		return
	}

	ctx := r.Context()
	suspects, err := app.cases.Suspects(ctx, game.CaseID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	var accused, guilty *models.Suspect
	for i := range suspects {
		if suspects[i].ID == req.SuspectID {
			accused = &suspects[i]
		}
		if suspects[i].Guilty {
			guilty = &suspects[i]
		}
	}
	if accused == nil {
		app.notFound(w, r)
		return
	}

	_, stats, err := app.evidenceProgress(r, game)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if !stats.CanAccuse {
		app.clientError(w, r, http.StatusConflict, "not enough evidence to accuse")
		return
	}

	outcome := models.Outcome{
		AccusedSuspectID:  accused.ID,
		AccusedName:       accused.Name,
		GuiltySuspectID:   guilty.ID,
		GuiltyName:        guilty.Name,
		Correct:           accused.ID == guilty.ID,
		EvidenceCollected: stats.Unlocked,
		TotalEvidence:     stats.Total,
		CompletedAt:       time.Now().UTC(),
	}
	applied, err := app.games.Complete(ctx, game.ID, outcome)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if !applied {
		app.clientError(w, r, http.StatusConflict, "game is already completed")
		return
	}

	app.writeJSON(w, r, http.StatusOK, accuseResponse{
		Correct: outcome.Correct,
		Outcome: outcome,
	})
}
