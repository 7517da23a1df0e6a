package main

import (
	"log/slog"
	"net/http"

	"github.com/mkarvon/sleuthline/internal/engine"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/models"
)

type chatResponse struct {
	Reply                string          `json:"reply,omitempty"`
	NarrativeUnavailable bool            `json:"narrative_unavailable"`
	Matched              bool            `json:"matched"`
	UnlockedEvidence     *evidenceDetail `json:"unlocked_evidence,omitempty"`
}

// chat runs the per-message flow: validate, commit investigation state,
// then generate the colleague's reply. State commits before the generation
// call; when generation fails the progress stands and the response carries
// narrative_unavailable instead of a reply.
func (app *application) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := readJSON(r, &req); err != nil {
		app.clientError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	message, problem := validateChatMessage(req.Message)
	if problem != "" {
		app.clientError(w, r, http.StatusBadRequest, problem)
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
	if _, err := app.messages.Append(ctx, game.ID, models.SenderPlayer, message); err != nil {
		app.serverError(w, r, err)
		return
	}

	result, err := app.engine.ProcessMessage(ctx, game, message)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	resp := chatResponse{Matched: result.Matched}
	if result.UnlockedEvidenceID != "" {
		detail, err := app.unlockedDetail(r, game, result.UnlockedEvidenceID)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		resp.UnlockedEvidence = detail
	}

	reply, err := app.narrator.ChatResponse(ctx, result.Bundle)
	if err != nil {
		// Progress is already committed; the player just misses the prose.
		app.logger.LogAttrs(ctx, slog.LevelWarn, "narrative unavailable",
			slog.String("game_id", game.ID), errors.SlogError(err))
		resp.NarrativeUnavailable = true
	} else {
		resp.Reply = reply
		if _, err := app.messages.Append(ctx, game.ID, models.SenderColleague, reply); err != nil {
			app.serverError(w, r, err)
			return
		}
	}

	count, err := app.games.IncrementMessageCount(ctx, game.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if engine.ShouldSummarize(count) {
		app.summaries.Enqueue(game.ID)
	}

	app.writeJSON(w, r, http.StatusOK, resp)
}

func (app *application) unlockedDetail(r *http.Request, game *models.Game, evidenceID string) (*evidenceDetail, error) {
	all, err := app.cases.Evidence(r.Context(), game.CaseID)
	if err != nil {
		return nil, err
	}
	for _, e := range all {
		if e.ID == evidenceID {
			detail := evidenceDetails([]models.Evidence{e})[0]
			return &detail, nil
		}
	}
	return nil, errors.New("unlocked evidence missing from case",
		slog.String("case_id", game.CaseID),
		slog.String("evidence_id", evidenceID))
}
