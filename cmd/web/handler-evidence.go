package main

import (
	"net/http"

	"github.com/mkarvon/sleuthline/internal/models"
)

type evidenceDetail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Required    bool   `json:"required"`
}

func evidenceDetails(evidence []models.Evidence) []evidenceDetail {
	details := make([]evidenceDetail, 0, len(evidence))
	for _, e := range evidence {
		details = append(details, evidenceDetail{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Location:    e.Location,
			Required:    e.Required,
		})
	}
	return details
}

type evidenceStats struct {
	Total            int  `json:"total"`
	Unlocked         int  `json:"unlocked"`
	Required         int  `json:"required"`
	RequiredUnlocked int  `json:"required_unlocked"`
	CanAccuse        bool `json:"can_accuse"`
}

func (app *application) evidenceProgress(r *http.Request, game *models.Game) ([]models.Evidence, evidenceStats, error) {
	ctx := r.Context()
	all, err := app.cases.Evidence(ctx, game.CaseID)
	if err != nil {
		return nil, evidenceStats{}, err
	}
	unlocked, err := app.evidence.ListUnlocked(ctx, game.ID)
	if err != nil {
		return nil, evidenceStats{}, err
	}

	unlockedIDs := make(map[string]bool, len(unlocked))
	for _, e := range unlocked {
		unlockedIDs[e.ID] = true
	}
	stats := evidenceStats{
		Total:    len(all),
		Unlocked: len(unlocked),
	}
	for _, e := range all {
		if !e.Required {
			continue
		}
		stats.Required++
		if unlockedIDs[e.ID] {
			stats.RequiredUnlocked++
		}
	}
	stats.CanAccuse = stats.RequiredUnlocked == stats.Required
	return unlocked, stats, nil
}

// listEvidence returns unlocked evidence with progress towards accusation.
func (app *application) listEvidence(w http.ResponseWriter, r *http.Request) {
	game := app.loadOwnedGame(w, r)
	if game == nil {
		return
	}

	unlocked, stats, err := app.evidenceProgress(r, game)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, r, http.StatusOK, map[string]any{
		"unlocked": evidenceDetails(unlocked),
		"stats":    stats,
	})
}
