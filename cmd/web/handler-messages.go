package main

import (
	"net/http"
	"time"

	"github.com/mkarvon/sleuthline/internal/models"
)

type messageDetail struct {
	Seq       int64         `json:"seq"`
	Sender    models.Sender `json:"sender"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}

func (app *application) listMessages(w http.ResponseWriter, r *http.Request) {
	game := app.loadOwnedGame(w, r)
	if game == nil {
		return
	}

	messages, err := app.messages.All(r.Context(), game.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	details := make([]messageDetail, 0, len(messages))
	for _, m := range messages {
		details = append(details, messageDetail{
			Seq:       m.Seq,
			Sender:    m.Sender,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	app.writeJSON(w, r, http.StatusOK, details)
}
