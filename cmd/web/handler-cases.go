package main

import (
	"net/http"
)

type caseListing struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Suspects    []string `json:"suspects"`
}

// listCases returns the playable cases. Only suspect names are exposed;
// backstories and everything else waits until a game is running.
func (app *application) listCases(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cases, err := app.cases.List(ctx)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	listings := make([]caseListing, 0, len(cases))
	for _, c := range cases {
		suspects, err := app.cases.Suspects(ctx, c.ID)
		if err != nil {
			app.serverError(w, r, err)
			return
		}
		listing := caseListing{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			Suspects:    make([]string, 0, len(suspects)),
		}
		for _, s := range suspects {
			listing.Suspects = append(listing.Suspects, s.Name)
		}
		listings = append(listings, listing)
	}
	app.writeJSON(w, r, http.StatusOK, listings)
}
