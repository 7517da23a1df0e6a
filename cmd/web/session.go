package main

import (
	"net/http"

	"github.com/google/uuid"
)

const ownerSessionKey = "ownerID"

// ownerID returns the caller's anonymous identity, minting one into the
// session on first use. Games are tied to this identity; there is no other
// authentication.
func (app *application) ownerID(r *http.Request) string {
	owner := app.sessionManager.GetString(r.Context(), ownerSessionKey)
	if owner == "" {
		owner = uuid.NewString()
		app.sessionManager.Put(r.Context(), ownerSessionKey, owner)
	}
	return owner
}
