package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthy", app.healthy)

	session := alice.New(app.sessionManager.LoadAndSave, app.noSurf, app.exposeCSRFToken)

	mux.Handle("GET /api/cases", session.ThenFunc(app.listCases))
	mux.Handle("POST /api/games", session.ThenFunc(app.createGame))
	mux.Handle("GET /api/games/{gameID}", session.ThenFunc(app.getGame))
	mux.Handle("GET /api/games/{gameID}/messages", session.ThenFunc(app.listMessages))
	mux.Handle("GET /api/games/{gameID}/evidence", session.ThenFunc(app.listEvidence))
	mux.Handle("POST /api/games/{gameID}/accuse", session.ThenFunc(app.accuse))

	chat := session.Append(app.rateLimit)
	mux.Handle("POST /api/games/{gameID}/chat", chat.ThenFunc(app.chat))

	return alice.New(app.recoverPanic, app.logRequest, secureHeaders).Then(mux)
}
