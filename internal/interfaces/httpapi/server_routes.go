package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /login", handler.SessionStatus)
	mux.HandleFunc("POST /login", handler.Login)
	mux.HandleFunc("GET /logout", handler.Logout)
	mux.HandleFunc("POST /logout", handler.Logout)
}

func registerPeopleRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("GET /v1/people", RequireSession(verifier, http.HandlerFunc(handler.ListPeople)))
	mux.Handle("POST /v1/people", RequireSession(verifier, http.HandlerFunc(handler.AddPerson)))
}

func registerGameweekRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("GET /v1/gameweeks/{gameweek}/fixtures", RequireSession(verifier, http.HandlerFunc(handler.ListFixtures)))
	mux.Handle("POST /v1/gameweeks/{gameweek}/fixtures/sync", RequireSession(verifier, http.HandlerFunc(handler.SyncFixtures)))
	mux.Handle("POST /v1/gameweeks/{gameweek}/results/sync", RequireSession(verifier, http.HandlerFunc(handler.SyncResults)))
	mux.Handle("GET /v1/gameweeks/{gameweek}/entry", RequireSession(verifier, http.HandlerFunc(handler.GetEntrySheet)))
	mux.Handle("PUT /v1/gameweeks/{gameweek}/predictions", RequireSession(verifier, http.HandlerFunc(handler.SavePredictions)))
	mux.Handle("GET /v1/gameweeks/{gameweek}/leaderboard", RequireSession(verifier, http.HandlerFunc(handler.GetLeaderboard)))
}

func registerSyncRoutes(mux *http.ServeMux, handler *Handler, verifier SessionVerifier) {
	mux.Handle("POST /v1/sync/resync", RequireSession(verifier, http.HandlerFunc(handler.RunResync)))
}
