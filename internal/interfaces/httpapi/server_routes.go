package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, cfg RouterConfig) {
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/participants/{handle}/picks", handler.ListParticipantPicks)
	mux.Handle("POST /v1/picks", RateLimit(cfg.SubmitRateLimitRPS, cfg.SubmitRateBurst,
		OptionalAuth(verifier, http.HandlerFunc(handler.SubmitPicks))))
}

// Operator routes check the admin key before any handler reads state.
func registerOperatorRoutes(mux *http.ServeMux, handler *Handler, adminKey string) {
	mux.Handle("POST /v1/admin/games/seed", RequireOperatorKey(adminKey, http.HandlerFunc(handler.SeedGames)))
	mux.Handle("POST /v1/admin/games/{gameID}/score", RequireOperatorKey(adminKey, http.HandlerFunc(handler.ReportScore)))
	mux.Handle("POST /v1/admin/leaderboard/recompute", RequireOperatorKey(adminKey, http.HandlerFunc(handler.RecomputeLeaderboard)))
}
