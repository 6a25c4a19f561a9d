package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerClubRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/clubs", RequireAuth(verifier, http.HandlerFunc(handler.CreateClub)))
	mux.Handle("GET /v1/clubs/{clubID}", RequireAuth(verifier, http.HandlerFunc(handler.GetClub)))
	mux.Handle("GET /v1/clubs/{clubID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.GetClubRoster)))
	mux.Handle("POST /v1/clubs/{clubID}/members", RequireAuth(verifier, http.HandlerFunc(handler.JoinClub)))
	mux.Handle("POST /v1/clubs/{clubID}/leave", RequireAuth(verifier, http.HandlerFunc(handler.LeaveClub)))
	mux.Handle("PUT /v1/clubs/{clubID}/members/{memberID}/position", RequireAuth(verifier, http.HandlerFunc(handler.ClaimPosition)))
	mux.Handle("PUT /v1/clubs/{clubID}/captain", RequireAuth(verifier, http.HandlerFunc(handler.TransferCaptaincy)))
	mux.Handle("DELETE /v1/clubs/{clubID}/members/{memberID}", RequireAuth(verifier, http.HandlerFunc(handler.KickMember)))
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("GET /v1/matches/{matchID}/roster", RequireAuth(verifier, http.HandlerFunc(handler.GetMatchRoster)))
	mux.Handle("PUT /v1/matches/{matchID}/team", RequireAuth(verifier, http.HandlerFunc(handler.AssignTeam)))
	mux.Handle("DELETE /v1/matches/{matchID}/team", RequireAuth(verifier, http.HandlerFunc(handler.LeaveMatch)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/audit/rosters", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.AuditRosters)))
}
