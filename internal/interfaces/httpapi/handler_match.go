package httpapi

import (
	"net/http"
	"strings"

	"github.com/Baguimon/STYX-sub000/internal/domain/match"
	"github.com/Baguimon/STYX-sub000/internal/usecase"
)

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		Actor:      principal,
		ClubID:     req.ClubID,
		Title:      req.Title,
		Location:   req.Location,
		KickoffAt:  req.KickoffAt,
		MaxPlayers: req.MaxPlayers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "club_id", req.ClubID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) GetMatchRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchRoster")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	roster, err := h.matchService.GetRoster(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match roster failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchRosterToDTO(roster))
}

func (h *Handler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	result, err := h.matchService.AssignTeam(ctx, principal, matchID, match.Team(req.Team))
	if err != nil {
		h.logger.WarnContext(ctx, "assign team failed", "match_id", matchID, "team", req.Team, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentResultToDTO(result))
}

func (h *Handler) LeaveMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveMatch")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	result, err := h.matchService.LeaveMatch(ctx, principal, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "leave match failed", "match_id", matchID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentResultToDTO(result))
}
