package httpapi

import (
	"net/http"
	"strings"

	"github.com/Baguimon/STYX-sub000/internal/usecase"
)

func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateClub")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createClubRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	details, err := h.clubService.CreateClub(ctx, usecase.CreateClubInput{
		Actor:    principal,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create club failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, clubDetailsDTO{
		Club:   clubToDTO(details.Club),
		Roster: clubRosterToDTO(details.Roster),
	})
}

func (h *Handler) GetClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClub")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	details, err := h.clubService.GetClub(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "get club failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubDetailsDTO{
		Club:   clubToDTO(details.Club),
		Roster: clubRosterToDTO(details.Roster),
	})
}

func (h *Handler) GetClubRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClubRoster")
	defer span.End()

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	roster, err := h.clubService.GetRoster(ctx, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "get club roster failed", "club_id", clubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubRosterToDTO(roster))
}

func (h *Handler) JoinClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinClub")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	roster, err := h.clubService.JoinClub(ctx, principal, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "join club failed", "club_id", clubID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubRosterToDTO(roster))
}

func (h *Handler) LeaveClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveClub")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	result, err := h.clubService.LeaveClub(ctx, principal, clubID)
	if err != nil {
		h.logger.WarnContext(ctx, "leave club failed", "club_id", clubID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaveClubDTO{
		ClubDeleted: result.ClubDeleted,
		Roster:      clubRosterToDTO(result.Roster),
	})
}

func (h *Handler) ClaimPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClaimPosition")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req claimPositionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	position := ""
	if req.Position != nil {
		position = *req.Position
	}

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	memberID := strings.TrimSpace(r.PathValue("memberID"))
	result, err := h.clubService.ClaimPosition(ctx, usecase.ClaimPositionInput{
		Actor:    principal,
		ClubID:   clubID,
		MemberID: memberID,
		Position: position,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "claim position failed",
			"club_id", clubID,
			"member_id", memberID,
			"position", position,
			"user_id", principal.UserID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, assignmentResultToDTO(result))
}

func (h *Handler) TransferCaptaincy(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransferCaptaincy")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req transferCaptaincyRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	roster, err := h.clubService.TransferCaptaincy(ctx, principal, clubID, strings.TrimSpace(req.MemberID))
	if err != nil {
		h.logger.WarnContext(ctx, "transfer captaincy failed", "club_id", clubID, "new_captain_id", req.MemberID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubRosterToDTO(roster))
}

func (h *Handler) KickMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.KickMember")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	clubID := strings.TrimSpace(r.PathValue("clubID"))
	memberID := strings.TrimSpace(r.PathValue("memberID"))
	roster, err := h.clubService.KickMember(ctx, principal, clubID, memberID)
	if err != nil {
		h.logger.WarnContext(ctx, "kick member failed", "club_id", clubID, "member_id", memberID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubRosterToDTO(roster))
}
