package httpapi

import (
	"fmt"
	"net/http"

	"github.com/Baguimon/STYX-sub000/internal/usecase"
)

func (h *Handler) AuditRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AuditRosters")
	defer span.End()

	if h.auditService == nil {
		writeError(ctx, w, fmt.Errorf("%w: roster audit is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req auditRostersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.auditService.AuditRosters(ctx, usecase.AuditInput{
		ClubIDs:  req.ClubIDs,
		MatchIDs: req.MatchIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "roster audit failed", "clubs", len(req.ClubIDs), "matches", len(req.MatchIDs), "error", err)
		writeError(ctx, w, err)
		return
	}
	if report.InvalidCount > 0 {
		h.logger.WarnContext(ctx, "roster audit found invalid rosters", "invalid", report.InvalidCount, "failed", report.FailedCount)
	}

	writeSuccess(ctx, w, http.StatusOK, auditReportToDTO(report))
}
