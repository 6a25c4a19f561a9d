package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
	"github.com/Baguimon/STYX-sub000/internal/domain/club"
	"github.com/Baguimon/STYX-sub000/internal/domain/match"
	"github.com/Baguimon/STYX-sub000/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "styx-roster"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	message := err.Error()
	if mapped.HTTPStatus == http.StatusInternalServerError {
		message = "internal server error"
	}

	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:  errorDomain,
					Reason:  mapped.Reason,
					Message: message,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeError(ctx, w, errors.New("internal server error"))
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrConflict), errors.Is(err, assignment.ErrStaleSnapshot):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "concurrentUpdate", Status: "ABORTED"}
	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, club.ErrUnknownPosition),
		errors.Is(err, match.ErrInvalidTeam),
		errors.Is(err, match.ErrInvalidCapacity):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}
	case errors.Is(err, usecase.ErrForbidden):
		return mappedError{HTTPStatus: http.StatusForbidden, Reason: "forbidden", Status: "PERMISSION_DENIED"}
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, club.ErrNotAMember):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}
	case errors.Is(err, club.ErrAlreadyMember), errors.Is(err, match.ErrAlreadyJoined):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "alreadyExists", Status: "ALREADY_EXISTS"}
	case errors.Is(err, club.ErrSlotTaken):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "slotTaken", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, match.ErrTeamFull):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "teamFull", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, match.ErrNotJoined):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "notJoined", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, club.ErrCannotKickCaptain), errors.Is(err, club.ErrCaptainMustTransferFirst):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "captainRule", Status: "FAILED_PRECONDITION"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
	}
}
