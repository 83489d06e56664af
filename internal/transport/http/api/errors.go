package api

import (
	"errors"
	"log/slog"
	"net/http"

	"hrledger/internal/domain/hrerr"
)

type errorMapping struct {
	kind   error
	status int
	code   string
}

// errorMappings is checked in order; the first kind matched by errors.Is wins.
var errorMappings = []errorMapping{
	{hrerr.ErrNotFound, http.StatusNotFound, "not_found"},
	{hrerr.ErrReferentialConflict, http.StatusConflict, "referential_conflict"},
	{hrerr.ErrOverlapConflict, http.StatusConflict, "overlap_conflict"},
	{hrerr.ErrAlreadyProcessed, http.StatusConflict, "already_processed"},
	{hrerr.ErrDuplicateName, http.StatusConflict, "duplicate_name"},
	{hrerr.ErrAlreadyCheckedIn, http.StatusConflict, "already_checked_in"},
	{hrerr.ErrNotCheckedIn, http.StatusConflict, "not_checked_in"},
	{hrerr.ErrInsufficientBalance, http.StatusUnprocessableEntity, "insufficient_balance"},
	{hrerr.ErrInvalidAmount, http.StatusUnprocessableEntity, "invalid_amount"},
	{hrerr.ErrInvalidRating, http.StatusUnprocessableEntity, "invalid_rating"},
	{hrerr.ErrInvalidFeedback, http.StatusUnprocessableEntity, "invalid_feedback"},
	{hrerr.ErrInvalidName, http.StatusUnprocessableEntity, "invalid_name"},
	{hrerr.ErrInvalidLevel, http.StatusUnprocessableEntity, "invalid_level"},
	{hrerr.ErrInvalidLeaveType, http.StatusUnprocessableEntity, "invalid_leave_type"},
	{hrerr.ErrInvalidReference, http.StatusUnprocessableEntity, "invalid_reference"},
	{hrerr.ErrInvalidRange, http.StatusUnprocessableEntity, "invalid_range"},
	{hrerr.ErrInvalidSort, http.StatusUnprocessableEntity, "invalid_sort"},
	{hrerr.ErrInvalidPassword, http.StatusUnprocessableEntity, "invalid_password"},
	{hrerr.ErrCapacityExceeded, http.StatusRequestEntityTooLarge, "capacity_exceeded"},
	{hrerr.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
}

// Status maps an error kind to its HTTP status and error code.
func Status(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.kind) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "internal_error"
}

func details(err error) map[string]any {
	var conflict *hrerr.ReferentialConflictError
	if errors.As(err, &conflict) {
		return map[string]any{"entity": conflict.Entity, "id": conflict.ID, "count": conflict.Count}
	}
	var balance *hrerr.InsufficientBalanceError
	if errors.As(err, &balance) {
		return map[string]any{"type": balance.LeaveType, "available": balance.Available, "required": balance.Required}
	}
	var capacity *hrerr.CapacityError
	if errors.As(err, &capacity) {
		return map[string]any{"size": capacity.Size, "limit": capacity.Limit}
	}
	return nil
}

// FailError writes the envelope for a domain error. Unknown errors are
// logged and reported without their message.
func FailError(w http.ResponseWriter, err error, requestID string) {
	status, code := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "err", err, "requestId", requestID)
		Fail(w, status, code, "internal error", requestID)
		return
	}
	FailWithDetails(w, status, code, err.Error(), details(err), requestID)
}
