package timesheet

import (
	"net/http"
	"strings"
)

// Structured error codes carried in the entry store's response envelope.
const (
	CodeInvalidRequest  = 10001
	CodeUnauthenticated = 10002
	CodeForbidden       = 10003
	CodeRateLimited     = 10004
	CodeBodyTooLarge    = 10005

	CodeEntryNotFound   = 20001
	CodeEntryNotDraft   = 20002
	CodeWeekendDate     = 20003
	CodeFutureDate      = 20004
	CodeInvalidProject  = 20005
	CodeInvalidRange    = 20006
	CodeNothingToSubmit = 20007
	CodeUserNotFound    = 20008

	CodeTimeOverlap   = 20101
	CodeDailyLimit    = 20102
	CodeEntryModified = 20103

	CodeInternal = 50000
)

// RemoteFailure is an unsuccessful response from the entry store.
type RemoteFailure struct {
	Status  int
	Code    int
	Message string
	Detail  string
}

// FromRemote translates a failed store response into an *Error. The
// structured code decides when present; otherwise the HTTP status and the
// message text do.
func FromRemote(f RemoteFailure) *Error {
	e := &Error{Code: f.Code, Message: remoteMessage(f)}
	if kind, conflict, ok := kindForCode(f.Code); ok {
		e.Kind, e.Conflict = kind, conflict
		return e
	}
	e.Kind, e.Conflict = kindForText(f.Status, f.Message+" "+f.Detail)
	return e
}

func remoteMessage(f RemoteFailure) string {
	switch {
	case f.Detail != "" && f.Message != "":
		return f.Message + ": " + f.Detail
	case f.Message != "":
		return f.Message
	case f.Detail != "":
		return f.Detail
	case f.Status != 0:
		return http.StatusText(f.Status)
	default:
		return "request failed"
	}
}

func kindForCode(code int) (Kind, Conflict, bool) {
	switch code {
	case CodeInvalidRequest, CodeEntryNotFound, CodeWeekendDate, CodeFutureDate,
		CodeInvalidProject, CodeInvalidRange, CodeBodyTooLarge, CodeUserNotFound:
		return KindValidation, ConflictNone, true
	case CodeForbidden, CodeEntryNotDraft:
		return KindPermission, ConflictNone, true
	case CodeNothingToSubmit:
		return KindNothingToSubmit, ConflictNone, true
	case CodeTimeOverlap:
		return KindConflict, ConflictOverlap, true
	case CodeDailyLimit:
		return KindConflict, ConflictDailyLimit, true
	case CodeEntryModified:
		return KindConflict, ConflictNone, true
	case CodeUnauthenticated, CodeRateLimited, CodeInternal:
		return KindTransport, ConflictNone, true
	}
	return 0, ConflictNone, false
}

// kindForText is the fallback for stores that answer without a code.
func kindForText(status int, text string) (Kind, Conflict) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "cannot exceed") && strings.Contains(t, "hours per day"):
		return KindConflict, ConflictDailyLimit
	case strings.Contains(t, "time overlap"), strings.Contains(t, "time entry"):
		return KindConflict, ConflictOverlap
	case strings.Contains(t, "cannot update submitted"), strings.Contains(t, "cannot delete submitted"):
		return KindPermission, ConflictNone
	}
	switch {
	case status == http.StatusConflict:
		return KindConflict, ConflictNone
	case status == http.StatusForbidden:
		return KindPermission, ConflictNone
	case status == http.StatusBadRequest, status == http.StatusNotFound,
		status == http.StatusUnprocessableEntity, status == http.StatusRequestEntityTooLarge:
		return KindValidation, ConflictNone
	default:
		return KindTransport, ConflictNone
	}
}
