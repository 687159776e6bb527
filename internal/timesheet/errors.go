package timesheet

import (
	"errors"
	"fmt"
)

// Kind is the category of a timesheet failure.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindPermission
	KindNothingToSubmit
	KindConflict
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPermission:
		return "permission"
	case KindNothingToSubmit:
		return "nothing to submit"
	case KindConflict:
		return "conflict"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Conflict narrows a KindConflict error.
type Conflict int

const (
	ConflictNone Conflict = iota
	ConflictOverlap
	ConflictDailyLimit
)

// Error is the single error type returned by the engine and its stores.
type Error struct {
	Kind     Kind
	Conflict Conflict
	// Code is the structured remote code, zero for locally raised errors.
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String() + " error"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind. A target with a conflict sub-kind
// only matches that sub-kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Conflict == ConflictNone || t.Conflict == e.Conflict
}

var (
	ErrValidation      = &Error{Kind: KindValidation, Message: "invalid entry"}
	ErrPermission      = &Error{Kind: KindPermission, Message: "entry is not editable"}
	ErrNothingToSubmit = &Error{Kind: KindNothingToSubmit, Message: "no draft entries to submit"}
	ErrConflict        = &Error{Kind: KindConflict, Message: "rejected by the entry store"}
	ErrOverlap         = &Error{Kind: KindConflict, Conflict: ConflictOverlap, Message: "time overlap"}
	ErrDailyLimit      = &Error{Kind: KindConflict, Conflict: ConflictDailyLimit, Message: "daily limit exceeded"}
	ErrTransport       = &Error{Kind: KindTransport, Message: "entry store unavailable"}
)

func validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func permissionf(format string, args ...any) *Error {
	return &Error{Kind: KindPermission, Message: fmt.Sprintf(format, args...)}
}

func nothingToSubmitf(format string, args ...any) *Error {
	return &Error{Kind: KindNothingToSubmit, Message: fmt.Sprintf(format, args...)}
}

// Transport wraps a low-level failure as a transport error.
func Transport(err error) *Error {
	return &Error{Kind: KindTransport, Message: "entry store unavailable", Err: err}
}

// KindOf returns the kind of err, or zero when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ConflictOf returns the conflict sub-kind of err.
func ConflictOf(err error) Conflict {
	var e *Error
	if errors.As(err, &e) {
		return e.Conflict
	}
	return ConflictNone
}

// Retryable reports whether the user should be offered a retry.
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindConflict, KindTransport:
		return true
	}
	return false
}

// asStoreError makes sure a store failure carries a kind.
func asStoreError(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return Transport(err)
}
