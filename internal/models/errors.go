package models

import (
	"fmt"
	"net/http"
)

// User-facing messages. Client-fault messages are safe to return
// verbatim; server faults always collapse to MsgInternalError.
const (
	MsgMissingFields = "A first name, last name, email address, and a password must be provided"
	MsgEmailExists   = "Email address already exists"
	MsgInternalError = "Internal server error"
	MsgNotClubMember = "Active club membership required"
)

// StatusError is an error carrying its HTTP status classification.
// Pipeline stages produce one; the owning workflow stops at the first
// failure and forwards it unchanged.
type StatusError struct {
	Code    int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// ClientFault reports whether the message may be shown to the caller.
func (e *StatusError) ClientFault() bool {
	return e.Code >= 400 && e.Code < 500
}

func NewValidationError(msg string) *StatusError {
	return &StatusError{Code: http.StatusUnprocessableEntity, Message: msg}
}

func NewConflictError(msg string) *StatusError {
	return &StatusError{Code: http.StatusUnprocessableEntity, Message: msg, Err: ErrEmailAlreadyUsed}
}

func NewInternalError(err error) *StatusError {
	return &StatusError{Code: http.StatusInternalServerError, Message: MsgInternalError, Err: err}
}

func NewAuthorizationError(msg string) *StatusError {
	return &StatusError{Code: http.StatusForbidden, Message: msg}
}
