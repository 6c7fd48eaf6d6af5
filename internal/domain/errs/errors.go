package errs

import (
	"errors"
)

// Error kinds shared by the session core, the report engines and the API.
var (
	ErrNetworkFailure       = errors.New("network failure")
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRange         = errors.New("invalid date range")
	ErrInvalidSelection     = errors.New("invalid habit selection")
	ErrForbidden            = errors.New("forbidden")
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrSessionBusy          = errors.New("session operation already in progress")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)

// Error carries a kind from the list above, a user-facing message and an optional cause
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

// New creates an error of the given kind with a user-facing message
func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap creates an error of the given kind that keeps cause in the chain
func Wrap(kind error, msg string, cause error) error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

var codes = []struct {
	kind error
	code string
}{
	{ErrNetworkFailure, "network_failure"},
	{ErrUnauthenticated, "unauthenticated"},
	{ErrInvalidCredentials, "invalid_credentials"},
	{ErrInvalidRange, "invalid_range"},
	{ErrInvalidSelection, "invalid_selection"},
	{ErrForbidden, "forbidden"},
	{ErrValidation, "validation"},
	{ErrNotFound, "not_found"},
	{ErrConflict, "conflict"},
	{ErrSessionBusy, "session_busy"},
	{ErrAlreadyAuthenticated, "already_authenticated"},
}

// Code returns the wire code for the kind of err, or "internal"
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.kind) {
			return c.code
		}
	}
	return "internal"
}

// FromCode is the inverse of Code. Unknown codes yield nil.
func FromCode(code string) error {
	for _, c := range codes {
		if c.code == code {
			return c.kind
		}
	}
	return nil
}

// Message returns the text to show a user for err
func Message(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}

	switch {
	case errors.Is(err, ErrNetworkFailure):
		return "Could not reach the server. Please try again."
	case errors.Is(err, ErrUnauthenticated):
		return "Your session has expired. Please log in again."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, ErrInvalidRange):
		return "The start date must not be after the end date."
	case errors.Is(err, ErrInvalidSelection):
		return "Select at least one habit."
	case errors.Is(err, ErrForbidden):
		return "You do not have access to this resource."
	case errors.Is(err, ErrValidation):
		return "Some fields are invalid."
	case errors.Is(err, ErrNotFound):
		return "Not found."
	case errors.Is(err, ErrConflict):
		return "The request conflicts with existing data."
	case errors.Is(err, ErrSessionBusy):
		return "Another session operation is in progress."
	case errors.Is(err, ErrAlreadyAuthenticated):
		return "You are already logged in."
	default:
		return "Unexpected error, please try again."
	}
}
