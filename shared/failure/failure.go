package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a Failure independently of its transport code.
type Kind string

const (
	KindBadRequest        Kind = "bad_request"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
	KindInternal          Kind = "internal"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidInput      Kind = "invalid_input"
	KindUnavailable       Kind = "unavailable"
	KindInvalidTransition Kind = "invalid_transition"
)

// Failure is an error that knows how it should be reported to a client.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind,omitempty"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions", Kind: KindForbidden}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, kind Kind, msg string) error {
	return &Failure{Code: code, Message: msg, Kind: kind}
}

// BadRequest wraps err as a bad request. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, KindBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, KindBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, KindUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, KindForbidden, msg)
}

// NotFound takes the full message, e.g. "room not found".
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, KindNotFound, msg)
}

func Conflict(msg string) error {
	return newFailure(http.StatusConflict, KindConflict, msg)
}

// InvalidInput is for well-formed requests carrying values the domain rejects,
// such as an empty stay or a non-positive quantity.
func InvalidInput(msg string) error {
	return newFailure(http.StatusBadRequest, KindInvalidInput, msg)
}

// Unavailable means a room cannot host the requested stay.
func Unavailable(msg string) error {
	return newFailure(http.StatusConflict, KindUnavailable, msg)
}

// InvalidTransition means a booking cannot move to the requested state from its current one.
func InvalidTransition(msg string) error {
	return newFailure(http.StatusUnprocessableEntity, KindInvalidTransition, msg)
}

// GetCode returns the HTTP status carried by err, 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the kind carried by err, KindInternal for foreign errors.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) && fail.Kind != "" {
		return fail.Kind
	}

	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	if err == nil {
		return false
	}

	return GetKind(err) == kind
}
