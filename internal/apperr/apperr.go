package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a service-layer failure. Handlers map kinds to HTTP status
// codes exactly once, at the boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindConflict
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error carries a kind together with a human-readable message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidArgument reports a caller error.
func InvalidArgument(msg string) error {
	return &Error{Kind: KindInvalidArgument, Msg: msg}
}

// Conflict reports a duplicate-creation attempt.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// NotFound reports a missing entity or a transition on a non-pending record.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Internal wraps an unexpected failure.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the kind of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the user-facing message for err. Internal details are
// never leaked; internal failures read as a generic message.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "internal error"
}

// HTTPStatus maps a kind to its status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
