package api

import (
	"errors"
	"fmt"
)

// Kind classifies backend failures the way callers need to react to
// them. Client-side precondition failures never reach this package;
// they are reported as booking.ValidationError before any request is
// issued.
type Kind int

const (
	// KindTransport covers network failures and 5xx responses. The
	// operation is considered not applied and is safe to retry manually.
	KindTransport Kind = iota
	// KindAuth is a 401 or 403. A 401 additionally clears the session.
	KindAuth
	// KindNotFound is a 404 on a lookup or an already-cancelled ticket.
	KindNotFound
	// KindConflict is a server rejection due to a state change, e.g. a
	// seat taken between the availability fetch and the booking call.
	// The server's reason is surfaced verbatim.
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "transport"
	}
}

// Error is a failed backend call. Message carries the server's own
// wording when the response body had one.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int // 0 when no HTTP response was received
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Message, e.Kind)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsAuth reports whether err is a session/permission failure.
func IsAuth(err error) bool { return hasKind(err, KindAuth) }

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

// IsConflict reports whether err is a server-side state rejection.
func IsConflict(err error) bool { return hasKind(err, KindConflict) }

// IsTransport reports whether err is a network or server failure.
func IsTransport(err error) bool { return hasKind(err, KindTransport) }

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// kindForStatus maps an HTTP status to the error taxonomy. 4xx codes
// other than the recognized ones are state rejections: the request was
// understood and refused, so retrying without changing the selection
// will not help.
func kindForStatus(status int) Kind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 404:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindConflict
	default:
		return KindTransport
	}
}
