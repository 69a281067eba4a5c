package story

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a generation failure. Values are the stable non-zero
// status_code ordinals returned on the wire; 0 is reserved for success.
type Kind int

const (
	KindInvalidArgument     Kind = 1
	KindUpstreamUnavailable Kind = 2
	KindGenerationFailed    Kind = 3
	KindDeadlineExceeded    Kind = 4
	KindInternal            Kind = 5
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindUpstreamUnavailable:
		return "upstream_unavailable"
	case KindGenerationFailed:
		return "generation_failed"
	case KindDeadlineExceeded:
		return "deadline_exceeded"
	default:
		return "internal"
	}
}

// HTTPStatus maps the kind onto an HTTP response code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindUpstreamUnavailable, KindGenerationFailed:
		return http.StatusBadGateway
	case KindDeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified, user-visible generation failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the taxonomy kind from err. Anything unclassified is
// Internal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
