package moderation

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a moderation failure.
type Kind int

const (
	// KindNone marks a successful provider response.
	KindNone Kind = iota
	// KindTransient is a 5xx response or a transport failure that may be retried.
	KindTransient
	// KindClientFault is a 4xx response: the request itself was rejected.
	KindClientFault
	// KindServiceFault is a provider failure that persisted after retries or
	// a success response that could not be decoded.
	KindServiceFault
	// KindUnreachable is a transport failure that persisted after retries.
	KindUnreachable
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindTransient:
		return "transient"
	case KindClientFault:
		return "client_fault"
	case KindServiceFault:
		return "service_fault"
	case KindUnreachable:
		return "unreachable"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by Client.Check for every failed verdict. Status is
// zero when no HTTP response was received.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("moderation %s: status %d: %s", e.Kind, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("moderation %s: status %d", e.Kind, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("moderation %s: %v", e.Kind, e.Err)
	default:
		return "moderation " + e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsClientFault reports whether the provider rejected the request itself.
func (e *Error) IsClientFault() bool { return e.Kind == KindClientFault }

// Classify maps one provider exchange to a Kind. A non-nil err means no
// response was received.
func Classify(status int, err error) Kind {
	switch {
	case err != nil:
		return KindTransient
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return KindNone
	case status >= http.StatusBadRequest && status < http.StatusInternalServerError:
		return KindClientFault
	case status >= http.StatusInternalServerError:
		return KindTransient
	default:
		return KindServiceFault
	}
}

func retryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransient
}
