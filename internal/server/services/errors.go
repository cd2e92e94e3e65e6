package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/server/moderation"
)

// Kind is the closed set of outcomes a rejected service call can have.
type Kind int

const (
	KindUnauthenticated Kind = iota + 1
	KindModerationClientFault
	KindModerationServiceFault
	KindForbidden
	KindNotFound
	KindDataQuery
	KindMissingParameters
	KindParse
	KindInvalidInput
	// KindUpstream means the data layer could not be reached or the request
	// was cancelled before commit.
	KindUpstream
)

var kindNames = map[Kind]string{
	KindUnauthenticated:        "unauthenticated",
	KindModerationClientFault:  "moderation client fault",
	KindModerationServiceFault: "moderation service fault",
	KindForbidden:              "forbidden",
	KindNotFound:               "not found",
	KindDataQuery:              "data query error",
	KindMissingParameters:      "missing parameters",
	KindParse:                  "parse error",
	KindInvalidInput:           "invalid input",
	KindUpstream:               "upstream unavailable",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the only error type returned by the services. Op names the
// operation, e.g. "questions.Update".
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + ": " + e.Kind.String()
	}
	return e.Op + ": " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind of err. Errors not produced by this package
// report KindUpstream.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}

func newError(op string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// fromData translates repository errors.
func fromData(op string, err error) *Error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return newError(op, KindNotFound, err)
	case errors.Is(err, common.ErrorAlreadyExists), errors.Is(err, common.ErrorInvalidReference),
		errors.Is(err, common.ErrorHasDependents):
		return newError(op, KindDataQuery, err)
	default:
		return newError(op, KindUpstream, err)
	}
}

func fromModeration(op string, err error) *Error {
	var me *moderation.Error
	if errors.As(err, &me) && me.IsClientFault() {
		return newError(op, KindModerationClientFault, err)
	}
	return newError(op, KindModerationServiceFault, err)
}

// ParamError translates pagination parsing errors for the route layer.
func ParamError(op string, err error) *Error {
	if errors.Is(err, common.ErrMissingParameters) {
		return newError(op, KindMissingParameters, err)
	}
	return newError(op, KindParse, err)
}
