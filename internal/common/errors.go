// Package common defines shared constants and sentinel errors used across
// the server layers of gophqa. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorAlreadyExists    = errors.New("already exists")
	ErrorInvalidReference = errors.New("invalid reference")
	ErrorHasDependents    = errors.New("has dependent records")

	// Service-level errors (generic/internal flow control).
	ErrorUnauthorized = errors.New("unauthorized")

	// Credential errors.
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrTokenExpired      = errors.New("token expired")

	// Request parameter errors.
	ErrMissingParameters = errors.New("missing parameter")
	ErrParseParameter    = errors.New("cannot parse parameter")
)
