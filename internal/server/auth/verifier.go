package auth

import (
	"strings"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// Verifier resolves a presented credential to the account it was issued to.
// It performs no I/O and holds no mutable state.
type Verifier struct {
	secret []byte
}

func NewVerifier(secretKey string) *Verifier {
	return &Verifier{secret: []byte(secretKey)}
}

// Verify returns common.ErrMissingCredential for an empty credential and an
// error wrapping common.ErrInvalidCredential for anything that fails the
// token check.
func (v *Verifier) Verify(credential string) (models.AccountID, error) {
	if credential == "" {
		return 0, common.ErrMissingCredential
	}
	return GetAccountIDFromToken(credential, v.secret)
}

// CredentialFromHeader extracts the token from an Authorization header value.
// Both "Bearer <token>" and a bare token are accepted.
func CredentialFromHeader(h string) string {
	h = strings.TrimSpace(h)
	if len(h) >= len(common.BearerPrefix) && strings.EqualFold(h[:len(common.BearerPrefix)], common.BearerPrefix) {
		return strings.TrimSpace(h[len(common.BearerPrefix):])
	}
	return h
}
