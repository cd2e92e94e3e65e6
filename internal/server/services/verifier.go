// Package services sequences identity verification, content moderation and
// ownership checks in front of every write to the data layer.
package services

import (
	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// Verifier resolves a presented credential to an account. *auth.Verifier
// implements it.
type Verifier interface {
	Verify(credential string) (models.AccountID, error)
}

func authenticate(v Verifier, op, credential string) (models.AccountID, error) {
	account, err := v.Verify(credential)
	if err != nil {
		return 0, newError(op, KindUnauthenticated, err)
	}
	return account, nil
}
