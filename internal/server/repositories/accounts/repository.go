// Package accounts persists registered accounts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, email string, passwordHash []byte) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}
