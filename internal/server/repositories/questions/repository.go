// Package questions persists questions and resolves their owners.
package questions

import (
	"context"

	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// Repository stores questions. Update and Delete are scoped to the owner:
// a row owned by someone else behaves as if it did not exist.
type Repository interface {
	Create(ctx context.Context, q models.NewQuestion, owner models.AccountID) (*models.Question, error)
	Get(ctx context.Context, id int64) (*models.Question, error)
	List(ctx context.Context, p models.Pagination) ([]models.Question, error)
	Update(ctx context.Context, id int64, q models.NewQuestion, owner models.AccountID) (*models.Question, error)
	Delete(ctx context.Context, id int64, owner models.AccountID) (bool, error)
	Owner(ctx context.Context, id int64) (models.AccountID, error)
}
