// Package answers persists answers attached to questions.
package answers

import (
	"context"

	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// Repository stores answers. Update and Delete are scoped to the owner.
type Repository interface {
	Create(ctx context.Context, na models.NewAnswer, owner models.AccountID) (*models.Answer, error)
	Get(ctx context.Context, id int64) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error)
	Update(ctx context.Context, id int64, content string, owner models.AccountID) (*models.Answer, error)
	Delete(ctx context.Context, id int64, owner models.AccountID) (bool, error)
	// CountNotOwned counts the answers of a question written by anyone but owner.
	CountNotOwned(ctx context.Context, questionID int64, owner models.AccountID) (int64, error)
	// DeleteByQuestion removes the owner's answers of a question and returns
	// how many were removed.
	DeleteByQuestion(ctx context.Context, questionID int64, owner models.AccountID) (int64, error)
	Owner(ctx context.Context, id int64) (models.AccountID, error)
}
