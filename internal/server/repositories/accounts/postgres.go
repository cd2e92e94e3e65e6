package accounts

import (
	"context"

	"github.com/dmitrijs2005/gophqa/internal/dbx"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create stores a new account. A duplicate email yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, email string, passwordHash []byte) (*models.Account, error) {
	query :=
		`INSERT INTO accounts (email, password_hash)
         VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	account := &models.Account{Email: email, PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx, query, email, passwordHash).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return account, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, email, password_hash, created_at FROM accounts
		 WHERE email = $1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return account, nil
}
