package answers

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophqa/internal/dbx"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// PostgresRepository implements answer storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create stores an answer. An unknown question yields
// common.ErrorInvalidReference.
func (r *PostgresRepository) Create(ctx context.Context, na models.NewAnswer, owner models.AccountID) (*models.Answer, error) {
	query :=
		`INSERT INTO answers (content, question_id, account_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, content, question_id, account_id
		 `

	var a models.Answer
	err := r.db.QueryRowContext(ctx, query, na.Content, na.QuestionID, owner).
		Scan(&a.ID, &a.Content, &a.QuestionID, &a.AccountID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return &a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Answer, error) {
	query :=
		`SELECT id, content, question_id, account_id FROM answers
		 WHERE id = $1
		 `

	var a models.Answer
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Content, &a.QuestionID, &a.AccountID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return &a, nil
}

func (r *PostgresRepository) ListByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error) {
	query :=
		`SELECT id, content, question_id, account_id FROM answers
		 WHERE question_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]models.Answer, 0)
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.Content, &a.QuestionID, &a.AccountID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, content string, owner models.AccountID) (*models.Answer, error) {
	query :=
		`UPDATE answers SET content = $1
		 WHERE id = $2 AND account_id = $3
		 RETURNING id, content, question_id, account_id
		 `

	var a models.Answer
	err := r.db.QueryRowContext(ctx, query, content, id, owner).Scan(&a.ID, &a.Content, &a.QuestionID, &a.AccountID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return &a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64, owner models.AccountID) (bool, error) {
	query := `DELETE FROM answers WHERE id = $1 AND account_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return false, dbx.MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) CountNotOwned(ctx context.Context, questionID int64, owner models.AccountID) (int64, error) {
	query := `SELECT COUNT(*) FROM answers WHERE question_id = $1 AND account_id <> $2`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, questionID, owner).Scan(&n); err != nil {
		return 0, dbx.MapError(err)
	}
	return n, nil
}

func (r *PostgresRepository) DeleteByQuestion(ctx context.Context, questionID int64, owner models.AccountID) (int64, error) {
	query := `DELETE FROM answers WHERE question_id = $1 AND account_id = $2`

	res, err := r.db.ExecContext(ctx, query, questionID, owner)
	if err != nil {
		return 0, dbx.MapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Owner(ctx context.Context, id int64) (models.AccountID, error) {
	query := `SELECT account_id FROM answers WHERE id = $1`

	var owner models.AccountID
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&owner); err != nil {
		return 0, dbx.MapError(err)
	}
	return owner, nil
}
