package questions

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophqa/internal/dbx"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// PostgresRepository implements question storage over a dbx.DBTX (*sql.DB or *sql.Tx).
// Tags are kept in a JSONB column.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(s scanner) (*models.Question, error) {
	var (
		q    models.Question
		tags []byte
	)
	if err := s.Scan(&q.ID, &q.Title, &q.Content, &tags, &q.AccountID); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &q.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	return &q, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func (r *PostgresRepository) Create(ctx context.Context, nq models.NewQuestion, owner models.AccountID) (*models.Question, error) {
	tags, err := encodeTags(nq.Tags)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO questions (title, content, tags, account_id)
		 VALUES ($1, $2, $3::jsonb, $4)
		 RETURNING id, title, content, tags, account_id
		 `

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, nq.Title, nq.Content, tags, owner))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return q, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Question, error) {
	query :=
		`SELECT id, title, content, tags, account_id FROM questions
		 WHERE id = $1
		 `

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return q, nil
}

// List returns questions ordered by id. A nil p.Limit means no limit.
func (r *PostgresRepository) List(ctx context.Context, p models.Pagination) ([]models.Question, error) {
	query :=
		`SELECT id, title, content, tags, account_id FROM questions
		 ORDER BY id
		 LIMIT $1 OFFSET $2
		 `

	var limit sql.NullInt64
	if p.Limit != nil {
		limit = sql.NullInt64{Int64: int64(*p.Limit), Valid: true}
	}

	rows, err := r.db.QueryContext(ctx, query, limit, p.Offset)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]models.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update overwrites title, content and tags of a question owned by owner.
// common.ErrorNotFound is returned when no such row matches.
func (r *PostgresRepository) Update(ctx context.Context, id int64, nq models.NewQuestion, owner models.AccountID) (*models.Question, error) {
	tags, err := encodeTags(nq.Tags)
	if err != nil {
		return nil, err
	}

	query :=
		`UPDATE questions SET title = $1, content = $2, tags = $3::jsonb
		 WHERE id = $4 AND account_id = $5
		 RETURNING id, title, content, tags, account_id
		 `

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, nq.Title, nq.Content, tags, id, owner))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return q, nil
}

// Delete removes a question owned by owner and reports whether a row was removed.
func (r *PostgresRepository) Delete(ctx context.Context, id int64, owner models.AccountID) (bool, error) {
	query := `DELETE FROM questions WHERE id = $1 AND account_id = $2`

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

func (r *PostgresRepository) Owner(ctx context.Context, id int64) (models.AccountID, error) {
	query := `SELECT account_id FROM questions WHERE id = $1`

	var owner models.AccountID
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&owner); err != nil {
		return 0, dbx.MapError(err)
	}
	return owner, nil
}
