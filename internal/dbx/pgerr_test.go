package dbx

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(sql.ErrNoRows), common.ErrorNotFound)
	assert.ErrorIs(t, MapError(fmt.Errorf("scan: %w", sql.ErrNoRows)), common.ErrorNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"}
	err := MapError(unique)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
	assert.Contains(t, err.Error(), "accounts_email_key")

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "answers_question_id_fkey"}
	assert.ErrorIs(t, MapError(fk), common.ErrorInvalidReference)

	other := &pgconn.PgError{Code: "42P01"}
	err = MapError(other)
	assert.Contains(t, err.Error(), "db error")
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))

	assert.EqualError(t, MapError(errors.New("conn refused")), "db error: conn refused")
}
