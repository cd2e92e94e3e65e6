package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophqa/internal/dbx"
	"github.com/dmitrijs2005/gophqa/internal/server/migrations"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/answers"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/questions"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// boundRepositories binds PostgreSQL repositories to one DBTX.
type boundRepositories struct {
	db dbx.DBTX
}

func (b boundRepositories) Accounts() accounts.Repository {
	return accounts.NewPostgresRepository(b.db)
}

func (b boundRepositories) Questions() questions.Repository {
	return questions.NewPostgresRepository(b.db)
}

func (b boundRepositories) Answers() answers.Repository {
	return answers.NewPostgresRepository(b.db)
}

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	boundRepositories
	conn *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the managed connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.conn, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return dbx.WithTx(ctx, m.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, boundRepositories{db: tx})
	})
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.conn.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.conn.Close()
}

// NewPostgresRepositoryManager wraps an open connection.
func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{boundRepositories: boundRepositories{db: db}, conn: db}
}

// OpenPostgres opens and pings a pgx connection for dsn.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return NewPostgresRepositoryManager(db), nil
}
