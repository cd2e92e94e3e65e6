// Package repomanager vends the repositories used by the services together
// with migrations and transactions over them.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophqa/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/answers"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/questions"
)

// Repositories groups the per-entity repositories bound to one connection
// or transaction.
type Repositories interface {
	Accounts() accounts.Repository
	Questions() questions.Repository
	Answers() answers.Repository
}

type RepositoryManager interface {
	Repositories
	RunMigrations(ctx context.Context) error
	// Ping reports whether the data layer is reachable.
	Ping(ctx context.Context) error
	// WithTx runs fn against repositories bound to a single transaction.
	// fn's error aborts the transaction and is returned unchanged.
	WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
	Close() error
}
