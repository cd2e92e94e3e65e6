package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophqa/internal/server/models"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/answers"
	"github.com/dmitrijs2005/gophqa/internal/server/repositories/questions"
)

// MemoryRepositoryManager keeps all data in process memory. WithTx bodies
// are serialized but not rolled back on error. Answer creation waits for a
// running WithTx so an answer cannot land on a question being deleted.
type MemoryRepositoryManager struct {
	accounts  *accounts.MemoryRepository
	questions *questions.MemoryRepository
	answers   *answers.MemoryRepository

	txMu sync.Mutex
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	qs := questions.NewMemoryRepository()
	exists := func(ctx context.Context, id int64) bool {
		_, err := qs.Get(ctx, id)
		return err == nil
	}
	return &MemoryRepositoryManager{
		accounts:  accounts.NewMemoryRepository(),
		questions: qs,
		answers:   answers.NewMemoryRepository(exists),
	}
}

func (m *MemoryRepositoryManager) Accounts() accounts.Repository   { return m.accounts }
func (m *MemoryRepositoryManager) Questions() questions.Repository { return m.questions }
func (m *MemoryRepositoryManager) Answers() answers.Repository {
	return lockedAnswers{MemoryRepository: m.answers, mu: &m.txMu}
}

type lockedAnswers struct {
	*answers.MemoryRepository
	mu *sync.Mutex
}

func (a lockedAnswers) Create(ctx context.Context, na models.NewAnswer, owner models.AccountID) (*models.Answer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.MemoryRepository.Create(ctx, na, owner)
}

// memoryTx is the view handed to WithTx bodies; txMu is already held.
type memoryTx struct {
	m *MemoryRepositoryManager
}

func (t memoryTx) Accounts() accounts.Repository   { return t.m.accounts }
func (t memoryTx) Questions() questions.Repository { return t.m.questions }
func (t memoryTx) Answers() answers.Repository     { return t.m.answers }

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, memoryTx{m: m})
}

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
