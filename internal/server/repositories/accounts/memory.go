package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// MemoryRepository keeps accounts in process memory. Ids start at 1 and are
// never reused.
type MemoryRepository struct {
	mu      sync.RWMutex
	lastID  models.AccountID
	byEmail map[string]*models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]*models.Account)}
}

func (r *MemoryRepository) Create(_ context.Context, email string, passwordHash []byte) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	r.lastID++
	a := &models.Account{
		ID:           r.lastID,
		Email:        email,
		PasswordHash: append([]byte(nil), passwordHash...),
		CreatedAt:    time.Now().UTC(),
	}
	r.byEmail[email] = a

	cp := *a
	return &cp, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}
