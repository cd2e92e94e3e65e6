package answers

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// QuestionExists reports whether a question id is known. The memory
// repository uses it in place of a foreign key.
type QuestionExists func(ctx context.Context, id int64) bool

// MemoryRepository keeps answers in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	lastID int64
	items  map[int64]models.Answer
	exists QuestionExists
}

// NewMemoryRepository builds a repository. A nil exists accepts any question id.
func NewMemoryRepository(exists QuestionExists) *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]models.Answer), exists: exists}
}

func (r *MemoryRepository) Create(ctx context.Context, na models.NewAnswer, owner models.AccountID) (*models.Answer, error) {
	if r.exists != nil && !r.exists(ctx, na.QuestionID) {
		return nil, common.ErrorInvalidReference
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	a := models.Answer{ID: r.lastID, Content: na.Content, QuestionID: na.QuestionID, AccountID: owner}
	r.items[a.ID] = a
	return &a, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (*models.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &a, nil
}

func (r *MemoryRepository) ListByQuestion(_ context.Context, questionID int64) ([]models.Answer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Answer, 0)
	for _, a := range r.items {
		if a.QuestionID == questionID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryRepository) Update(_ context.Context, id int64, content string, owner models.AccountID) (*models.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok || a.AccountID != owner {
		return nil, common.ErrorNotFound
	}
	a.Content = content
	r.items[id] = a
	return &a, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64, owner models.AccountID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok || a.AccountID != owner {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *MemoryRepository) CountNotOwned(_ context.Context, questionID int64, owner models.AccountID) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, a := range r.items {
		if a.QuestionID == questionID && a.AccountID != owner {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) DeleteByQuestion(_ context.Context, questionID int64, owner models.AccountID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, a := range r.items {
		if a.QuestionID == questionID && a.AccountID == owner {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) Owner(_ context.Context, id int64) (models.AccountID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return a.AccountID, nil
}
