package questions

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/dmitrijs2005/gophqa/internal/common"
	"github.com/dmitrijs2005/gophqa/internal/server/models"
)

// MemoryRepository keeps questions in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	lastID int64
	items  map[int64]models.Question
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]models.Question)}
}

func (r *MemoryRepository) Create(_ context.Context, nq models.NewQuestion, owner models.AccountID) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	q := models.Question{
		ID:        r.lastID,
		Title:     nq.Title,
		Content:   nq.Content,
		Tags:      slices.Clone(nq.Tags),
		AccountID: owner,
	}
	r.items[q.ID] = q
	return clone(q), nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (*models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(q), nil
}

func (r *MemoryRepository) List(_ context.Context, p models.Pagination) ([]models.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]models.Question, 0)
	for i, id := range ids {
		if i < p.Offset {
			continue
		}
		if p.Limit != nil && len(result) >= *p.Limit {
			break
		}
		result = append(result, *clone(r.items[id]))
	}
	return result, nil
}

func (r *MemoryRepository) Update(_ context.Context, id int64, nq models.NewQuestion, owner models.AccountID) (*models.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.items[id]
	if !ok || q.AccountID != owner {
		return nil, common.ErrorNotFound
	}
	q.Title = nq.Title
	q.Content = nq.Content
	q.Tags = slices.Clone(nq.Tags)
	r.items[id] = q
	return clone(q), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64, owner models.AccountID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.items[id]
	if !ok || q.AccountID != owner {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *MemoryRepository) Owner(_ context.Context, id int64) (models.AccountID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.items[id]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return q.AccountID, nil
}

func clone(q models.Question) *models.Question {
	q.Tags = slices.Clone(q.Tags)
	return &q
}
