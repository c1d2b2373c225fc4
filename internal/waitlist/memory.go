package waitlist

import (
	"context"
	"sort"
	"sync"

	"smartq/internal/models"
)

// MemoryRepository хранит лист ожидания в памяти процесса, когда база не настроена.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.WaitlistItem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]models.WaitlistItem)}
}

func (r *MemoryRepository) Save(_ context.Context, item models.WaitlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (models.WaitlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return models.WaitlistItem{}, ErrNotFound
	}
	return it, nil
}

func (r *MemoryRepository) ByCustomer(_ context.Context, customerID uint) ([]models.WaitlistItem, error) {
	return r.filter(func(it models.WaitlistItem) bool { return it.CustomerID == customerID }), nil
}

func (r *MemoryRepository) Active(_ context.Context, queueID string) ([]models.WaitlistItem, error) {
	return r.filter(func(it models.WaitlistItem) bool {
		return it.Status == models.WaitlistActive && (queueID == "" || it.QueueID == queueID)
	}), nil
}

// filter возвращает подходящие элементы в порядке создания.
func (r *MemoryRepository) filter(keep func(models.WaitlistItem) bool) []models.WaitlistItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.WaitlistItem, 0)
	for _, it := range r.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
