package queue

import (
	"context"
	"sync"

	"smartq/internal/models"
)

// MemoryBackend хранит сохранённые очереди в памяти процесса.
// Используется, когда база данных не настроена, и в тестах.
type MemoryBackend struct {
	mu       sync.Mutex
	queues   map[string]models.Queue
	entries  map[string][]models.QueueEntry
	bookings []models.Booking
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		queues:  make(map[string]models.Queue),
		entries: make(map[string][]models.QueueEntry),
	}
}

func (m *MemoryBackend) LoadQueue(ctx context.Context, queueID string) (models.Queue, []models.QueueEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.Queue{}, nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	q, ok := m.queues[queueID]
	if !ok {
		return models.Queue{}, nil, ErrQueueNotFound
	}
	entries := make([]models.QueueEntry, 0, len(m.entries[queueID]))
	for _, e := range m.entries[queueID] {
		entries = append(entries, e.Clone())
	}
	return q, entries, nil
}

func (m *MemoryBackend) SaveQueue(ctx context.Context, q models.Queue, entries []models.QueueEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]models.QueueEntry, 0, len(entries))
	for _, e := range entries {
		stored = append(stored, e.Clone())
	}
	m.queues[q.ID] = q
	m.entries[q.ID] = stored
	return nil
}

func (m *MemoryBackend) ConfirmBooking(ctx context.Context, b *models.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	b.ID = uint(len(m.bookings) + 1)
	m.bookings = append(m.bookings, *b)
	return nil
}

// Bookings возвращает подтверждённые брони.
func (m *MemoryBackend) Bookings() []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Booking, len(m.bookings))
	copy(out, m.bookings)
	return out
}
