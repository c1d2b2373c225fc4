package waitlist

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"smartq/internal/models"
	"smartq/internal/queue"

	"github.com/google/uuid"
)

const (
	DefaultMaxWaitDays = 7
	MaxWaitDaysLimit   = 30
)

const (
	EventWaitlistJoined      queue.EventType = "waitlist_joined"
	EventWaitlistFulfilled   queue.EventType = "waitlist_fulfilled"
	EventWaitlistSlotOpened  queue.EventType = "waitlist_slot_available"
	EventWaitlistAutoBookErr queue.EventType = "waitlist_auto_book_failed"
)

var (
	ErrNotFound       = errors.New("waitlist item not found")
	ErrAlreadyWaiting = errors.New("customer is already on the waitlist for this service")
	ErrNotActive      = errors.New("waitlist item is not active")
)

// Repository хранит элементы листа ожидания.
type Repository interface {
	Save(ctx context.Context, item models.WaitlistItem) error
	Get(ctx context.Context, id string) (models.WaitlistItem, error)
	ByCustomer(ctx context.Context, customerID uint) ([]models.WaitlistItem, error)
	// Active возвращает активные элементы очереди; пустой queueID означает все очереди.
	Active(ctx context.Context, queueID string) ([]models.WaitlistItem, error)
}

// Booker ставит клиента в очередь. Его реализует queue.Service.
type Booker interface {
	Queue(queueID string) (models.Queue, error)
	ConfirmBooking(ctx context.Context, b models.Booking) (models.QueueEntry, error)
}

type JoinRequest struct {
	CustomerID         uint
	CustomerName       string
	QueueID            string
	Service            string
	PreferredDate      time.Time
	PreferredTimeRange string
	AutoBook           bool
	MaxWaitDays        int
	Priority           models.WaitlistPriority
}

// Manager ведёт лист ожидания и бронирует места, когда в очереди освобождается слот.
type Manager struct {
	mu       sync.Mutex
	repo     Repository
	queues   Booker
	notifier queue.Notifier
	log      *slog.Logger
	now      func() time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(repo Repository, queues Booker, notifier queue.Notifier, logger *slog.Logger, opts ...Option) *Manager {
	if repo == nil {
		repo = NewMemoryRepository()
	}
	if notifier == nil {
		notifier = queue.NopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		repo:     repo,
		queues:   queues,
		notifier: notifier,
		log:      logger.With("component", "waitlist"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Join(ctx context.Context, req JoinRequest) (models.WaitlistItem, error) {
	req.Service = strings.TrimSpace(req.Service)
	if req.QueueID == "" {
		return models.WaitlistItem{}, &queue.ValidationError{Field: "queue_id", Reason: "is required"}
	}
	if req.Service == "" {
		return models.WaitlistItem{}, &queue.ValidationError{Field: "service", Reason: "is required"}
	}
	if req.MaxWaitDays == 0 {
		req.MaxWaitDays = DefaultMaxWaitDays
	}
	if req.MaxWaitDays < 1 || req.MaxWaitDays > MaxWaitDaysLimit {
		return models.WaitlistItem{}, &queue.ValidationError{Field: "max_wait_days", Reason: "must be within [1, 30]"}
	}
	if req.Priority == "" {
		req.Priority = models.PriorityNormal
	}
	if req.Priority.Rank() < 0 {
		return models.WaitlistItem{}, &queue.ValidationError{Field: "priority", Reason: "unknown priority " + string(req.Priority)}
	}
	if _, err := m.queues.Queue(req.QueueID); err != nil {
		return models.WaitlistItem{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, err := m.repo.Active(ctx, req.QueueID)
	if err != nil {
		return models.WaitlistItem{}, err
	}
	for _, it := range existing {
		if it.CustomerID == req.CustomerID && strings.EqualFold(it.Service, req.Service) {
			return models.WaitlistItem{}, ErrAlreadyWaiting
		}
	}

	now := m.now()
	item := models.WaitlistItem{
		ID:                 uuid.New().String(),
		CustomerID:         req.CustomerID,
		CustomerName:       req.CustomerName,
		QueueID:            req.QueueID,
		Service:            req.Service,
		PreferredDate:      req.PreferredDate,
		PreferredTimeRange: req.PreferredTimeRange,
		Status:             models.WaitlistActive,
		AutoBook:           req.AutoBook,
		MaxWaitDays:        req.MaxWaitDays,
		Priority:           req.Priority,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := m.repo.Save(ctx, item); err != nil {
		return models.WaitlistItem{}, err
	}
	m.log.Info("waitlist joined", "item_id", item.ID, "queue_id", item.QueueID, "priority", item.Priority, "auto_book", item.AutoBook)
	m.emit(ctx, itemEvent(EventWaitlistJoined, item, now))
	return item, nil
}

// List возвращает элементы клиента, новые первыми.
func (m *Manager) List(ctx context.Context, customerID uint) ([]models.WaitlistItem, error) {
	items, err := m.repo.ByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (m *Manager) Cancel(ctx context.Context, id string, customerID uint) (models.WaitlistItem, error) {
	return m.update(ctx, id, customerID, func(it *models.WaitlistItem) {
		it.Status = models.WaitlistCancelled
	})
}

func (m *Manager) SetAutoBook(ctx context.Context, id string, customerID uint, autoBook bool) (models.WaitlistItem, error) {
	return m.update(ctx, id, customerID, func(it *models.WaitlistItem) {
		it.AutoBook = autoBook
	})
}

// update меняет активный элемент владельца. customerID == 0 пропускает проверку владельца.
func (m *Manager) update(ctx context.Context, id string, customerID uint, fn func(*models.WaitlistItem)) (models.WaitlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, err := m.repo.Get(ctx, id)
	if err != nil {
		return models.WaitlistItem{}, err
	}
	if customerID != 0 && it.CustomerID != customerID {
		return models.WaitlistItem{}, queue.ErrNotOwner
	}
	if it.Status != models.WaitlistActive {
		return models.WaitlistItem{}, ErrNotActive
	}
	fn(&it)
	it.UpdatedAt = m.now()
	if err := m.repo.Save(ctx, it); err != nil {
		return models.WaitlistItem{}, err
	}
	return it, nil
}

// Expire переводит просроченные активные элементы в expired. Возвращает их число.
func (m *Manager) Expire(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.repo.Active(ctx, "")
	if err != nil {
		return 0, err
	}
	now := m.now()
	expired := 0
	for _, it := range items {
		if now.Before(it.ExpiresAt()) {
			continue
		}
		it.Status = models.WaitlistExpired
		it.UpdatedAt = now
		if err := m.repo.Save(ctx, it); err != nil {
			return expired, err
		}
		expired++
	}
	if expired > 0 {
		m.log.Info("waitlist expired", "count", expired)
	}
	return expired, nil
}

// SlotOpened раздаёт освободившееся место в очереди. Кандидаты идут по
// приоритету, затем по времени записи. Первый кандидат с автобронированием
// ставится в очередь, всем стоящим перед ним без автобронирования уходит
// уведомление о свободном месте. Возвращает забронированный элемент, если он есть.
func (m *Manager) SlotOpened(ctx context.Context, queueID string) (models.WaitlistItem, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.repo.Active(ctx, queueID)
	if err != nil {
		return models.WaitlistItem{}, false, err
	}
	now := m.now()
	candidates := items[:0]
	for _, it := range items {
		if now.Before(it.ExpiresAt()) {
			candidates = append(candidates, it)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := candidates[i].Priority.Rank(), candidates[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	for _, it := range candidates {
		if !it.AutoBook {
			m.emit(ctx, itemEvent(EventWaitlistSlotOpened, it, now))
			continue
		}
		entry, err := m.queues.ConfirmBooking(ctx, models.Booking{
			QueueID:      it.QueueID,
			CustomerID:   it.CustomerID,
			CustomerName: it.CustomerName,
			Service:      it.Service,
			Notes:        "waitlist " + it.ID,
		})
		if err != nil {
			m.log.Warn("waitlist auto-book failed", "item_id", it.ID, "queue_id", queueID, "error", err)
			m.emit(ctx, itemEvent(EventWaitlistAutoBookErr, it, now))
			return models.WaitlistItem{}, false, err
		}
		it.Status = models.WaitlistFulfilled
		it.EntryID = entry.ID
		it.UpdatedAt = now
		if err := m.repo.Save(ctx, it); err != nil {
			return models.WaitlistItem{}, false, err
		}
		m.log.Info("waitlist fulfilled", "item_id", it.ID, "queue_id", queueID, "entry_id", entry.ID, "position", entry.Position)
		ev := itemEvent(EventWaitlistFulfilled, it, now)
		ev.Data["position"] = entry.Position
		m.emit(ctx, ev)
		return it, true, nil
	}
	return models.WaitlistItem{}, false, nil
}

// Notify реагирует на события очереди: завершённый визит освобождает место.
func (m *Manager) Notify(ctx context.Context, ev queue.Event) error {
	if ev.EventType != queue.EventStatusChanged {
		return nil
	}
	if !models.IsTerminal(statusOf(ev.Data["to"])) {
		return nil
	}
	_, _, err := m.SlotOpened(ctx, ev.QueueID)
	return err
}

func (m *Manager) emit(ctx context.Context, ev queue.Event) {
	if err := m.notifier.Notify(ctx, ev); err != nil {
		m.log.Warn("notify failed", "event", ev.EventType, "queue_id", ev.QueueID, "error", err)
	}
}

func itemEvent(t queue.EventType, it models.WaitlistItem, at time.Time) queue.Event {
	return queue.Event{
		EventType: t,
		QueueID:   it.QueueID,
		Timestamp: at,
		Data: map[string]interface{}{
			"waitlist_id": it.ID,
			"customer_id": it.CustomerID,
			"service":     it.Service,
			"priority":    it.Priority,
		},
	}
}

func statusOf(v interface{}) models.Status {
	switch s := v.(type) {
	case models.Status:
		return s
	case string:
		return models.Status(s)
	}
	return ""
}
