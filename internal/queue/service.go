package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"smartq/internal/models"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const defaultBackendTimeout = 5 * time.Second

// Backend: внешнее хранилище очередей и броней. Все вызовы могут блокироваться.
type Backend interface {
	LoadQueue(ctx context.Context, queueID string) (models.Queue, []models.QueueEntry, error)
	SaveQueue(ctx context.Context, q models.Queue, entries []models.QueueEntry) error
	ConfirmBooking(ctx context.Context, b *models.Booking) error
}

type ServiceConfig struct {
	BackendTimeout time.Duration
	Logger         *slog.Logger
}

// Service связывает Store с бэкендом и подписчиками на события.
type Service struct {
	store    *Store
	backend  Backend
	notifier Notifier
	timeout  time.Duration
	log      *slog.Logger
	refresh  singleflight.Group
	writers  queueLocks
	now      func() time.Time
}

// queueLocks выдаёт по мьютексу на очередь. Под ним снимок берётся и
// записывается в бэкенд, поэтому более старый снимок не перезапишет новый.
type queueLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *queueLocks) get(queueID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[queueID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[queueID] = m
	}
	return m
}

func NewService(store *Store, backend Backend, notifier Notifier, cfg ServiceConfig) *Service {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if cfg.BackendTimeout <= 0 {
		cfg.BackendTimeout = defaultBackendTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Service{
		store:    store,
		backend:  backend,
		notifier: notifier,
		timeout:  cfg.BackendTimeout,
		log:      cfg.Logger.With("component", "queue"),
		now:      store.now,
	}
}

func (s *Service) Store() *Store {
	return s.store
}

func (s *Service) Queues() []models.Queue {
	return s.store.Queues()
}

func (s *Service) Queue(queueID string) (models.Queue, error) {
	return s.store.Queue(queueID)
}

func (s *Service) List(queueID string) ([]models.QueueEntry, error) {
	return s.store.List(queueID)
}

func (s *Service) History(queueID string) ([]models.QueueEntry, error) {
	return s.store.History(queueID)
}

func (s *Service) EntriesForCustomer(customerID uint) []models.QueueEntry {
	return s.store.EntriesForCustomer(customerID)
}

func (s *Service) Stats(queueID string) (QueueStats, error) {
	return s.store.Stats(queueID)
}

// CreateQueue регистрирует очередь бизнеса и сохраняет её в бэкенд.
func (s *Service) CreateQueue(ctx context.Context, q models.Queue) (models.Queue, error) {
	created, err := s.store.CreateQueue(q)
	if err != nil {
		return models.Queue{}, err
	}
	s.persist(ctx, created.ID)
	s.log.Info("queue created", "queue_id", created.ID, "business", created.BusinessName)
	return created, nil
}

// Refresh перечитывает очередь из бэкенда. Одновременные обновления одной
// очереди выполняются одним запросом. Общая загрузка не зависит от отмены
// контекста отдельного вызова; каждый вызов перестаёт ждать по своему ctx.
func (s *Service) Refresh(ctx context.Context, queueID string) ([]models.QueueEntry, error) {
	ch := s.refresh.DoChan(queueID, func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx), queueID)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, &OperationError{Op: "load queue", Err: ctx.Err()}
	case res = <-ch:
	}
	if res.Err != nil {
		s.log.Warn("queue refresh failed", "queue_id", queueID, "error", res.Err)
		return nil, res.Err
	}
	// результат общий для всех ожидающих вызовов
	list := res.Val.([]models.QueueEntry)
	out := make([]models.QueueEntry, len(list))
	for i := range list {
		out[i] = list[i].Clone()
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, queueID string) ([]models.QueueEntry, error) {
	list, err := s.replaceFromBackend(ctx, queueID)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, Event{
		EventType: EventQueueRefreshed,
		QueueID:   queueID,
		Timestamp: s.now(),
		Data:      map[string]interface{}{"active": len(list)},
	})
	return list, nil
}

// replaceFromBackend держит блокировку записи очереди, чтобы не прочитать
// бэкенд посреди сохранения.
func (s *Service) replaceFromBackend(ctx context.Context, queueID string) ([]models.QueueEntry, error) {
	w := s.writers.get(queueID)
	w.Lock()
	defer w.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	q, entries, err := s.backend.LoadQueue(callCtx, queueID)
	if err != nil {
		if errors.Is(err, ErrQueueNotFound) {
			return nil, err
		}
		return nil, &OperationError{Op: "load queue", Err: err}
	}
	if err := s.store.Replace(q, entries); err != nil {
		return nil, err
	}
	return s.store.List(queueID)
}

// Restore подтягивает очередь из бэкенда при старте. Если в бэкенде её нет,
// туда сохраняется текущее состояние из памяти (например, из seed-файла).
func (s *Service) Restore(ctx context.Context, queueID string) error {
	_, err := s.Refresh(ctx, queueID)
	if errors.Is(err, ErrQueueNotFound) {
		s.persist(ctx, queueID)
		return nil
	}
	return err
}

// ConfirmBooking подтверждает бронь в бэкенде и ставит клиента в очередь.
// Если бэкенд отказал, запись в очереди не создаётся. Бронь с IsEmergency
// сразу попадает к администратору как экстренный запрос.
func (s *Service) ConfirmBooking(ctx context.Context, b models.Booking) (models.QueueEntry, error) {
	if b.QueueID == "" {
		return models.QueueEntry{}, &ValidationError{Field: "queue_id", Reason: "is required"}
	}
	if b.CustomerName == "" {
		return models.QueueEntry{}, &ValidationError{Field: "customer_name", Reason: "is required"}
	}
	if b.Service == "" {
		return models.QueueEntry{}, &ValidationError{Field: "service", Reason: "is required"}
	}
	if b.ServiceMinutes < 0 {
		return models.QueueEntry{}, &ValidationError{Field: "service_minutes", Reason: "must not be negative"}
	}
	q, err := s.store.Queue(b.QueueID)
	if err != nil {
		return models.QueueEntry{}, err
	}
	if !q.IsActive {
		return models.QueueEntry{}, &ValidationError{Field: "queue_id", Reason: "queue is not accepting bookings"}
	}
	if b.EntryID == "" {
		b.EntryID = uuid.New().String()
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.backend.ConfirmBooking(callCtx, &b); err != nil {
		return models.QueueEntry{}, &OperationError{Op: "confirm booking", Err: err}
	}

	entry, err := s.store.Enqueue(b.QueueID, b)
	if err != nil {
		return models.QueueEntry{}, err
	}
	s.persist(ctx, b.QueueID)
	s.log.Info("booking confirmed", "queue_id", b.QueueID, "entry_id", entry.ID, "position", entry.Position, "emergency", entry.IsEmergency)
	now := s.now()
	s.emit(ctx, Event{
		EventType: EventEntryEnqueued,
		QueueID:   b.QueueID,
		Timestamp: now,
		Data: map[string]interface{}{
			"entry_id":     entry.ID,
			"customer_id":  entry.CustomerID,
			"position":     entry.Position,
			"wait_minutes": entry.EstimatedWaitMinutes,
		},
	})
	if entry.IsEmergency {
		s.emit(ctx, Event{
			EventType: EventEmergencyRequested,
			QueueID:   b.QueueID,
			Timestamp: now,
			Data: map[string]interface{}{
				"entry_id":    entry.ID,
				"customer_id": entry.CustomerID,
				"position":    entry.Position,
			},
		})
	}
	return entry, nil
}

// RequestEmergency помечает запись клиента экстренной. customerID == 0 пропускает проверку владельца.
func (s *Service) RequestEmergency(ctx context.Context, queueID, entryID string, customerID uint) (models.QueueEntry, error) {
	if customerID != 0 {
		e, err := s.store.Entry(queueID, entryID)
		if err != nil {
			return models.QueueEntry{}, err
		}
		if e.CustomerID != customerID {
			return models.QueueEntry{}, ErrNotOwner
		}
	}
	entry, err := s.store.RequestEmergency(queueID, entryID)
	if err != nil {
		return models.QueueEntry{}, err
	}
	s.persist(ctx, queueID)
	s.emit(ctx, Event{
		EventType: EventEmergencyRequested,
		QueueID:   queueID,
		Timestamp: s.now(),
		Data: map[string]interface{}{
			"entry_id":    entry.ID,
			"customer_id": entry.CustomerID,
			"position":    entry.Position,
		},
	})
	return entry, nil
}

func (s *Service) ApproveEmergency(ctx context.Context, queueID, entryID string) ([]models.QueueEntry, error) {
	list, changes, err := s.store.ApproveEmergency(queueID, entryID)
	if err != nil {
		return nil, err
	}
	s.persist(ctx, queueID)
	s.log.Info("emergency approved", "queue_id", queueID, "entry_id", entryID, "moved", len(changes))
	now := s.now()
	s.emit(ctx, Event{
		EventType: EventEmergencyApproved,
		QueueID:   queueID,
		Timestamp: now,
		Data:      map[string]interface{}{"entry_id": entryID, "position": 1},
	})
	for _, ev := range changeEvents(changes, now) {
		s.emit(ctx, ev)
	}
	return list, nil
}

func (s *Service) DenyEmergency(ctx context.Context, queueID, entryID string) (models.QueueEntry, error) {
	entry, err := s.store.DenyEmergency(queueID, entryID)
	if err != nil {
		return models.QueueEntry{}, err
	}
	s.emit(ctx, Event{
		EventType: EventEmergencyDenied,
		QueueID:   queueID,
		Timestamp: s.now(),
		Data: map[string]interface{}{
			"entry_id":    entry.ID,
			"customer_id": entry.CustomerID,
			"position":    entry.Position,
		},
	})
	return entry, nil
}

func (s *Service) UpdateStatus(ctx context.Context, queueID, entryID string, status models.Status) (models.QueueEntry, error) {
	entry, changes, err := s.store.UpdateStatus(queueID, entryID, status)
	if err != nil {
		return models.QueueEntry{}, err
	}
	s.persist(ctx, queueID)
	for _, ev := range changeEvents(changes, s.now()) {
		s.emit(ctx, ev)
	}
	return entry, nil
}

// Tick выполняет шаг симуляции, рассылает события и сохраняет затронутые очереди.
func (s *Service) Tick(ctx context.Context) []Change {
	changes := s.store.Tick()
	touched := make(map[string]bool)
	for _, c := range changes {
		touched[c.QueueID] = true
	}
	for queueID := range touched {
		s.persist(ctx, queueID)
	}
	for _, ev := range changeEvents(changes, s.now()) {
		s.emit(ctx, ev)
	}
	if len(changes) > 0 {
		s.log.Debug("tick applied", "changes", len(changes), "queues", len(touched))
	}
	return changes
}

func (s *Service) PruneHistory(before time.Time) int {
	n := s.store.PruneHistory(before)
	if n > 0 {
		s.log.Info("history pruned", "removed", n, "before", before)
	}
	return n
}

// persist сохраняет очередь в бэкенд. Ошибка только логируется: состояние в памяти остаётся главным.
// Записи одной очереди идут строго по одной, снимок берётся уже под блокировкой.
func (s *Service) persist(ctx context.Context, queueID string) {
	w := s.writers.get(queueID)
	w.Lock()
	defer w.Unlock()

	q, entries, err := s.store.Snapshot(queueID)
	if err != nil {
		return
	}
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()
	if err := s.backend.SaveQueue(callCtx, q, entries); err != nil {
		s.log.Error("queue persist failed", "queue_id", queueID, "error", err)
	}
}

func (s *Service) emit(ctx context.Context, ev Event) {
	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.log.Warn("notify failed", "event", ev.EventType, "queue_id", ev.QueueID, "error", err)
	}
}
