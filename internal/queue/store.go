package queue

import (
	"sort"
	"sync"
	"time"

	"smartq/internal/models"

	"github.com/google/uuid"
)

const defaultServiceMinutes = 15

// Change описывает изменение одной записи в результате операции над очередью.
type Change struct {
	QueueID      string
	Entry        models.QueueEntry // состояние после изменения
	PrevStatus   models.Status
	PrevPosition int
	PrevWait     int
}

func (c Change) StatusChanged() bool {
	return c.PrevStatus != c.Entry.Status
}

func (c Change) PositionChanged() bool {
	return c.PrevPosition != c.Entry.Position
}

// QueueStats содержит агрегаты по очереди для админ-панели.
type QueueStats struct {
	QueueID        string  `json:"queue_id"`
	Active         int     `json:"active"`
	Waiting        int     `json:"waiting"`
	Next           int     `json:"next"`
	InService      int     `json:"in_service"`
	Delayed        int     `json:"delayed"`
	Completed      int     `json:"completed"`
	NoShow         int     `json:"no_show"`
	Cancelled      int     `json:"cancelled"`
	Emergency      int     `json:"emergency_requests"`
	AvgWaitMinutes float64 `json:"avg_wait_minutes"`
	NoShowRate     float64 `json:"no_show_rate"` // в процентах от завершённых записей
}

type queueState struct {
	info    models.Queue
	active  []*models.QueueEntry // упорядочены по позиции, позиции 1..N
	history []*models.QueueEntry // терминальные записи, позиция 0
}

// Store единолично владеет состоянием очередей. Все изменения
// проходят через один мьютекс; при конкурирующих правках выигрывает последняя.
type Store struct {
	mu             sync.Mutex
	queues         map[string]*queueState
	order          []string
	jitter         JitterPolicy
	now            func() time.Time
	newID          func() string
	serviceMinutes int
}

type Option func(*Store)

func WithJitter(p JitterPolicy) Option {
	return func(s *Store) { s.jitter = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithDefaultServiceMinutes задаёт длительность обслуживания для броней без неё.
func WithDefaultServiceMinutes(minutes int) Option {
	return func(s *Store) {
		if minutes > 0 {
			s.serviceMinutes = minutes
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		queues:         make(map[string]*queueState),
		now:            time.Now,
		newID:          func() string { return uuid.New().String() },
		serviceMinutes: defaultServiceMinutes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) CreateQueue(q models.Queue) (models.Queue, error) {
	if q.ID == "" {
		return models.Queue{}, &ValidationError{Field: "id", Reason: "is required"}
	}
	if q.BusinessName == "" {
		return models.Queue{}, &ValidationError{Field: "business_name", Reason: "is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.queues[q.ID]; ok {
		return models.Queue{}, ErrQueueExists
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = s.now()
	}
	s.queues[q.ID] = &queueState{info: q}
	s.order = append(s.order, q.ID)
	return q, nil
}

func (s *Store) Queues() []models.Queue {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Queue, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.queues[id].info)
	}
	return out
}

func (s *Store) Queue(queueID string) (models.Queue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[queueID]
	if !ok {
		return models.Queue{}, ErrQueueNotFound
	}
	return qs.info, nil
}

// List возвращает активные записи очереди в порядке позиций.
func (s *Store) List(queueID string) ([]models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[queueID]
	if !ok {
		return nil, ErrQueueNotFound
	}
	return copyEntries(qs.active), nil
}

// History возвращает записи, дошедшие до терминального статуса.
func (s *Store) History(queueID string) ([]models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[queueID]
	if !ok {
		return nil, ErrQueueNotFound
	}
	return copyEntries(qs.history), nil
}

// Snapshot возвращает очередь вместе с активными записями и историей для сохранения в бэкенд.
func (s *Store) Snapshot(queueID string) (models.Queue, []models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[queueID]
	if !ok {
		return models.Queue{}, nil, ErrQueueNotFound
	}
	entries := copyEntries(qs.active)
	entries = append(entries, copyEntries(qs.history)...)
	return qs.info, entries, nil
}

func (s *Store) Entry(queueID, entryID string) (models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[queueID]
	if !ok {
		return models.QueueEntry{}, ErrQueueNotFound
	}
	if _, e := qs.findActive(entryID); e != nil {
		return e.Clone(), nil
	}
	for _, e := range qs.history {
		if e.ID == entryID {
			return e.Clone(), nil
		}
	}
	return models.QueueEntry{}, ErrEntryNotFound
}

// Replace подменяет содержимое очереди (например, после загрузки из бэкенда).
// Порядок активных записей берётся из их позиций, после чего позиции
// пересчитываются заново в 1..N. Очередь создаётся, если её не было.
// ID записей обязательны и уникальны в пределах очереди.
func (s *Store) Replace(q models.Queue, entries []models.QueueEntry) error {
	if q.ID == "" {
		return &ValidationError{Field: "id", Reason: "is required"}
	}

	active := make([]*models.QueueEntry, 0, len(entries))
	history := make([]*models.QueueEntry, 0)
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return &ValidationError{Field: "entry_id", Reason: "is required"}
		}
		if seen[e.ID] {
			return &ValidationError{Field: "entry_id", Reason: "duplicate " + e.ID}
		}
		seen[e.ID] = true

		e := e.Clone()
		e.QueueID = q.ID
		if e.Status == "" {
			e.Status = models.StatusWaiting
		}
		if !e.Status.Valid() {
			return &ValidationError{Field: "status", Reason: "unknown status " + string(e.Status)}
		}
		if e.EstimatedWaitMinutes < 0 {
			e.EstimatedWaitMinutes = 0
		}
		if models.IsTerminal(e.Status) {
			e.Position = 0
			history = append(history, &e)
			continue
		}
		active = append(active, &e)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Position < active[j].Position
	})
	for i, e := range active {
		e.Position = i + 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[q.ID]
	if !ok {
		if q.CreatedAt.IsZero() {
			q.CreatedAt = s.now()
		}
		qs = &queueState{}
		s.queues[q.ID] = qs
		s.order = append(s.order, q.ID)
	} else if q.CreatedAt.IsZero() {
		q.CreatedAt = qs.info.CreatedAt
	}
	qs.info = q
	qs.active = active
	qs.history = history
	return nil
}

// Enqueue ставит клиента из подтверждённой брони в конец очереди.
// Ожидание оценивается как ожидание последнего клиента плюс длительность его обслуживания.
func (s *Store) Enqueue(queueID string, b models.Booking) (models.QueueEntry, error) {
	if b.CustomerName == "" {
		return models.QueueEntry{}, &ValidationError{Field: "customer_name", Reason: "is required"}
	}
	if b.Service == "" {
		return models.QueueEntry{}, &ValidationError{Field: "service", Reason: "is required"}
	}
	if b.ServiceMinutes < 0 {
		return models.QueueEntry{}, &ValidationError{Field: "service_minutes", Reason: "must not be negative"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[queueID]
	if !ok {
		return models.QueueEntry{}, ErrQueueNotFound
	}

	id := b.EntryID
	if id == "" {
		id = s.newID()
	} else if qs.contains(id) {
		return models.QueueEntry{}, ErrEntryExists
	}

	serviceMinutes := b.ServiceMinutes
	if serviceMinutes == 0 {
		serviceMinutes = s.serviceMinutes
	}
	wait := 0
	if n := len(qs.active); n > 0 {
		last := qs.active[n-1]
		wait = last.EstimatedWaitMinutes + last.ServiceMinutes
	}

	now := s.now()
	scheduled := b.ScheduledTime
	if scheduled.IsZero() {
		scheduled = now
	}
	entry := &models.QueueEntry{
		ID:                   id,
		QueueID:              queueID,
		CustomerID:           b.CustomerID,
		CustomerName:         b.CustomerName,
		Service:              b.Service,
		Position:             len(qs.active) + 1,
		EstimatedWaitMinutes: wait,
		ServiceMinutes:       serviceMinutes,
		Status:               models.StatusWaiting,
		IsEmergency:          b.IsEmergency,
		ScheduledTime:        scheduled,
		Notes:                b.Notes,
		UpdatedAt:            now,
	}
	qs.active = append(qs.active, entry)
	return entry.Clone(), nil
}

// Tick выполняет один шаг симуляции для всех очередей: уменьшает ожидание
// на минуту (не ниже нуля), применяет правило перехода статусов и, если
// включено, случайно продвигает ожидающих клиентов.
func (s *Store) Tick() []Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var changes []Change
	for _, id := range s.order {
		qs := s.queues[id]
		before := make(map[string]Change, len(qs.active))
		for _, e := range qs.active {
			before[e.ID] = Change{QueueID: id, PrevStatus: e.Status, PrevPosition: e.Position, PrevWait: e.EstimatedWaitMinutes}
		}

		for _, e := range qs.active {
			if e.EstimatedWaitMinutes > 0 {
				e.EstimatedWaitMinutes--
			}
			next := NextStatus(e.Status, e.EstimatedWaitMinutes)
			if next != e.Status {
				e.Status = next
				if next == models.StatusInService {
					t := now
					e.ActualStartTime = &t
				}
			}
		}

		qs.applyJitter(s.jitter)

		for _, e := range qs.active {
			c := before[e.ID]
			if c.PrevStatus == e.Status && c.PrevPosition == e.Position && c.PrevWait == e.EstimatedWaitMinutes {
				continue
			}
			e.UpdatedAt = now
			c.Entry = e.Clone()
			changes = append(changes, c)
		}
	}
	return changes
}

// ApproveEmergency переносит запись с экстренным запросом на первую позицию.
// Клиенты, стоявшие перед ней, сдвигаются на одну позицию назад, остальные
// сохраняют и порядок, и позиции. Повторное одобрение другой записи
// ставит на первое место уже её.
func (s *Store) ApproveEmergency(queueID, entryID string) ([]models.QueueEntry, []Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs, idx, err := s.emergencyTarget(queueID, entryID)
	if err != nil {
		return nil, nil, err
	}

	prev := qs.positions()
	entry := qs.active[idx]
	now := s.now()
	entry.EmergencyApprovedAt = &now
	entry.UpdatedAt = now

	qs.active = append(qs.active[:idx], qs.active[idx+1:]...)
	qs.active = append([]*models.QueueEntry{entry}, qs.active...)
	qs.renumber()

	changes := qs.positionChanges(queueID, prev, now)
	return copyEntries(qs.active), changes, nil
}

// DenyEmergency отклоняет экстренный запрос: позиции не меняются, флаг остаётся.
func (s *Store) DenyEmergency(queueID, entryID string) (models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs, idx, err := s.emergencyTarget(queueID, entryID)
	if err != nil {
		return models.QueueEntry{}, err
	}
	return qs.active[idx].Clone(), nil
}

// RequestEmergency помечает активную запись экстренной; дальше решение за администратором.
func (s *Store) RequestEmergency(queueID, entryID string) (models.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[queueID]
	if !ok {
		return models.QueueEntry{}, ErrQueueNotFound
	}
	_, e := qs.findActive(entryID)
	if e == nil {
		if qs.inHistory(entryID) {
			return models.QueueEntry{}, ErrEntryTerminal
		}
		return models.QueueEntry{}, ErrEntryNotFound
	}
	if !e.IsEmergency {
		e.IsEmergency = true
		e.UpdatedAt = s.now()
	}
	return e.Clone(), nil
}

// UpdateStatus явно переводит запись в новый статус (действие администратора).
// При терминальном статусе запись уходит в историю, а позиции остальных
// пересчитываются без пропусков.
func (s *Store) UpdateStatus(queueID, entryID string, status models.Status) (models.QueueEntry, []Change, error) {
	if !status.Valid() {
		return models.QueueEntry{}, nil, &ValidationError{Field: "status", Reason: "unknown status " + string(status)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[queueID]
	if !ok {
		return models.QueueEntry{}, nil, ErrQueueNotFound
	}
	idx, e := qs.findActive(entryID)
	if e == nil {
		if qs.inHistory(entryID) {
			return models.QueueEntry{}, nil, ErrEntryTerminal
		}
		return models.QueueEntry{}, nil, ErrEntryNotFound
	}
	if err := models.ValidateTransition(e.Status, status); err != nil {
		return models.QueueEntry{}, nil, &transitionError{err: err}
	}

	now := s.now()
	prev := qs.positions()
	statusChange := Change{QueueID: queueID, PrevStatus: e.Status, PrevPosition: e.Position, PrevWait: e.EstimatedWaitMinutes}

	e.Status = status
	e.UpdatedAt = now
	if status == models.StatusInService {
		t := now
		e.ActualStartTime = &t
	}
	if models.IsTerminal(status) {
		e.Position = 0
		qs.active = append(qs.active[:idx], qs.active[idx+1:]...)
		qs.history = append(qs.history, e)
		qs.renumber()
	}
	statusChange.Entry = e.Clone()

	changes := []Change{statusChange}
	changes = append(changes, qs.positionChanges(queueID, prev, now)...)
	return e.Clone(), changes, nil
}

// EntriesForCustomer возвращает активные записи клиента во всех очередях.
func (s *Store) EntriesForCustomer(customerID uint) []models.QueueEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.QueueEntry
	for _, id := range s.order {
		for _, e := range s.queues[id].active {
			if e.CustomerID == customerID {
				out = append(out, e.Clone())
			}
		}
	}
	return out
}

func (s *Store) Stats(queueID string) (QueueStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qs, ok := s.queues[queueID]
	if !ok {
		return QueueStats{}, ErrQueueNotFound
	}

	st := QueueStats{QueueID: queueID, Active: len(qs.active)}
	totalWait := 0
	for _, e := range qs.active {
		totalWait += e.EstimatedWaitMinutes
		if e.IsEmergency {
			st.Emergency++
		}
		switch e.Status {
		case models.StatusWaiting:
			st.Waiting++
		case models.StatusNext:
			st.Next++
		case models.StatusInService:
			st.InService++
		case models.StatusDelayed:
			st.Delayed++
		}
	}
	for _, e := range qs.history {
		if e.IsEmergency {
			st.Emergency++
		}
		switch e.Status {
		case models.StatusCompleted:
			st.Completed++
		case models.StatusNoShow:
			st.NoShow++
		case models.StatusCancelled:
			st.Cancelled++
		}
	}
	if st.Active > 0 {
		st.AvgWaitMinutes = float64(totalWait) / float64(st.Active)
	}
	if finished := st.Completed + st.NoShow; finished > 0 {
		st.NoShowRate = float64(st.NoShow) * 100 / float64(finished)
	}
	return st, nil
}

// PruneHistory удаляет из истории записи, изменённые раньше before. Возвращает число удалённых.
func (s *Store) PruneHistory(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, id := range s.order {
		qs := s.queues[id]
		kept := qs.history[:0]
		for _, e := range qs.history {
			if e.UpdatedAt.Before(before) {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		qs.history = kept
	}
	return removed
}

func (s *Store) emergencyTarget(queueID, entryID string) (*queueState, int, error) {
	qs, ok := s.queues[queueID]
	if !ok {
		return nil, 0, ErrQueueNotFound
	}
	idx, e := qs.findActive(entryID)
	if e == nil {
		if qs.inHistory(entryID) {
			return nil, 0, ErrEntryTerminal
		}
		return nil, 0, ErrEntryNotFound
	}
	if !e.IsEmergency {
		return nil, 0, ErrNotEmergency
	}
	return qs, idx, nil
}

func (qs *queueState) findActive(entryID string) (int, *models.QueueEntry) {
	for i, e := range qs.active {
		if e.ID == entryID {
			return i, e
		}
	}
	return -1, nil
}

func (qs *queueState) inHistory(entryID string) bool {
	for _, e := range qs.history {
		if e.ID == entryID {
			return true
		}
	}
	return false
}

func (qs *queueState) contains(entryID string) bool {
	_, e := qs.findActive(entryID)
	return e != nil || qs.inHistory(entryID)
}

func (qs *queueState) renumber() {
	for i, e := range qs.active {
		e.Position = i + 1
	}
}

func (qs *queueState) positions() map[string]int {
	m := make(map[string]int, len(qs.active))
	for _, e := range qs.active {
		m[e.ID] = e.Position
	}
	return m
}

func (qs *queueState) positionChanges(queueID string, prev map[string]int, now time.Time) []Change {
	var changes []Change
	for _, e := range qs.active {
		p, ok := prev[e.ID]
		if !ok || p == e.Position {
			continue
		}
		e.UpdatedAt = now
		changes = append(changes, Change{
			QueueID:      queueID,
			Entry:        e.Clone(),
			PrevStatus:   e.Status,
			PrevPosition: p,
			PrevWait:     e.EstimatedWaitMinutes,
		})
	}
	return changes
}

// applyJitter меняет местами соседних ожидающих клиентов. Одобренную
// экстренную запись не обгоняют; каждая запись сдвигается не больше чем на одну позицию за тик.
func (qs *queueState) applyJitter(p JitterPolicy) {
	if p.Probability <= 0 {
		return
	}
	for i := 1; i < len(qs.active); i++ {
		cur, ahead := qs.active[i], qs.active[i-1]
		if cur.Status != models.StatusWaiting || ahead.Status != models.StatusWaiting {
			continue
		}
		if ahead.IsEmergency && ahead.EmergencyApprovedAt != nil {
			continue
		}
		if !p.advance() {
			continue
		}
		qs.active[i-1], qs.active[i] = cur, ahead
		cur.Position, ahead.Position = i, i+1
		i++
	}
}

func copyEntries(entries []*models.QueueEntry) []models.QueueEntry {
	out := make([]models.QueueEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Clone())
	}
	return out
}

type transitionError struct {
	err error
}

func (e *transitionError) Error() string {
	return e.err.Error()
}

func (e *transitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
