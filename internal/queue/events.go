package queue

import (
	"context"
	"time"
)

type EventType string

const (
	EventEntryEnqueued      EventType = "entry_enqueued"
	EventStatusChanged      EventType = "status_changed"
	EventPositionChanged    EventType = "position_changed"
	EventEmergencyRequested EventType = "emergency_requested"
	EventEmergencyApproved  EventType = "emergency_approved"
	EventEmergencyDenied    EventType = "emergency_denied"
	EventQueueRefreshed     EventType = "queue_refreshed"
)

// Event сообщает подписчикам (WebSocket, брокер) об изменении очереди.
type Event struct {
	EventType EventType              `json:"event_type"`
	QueueID   string                 `json:"queue_id"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// Notifier доставляет события подписчикам.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// NopNotifier отбрасывает события.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) error { return nil }

// changeEvents переводит изменения записей в события: смена статуса и
// смена позиции сообщаются отдельно.
func changeEvents(changes []Change, at time.Time) []Event {
	events := make([]Event, 0, len(changes))
	for _, c := range changes {
		if c.StatusChanged() {
			events = append(events, Event{
				EventType: EventStatusChanged,
				QueueID:   c.QueueID,
				Timestamp: at,
				Data: map[string]interface{}{
					"entry_id":    c.Entry.ID,
					"customer_id": c.Entry.CustomerID,
					"from":        c.PrevStatus,
					"to":          c.Entry.Status,
					"position":    c.Entry.Position,
				},
			})
		}
		if c.PositionChanged() {
			events = append(events, Event{
				EventType: EventPositionChanged,
				QueueID:   c.QueueID,
				Timestamp: at,
				Data: map[string]interface{}{
					"entry_id":      c.Entry.ID,
					"customer_id":   c.Entry.CustomerID,
					"from_position": c.PrevPosition,
					"position":      c.Entry.Position,
					"wait_minutes":  c.Entry.EstimatedWaitMinutes,
				},
			})
		}
	}
	return events
}
