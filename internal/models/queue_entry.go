package models

import (
	"time"
)

type QueueEntry struct {
	ID                   string     `gorm:"primaryKey" json:"id" yaml:"id"`
	QueueID              string     `gorm:"index;not null" json:"queue_id" yaml:"-"`
	CustomerID           uint       `gorm:"index" json:"customer_id" yaml:"customer_id"` // 0 для клиента без аккаунта
	CustomerName         string     `json:"customer_name" yaml:"customer_name"`
	Service              string     `json:"service" yaml:"service"`
	Position             int        `gorm:"index;not null" json:"position" yaml:"position"` // 0 после терминального статуса
	EstimatedWaitMinutes int        `gorm:"not null" json:"estimated_wait_minutes" yaml:"estimated_wait_minutes"`
	ServiceMinutes       int        `json:"service_minutes" yaml:"service_minutes"`
	Status               Status     `gorm:"type:varchar(16);not null" json:"status" yaml:"status"`
	IsEmergency          bool       `gorm:"default:false" json:"is_emergency" yaml:"is_emergency"`
	EmergencyApprovedAt  *time.Time `json:"emergency_approved_at,omitempty" yaml:"-"`
	ScheduledTime        time.Time  `json:"scheduled_time" yaml:"scheduled_time"`
	Notes                string     `json:"notes,omitempty" yaml:"notes"`
	ActualStartTime      *time.Time `json:"actual_start_time,omitempty" yaml:"-"` // выставляется при переходе в in_service
	UpdatedAt            time.Time  `json:"updated_at" yaml:"-"`
}

// IsActive сообщает, участвует ли запись в нумерации позиций.
func (e QueueEntry) IsActive() bool {
	return !IsTerminal(e.Status)
}

// Clone возвращает копию записи без общих указателей.
func (e QueueEntry) Clone() QueueEntry {
	c := e
	if e.EmergencyApprovedAt != nil {
		t := *e.EmergencyApprovedAt
		c.EmergencyApprovedAt = &t
	}
	if e.ActualStartTime != nil {
		t := *e.ActualStartTime
		c.ActualStartTime = &t
	}
	return c
}

// Renumber выставляет позиции по порядку следования в срезе: 1..N.
// Срез должен содержать только активные записи.
func Renumber(entries []QueueEntry) {
	for i := range entries {
		entries[i].Position = i + 1
	}
}
