package models

import (
	"time"
)

type WaitlistStatus string

const (
	WaitlistActive    WaitlistStatus = "active"
	WaitlistFulfilled WaitlistStatus = "fulfilled"
	WaitlistCancelled WaitlistStatus = "cancelled"
	WaitlistExpired   WaitlistStatus = "expired"
)

type WaitlistPriority string

const (
	PriorityNormal WaitlistPriority = "normal"
	PriorityHigh   WaitlistPriority = "high"
	PriorityUrgent WaitlistPriority = "urgent"
)

// Rank упорядочивает приоритеты: чем больше, тем раньше освободившееся место достанется клиенту.
// Для неизвестного значения возвращает -1.
func (p WaitlistPriority) Rank() int {
	switch p {
	case PriorityNormal:
		return 0
	case PriorityHigh:
		return 1
	case PriorityUrgent:
		return 2
	}
	return -1
}

// WaitlistItem описывает ожидание клиентом места в очереди бизнеса.
// При AutoBook место бронируется автоматически, как только в очереди кто-то завершит визит.
type WaitlistItem struct {
	ID                 string           `gorm:"primaryKey" json:"id"`
	CustomerID         uint             `gorm:"index;not null" json:"customer_id"`
	CustomerName       string           `json:"customer_name"`
	QueueID            string           `gorm:"index;not null" json:"queue_id"`
	Service            string           `gorm:"not null" json:"service"`
	PreferredDate      time.Time        `json:"preferred_date"`
	PreferredTimeRange string           `json:"preferred_time_range"`
	Status             WaitlistStatus   `gorm:"type:varchar(16);index;not null" json:"status"`
	AutoBook           bool             `gorm:"default:false" json:"auto_book"`
	MaxWaitDays        int              `gorm:"not null" json:"max_wait_days"`
	Priority           WaitlistPriority `gorm:"type:varchar(8);not null" json:"priority"`
	EntryID            string           `json:"entry_id,omitempty"` // запись в очереди после автобронирования
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ExpiresAt возвращает момент, после которого ожидание истекает.
func (w WaitlistItem) ExpiresAt() time.Time {
	return w.CreatedAt.Add(time.Duration(w.MaxWaitDays) * 24 * time.Hour)
}
