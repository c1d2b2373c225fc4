package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking хранит подтверждённую запись клиента; при подтверждении создаёт QueueEntry.
type Booking struct {
	gorm.Model
	QueueID        string    `gorm:"index;not null" json:"queue_id" binding:"required"`
	CustomerID     uint      `gorm:"index" json:"customer_id"`
	CustomerName   string    `gorm:"not null" json:"customer_name" binding:"required"`
	Service        string    `gorm:"not null" json:"service" binding:"required"`
	ScheduledTime  time.Time `gorm:"index" json:"scheduled_time"`
	ServiceMinutes int       `json:"service_minutes"`
	IsEmergency    bool      `gorm:"default:false" json:"is_emergency"` // экстренный запрос сразу при брони
	Notes          string    `json:"notes"`
	EntryID        string    `gorm:"index" json:"entry_id"` // запись в очереди, созданная бронью
}
