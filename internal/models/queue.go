package models

import (
	"time"
)

// Queue описывает очередь одного бизнеса (клиника, салон, автосервис и т.д.)
type Queue struct {
	ID           string    `gorm:"primaryKey" json:"id" yaml:"id"`
	BusinessName string    `gorm:"not null" json:"business_name" yaml:"business_name"`
	Category     string    `gorm:"index" json:"category" yaml:"category"` // Healthcare, Beauty, Automotive ...
	IsActive     bool      `gorm:"not null" json:"is_active" yaml:"is_active"`
	CreatedAt    time.Time `json:"created_at" yaml:"-"`
}
