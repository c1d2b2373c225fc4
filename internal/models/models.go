package models

import (
	"gorm.io/gorm"
)

// Роли пользователей
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Surname      string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:customer"`
}

// AllModels перечисляет модели для AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{&User{}, &Queue{}, &QueueEntry{}, &Booking{}, &WaitlistItem{}}
}
