package storage

import (
	"context"
	"errors"

	"smartq/internal/models"
	"smartq/internal/waitlist"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WaitlistRepository хранит лист ожидания в postgres.
type WaitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

func (r *WaitlistRepository) Save(ctx context.Context, item models.WaitlistItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error
}

func (r *WaitlistRepository) Get(ctx context.Context, id string) (models.WaitlistItem, error) {
	var it models.WaitlistItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.WaitlistItem{}, waitlist.ErrNotFound
		}
		return models.WaitlistItem{}, err
	}
	return it, nil
}

func (r *WaitlistRepository) ByCustomer(ctx context.Context, customerID uint) ([]models.WaitlistItem, error) {
	var items []models.WaitlistItem
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *WaitlistRepository) Active(ctx context.Context, queueID string) ([]models.WaitlistItem, error) {
	q := r.db.WithContext(ctx).Where("status = ?", models.WaitlistActive)
	if queueID != "" {
		q = q.Where("queue_id = ?", queueID)
	}
	var items []models.WaitlistItem
	err := q.Order("created_at ASC").Find(&items).Error
	return items, err
}
