package storage

import (
	"context"
	"errors"

	"smartq/internal/models"
	"smartq/internal/queue"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueueBackend хранит очереди и брони в postgres.
type QueueBackend struct {
	db *gorm.DB
}

func NewQueueBackend(db *gorm.DB) *QueueBackend {
	return &QueueBackend{db: db}
}

func (b *QueueBackend) LoadQueue(ctx context.Context, queueID string) (models.Queue, []models.QueueEntry, error) {
	db := b.db.WithContext(ctx)

	var q models.Queue
	if err := db.Where("id = ?", queueID).First(&q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Queue{}, nil, queue.ErrQueueNotFound
		}
		return models.Queue{}, nil, err
	}

	var entries []models.QueueEntry
	if err := db.Where("queue_id = ?", queueID).Order("position ASC").Find(&entries).Error; err != nil {
		return models.Queue{}, nil, err
	}
	return q, entries, nil
}

// SaveQueue записывает очередь и все её записи одной транзакцией.
// Записи, которых больше нет в снимке, удаляются.
func (b *QueueBackend) SaveQueue(ctx context.Context, q models.Queue, entries []models.QueueEntry) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&q).Error; err != nil {
			return err
		}

		keep := make([]string, 0, len(entries))
		for _, e := range entries {
			keep = append(keep, e.ID)
		}
		del := tx.Where("queue_id = ?", q.ID)
		if len(keep) > 0 {
			del = del.Where("id NOT IN ?", keep)
		}
		if err := del.Delete(&models.QueueEntry{}).Error; err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entries).Error
	})
}

func (b *QueueBackend) ConfirmBooking(ctx context.Context, booking *models.Booking) error {
	return b.db.WithContext(ctx).Create(booking).Error
}

// UserRepository хранит учётные записи пользователей.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	ByEmail(ctx context.Context, email string) (models.User, error)
	ByID(ctx context.Context, id uint) (models.User, error)
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, u *models.User) error {
	if _, err := r.ByEmail(ctx, u.Email); err == nil {
		return ErrEmailExists
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *GormUserRepository) ByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}

func (r *GormUserRepository) ByID(ctx context.Context, id uint) (models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return u, nil
}
