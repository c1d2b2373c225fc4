package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"smartq/internal/queue"
	"smartq/internal/waitlist"

	"github.com/robfig/cron/v3"
)

type Config struct {
	TickSpec         string
	PruneSpec        string
	ExpireSpec       string
	HistoryRetention time.Duration
}

// Planner выполняет периодические задачи очередей.
type Planner struct {
	svc       *queue.Service
	waitlist  *waitlist.Manager // nil, если лист ожидания не подключён
	retention time.Duration
	log       *slog.Logger
	now       func() time.Time
}

func NewPlanner(svc *queue.Service, wl *waitlist.Manager, retention time.Duration, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{svc: svc, waitlist: wl, retention: retention, log: logger.With("component", "tasks"), now: time.Now}
}

// TickQueues уменьшает ожидание во всех очередях на одну минуту.
func (p *Planner) TickQueues() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	changes := p.svc.Tick(ctx)
	p.log.Debug("Тик очередей выполнен", "changes", len(changes))
}

// PruneHistory удаляет из истории записи старше срока хранения.
func (p *Planner) PruneHistory() {
	if p.retention <= 0 {
		return
	}
	removed := p.svc.PruneHistory(p.now().Add(-p.retention))
	p.log.Info("Очистка истории очередей", "removed", removed)
}

// ExpireWaitlist закрывает ожидания, превысившие свой срок.
func (p *Planner) ExpireWaitlist() {
	if p.waitlist == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := p.waitlist.Expire(ctx)
	if err != nil {
		p.log.Error("Ошибка при закрытии просроченных ожиданий", "error", err)
		return
	}
	p.log.Debug("Просроченные ожидания закрыты", "expired", n)
}

// InitScheduler инициализирует и запускает планировщик cron-задач.
func InitScheduler(cfg Config, p *Planner) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(cfg.TickSpec, p.TickQueues); err != nil {
		return nil, fmt.Errorf("cron-задача TickQueues: %w", err)
	}
	if cfg.PruneSpec != "" {
		if _, err := c.AddFunc(cfg.PruneSpec, p.PruneHistory); err != nil {
			return nil, fmt.Errorf("cron-задача PruneHistory: %w", err)
		}
	}

	if cfg.ExpireSpec != "" {
		if _, err := c.AddFunc(cfg.ExpireSpec, p.ExpireWaitlist); err != nil {
			return nil, fmt.Errorf("cron-задача ExpireWaitlist: %w", err)
		}
	}

	c.Start()
	p.log.Info("Cron-планировщик запущен", "tick", cfg.TickSpec, "prune", cfg.PruneSpec, "expire", cfg.ExpireSpec)
	return c, nil
}
