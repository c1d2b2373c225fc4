package notify

import (
	"context"
	"errors"
	"log/slog"

	"smartq/internal/queue"
)

// Multi рассылает событие всем получателям. Ошибка одного получателя
// не мешает остальным; все ошибки логируются и возвращаются вместе.
type Multi struct {
	sinks []queue.Notifier
	log   *slog.Logger
}

func NewMulti(logger *slog.Logger, sinks ...queue.Notifier) *Multi {
	if logger == nil {
		logger = slog.Default()
	}
	return &Multi{sinks: sinks, log: logger.With("component", "notify")}
}

func (m *Multi) Add(n queue.Notifier) {
	m.sinks = append(m.sinks, n)
}

func (m *Multi) Notify(ctx context.Context, ev queue.Event) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.Notify(ctx, ev); err != nil {
			m.log.Error("notify sink failed", "event", ev.EventType, "queue_id", ev.QueueID, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
