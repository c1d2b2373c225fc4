package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"smartq/internal/models"
	"smartq/internal/queue"
	"smartq/internal/seed"
)

// Офлайн-симулятор: загружает очереди из seed-файла и прогоняет тики без сервера.
func main() {
	seedPath := flag.String("seed", "seed/queues.yaml", "путь к YAML-файлу с очередями")
	ticks := flag.Int("ticks", 10, "число тиков (минут) симуляции")
	jitter := flag.Float64("jitter", 0, "вероятность продвижения ожидающего клиента за тик, 0..1")
	rngSeed := flag.Uint64("rng-seed", 1, "seed генератора для воспроизводимого прогона")
	queueID := flag.String("queue", "", "печатать только эту очередь")
	flag.Parse()

	if *jitter < 0 || *jitter > 1 {
		log.Fatalf("jitter must be within [0, 1], got %v", *jitter)
	}

	f, err := seed.Load(*seedPath)
	if err != nil {
		log.Fatal("Ошибка загрузки начальных данных: ", err.Error())
	}

	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	clock := start
	store := queue.NewStore(
		queue.WithJitter(queue.NewJitterPolicy(*jitter, *rngSeed)),
		queue.WithClock(func() time.Time { return clock }),
	)
	if err := f.Apply(store); err != nil {
		log.Fatal(err)
	}
	if *queueID != "" {
		if _, err := store.Queue(*queueID); err != nil {
			log.Fatalf("queue %s: %v", *queueID, err)
		}
	}

	printStore(os.Stdout, store, 0, *queueID)
	for i := 1; i <= *ticks; i++ {
		clock = start.Add(time.Duration(i) * time.Minute)
		changes := store.Tick()
		for _, c := range changes {
			if c.StatusChanged() && (*queueID == "" || c.QueueID == *queueID) {
				fmt.Fprintf(os.Stdout, "  %s/%s: %s -> %s\n", c.QueueID, c.Entry.ID, c.PrevStatus, c.Entry.Status)
			}
		}
		printStore(os.Stdout, store, i, *queueID)
	}
}

func printStore(w io.Writer, store *queue.Store, tick int, only string) {
	fmt.Fprintf(w, "== tick %d ==\n", tick)
	for _, q := range store.Queues() {
		if only != "" && q.ID != only {
			continue
		}
		entries, err := store.List(q.ID)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s (%s)\n", q.BusinessName, q.ID)
		if len(entries) == 0 {
			fmt.Fprintln(w, "  <пусто>")
		}
		for _, e := range entries {
			fmt.Fprintf(w, "  %2d. %-20s %-10s %3d мин%s\n", e.Position, e.CustomerName, e.Status, e.EstimatedWaitMinutes, emergencyMark(e))
		}
	}
}

func emergencyMark(e models.QueueEntry) string {
	switch {
	case e.EmergencyApprovedAt != nil:
		return " [экстренно, одобрено]"
	case e.IsEmergency:
		return " [экстренно]"
	}
	return ""
}
