package seed

import (
	"context"
	"fmt"
	"os"

	"smartq/internal/models"
	"smartq/internal/queue"
	"smartq/internal/storage"

	"gopkg.in/yaml.v3"
)

// QueueFixture описывает очередь бизнеса с начальными записями.
type QueueFixture struct {
	models.Queue `yaml:",inline"`
	Entries      []models.QueueEntry `yaml:"entries"`
}

// File представляет содержимое файла начальных данных.
type File struct {
	Queues  []QueueFixture                      `yaml:"queues"`
	Catalog map[string][]map[string]interface{} `yaml:"catalog"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	seen := make(map[string]bool, len(f.Queues))
	for i, q := range f.Queues {
		if q.ID == "" {
			return nil, fmt.Errorf("queue #%d: id is required", i+1)
		}
		if seen[q.ID] {
			return nil, fmt.Errorf("queue %s: duplicate id", q.ID)
		}
		seen[q.ID] = true

		entryIDs := make(map[string]bool, len(q.Entries))
		for j, e := range q.Entries {
			if e.ID == "" {
				return nil, fmt.Errorf("queue %s, entry #%d: id is required", q.ID, j+1)
			}
			if entryIDs[e.ID] {
				return nil, fmt.Errorf("queue %s, entry %s: duplicate id", q.ID, e.ID)
			}
			entryIDs[e.ID] = true
		}
	}
	return &f, nil
}

// Apply загружает очереди в Store. Порядок записей задаётся позициями из файла.
func (f *File) Apply(store *queue.Store) error {
	for _, q := range f.Queues {
		if err := store.Replace(q.Queue, q.Entries); err != nil {
			return fmt.Errorf("seed queue %s: %w", q.ID, err)
		}
	}
	return nil
}

// ApplyCatalog записывает справочники (города, категории услуг) в документное хранилище.
func (f *File) ApplyCatalog(ctx context.Context, docs storage.DocumentStore) error {
	for collection, items := range f.Catalog {
		for _, item := range items {
			if _, err := docs.Upsert(ctx, collection, storage.Document(item)); err != nil {
				return fmt.Errorf("seed %s: %w", collection, err)
			}
		}
	}
	return nil
}
