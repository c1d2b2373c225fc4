package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Коллекции документов, которые использует приложение.
const (
	CollectionCities            = "cities"
	CollectionServiceCategories = "service_categories_enhanced"
	CollectionUserPreferences   = "user_preferences"
)

var (
	ErrDocumentExists  = errors.New("document already exists")
	ErrInvalidDocument = errors.New("document must be a JSON object")
)

// Document: произвольный JSON-объект; поле "id" обязательно после сохранения.
type Document map[string]interface{}

func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

// DocumentStore умеет list, get, create и upsert документов коллекции.
type DocumentStore interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (Document, bool, error)
	Create(ctx context.Context, collection string, doc Document) (Document, error)
	Upsert(ctx context.Context, collection string, doc Document) (Document, error)
}

// RedisDocumentStore хранит коллекцию в хэше doc:<collection>, ключ поля равен id документа.
type RedisDocumentStore struct {
	client *redis.Client
}

func NewRedisDocumentStore(client *redis.Client) *RedisDocumentStore {
	return &RedisDocumentStore{client: client}
}

func collectionKey(collection string) string {
	return "doc:" + collection
}

func (s *RedisDocumentStore) List(ctx context.Context, collection string) ([]Document, error) {
	raw, err := s.client.HGetAll(ctx, collectionKey(collection)).Result()
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(raw))
	for id, body := range raw {
		var d Document
		if err := json.Unmarshal([]byte(body), &d); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
		docs = append(docs, d)
	}
	sortDocuments(docs)
	return docs, nil
}

func (s *RedisDocumentStore) Get(ctx context.Context, collection, id string) (Document, bool, error) {
	body, err := s.client.HGet(ctx, collectionKey(collection), id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var d Document
	if err := json.Unmarshal([]byte(body), &d); err != nil {
		return nil, false, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return d, true, nil
}

func (s *RedisDocumentStore) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	doc = withID(doc)
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	ok, err := s.client.HSetNX(ctx, collectionKey(collection), doc.ID(), body).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDocumentExists
	}
	return doc, nil
}

func (s *RedisDocumentStore) Upsert(ctx context.Context, collection string, doc Document) (Document, error) {
	doc = withID(doc)
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := s.client.HSet(ctx, collectionKey(collection), doc.ID(), body).Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

// MemoryDocumentStore хранит документы в памяти процесса, когда Redis не настроен.
type MemoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{collections: make(map[string]map[string]Document)}
}

func (s *MemoryDocumentStore) List(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]Document, 0, len(s.collections[collection]))
	for _, d := range s.collections[collection] {
		docs = append(docs, copyDocument(d))
	}
	sortDocuments(docs)
	return docs, nil
}

func (s *MemoryDocumentStore) Get(_ context.Context, collection, id string) (Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.collections[collection][id]
	if !ok {
		return nil, false, nil
	}
	return copyDocument(d), true, nil
}

func (s *MemoryDocumentStore) Create(_ context.Context, collection string, doc Document) (Document, error) {
	doc = withID(doc)
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	if _, ok := c[doc.ID()]; ok {
		return nil, ErrDocumentExists
	}
	c[doc.ID()] = copyDocument(doc)
	return doc, nil
}

func (s *MemoryDocumentStore) Upsert(_ context.Context, collection string, doc Document) (Document, error) {
	doc = withID(doc)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection(collection)[doc.ID()] = copyDocument(doc)
	return doc, nil
}

func (s *MemoryDocumentStore) collection(name string) map[string]Document {
	c, ok := s.collections[name]
	if !ok {
		c = make(map[string]Document)
		s.collections[name] = c
	}
	return c
}

// CachedDocumentStore кэширует списки коллекций в LRU с истечением срока.
// Запись в коллекцию сбрасывает её кэш.
type CachedDocumentStore struct {
	next  DocumentStore
	cache *expirable.LRU[string, []Document]
}

func NewCachedDocumentStore(next DocumentStore, size int, ttl time.Duration) *CachedDocumentStore {
	if size <= 0 {
		size = 128
	}
	return &CachedDocumentStore{
		next:  next,
		cache: expirable.NewLRU[string, []Document](size, nil, ttl),
	}
}

func (s *CachedDocumentStore) List(ctx context.Context, collection string) ([]Document, error) {
	if docs, ok := s.cache.Get(collection); ok {
		return copyDocuments(docs), nil
	}
	docs, err := s.next.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	s.cache.Add(collection, copyDocuments(docs))
	return docs, nil
}

func (s *CachedDocumentStore) Get(ctx context.Context, collection, id string) (Document, bool, error) {
	return s.next.Get(ctx, collection, id)
}

func (s *CachedDocumentStore) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	d, err := s.next.Create(ctx, collection, doc)
	if err != nil {
		return nil, err
	}
	s.cache.Remove(collection)
	return d, nil
}

func (s *CachedDocumentStore) Upsert(ctx context.Context, collection string, doc Document) (Document, error) {
	d, err := s.next.Upsert(ctx, collection, doc)
	if err != nil {
		return nil, err
	}
	s.cache.Remove(collection)
	return d, nil
}

func withID(doc Document) Document {
	out := copyDocument(doc)
	if out == nil {
		out = Document{}
	}
	if out.ID() == "" {
		out["id"] = uuid.New().String()
	}
	return out
}

func copyDocument(d Document) Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func copyDocuments(docs []Document) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = copyDocument(d)
	}
	return out
}

func sortDocuments(docs []Document) {
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID() < docs[j].ID() })
}
