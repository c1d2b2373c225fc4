package seed

import (
	"context"
	"testing"

	"smartq/internal/models"
	"smartq/internal/queue"
	"smartq/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBundledSeed(t *testing.T) {
	f, err := Load("../../seed/queues.yaml")
	require.NoError(t, err)
	require.Len(t, f.Queues, 4)

	store := queue.NewStore()
	require.NoError(t, f.Apply(store))

	list, err := store.List("biz_city_medical")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "q_1", list[0].ID)
	assert.Equal(t, models.StatusInService, list[0].Status)
	assert.True(t, list[2].IsEmergency)

	q, err := store.Queue("biz_elite_hair")
	require.NoError(t, err)
	assert.Equal(t, "Elite Hair Salon", q.BusinessName)
	assert.True(t, q.IsActive)

	docs := storage.NewMemoryDocumentStore()
	require.NoError(t, f.ApplyCatalog(context.Background(), docs))
	cities, err := docs.List(context.Background(), storage.CollectionCities)
	require.NoError(t, err)
	assert.Len(t, cities, 3)
}

func TestParseOrdersByPosition(t *testing.T) {
	data := []byte(`
queues:
  - id: q1
    business_name: Test
    is_active: true
    entries:
      - {id: b, customer_name: B, service: s, position: 2, status: waiting}
      - {id: a, customer_name: A, service: s, position: 1, status: waiting}
      - {id: x, customer_name: X, service: s, position: 3, status: completed}
`)
	f, err := Parse(data)
	require.NoError(t, err)

	store := queue.NewStore()
	require.NoError(t, f.Apply(store))
	list, _ := store.List("q1")
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)

	history, _ := store.History("q1")
	assert.Len(t, history, 1)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("queues:\n  - business_name: no id\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("queues:\n  - id: a\n    business_name: A\n  - id: a\n    business_name: B\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("queues: [unclosed"))
	assert.Error(t, err)
}

func TestParseRejectsBadEntryIDs(t *testing.T) {
	_, err := Parse([]byte(`
queues:
  - id: q1
    business_name: Test
    entries:
      - {id: dup, customer_name: A, service: s, position: 1}
      - {id: dup, customer_name: B, service: s, position: 2, is_emergency: true}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")

	_, err = Parse([]byte(`
queues:
  - id: q1
    business_name: Test
    entries:
      - {customer_name: A, service: s, position: 1}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id is required")

	// одинаковые ID в разных очередях допустимы
	_, err = Parse([]byte(`
queues:
  - id: q1
    business_name: A
    entries:
      - {id: e1, customer_name: A, service: s, position: 1}
  - id: q2
    business_name: B
    entries:
      - {id: e1, customer_name: B, service: s, position: 1}
`))
	assert.NoError(t, err)
}
