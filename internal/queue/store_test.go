package queue

import (
	"fmt"
	"testing"
	"time"

	"smartq/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	seq := 0
	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("e%d", seq)
		}),
	}
	return NewStore(append(base, opts...)...)
}

// seedQueue создаёт очередь q1 с записями в заданном порядке.
func seedQueue(t *testing.T, s *Store, entries ...models.QueueEntry) {
	t.Helper()
	for i := range entries {
		if entries[i].Position == 0 {
			entries[i].Position = i + 1
		}
		if entries[i].Status == "" {
			entries[i].Status = models.StatusWaiting
		}
	}
	require.NoError(t, s.Replace(models.Queue{ID: "q1", BusinessName: "City Medical Center", IsActive: true}, entries))
}

func ids(entries []models.QueueEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func requireContiguous(t *testing.T, entries []models.QueueEntry) {
	t.Helper()
	for i, e := range entries {
		require.Equal(t, i+1, e.Position, "entry %s", e.ID)
	}
}

func TestStore_CreateQueue(t *testing.T) {
	s := newTestStore(t)

	q, err := s.CreateQueue(models.Queue{ID: "q1", BusinessName: "Elite Hair Salon", Category: "Beauty", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, testNow, q.CreatedAt)

	_, err = s.CreateQueue(models.Queue{ID: "q1", BusinessName: "Other"})
	assert.ErrorIs(t, err, ErrQueueExists)

	_, err = s.CreateQueue(models.Queue{ID: "q2"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "business_name", verr.Field)

	assert.Len(t, s.Queues(), 1)

	_, err = s.List("missing")
	assert.ErrorIs(t, err, ErrQueueNotFound)
}

func TestStore_Enqueue(t *testing.T) {
	s := newTestStore(t, WithDefaultServiceMinutes(20))
	_, err := s.CreateQueue(models.Queue{ID: "q1", BusinessName: "Quick Fix Auto", IsActive: true})
	require.NoError(t, err)

	first, err := s.Enqueue("q1", models.Booking{CustomerID: 7, CustomerName: "Anna", Service: "Oil change", ServiceMinutes: 30})
	require.NoError(t, err)
	assert.Equal(t, "e1", first.ID)
	assert.Equal(t, 1, first.Position)
	assert.Equal(t, 0, first.EstimatedWaitMinutes)
	assert.Equal(t, models.StatusWaiting, first.Status)
	assert.Equal(t, testNow, first.ScheduledTime)

	second, err := s.Enqueue("q1", models.Booking{CustomerName: "Boris", Service: "Tyres"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Position)
	assert.Equal(t, 30, second.EstimatedWaitMinutes)
	assert.Equal(t, 20, second.ServiceMinutes)

	third, err := s.Enqueue("q1", models.Booking{EntryID: "fixed", CustomerName: "Clara", Service: "Brakes"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", third.ID)
	assert.Equal(t, 50, third.EstimatedWaitMinutes)

	_, err = s.Enqueue("q1", models.Booking{EntryID: "fixed", CustomerName: "Clara", Service: "Brakes"})
	assert.ErrorIs(t, err, ErrEntryExists)

	_, err = s.Enqueue("q1", models.Booking{CustomerName: "Dan"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = s.Enqueue("nope", models.Booking{CustomerName: "Dan", Service: "x"})
	assert.ErrorIs(t, err, ErrQueueNotFound)

	list, err := s.List("q1")
	require.NoError(t, err)
	requireContiguous(t, list)
}

func TestStore_TickScenario(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A", EstimatedWaitMinutes: 10},
		models.QueueEntry{ID: "B", EstimatedWaitMinutes: 20},
		models.QueueEntry{ID: "C", EstimatedWaitMinutes: 30},
	)

	changes := s.Tick()
	assert.Len(t, changes, 3)
	list, _ := s.List("q1")
	assert.Equal(t, []int{9, 19, 29}, []int{list[0].EstimatedWaitMinutes, list[1].EstimatedWaitMinutes, list[2].EstimatedWaitMinutes})

	for i := 0; i < 7; i++ {
		s.Tick()
	}
	a, err := s.Entry("q1", "A")
	require.NoError(t, err)
	assert.Equal(t, 2, a.EstimatedWaitMinutes)
	assert.Equal(t, models.StatusNext, a.Status)

	s.Tick()
	s.Tick()
	a, _ = s.Entry("q1", "A")
	assert.Equal(t, 0, a.EstimatedWaitMinutes)
	assert.Equal(t, models.StatusInService, a.Status)
	require.NotNil(t, a.ActualStartTime)
	assert.Equal(t, testNow, *a.ActualStartTime)

	b, _ := s.Entry("q1", "B")
	assert.Equal(t, 10, b.EstimatedWaitMinutes)
	assert.Equal(t, models.StatusWaiting, b.Status)
}

func TestStore_TickWaitNeverNegative(t *testing.T) {
	s := newTestStore(t, WithJitter(NewJitterPolicy(0.5, 42)))
	seedQueue(t, s,
		models.QueueEntry{ID: "A", EstimatedWaitMinutes: 0},
		models.QueueEntry{ID: "B", EstimatedWaitMinutes: 1},
		models.QueueEntry{ID: "C", EstimatedWaitMinutes: 3},
		models.QueueEntry{ID: "D", EstimatedWaitMinutes: 40},
		models.QueueEntry{ID: "E", EstimatedWaitMinutes: 45},
	)

	for i := 0; i < 60; i++ {
		s.Tick()
		list, _ := s.List("q1")
		require.Len(t, list, 5)
		requireContiguous(t, list)
		for _, e := range list {
			require.GreaterOrEqual(t, e.EstimatedWaitMinutes, 0)
		}
	}
}

func TestStore_TickStatusAdvancesOncePerTick(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s, models.QueueEntry{ID: "A", EstimatedWaitMinutes: 0})

	s.Tick()
	a, _ := s.Entry("q1", "A")
	assert.Equal(t, models.StatusNext, a.Status)
	assert.Nil(t, a.ActualStartTime)

	s.Tick()
	a, _ = s.Entry("q1", "A")
	assert.Equal(t, models.StatusInService, a.Status)

	changes := s.Tick()
	assert.Empty(t, changes)
}

func TestStore_TickJitter(t *testing.T) {
	s := newTestStore(t, WithJitter(JitterPolicy{Probability: 1}))
	seedQueue(t, s,
		models.QueueEntry{ID: "A", EstimatedWaitMinutes: 30},
		models.QueueEntry{ID: "B", EstimatedWaitMinutes: 40},
		models.QueueEntry{ID: "C", EstimatedWaitMinutes: 50},
		models.QueueEntry{ID: "D", EstimatedWaitMinutes: 60},
	)

	changes := s.Tick()
	list, _ := s.List("q1")
	assert.Equal(t, []string{"B", "A", "D", "C"}, ids(list))
	requireContiguous(t, list)

	moved := 0
	for _, c := range changes {
		if c.PositionChanged() {
			moved++
		}
	}
	assert.Equal(t, 4, moved)
}

func TestStore_TickJitterKeepsApprovedEmergencyFirst(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A", EstimatedWaitMinutes: 30},
		models.QueueEntry{ID: "B", EstimatedWaitMinutes: 40},
		models.QueueEntry{ID: "C", EstimatedWaitMinutes: 50, IsEmergency: true},
	)
	_, _, err := s.ApproveEmergency("q1", "C")
	require.NoError(t, err)

	s.jitter = JitterPolicy{Probability: 1}
	s.Tick()
	list, _ := s.List("q1")
	assert.Equal(t, []string{"C", "B", "A"}, ids(list))
}

func TestStore_TickJitterDisabled(t *testing.T) {
	s := newTestStore(t, WithJitter(NewJitterPolicy(0, 1)))
	seedQueue(t, s,
		models.QueueEntry{ID: "A", EstimatedWaitMinutes: 30},
		models.QueueEntry{ID: "B", EstimatedWaitMinutes: 40},
	)
	for i := 0; i < 5; i++ {
		s.Tick()
	}
	list, _ := s.List("q1")
	assert.Equal(t, []string{"A", "B"}, ids(list))
}

func TestStore_ApproveEmergency(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A"},
		models.QueueEntry{ID: "B"},
		models.QueueEntry{ID: "C", IsEmergency: true},
	)

	list, changes, err := s.ApproveEmergency("q1", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, ids(list))
	requireContiguous(t, list)
	assert.Len(t, changes, 3)
	require.NotNil(t, list[0].EmergencyApprovedAt)
	assert.Equal(t, testNow, *list[0].EmergencyApprovedAt)
}

func TestStore_ApproveEmergencyPreservesOthers(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A"},
		models.QueueEntry{ID: "B"},
		models.QueueEntry{ID: "C", IsEmergency: true},
		models.QueueEntry{ID: "D"},
		models.QueueEntry{ID: "E"},
	)

	list, changes, err := s.ApproveEmergency("q1", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B", "D", "E"}, ids(list))
	assert.Equal(t, 4, list[3].Position)
	assert.Equal(t, 5, list[4].Position)

	// D и E не сдвигались
	assert.Len(t, changes, 3)
	for _, c := range changes {
		assert.NotContains(t, []string{"D", "E"}, c.Entry.ID)
	}
}

func TestStore_ApproveEmergencySuccessive(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A"},
		models.QueueEntry{ID: "B", IsEmergency: true},
		models.QueueEntry{ID: "C", IsEmergency: true},
	)

	_, _, err := s.ApproveEmergency("q1", "B")
	require.NoError(t, err)
	list, _, err := s.ApproveEmergency("q1", "C")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, ids(list))
}

func TestStore_ApproveEmergencyAlreadyFirst(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A", IsEmergency: true},
		models.QueueEntry{ID: "B"},
	)
	list, changes, err := s.ApproveEmergency("q1", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, ids(list))
	assert.Empty(t, changes)
}

func TestStore_EmergencyPreconditions(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A"},
		models.QueueEntry{ID: "B", IsEmergency: true, Status: models.StatusCompleted},
	)

	_, _, err := s.ApproveEmergency("q1", "A")
	assert.ErrorIs(t, err, ErrNotEmergency)
	_, err = s.DenyEmergency("q1", "A")
	assert.ErrorIs(t, err, ErrNotEmergency)

	_, _, err = s.ApproveEmergency("q1", "B")
	assert.ErrorIs(t, err, ErrEntryTerminal)

	_, _, err = s.ApproveEmergency("q1", "zzz")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, _, err = s.ApproveEmergency("q9", "A")
	assert.ErrorIs(t, err, ErrQueueNotFound)

	_, err = s.RequestEmergency("q1", "B")
	assert.ErrorIs(t, err, ErrEntryTerminal)
}

func TestStore_DenyEmergency(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A"},
		models.QueueEntry{ID: "B"},
		models.QueueEntry{ID: "C", IsEmergency: true},
	)

	entry, err := s.DenyEmergency("q1", "C")
	require.NoError(t, err)
	assert.True(t, entry.IsEmergency)
	assert.Equal(t, 3, entry.Position)

	list, _ := s.List("q1")
	assert.Equal(t, []string{"A", "B", "C"}, ids(list))
	assert.True(t, list[2].IsEmergency)
}

func TestStore_RequestEmergency(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s, models.QueueEntry{ID: "A"}, models.QueueEntry{ID: "B"})

	entry, err := s.RequestEmergency("q1", "B")
	require.NoError(t, err)
	assert.True(t, entry.IsEmergency)
	assert.Equal(t, 2, entry.Position)

	list, _, err := s.ApproveEmergency("q1", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, ids(list))
}

func TestStore_UpdateStatus(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A", Status: models.StatusNext},
		models.QueueEntry{ID: "B"},
		models.QueueEntry{ID: "C"},
	)

	entry, _, err := s.UpdateStatus("q1", "A", models.StatusInService)
	require.NoError(t, err)
	require.NotNil(t, entry.ActualStartTime)

	entry, changes, err := s.UpdateStatus("q1", "A", models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Position)
	assert.Len(t, changes, 3)

	list, _ := s.List("q1")
	assert.Equal(t, []string{"B", "C"}, ids(list))
	requireContiguous(t, list)

	history, _ := s.History("q1")
	require.Len(t, history, 1)
	assert.Equal(t, "A", history[0].ID)
	assert.Equal(t, models.StatusCompleted, history[0].Status)

	_, _, err = s.UpdateStatus("q1", "A", models.StatusWaiting)
	assert.ErrorIs(t, err, ErrEntryTerminal)

	_, _, err = s.UpdateStatus("q1", "B", models.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, _, err = s.UpdateStatus("q1", "B", models.Status("lost"))
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, _, err = s.UpdateStatus("q1", "C", models.StatusNoShow)
	require.NoError(t, err)
	list, _ = s.List("q1")
	assert.Equal(t, []string{"B"}, ids(list))
	assert.Equal(t, 1, list[0].Position)
}

func TestStore_ReplaceRederivesPositions(t *testing.T) {
	s := newTestStore(t)
	err := s.Replace(models.Queue{ID: "q1", BusinessName: "Metro Dental Care"}, []models.QueueEntry{
		{ID: "C", Position: 7, Status: models.StatusWaiting},
		{ID: "A", Position: 2, Status: models.StatusNext},
		{ID: "X", Position: 1, Status: models.StatusCancelled},
		{ID: "B", Position: 5, Status: models.StatusWaiting, EstimatedWaitMinutes: -3},
	})
	require.NoError(t, err)

	list, _ := s.List("q1")
	assert.Equal(t, []string{"A", "B", "C"}, ids(list))
	requireContiguous(t, list)
	assert.Equal(t, 0, list[1].EstimatedWaitMinutes)

	history, _ := s.History("q1")
	require.Len(t, history, 1)
	assert.Equal(t, 0, history[0].Position)

	err = s.Replace(models.Queue{ID: "q1"}, []models.QueueEntry{{ID: "Z", Status: "bogus"}})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestStore_ReplaceRejectsBadEntryIDs(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s, models.QueueEntry{ID: "A"})

	var verr *ValidationError
	err := s.Replace(models.Queue{ID: "q1", BusinessName: "City Medical Center"}, []models.QueueEntry{
		{ID: "dup", Position: 1, Status: models.StatusWaiting},
		{ID: "dup", Position: 2, Status: models.StatusWaiting, IsEmergency: true},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "entry_id", verr.Field)

	// дубликат между активной записью и историей тоже не проходит
	err = s.Replace(models.Queue{ID: "q1", BusinessName: "City Medical Center"}, []models.QueueEntry{
		{ID: "dup", Position: 1, Status: models.StatusWaiting},
		{ID: "dup", Status: models.StatusCompleted},
	})
	assert.ErrorAs(t, err, &verr)

	err = s.Replace(models.Queue{ID: "q1", BusinessName: "City Medical Center"}, []models.QueueEntry{
		{Position: 1, Status: models.StatusWaiting},
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "entry_id", verr.Field)

	// неудачная замена не трогает текущее состояние
	list, _ := s.List("q1")
	assert.Equal(t, []string{"A"}, ids(list))
}

func TestStore_EnqueueCarriesEmergencyAndNotes(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s, models.QueueEntry{ID: "A"})

	e, err := s.Enqueue("q1", models.Booking{CustomerName: "Anna", Service: "Emergency Visit", IsEmergency: true, Notes: "chipped tooth"})
	require.NoError(t, err)
	assert.True(t, e.IsEmergency)
	assert.Equal(t, "chipped tooth", e.Notes)
	assert.Equal(t, 2, e.Position)

	list, _, err := s.ApproveEmergency("q1", e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{e.ID, "A"}, ids(list))
}

func TestStore_SnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A", EstimatedWaitMinutes: 5},
		models.QueueEntry{ID: "B", EstimatedWaitMinutes: 15, IsEmergency: true},
		models.QueueEntry{ID: "C", EstimatedWaitMinutes: 25},
	)
	_, _, err := s.ApproveEmergency("q1", "B")
	require.NoError(t, err)
	_, _, err = s.UpdateStatus("q1", "A", models.StatusCancelled)
	require.NoError(t, err)

	q, entries, err := s.Snapshot("q1")
	require.NoError(t, err)

	restored := newTestStore(t)
	require.NoError(t, restored.Replace(q, entries))

	want, _ := s.List("q1")
	got, _ := restored.List("q1")
	assert.Equal(t, want, got)

	wantHistory, _ := s.History("q1")
	gotHistory, _ := restored.History("q1")
	assert.Equal(t, wantHistory, gotHistory)
}

func TestStore_SnapshotIsCopy(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s, models.QueueEntry{ID: "A", EstimatedWaitMinutes: 5})

	list, _ := s.List("q1")
	list[0].Position = 42
	list[0].Status = models.StatusCompleted

	again, _ := s.List("q1")
	assert.Equal(t, 1, again[0].Position)
	assert.Equal(t, models.StatusWaiting, again[0].Status)
}

func TestStore_EntriesForCustomer(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A", CustomerID: 1},
		models.QueueEntry{ID: "B", CustomerID: 2},
		models.QueueEntry{ID: "C", CustomerID: 1, Status: models.StatusCompleted},
	)

	entries := s.EntriesForCustomer(1)
	assert.Equal(t, []string{"A"}, ids(entries))
	assert.Empty(t, s.EntriesForCustomer(99))
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A", Status: models.StatusInService, EstimatedWaitMinutes: 0},
		models.QueueEntry{ID: "B", EstimatedWaitMinutes: 10, IsEmergency: true},
		models.QueueEntry{ID: "C", Status: models.StatusDelayed, EstimatedWaitMinutes: 20},
		models.QueueEntry{ID: "D", Status: models.StatusCompleted},
		models.QueueEntry{ID: "E", Status: models.StatusCompleted},
		models.QueueEntry{ID: "F", Status: models.StatusCompleted},
		models.QueueEntry{ID: "G", Status: models.StatusNoShow},
	)

	st, err := s.Stats("q1")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Active)
	assert.Equal(t, 1, st.Waiting)
	assert.Equal(t, 1, st.InService)
	assert.Equal(t, 1, st.Delayed)
	assert.Equal(t, 3, st.Completed)
	assert.Equal(t, 1, st.NoShow)
	assert.Equal(t, 1, st.Emergency)
	assert.InDelta(t, 10.0, st.AvgWaitMinutes, 0.001)
	assert.InDelta(t, 25.0, st.NoShowRate, 0.001)

	_, err = s.Stats("none")
	assert.ErrorIs(t, err, ErrQueueNotFound)
}

func TestStore_PruneHistory(t *testing.T) {
	s := newTestStore(t)
	seedQueue(t, s,
		models.QueueEntry{ID: "A", Status: models.StatusCompleted, UpdatedAt: testNow.Add(-48 * time.Hour)},
		models.QueueEntry{ID: "B", Status: models.StatusNoShow, UpdatedAt: testNow},
		models.QueueEntry{ID: "C"},
	)

	removed := s.PruneHistory(testNow.Add(-24 * time.Hour))
	assert.Equal(t, 1, removed)

	history, _ := s.History("q1")
	assert.Equal(t, []string{"B"}, ids(history))
	list, _ := s.List("q1")
	assert.Equal(t, []string{"C"}, ids(list))
}
