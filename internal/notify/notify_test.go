package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"smartq/internal/queue"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	key  string
	msgs []amqp.Publishing
	err  error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.key = key
	f.msgs = append(f.msgs, msg)
	return nil
}

type sinkFunc func(ctx context.Context, ev queue.Event) error

func (f sinkFunc) Notify(ctx context.Context, ev queue.Event) error { return f(ctx, ev) }

func TestAMQPNotifierPublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{}
	n := newAMQPNotifier(ch, "smartq.queue.events")

	ts := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	err := n.Notify(context.Background(), queue.Event{
		EventType: queue.EventEmergencyApproved,
		QueueID:   "q1",
		Timestamp: ts,
		Data:      map[string]interface{}{"entry_id": "C"},
	})
	require.NoError(t, err)

	require.Len(t, ch.msgs, 1)
	assert.Equal(t, "smartq.queue.events", ch.key)
	msg := ch.msgs[0]
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "emergency_approved", msg.Type)
	assert.Equal(t, ts, msg.Timestamp)

	var decoded queue.Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "q1", decoded.QueueID)
	assert.Equal(t, queue.EventEmergencyApproved, decoded.EventType)
}

func TestAMQPNotifierWrapsPublishError(t *testing.T) {
	brokerErr := errors.New("channel closed")
	n := newAMQPNotifier(&fakeChannel{err: brokerErr}, "q")

	err := n.Notify(context.Background(), queue.Event{EventType: queue.EventStatusChanged})
	assert.ErrorIs(t, err, brokerErr)
	assert.NoError(t, n.Close())
}

func TestMultiDeliversToAllSinks(t *testing.T) {
	failure := errors.New("sink down")
	var got []string
	m := NewMulti(nil,
		sinkFunc(func(_ context.Context, ev queue.Event) error {
			got = append(got, "first:"+ev.QueueID)
			return failure
		}),
	)
	m.Add(sinkFunc(func(_ context.Context, ev queue.Event) error {
		got = append(got, "second:"+ev.QueueID)
		return nil
	}))

	err := m.Notify(context.Background(), queue.Event{QueueID: "q1"})
	assert.ErrorIs(t, err, failure)
	assert.Equal(t, []string{"first:q1", "second:q1"}, got)

	ok := NewMulti(nil)
	assert.NoError(t, ok.Notify(context.Background(), queue.Event{}))
}
