package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smartq/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHubServer(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/api/queues/:id/ws", func(c *gin.Context) {
		hub.ServeQueue(c, c.Param("id"))
	})
	ts := httptest.NewServer(r)
	t.Cleanup(func() {
		cancel()
		ts.Close()
	})
	return hub, ts, cancel
}

func dialQueue(t *testing.T, ts *httptest.Server, queueID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/queues/" + queueID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "Ошибка подключения к WS")
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubDeliversQueueEvents(t *testing.T) {
	hub, ts, _ := setupHubServer(t)

	conn := dialQueue(t, ts, "q1")
	other := dialQueue(t, ts, "q2")
	require.Eventually(t, func() bool {
		return hub.Subscribers("q1") == 1 && hub.Subscribers("q2") == 1
	}, time.Second, 10*time.Millisecond)

	err := hub.Notify(context.Background(), queue.Event{
		EventType: queue.EventPositionChanged,
		QueueID:   "q1",
		Timestamp: time.Now(),
		Data:      map[string]interface{}{"entry_id": "A", "position": 2},
	})
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err, "Ошибка чтения WS сообщения")

	var msg map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "position_changed", msg["event_type"])
	assert.Equal(t, "q1", msg["queue_id"])
	data := msg["data"].(map[string]interface{})
	assert.Equal(t, "A", data["entry_id"])

	// подписчик другой очереди ничего не получает
	other.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = other.ReadMessage()
	assert.Error(t, err)
}

func TestHubUnregistersClosedClients(t *testing.T) {
	hub, ts, _ := setupHubServer(t)

	conn := dialQueue(t, ts, "q1")
	require.Eventually(t, func() bool { return hub.Subscribers("q1") == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.Subscribers("q1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHubStopped(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	// буфер рассылки заполняется, после чего Notify сообщает об остановке
	var err error
	for i := 0; i <= sendBuffer && err == nil; i++ {
		err = hub.Notify(context.Background(), queue.Event{EventType: queue.EventQueueRefreshed, QueueID: "q1"})
	}
	assert.ErrorIs(t, err, ErrHubStopped)
}
