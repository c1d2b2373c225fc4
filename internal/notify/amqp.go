package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"smartq/internal/queue"

	amqp "github.com/rabbitmq/amqp091-go"
)

// publisher: часть amqp.Channel, нужная для публикации.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// AMQPNotifier публикует события очередей в RabbitMQ для голосовых, push и SMS-рассыльщиков.
type AMQPNotifier struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    publisher
	queue string
}

// DialAMQP подключается к брокеру и объявляет durable-очередь событий.
func DialAMQP(url, queueName string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	return &AMQPNotifier{conn: conn, ch: ch, queue: queueName}, nil
}

func newAMQPNotifier(ch publisher, queueName string) *AMQPNotifier {
	return &AMQPNotifier{ch: ch, queue: queueName}
}

func (n *AMQPNotifier) Notify(ctx context.Context, ev queue.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ts.UTC(),
		Type:         string(ev.EventType),
		Body:         body,
	}

	// amqp.Channel нельзя использовать из нескольких горутин одновременно
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.ch.PublishWithContext(ctx, "", n.queue, false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
