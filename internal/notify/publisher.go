package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher fans booking lifecycle events out to whatever notifier is
// listening. Callers treat publishing as best-effort.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

type Broker struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewBroker(url, exchange string) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Broker{conn: conn, ch: ch, exchange: exchange}, nil
}

func (b *Broker) PublishJSON(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.ch.PublishWithContext(ctx, b.exchange, key, false, false, amqp.Publishing{
		MessageId:   uuid.NewString(),
		ContentType: "application/json",
		Body:        body,
	})
}

func (b *Broker) Close() error {
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}

// Noop drops everything; used when no broker is configured.
type Noop struct{}

func (Noop) PublishJSON(context.Context, string, any) error { return nil }

func (Noop) Close() error { return nil }

var (
	_ Publisher = (*Broker)(nil)
	_ Publisher = Noop{}
)
