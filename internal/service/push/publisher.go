package push

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"berbagi/internal/domain"
)

// Message is the body consumed by the push gateway.
type Message struct {
	UserID  uuid.UUID              `json:"user_id"`
	Payload domain.DeliveryPayload `json:"payload"`
	SentAt  time.Time              `json:"sent_at"`
}

// Publisher hands push payloads to the gateway through a topic exchange.
// Routing keys are "push.<notification type>".
type Publisher struct {
	channel  *amqp091.Channel
	exchange string
	mu       sync.Mutex
}

func NewPublisher(conn *amqp091.Connection, exchange string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{channel: ch, exchange: exchange}, nil
}

func (p *Publisher) Send(ctx context.Context, userID uuid.UUID, payload domain.DeliveryPayload) error {
	body, err := json.Marshal(Message{UserID: userID, Payload: payload, SentAt: time.Now().UTC()})
	if err != nil {
		return err
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		"push."+string(payload.Type),
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			MessageId:    payload.NotificationID.String(),
			Body:         body,
			DeliveryMode: amqp091.Persistent,
		},
	)
}

func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
}
