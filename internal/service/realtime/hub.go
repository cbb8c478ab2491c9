package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"berbagi/internal/domain"
	"berbagi/internal/pkg/logger"
)

// Publisher announces newly persisted notifications to their recipient.
type Publisher interface {
	Publish(ctx context.Context, notif domain.Notification) error
}

// Hub fans notifications out over Redis pub/sub, one channel per recipient.
// Redis pub/sub does not coalesce, so rapid inserts are delivered one
// message each.
type Hub struct {
	rdb    *redis.Client
	prefix string
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb, prefix: "notifications"}
}

func (h *Hub) channel(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", h.prefix, userID)
}

func (h *Hub) Publish(ctx context.Context, notif domain.Notification) error {
	payload, err := json.Marshal(notif)
	if err != nil {
		return err
	}
	return h.rdb.Publish(ctx, h.channel(notif.UserID), payload).Err()
}

// Subscription is one connected client's view of its channel.
type Subscription struct {
	pubsub *redis.PubSub
	out    chan domain.Notification
}

// Subscribe starts relaying userID's channel. The returned channel closes
// when ctx is done or Close is called.
func (h *Hub) Subscribe(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	pubsub := h.rdb.Subscribe(ctx, h.channel(userID))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe notifications: %w", err)
	}

	sub := &Subscription{
		pubsub: pubsub,
		out:    make(chan domain.Notification, 64),
	}
	go sub.relay(ctx)
	return sub, nil
}

func (s *Subscription) relay(ctx context.Context) {
	defer close(s.out)

	msgs := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var notif domain.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &notif); err != nil {
				logger.Warn("Dropping malformed realtime payload", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			select {
			case s.out <- notif:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Subscription) Notifications() <-chan domain.Notification {
	return s.out
}

func (s *Subscription) Close() error {
	return s.pubsub.Close()
}
