package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"berbagi/internal/domain"
	"berbagi/internal/middleware"
	"berbagi/internal/pkg/logger"
	"berbagi/internal/service/notification"
	"berbagi/internal/service/realtime"
)

const streamKeepAlive = 25 * time.Second

// Subscriber opens a realtime feed for one user.
type Subscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (*realtime.Subscription, error)
}

type NotificationHandler struct {
	notifService notification.Service
	subscriber   Subscriber
}

func NewNotificationHandler(notifService notification.Service, subscriber Subscriber) *NotificationHandler {
	return &NotificationHandler{notifService: notifService, subscriber: subscriber}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	filter := domain.NotificationFilter{UnreadOnly: c.QueryBool("unread_only", false)}
	if t := c.Query("type"); t != "" {
		notifType := domain.NotificationType(t)
		filter.Type = &notifType
	}

	result, err := h.notifService.List(c.Context(), userID, filter, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	notifID, err := parseIDParam(c, "id", "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAsRead(c.Context(), notifID, userID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	updated, err := h.notifService.MarkAllAsRead(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"updated": updated,
	})
}

type streamEvent struct {
	Notification domain.Notification `json:"notification"`
	UnreadCount  int64               `json:"unread_count"`
}

// Stream relays the caller's realtime channel as Server-Sent Events. Repeated
// deliveries of the same notification id are dropped before reaching the
// client.
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	unread, err := h.notifService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	// the request context ends when the handler returns, before streaming
	streamCtx, cancel := context.WithCancel(context.Background())
	sub, err := h.subscriber.Subscribe(streamCtx, userID)
	if err != nil {
		cancel()
		return err
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer sub.Close()

		feed := realtime.NewFeed(nil, unread)
		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		fmt.Fprintf(w, "event: ready\ndata: {\"unread_count\":%d}\n\n", unread)
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case notif, ok := <-sub.Notifications():
				if !ok {
					return
				}
				if !feed.Apply(notif) {
					continue
				}
				data, err := json.Marshal(streamEvent{Notification: notif, UnreadCount: feed.UnreadCount()})
				if err != nil {
					logger.Warn("Failed to encode stream event", zap.String("notification_id", notif.ID.String()), zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "event: notification\nid: %s\ndata: %s\n\n", notif.ID, data)
			case <-keepAlive.C:
				fmt.Fprint(w, ": ping\n\n")
			}

			if err := w.Flush(); err != nil {
				// client went away
				return
			}
		}
	}))

	return nil
}
