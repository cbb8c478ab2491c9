package service

import (
	"time"

	"github.com/redis/go-redis/v9"

	"berbagi/internal/config"
	"berbagi/internal/pkg/dedup"
	"berbagi/internal/repository"
	"berbagi/internal/service/actor"
	"berbagi/internal/service/claim"
	"berbagi/internal/service/comment"
	"berbagi/internal/service/email"
	"berbagi/internal/service/membership"
	"berbagi/internal/service/message"
	"berbagi/internal/service/notification"
	"berbagi/internal/service/preference"
	"berbagi/internal/service/realtime"
	"berbagi/internal/service/reminder"
	"berbagi/internal/service/resource"
	"berbagi/internal/service/shoutout"
	"berbagi/internal/service/trust"
)

// Fast-path window for claim notification dedup; the unique index covers
// anything older.
const dispatchDedupTTL = 24 * time.Hour

type Services struct {
	Claim        claim.Service
	Comment      comment.Service
	Resource     resource.Service
	Membership   membership.Service
	Message      message.Service
	Shoutout     shoutout.Service
	Trust        trust.Service
	Reminder     reminder.Service
	Notification notification.Service
	Preference   preference.Service
	Email        email.Service
	Realtime     *realtime.Hub
}

// NewServices wires every service. push may be nil when no broker is
// configured; pool runs push, email and realtime side effects.
func NewServices(repos *repository.Repositories, redis *redis.Client, push notification.Sink, pool notification.Submitter, cfg *config.Config) *Services {
	emailService := email.NewService(cfg, repos.User)
	actorResolver := actor.NewResolver(repos.User, redis, cfg.ActorCacheTTL)
	hub := realtime.NewHub(redis)

	var emailSink notification.Sink
	if cfg.ResendAPIKey != "" {
		emailSink = emailService
	}

	notificationService := notification.NewService(notification.Dependencies{
		Notifications: repos.Notification,
		Preferences:   repos.Preference,
		Actors:        actorResolver,
		Deduper:       dedup.NewDeduper(redis, "dispatch", dispatchDedupTTL),
		Pool:          pool,
		Realtime:      hub,
		Push:          push,
		Email:         emailSink,
	}, notification.Options{
		Locale:          cfg.Locale,
		DeliveryTimeout: cfg.DeliveryTimeout,
	})

	claimService := claim.NewService(repos.Claim, repos.Resource)
	commentService := comment.NewService(repos.Comment, repos.Resource)
	resourceService := resource.NewService(repos.Resource, repos.Membership)
	membershipService := membership.NewService(repos.Membership)
	messageService := message.NewService(repos.Conversation)
	shoutoutService := shoutout.NewService(repos.Shoutout)
	trustService := trust.NewService(repos.Trust)

	claimService.SetNotificationService(notificationService)
	commentService.SetNotificationService(notificationService)
	resourceService.SetNotificationService(notificationService)
	membershipService.SetNotificationService(notificationService)
	messageService.SetNotificationService(notificationService)
	shoutoutService.SetNotificationService(notificationService)
	trustService.SetNotificationService(notificationService)

	reminderService := reminder.NewService(
		repos.Resource,
		notificationService,
		dedup.NewDeduper(redis, "reminder", cfg.ReminderWindow*2),
		cfg.ReminderWindow,
	)

	return &Services{
		Claim:        claimService,
		Comment:      commentService,
		Resource:     resourceService,
		Membership:   membershipService,
		Message:      messageService,
		Shoutout:     shoutoutService,
		Trust:        trustService,
		Reminder:     reminderService,
		Notification: notificationService,
		Preference:   preference.NewService(repos.Preference),
		Email:        emailService,
		Realtime:     hub,
	}
}
