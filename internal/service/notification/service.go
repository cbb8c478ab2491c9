package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"berbagi/internal/domain"
	"berbagi/internal/pkg/dedup"
	"berbagi/internal/pkg/i18n"
	"berbagi/internal/pkg/logger"
	"berbagi/internal/pkg/metrics"
	"berbagi/internal/pkg/worker"
	"berbagi/internal/repository"
	"berbagi/internal/service/actor"
	"berbagi/internal/service/realtime"
)

type Outcome string

const (
	// in-app row written (push/email may also have been queued)
	OutcomePersisted Outcome = "persisted"
	// in-app disabled for the type but push or email queued
	OutcomeDelivered            Outcome = "delivered"
	OutcomeSuppressedSelf       Outcome = "suppressed_self"
	OutcomeSuppressedDuplicate  Outcome = "suppressed_duplicate"
	OutcomeSuppressedPreference Outcome = "suppressed_preference"
)

type DispatchResult struct {
	Outcome      Outcome
	Notification *domain.Notification
	Channels     domain.ChannelDecision
}

func (r DispatchResult) Suppressed() bool {
	return r.Outcome != OutcomePersisted && r.Outcome != OutcomeDelivered
}

// Sink is a fire-and-forget delivery channel (push gateway, email provider).
type Sink interface {
	Send(ctx context.Context, userID uuid.UUID, payload domain.DeliveryPayload) error
}

// Submitter runs side effects off the request path.
type Submitter interface {
	SubmitDetached(task worker.Task) error
}

type Service interface {
	// Dispatch runs the self, dedup and preference guards for one candidate
	// and persists the in-app row. Push, email and realtime fanout are
	// queued and never affect the result.
	Dispatch(ctx context.Context, candidate domain.Candidate) (DispatchResult, error)
	// DispatchAll dispatches every candidate, logging failures instead of
	// returning them.
	DispatchAll(ctx context.Context, candidates []domain.Candidate) []DispatchResult

	List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Dependencies struct {
	Notifications repository.NotificationRepository
	Preferences   repository.PreferenceRepository
	Actors        actor.Resolver
	Deduper       *dedup.Deduper
	Pool          Submitter
	Realtime      realtime.Publisher
	Push          Sink
	Email         Sink
}

type Options struct {
	Locale          string
	DeliveryTimeout time.Duration
}

type service struct {
	notifRepo repository.NotificationRepository
	prefRepo  repository.PreferenceRepository
	actors    actor.Resolver
	deduper   *dedup.Deduper
	pool      Submitter
	realtime  realtime.Publisher
	push      Sink
	email     Sink

	locale  string
	timeout time.Duration
}

func NewService(deps Dependencies, opts Options) Service {
	if opts.Locale == "" {
		opts.Locale = "en"
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = 10 * time.Second
	}
	return &service{
		notifRepo: deps.Notifications,
		prefRepo:  deps.Preferences,
		actors:    deps.Actors,
		deduper:   deps.Deduper,
		pool:      deps.Pool,
		realtime:  deps.Realtime,
		push:      deps.Push,
		email:     deps.Email,
		locale:    opts.Locale,
		timeout:   opts.DeliveryTimeout,
	}
}

func dedupKey(c domain.Candidate) string {
	return fmt.Sprintf("%s:%s:%s", c.TargetUserID, c.Type, *c.Linked.ClaimID)
}

func (s *service) Dispatch(ctx context.Context, c domain.Candidate) (DispatchResult, error) {
	if err := c.Validate(); err != nil {
		return DispatchResult{}, fmt.Errorf("invalid candidate %s: %w", c.Type, err)
	}

	if c.IsSelfNotification() {
		return s.suppress(c, OutcomeSuppressedSelf), nil
	}

	var key string
	if c.Type.RequiresDedup() {
		key = dedupKey(c)
		if !s.deduper.AcquireOnce(ctx, key) {
			return s.suppress(c, OutcomeSuppressedDuplicate), nil
		}
		exists, err := s.notifRepo.ExistsForClaim(ctx, c.TargetUserID, c.Type, *c.Linked.ClaimID)
		if err != nil {
			s.deduper.Release(ctx, key)
			return DispatchResult{}, fmt.Errorf("failed to check duplicate: %w", err)
		}
		if exists {
			return s.suppress(c, OutcomeSuppressedDuplicate), nil
		}
	}

	pref, err := s.prefRepo.GetOrCreate(ctx, c.TargetUserID)
	if err != nil {
		if key != "" {
			s.deduper.Release(ctx, key)
		}
		return DispatchResult{}, fmt.Errorf("failed to load preferences: %w", err)
	}

	decision := pref.Decide(c.Type)
	if !decision.Any() {
		return s.suppress(c, OutcomeSuppressedPreference), nil
	}

	notif := domain.Notification{
		ID:             uuid.New(),
		UserID:         c.TargetUserID,
		ActorID:        c.ActorID,
		Type:           c.Type,
		LinkedEntities: c.Linked,
		Metadata:       s.metadata(ctx, c),
		CreatedAt:      time.Now().UTC(),
	}
	result := DispatchResult{Outcome: OutcomeDelivered, Notification: &notif, Channels: decision}

	if decision.InApp {
		inserted, err := s.notifRepo.Create(ctx, &notif)
		if err != nil {
			if key != "" {
				s.deduper.Release(ctx, key)
			}
			return DispatchResult{}, fmt.Errorf("failed to create notification: %w", err)
		}
		if !inserted {
			return s.suppress(c, OutcomeSuppressedDuplicate), nil
		}
		result.Outcome = OutcomePersisted
		s.publish(notif)
	}

	s.deliver(notif, decision)
	metrics.RecordDispatch(string(c.Type), string(result.Outcome))
	return result, nil
}

func (s *service) DispatchAll(ctx context.Context, candidates []domain.Candidate) []DispatchResult {
	results := make([]DispatchResult, 0, len(candidates))
	for _, c := range candidates {
		result, err := s.Dispatch(ctx, c)
		if err != nil {
			logger.Error("Failed to dispatch notification",
				zap.String("type", string(c.Type)),
				zap.String("user_id", c.TargetUserID.String()),
				zap.Error(err),
			)
			continue
		}
		results = append(results, result)
	}
	return results
}

func (s *service) suppress(c domain.Candidate, outcome Outcome) DispatchResult {
	logger.Debug("Notification suppressed",
		zap.String("type", string(c.Type)),
		zap.String("user_id", c.TargetUserID.String()),
		zap.String("outcome", string(outcome)),
	)
	metrics.RecordDispatch(string(c.Type), string(outcome))
	return DispatchResult{Outcome: outcome}
}

// metadata attaches the actor's display fields. A missing or unreachable
// actor leaves them empty rather than failing the dispatch.
func (s *service) metadata(ctx context.Context, c domain.Candidate) domain.Metadata {
	md := domain.Metadata{Detail: c.Detail}
	if c.ActorID == nil || s.actors == nil {
		return md
	}

	a, err := s.actors.Resolve(ctx, *c.ActorID)
	if err != nil {
		logger.Warn("Failed to resolve actor",
			zap.String("actor_id", c.ActorID.String()),
			zap.Error(err),
		)
		return md
	}
	md.ActorName = a.DisplayName
	md.ActorAvatarURL = a.AvatarURL
	return md
}

func (s *service) publish(notif domain.Notification) {
	if s.realtime == nil {
		return
	}
	s.submit("realtime", func(ctx context.Context) {
		if err := s.realtime.Publish(ctx, notif); err != nil {
			metrics.RecordRealtimePublish("failed")
			logger.Warn("Failed to publish realtime notification",
				zap.String("notification_id", notif.ID.String()),
				zap.Error(err),
			)
			return
		}
		metrics.RecordRealtimePublish("success")
	})
}

func (s *service) payload(notif domain.Notification) domain.DeliveryPayload {
	data, err := notif.Metadata.Flatten()
	if err != nil {
		data = map[string]any{}
	}
	title, body := i18n.Render(s.locale, string(notif.Type), data)
	return domain.DeliveryPayload{
		NotificationID: notif.ID,
		Type:           notif.Type,
		Title:          title,
		Body:           body,
		Linked:         notif.LinkedEntities,
		Metadata:       notif.Metadata,
	}
}

func (s *service) deliver(notif domain.Notification, decision domain.ChannelDecision) {
	if !decision.Push && !decision.Email {
		return
	}
	payload := s.payload(notif)

	if decision.Push {
		s.send("push", s.push, notif.UserID, payload)
	}
	if decision.Email {
		s.send("email", s.email, notif.UserID, payload)
	}
}

func (s *service) send(channel string, sink Sink, userID uuid.UUID, payload domain.DeliveryPayload) {
	if sink == nil {
		metrics.RecordDelivery(channel, "skipped")
		return
	}
	s.submit(channel, func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		if err := sink.Send(ctx, userID, payload); err != nil {
			metrics.RecordDelivery(channel, "failed")
			logger.Warn("Notification delivery failed",
				zap.String("channel", channel),
				zap.String("notification_id", payload.NotificationID.String()),
				zap.Error(errors.Join(domain.ErrDeliveryFailure, err)),
			)
			return
		}
		metrics.RecordDelivery(channel, "success")
	})
}

func (s *service) submit(name string, task worker.Task) {
	if s.pool == nil {
		go task(context.Background())
		return
	}
	if err := s.pool.SubmitDetached(task); err != nil {
		logger.Warn("Failed to queue notification side effect", zap.String("task", name), zap.Error(err))
	}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter domain.NotificationFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	if filter.Type != nil && !filter.Type.IsValid() {
		return domain.PaginatedResponse[domain.Notification]{}, domain.ErrInvalidInput
	}
	params.Validate()

	notifications, total, err := s.notifRepo.ListByUser(ctx, userID, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.notifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notifRepo.MarkAllAsRead(ctx, userID)
}
