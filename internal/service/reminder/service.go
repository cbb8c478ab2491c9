// Package reminder emits the scheduled system notifications: resources about
// to expire and events about to start.
package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"berbagi/internal/domain"
	"berbagi/internal/pkg/dedup"
	"berbagi/internal/pkg/logger"
	"berbagi/internal/repository"
	"berbagi/internal/service/emitter"
	"berbagi/internal/service/notification"
)

type Stats struct {
	Expiring   int
	Starting   int
	Dispatched int
	Skipped    int
}

type Service interface {
	// RunOnce scans (now, now+window] and dispatches each reminder at most
	// once per resource, scheduled time and recipient.
	RunOnce(ctx context.Context, now time.Time) (Stats, error)
	// Start runs RunOnce every interval until ctx is done.
	Start(ctx context.Context, interval time.Duration)
}

type service struct {
	resourceRepo repository.ResourceRepository
	notifSvc     notification.Service
	deduper      *dedup.Deduper
	window       time.Duration
}

func NewService(resourceRepo repository.ResourceRepository, notifSvc notification.Service, deduper *dedup.Deduper, window time.Duration) Service {
	return &service{
		resourceRepo: resourceRepo,
		notifSvc:     notifSvc,
		deduper:      deduper,
		window:       window,
	}
}

func (s *service) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		stats, err := s.RunOnce(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Reminder scan failed", zap.Error(err))
		} else {
			logger.Info("Reminder scan finished",
				zap.Int("expiring", stats.Expiring),
				zap.Int("starting", stats.Starting),
				zap.Int("dispatched", stats.Dispatched),
				zap.Int("skipped", stats.Skipped),
			)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *service) RunOnce(ctx context.Context, now time.Time) (Stats, error) {
	var stats Stats
	until := now.Add(s.window)

	expiring, err := s.resourceRepo.ListExpiringBetween(ctx, now, until)
	if err != nil {
		return stats, fmt.Errorf("failed to list expiring resources: %w", err)
	}
	stats.Expiring = len(expiring)
	for _, r := range expiring {
		key := fmt.Sprintf("expiring:%s:%d", r.ID, r.ExpiresAt.Unix())
		s.remind(ctx, key, emitter.ResourceExpiring(r), &stats)
	}

	starting, err := s.resourceRepo.ListStartingBetween(ctx, now, until)
	if err != nil {
		return stats, fmt.Errorf("failed to list starting events: %w", err)
	}
	stats.Starting = len(starting)
	for _, r := range starting {
		participants, err := s.resourceRepo.ParticipantIDs(ctx, r.ID)
		if err != nil {
			logger.Error("Failed to list event participants", zap.String("resource_id", r.ID.String()), zap.Error(err))
			continue
		}
		key := fmt.Sprintf("starting:%s:%d", r.ID, r.StartsAt.Unix())
		s.remind(ctx, key, emitter.EventStarting(r, participants), &stats)
	}

	return stats, nil
}

// remind claims one key per recipient so a failed dispatch is retried on the
// next scan without repeating the ones that went through.
func (s *service) remind(ctx context.Context, key string, candidates []domain.Candidate, stats *Stats) {
	for _, c := range candidates {
		recipientKey := key + ":" + c.TargetUserID.String()
		if !s.deduper.AcquireOnce(ctx, recipientKey) {
			stats.Skipped++
			continue
		}

		if _, err := s.notifSvc.Dispatch(ctx, c); err != nil {
			s.deduper.Release(ctx, recipientKey)
			logger.Error("Failed to dispatch reminder",
				zap.String("key", recipientKey),
				zap.Error(err),
			)
			continue
		}
		stats.Dispatched++
	}
}
