package reminder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"berbagi/internal/domain"
	"berbagi/internal/mocks"
	"berbagi/internal/service/notification"
	"berbagi/internal/service/reminder"
)

func TestReminderService_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	window := 24 * time.Hour
	soon := now.Add(2 * time.Hour)

	owner := uuid.New()
	expiring := domain.Resource{ID: uuid.New(), OwnerID: owner, Kind: domain.ResourceOffer, Title: "Bread", ExpiresAt: &soon}
	event := domain.Resource{ID: uuid.New(), OwnerID: owner, Kind: domain.ResourceEvent, Title: "Repair cafe", StartsAt: &soon}
	attendee := uuid.New()

	t.Run("Dispatches system notifications", func(t *testing.T) {
		resourceRepo := new(mocks.ResourceRepository)
		notifSvc := new(mocks.NotificationService)
		svc := reminder.NewService(resourceRepo, notifSvc, nil, window)

		resourceRepo.On("ListExpiringBetween", ctx, now, now.Add(window)).Return([]domain.Resource{expiring}, nil).Once()
		resourceRepo.On("ListStartingBetween", ctx, now, now.Add(window)).Return([]domain.Resource{event}, nil).Once()
		resourceRepo.On("ParticipantIDs", ctx, event.ID).Return([]uuid.UUID{attendee}, nil).Once()
		notifSvc.On("Dispatch", ctx, mock.MatchedBy(func(c domain.Candidate) bool {
			return c.ActorID == nil
		})).Return(notification.DispatchResult{Outcome: notification.OutcomePersisted}, nil).Times(3)

		stats, err := svc.RunOnce(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, reminder.Stats{Expiring: 1, Starting: 1, Dispatched: 3}, stats)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Dispatch failure is not counted", func(t *testing.T) {
		resourceRepo := new(mocks.ResourceRepository)
		notifSvc := new(mocks.NotificationService)
		svc := reminder.NewService(resourceRepo, notifSvc, nil, window)

		resourceRepo.On("ListExpiringBetween", ctx, now, now.Add(window)).Return([]domain.Resource{expiring}, nil).Once()
		resourceRepo.On("ListStartingBetween", ctx, now, now.Add(window)).Return([]domain.Resource{}, nil).Once()
		notifSvc.On("Dispatch", ctx, mock.Anything).Return(notification.DispatchResult{}, errors.New("db down")).Once()

		stats, err := svc.RunOnce(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 0, stats.Dispatched)
	})

	t.Run("Participant lookup failure skips the event", func(t *testing.T) {
		resourceRepo := new(mocks.ResourceRepository)
		notifSvc := new(mocks.NotificationService)
		svc := reminder.NewService(resourceRepo, notifSvc, nil, window)

		resourceRepo.On("ListExpiringBetween", ctx, now, now.Add(window)).Return([]domain.Resource{}, nil).Once()
		resourceRepo.On("ListStartingBetween", ctx, now, now.Add(window)).Return([]domain.Resource{event}, nil).Once()
		resourceRepo.On("ParticipantIDs", ctx, event.ID).Return([]uuid.UUID(nil), errors.New("timeout")).Once()

		stats, err := svc.RunOnce(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 1, stats.Starting)
		notifSvc.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	})

	t.Run("Scan failure", func(t *testing.T) {
		resourceRepo := new(mocks.ResourceRepository)
		svc := reminder.NewService(resourceRepo, new(mocks.NotificationService), nil, window)

		resourceRepo.On("ListExpiringBetween", ctx, now, now.Add(window)).Return([]domain.Resource(nil), errors.New("db down")).Once()

		_, err := svc.RunOnce(ctx, now)
		assert.Error(t, err)
	})
}
