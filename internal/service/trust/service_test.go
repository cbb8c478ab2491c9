package trust_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"berbagi/internal/domain"
	"berbagi/internal/mocks"
	"berbagi/internal/service/notification"
	"berbagi/internal/service/trust"
)

func TestTrustService_Recompute(t *testing.T) {
	ctx := context.Background()
	user, community := uuid.New(), uuid.New()

	t.Run("Level up notifies", func(t *testing.T) {
		repo := new(mocks.TrustRepository)
		notifSvc := new(mocks.NotificationService)
		svc := trust.NewService(repo)
		svc.SetNotificationService(notifSvc)

		repo.On("Swap", ctx, mock.MatchedBy(func(s *domain.TrustScore) bool {
			return s.UserID == user && s.Score == 55
		})).Return(45.0, nil).Once()
		notifSvc.On("DispatchAll", ctx, mock.MatchedBy(func(cs []domain.Candidate) bool {
			return len(cs) == 1 && cs[0].Type == domain.NotifTrustLevelChanged && cs[0].ActorID == nil &&
				cs[0].Detail == domain.TrustLevelMetadata{OldLevel: 1, NewLevel: 2}
		})).Return([]notification.DispatchResult{{Outcome: notification.OutcomePersisted}}).Once()

		change, err := svc.Recompute(ctx, domain.RecomputeTrustInput{UserID: user, CommunityID: community, Score: 55})

		require.NoError(t, err)
		assert.Equal(t, trust.LevelChange{UserID: user, CommunityID: community, OldLevel: 1, NewLevel: 2, Changed: true}, change)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Same level stays quiet", func(t *testing.T) {
		repo := new(mocks.TrustRepository)
		notifSvc := new(mocks.NotificationService)
		svc := trust.NewService(repo)
		svc.SetNotificationService(notifSvc)

		repo.On("Swap", ctx, mock.Anything).Return(60.0, nil).Once()

		change, err := svc.Recompute(ctx, domain.RecomputeTrustInput{UserID: user, CommunityID: community, Score: 90})

		require.NoError(t, err)
		assert.False(t, change.Changed)
		assert.Equal(t, 2, change.NewLevel)
		notifSvc.AssertNotCalled(t, "DispatchAll", mock.Anything, mock.Anything)
	})

	t.Run("Missing ids", func(t *testing.T) {
		svc := trust.NewService(new(mocks.TrustRepository))
		_, err := svc.Recompute(ctx, domain.RecomputeTrustInput{UserID: user})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Store failure", func(t *testing.T) {
		repo := new(mocks.TrustRepository)
		svc := trust.NewService(repo)
		repo.On("Swap", ctx, mock.Anything).Return(0.0, errors.New("db down")).Once()

		_, err := svc.Recompute(ctx, domain.RecomputeTrustInput{UserID: user, CommunityID: community, Score: 10})
		assert.Error(t, err)
	})
}
