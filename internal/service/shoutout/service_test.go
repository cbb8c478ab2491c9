package shoutout_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"berbagi/internal/domain"
	"berbagi/internal/mocks"
	"berbagi/internal/service/shoutout"
)

func TestShoutoutService_Give(t *testing.T) {
	ctx := context.Background()
	giver, receiver := uuid.New(), uuid.New()

	t.Run("Success", func(t *testing.T) {
		repo := new(mocks.ShoutoutRepository)
		notifSvc := new(mocks.NotificationService)
		svc := shoutout.NewService(repo)
		svc.SetNotificationService(notifSvc)

		repo.On("Create", ctx, mock.MatchedBy(func(s *domain.Shoutout) bool {
			return s.GiverID == giver && s.ReceiverID == receiver
		})).Return(nil).Once()
		notifSvc.On("DispatchAll", ctx, mock.MatchedBy(func(cs []domain.Candidate) bool {
			return len(cs) == 1 && cs[0].Type == domain.NotifShoutoutReceived && cs[0].TargetUserID == receiver
		})).Return(nil).Once()

		s, err := svc.Give(ctx, giver, domain.CreateShoutoutInput{ReceiverID: receiver, Message: "Thanks for the ladder!"})

		require.NoError(t, err)
		assert.Equal(t, "Thanks for the ladder!", s.Message)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Invalid", func(t *testing.T) {
		svc := shoutout.NewService(new(mocks.ShoutoutRepository))

		for name, input := range map[string]domain.CreateShoutoutInput{
			"No receiver":   {Message: "hi"},
			"Self":          {ReceiverID: giver, Message: "hi"},
			"Empty message": {ReceiverID: receiver},
		} {
			_, err := svc.Give(ctx, giver, input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
		}
	})
}
