package message_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"berbagi/internal/domain"
	"berbagi/internal/mocks"
	"berbagi/internal/service/message"
)

func TestMessageService_Start(t *testing.T) {
	ctx := context.Background()
	sender, other := uuid.New(), uuid.New()

	t.Run("First message is a conversation request", func(t *testing.T) {
		repo := new(mocks.ConversationRepository)
		notifSvc := new(mocks.NotificationService)
		svc := message.NewService(repo)
		svc.SetNotificationService(notifSvc)

		repo.On("Start", ctx, mock.MatchedBy(func(c *domain.Conversation) bool {
			return len(c.ParticipantIDs) == 2 && c.CreatedBy == sender
		}), mock.AnythingOfType("*domain.Message")).Return(nil).Once()
		notifSvc.On("DispatchAll", ctx, mock.MatchedBy(func(cs []domain.Candidate) bool {
			return len(cs) == 1 && cs[0].Type == domain.NotifConversationRequested && cs[0].TargetUserID == other
		})).Return(nil).Once()

		conv, msg, err := svc.Start(ctx, sender, domain.StartConversationInput{
			ParticipantIDs: []uuid.UUID{other, other, sender},
			Content:        "Hi, is the tent still free?",
		})

		require.NoError(t, err)
		assert.Equal(t, conv.ID, msg.ConversationID)
		assert.Equal(t, []uuid.UUID{sender, other}, conv.ParticipantIDs)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Needs another participant", func(t *testing.T) {
		svc := message.NewService(new(mocks.ConversationRepository))
		_, _, err := svc.Start(ctx, sender, domain.StartConversationInput{ParticipantIDs: []uuid.UUID{sender}, Content: "hello"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Content bounds", func(t *testing.T) {
		svc := message.NewService(new(mocks.ConversationRepository))
		_, _, err := svc.Start(ctx, sender, domain.StartConversationInput{ParticipantIDs: []uuid.UUID{other}})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = svc.Start(ctx, sender, domain.StartConversationInput{ParticipantIDs: []uuid.UUID{other}, Content: strings.Repeat("x", 4001)})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestMessageService_Send(t *testing.T) {
	ctx := context.Background()
	sender, other := uuid.New(), uuid.New()
	conv := &domain.Conversation{ID: uuid.New(), CreatedBy: sender, ParticipantIDs: []uuid.UUID{sender, other}}

	t.Run("Notifies other participants", func(t *testing.T) {
		repo := new(mocks.ConversationRepository)
		notifSvc := new(mocks.NotificationService)
		svc := message.NewService(repo)
		svc.SetNotificationService(notifSvc)

		repo.On("GetByID", ctx, conv.ID).Return(conv, nil).Once()
		repo.On("AddMessage", ctx, mock.Anything).Return(nil).Once()
		notifSvc.On("DispatchAll", ctx, mock.MatchedBy(func(cs []domain.Candidate) bool {
			return len(cs) == 1 && cs[0].Type == domain.NotifMessageReceived && cs[0].TargetUserID == other
		})).Return(nil).Once()

		msg, err := svc.Send(ctx, sender, conv.ID, domain.SendMessageInput{Content: "See you at 5"})

		require.NoError(t, err)
		assert.Equal(t, sender, msg.SenderID)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Outsider", func(t *testing.T) {
		repo := new(mocks.ConversationRepository)
		svc := message.NewService(repo)
		repo.On("GetByID", ctx, conv.ID).Return(conv, nil).Once()

		_, err := svc.Send(ctx, uuid.New(), conv.ID, domain.SendMessageInput{Content: "hey"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("Unknown conversation", func(t *testing.T) {
		repo := new(mocks.ConversationRepository)
		svc := message.NewService(repo)
		missing := uuid.New()
		repo.On("GetByID", ctx, missing).Return(nil, nil).Once()

		_, err := svc.Send(ctx, sender, missing, domain.SendMessageInput{Content: "hey"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
