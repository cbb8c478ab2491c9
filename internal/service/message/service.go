package message

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"berbagi/internal/domain"
	"berbagi/internal/repository"
	"berbagi/internal/service/emitter"
	"berbagi/internal/service/notification"
)

const maxMessageLength = 4000

type Service interface {
	Start(ctx context.Context, senderID uuid.UUID, input domain.StartConversationInput) (*domain.Conversation, *domain.Message, error)
	Send(ctx context.Context, senderID, conversationID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	conversationRepo repository.ConversationRepository
	notifSvc         notification.Service
}

func NewService(conversationRepo repository.ConversationRepository) Service {
	return &service{conversationRepo: conversationRepo}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func validContent(content string) bool {
	return content != "" && len(content) <= maxMessageLength
}

// Start opens a conversation with its first message. The other participants
// get a conversation request rather than a message notification.
func (s *service) Start(ctx context.Context, senderID uuid.UUID, input domain.StartConversationInput) (*domain.Conversation, *domain.Message, error) {
	if !validContent(input.Content) {
		return nil, nil, domain.ErrInvalidInput
	}

	participants := []uuid.UUID{senderID}
	for _, id := range input.ParticipantIDs {
		if id != uuid.Nil && !slices.Contains(participants, id) {
			participants = append(participants, id)
		}
	}
	if len(participants) < 2 {
		return nil, nil, domain.ErrInvalidInput
	}

	conv := &domain.Conversation{
		ID:             uuid.New(),
		CreatedBy:      senderID,
		ParticipantIDs: participants,
	}
	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        input.Content,
	}
	if err := s.conversationRepo.Start(ctx, conv, msg); err != nil {
		return nil, nil, err
	}

	if s.notifSvc != nil {
		s.notifSvc.DispatchAll(ctx, emitter.MessageSent(*msg, participants, true))
	}
	return conv, msg, nil
}

func (s *service) Send(ctx context.Context, senderID, conversationID uuid.UUID, input domain.SendMessageInput) (*domain.Message, error) {
	if !validContent(input.Content) {
		return nil, domain.ErrInvalidInput
	}

	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if !slices.Contains(conv.ParticipantIDs, senderID) {
		return nil, domain.ErrUnauthorized
	}

	msg := &domain.Message{
		ID:             uuid.New(),
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        input.Content,
	}
	if err := s.conversationRepo.AddMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		s.notifSvc.DispatchAll(ctx, emitter.MessageSent(*msg, conv.ParticipantIDs, false))
	}
	return msg, nil
}
