package shoutout

import (
	"context"

	"github.com/google/uuid"

	"berbagi/internal/domain"
	"berbagi/internal/repository"
	"berbagi/internal/service/emitter"
	"berbagi/internal/service/notification"
)

type Service interface {
	Give(ctx context.Context, giverID uuid.UUID, input domain.CreateShoutoutInput) (*domain.Shoutout, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	shoutoutRepo repository.ShoutoutRepository
	notifSvc     notification.Service
}

func NewService(shoutoutRepo repository.ShoutoutRepository) Service {
	return &service{shoutoutRepo: shoutoutRepo}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Give(ctx context.Context, giverID uuid.UUID, input domain.CreateShoutoutInput) (*domain.Shoutout, error) {
	if input.ReceiverID == uuid.Nil || input.ReceiverID == giverID || input.Message == "" {
		return nil, domain.ErrInvalidInput
	}

	shoutout := &domain.Shoutout{
		ID:          uuid.New(),
		GiverID:     giverID,
		ReceiverID:  input.ReceiverID,
		ResourceID:  input.ResourceID,
		CommunityID: input.CommunityID,
		Message:     input.Message,
	}
	if err := s.shoutoutRepo.Create(ctx, shoutout); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		s.notifSvc.DispatchAll(ctx, emitter.ShoutoutGiven(*shoutout))
	}
	return shoutout, nil
}
