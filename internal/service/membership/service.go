package membership

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"berbagi/internal/domain"
	"berbagi/internal/pkg/logger"
	"berbagi/internal/repository"
	"berbagi/internal/service/emitter"
	"berbagi/internal/service/notification"
)

type Service interface {
	Join(ctx context.Context, userID, communityID uuid.UUID) (bool, error)
	Leave(ctx context.Context, userID, communityID uuid.UUID) (bool, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	membershipRepo repository.MembershipRepository
	notifSvc       notification.Service
}

func NewService(membershipRepo repository.MembershipRepository) Service {
	return &service{membershipRepo: membershipRepo}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Join(ctx context.Context, userID, communityID uuid.UUID) (bool, error) {
	changed, err := s.membershipRepo.Join(ctx, communityID, userID)
	if err != nil || !changed {
		return changed, err
	}
	s.notifyOrganizers(ctx, userID, communityID, domain.MembershipJoined)
	return true, nil
}

func (s *service) Leave(ctx context.Context, userID, communityID uuid.UUID) (bool, error) {
	changed, err := s.membershipRepo.Leave(ctx, communityID, userID)
	if err != nil || !changed {
		return changed, err
	}
	s.notifyOrganizers(ctx, userID, communityID, domain.MembershipLeft)
	return true, nil
}

func (s *service) notifyOrganizers(ctx context.Context, userID, communityID uuid.UUID, action domain.MembershipAction) {
	if s.notifSvc == nil {
		return
	}
	organizerIDs, err := s.membershipRepo.OrganizerIDs(ctx, communityID)
	if err != nil {
		logger.Error("Failed to list organizers", zap.String("community_id", communityID.String()), zap.Error(err))
		return
	}
	s.notifSvc.DispatchAll(ctx, emitter.MembershipChanged(communityID, userID, action, organizerIDs))
}
