package trust

import (
	"context"

	"github.com/google/uuid"

	"berbagi/internal/domain"
	"berbagi/internal/repository"
	"berbagi/internal/service/emitter"
	"berbagi/internal/service/notification"
)

type LevelChange struct {
	UserID      uuid.UUID `json:"user_id"`
	CommunityID uuid.UUID `json:"community_id"`
	OldLevel    int       `json:"old_level"`
	NewLevel    int       `json:"new_level"`
	Changed     bool      `json:"changed"`
}

// Service stores scores produced by the external scorer and announces level
// changes. It never computes points itself.
type Service interface {
	Recompute(ctx context.Context, input domain.RecomputeTrustInput) (LevelChange, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	trustRepo repository.TrustRepository
	notifSvc  notification.Service
}

func NewService(trustRepo repository.TrustRepository) Service {
	return &service{trustRepo: trustRepo}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Recompute(ctx context.Context, input domain.RecomputeTrustInput) (LevelChange, error) {
	if input.UserID == uuid.Nil || input.CommunityID == uuid.Nil {
		return LevelChange{}, domain.ErrInvalidInput
	}

	score := &domain.TrustScore{
		UserID:      input.UserID,
		CommunityID: input.CommunityID,
		Score:       input.Score,
	}
	previous, err := s.trustRepo.Swap(ctx, score)
	if err != nil {
		return LevelChange{}, err
	}

	change := LevelChange{
		UserID:      input.UserID,
		CommunityID: input.CommunityID,
		OldLevel:    domain.TrustLevel(previous),
		NewLevel:    domain.TrustLevel(input.Score),
	}
	change.Changed = change.OldLevel != change.NewLevel

	if s.notifSvc != nil && change.Changed {
		s.notifSvc.DispatchAll(ctx, emitter.TrustScoreChanged(input.UserID, input.CommunityID, previous, input.Score))
	}
	return change, nil
}
