package preference

import (
	"context"

	"github.com/google/uuid"

	"berbagi/internal/domain"
	"berbagi/internal/repository"
)

// Service exposes the caller's own preference row. Every method takes the
// authenticated user id; there is no way to address another user's row.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreference, error)
	UpdateType(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, vector domain.ChannelVector) (*domain.NotificationPreference, error)
	UpdateGlobal(ctx context.Context, userID uuid.UUID, input domain.UpdateGlobalPreferenceInput) (*domain.NotificationPreference, error)
}

type service struct {
	prefRepo repository.PreferenceRepository
}

func NewService(prefRepo repository.PreferenceRepository) Service {
	return &service{prefRepo: prefRepo}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreference, error) {
	pref, err := s.prefRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	full := pref.WithDefaults()
	return &full, nil
}

func (s *service) UpdateType(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, vector domain.ChannelVector) (*domain.NotificationPreference, error) {
	if !notifType.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	pref, err := s.prefRepo.UpdateType(ctx, userID, notifType, vector)
	if err != nil {
		return nil, err
	}
	full := pref.WithDefaults()
	return &full, nil
}

func (s *service) UpdateGlobal(ctx context.Context, userID uuid.UUID, input domain.UpdateGlobalPreferenceInput) (*domain.NotificationPreference, error) {
	if !input.Field.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	pref, err := s.prefRepo.UpdateGlobal(ctx, userID, input.Field, input.Value)
	if err != nil {
		return nil, err
	}
	full := pref.WithDefaults()
	return &full, nil
}
