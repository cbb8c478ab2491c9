package resource

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

// Service covers the resource lifecycle changes that notify other users.
// Plain resource CRUD beyond that lives with the community catalogue.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateResourceInput) (*domain.Resource, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	Update(ctx context.Context, editorID, id uuid.UUID, input domain.UpdateResourceInput) (*domain.Resource, error)
	Cancel(ctx context.Context, editorID, id uuid.UUID) (*domain.Resource, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	resourceRepo   repository.ResourceRepository
	membershipRepo repository.MembershipRepository
	notifSvc       notification.Service
}

func NewService(resourceRepo repository.ResourceRepository, membershipRepo repository.MembershipRepository) Service {
	return &service{
		resourceRepo:   resourceRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) notify(ctx context.Context, candidates []domain.Candidate) {
	if s.notifSvc != nil && len(candidates) > 0 {
		s.notifSvc.DispatchAll(ctx, candidates)
	}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateResourceInput) (*domain.Resource, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	member, err := s.membershipRepo.IsMember(ctx, input.CommunityID, ownerID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrUnauthorized
	}

	resource := &domain.Resource{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		CommunityID:  input.CommunityID,
		Kind:         input.Kind,
		Title:        input.Title,
		Description:  input.Description,
		MaxAttendees: input.MaxAttendees,
		Status:       domain.ResourceActive,
		StartsAt:     input.StartsAt,
		ExpiresAt:    input.ExpiresAt,
	}
	if err := s.resourceRepo.Create(ctx, resource); err != nil {
		return nil, err
	}

	memberIDs, err := s.membershipRepo.MemberIDs(ctx, resource.CommunityID)
	if err != nil {
		logger.Error("Failed to list community members", zap.String("community_id", resource.CommunityID.String()), zap.Error(err))
		return resource, nil
	}
	s.notify(ctx, emitter.ResourceCreated(*resource, memberIDs))
	return resource, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	resource, err := s.resourceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, domain.ErrNotFound
	}
	return resource, nil
}

func (s *service) ownedBy(ctx context.Context, editorID, id uuid.UUID) (*domain.Resource, error) {
	resource, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource.OwnerID != editorID {
		return nil, domain.ErrUnauthorized
	}
	return resource, nil
}

func (s *service) Update(ctx context.Context, editorID, id uuid.UUID, input domain.UpdateResourceInput) (*domain.Resource, error) {
	resource, err := s.ownedBy(ctx, editorID, id)
	if err != nil {
		return nil, err
	}
	if resource.Status != domain.ResourceActive {
		return nil, domain.ErrInvalidInput
	}
	if err := input.Apply(resource); err != nil {
		return nil, err
	}
	if err := s.resourceRepo.Update(ctx, resource); err != nil {
		return nil, err
	}

	claimantIDs, err := s.resourceRepo.ActiveClaimantIDs(ctx, resource.ID)
	if err != nil {
		logger.Error("Failed to list active claimants", zap.String("resource_id", resource.ID.String()), zap.Error(err))
		return resource, nil
	}
	s.notify(ctx, emitter.ResourceUpdated(*resource, editorID, claimantIDs))
	return resource, nil
}

// Cancel is idempotent: cancelling an already cancelled resource notifies
// nobody.
func (s *service) Cancel(ctx context.Context, editorID, id uuid.UUID) (*domain.Resource, error) {
	resource, err := s.ownedBy(ctx, editorID, id)
	if err != nil {
		return nil, err
	}

	changed, err := s.resourceRepo.Cancel(ctx, resource.ID)
	if err != nil {
		return nil, err
	}
	resource.Status = domain.ResourceCancelled
	if !changed {
		return resource, nil
	}

	claimantIDs, err := s.resourceRepo.ActiveClaimantIDs(ctx, resource.ID)
	if err != nil {
		logger.Error("Failed to list active claimants", zap.String("resource_id", resource.ID.String()), zap.Error(err))
		return resource, nil
	}
	s.notify(ctx, emitter.ResourceCancelled(*resource, editorID, claimantIDs))
	return resource, nil
}
