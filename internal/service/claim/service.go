package claim

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"berbagi/internal/domain"
	"berbagi/internal/pkg/logger"
	"berbagi/internal/pkg/metrics"
	"berbagi/internal/repository"
	"berbagi/internal/service/emitter"
	"berbagi/internal/service/notification"
)

const maxRequestTextLength = 1000

type Service interface {
	Create(ctx context.Context, claimantID, resourceID uuid.UUID, input domain.CreateClaimInput) (*domain.Claim, error)
	UpdateStatus(ctx context.Context, actorID, claimID uuid.UUID, input domain.UpdateClaimStatusInput) (*domain.Claim, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Claim], error)
	History(ctx context.Context, userID, claimID uuid.UUID) ([]domain.ClaimEvent, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	claimRepo    repository.ClaimRepository
	resourceRepo repository.ResourceRepository
	notifSvc     notification.Service
}

func NewService(claimRepo repository.ClaimRepository, resourceRepo repository.ResourceRepository) Service {
	return &service{
		claimRepo:    claimRepo,
		resourceRepo: resourceRepo,
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

func (s *service) Create(ctx context.Context, claimantID, resourceID uuid.UUID, input domain.CreateClaimInput) (*domain.Claim, error) {
	if input.RequestText != nil && len(*input.RequestText) > maxRequestTextLength {
		return nil, domain.ErrInvalidInput
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, domain.ErrNotFound
	}
	if resource.Status != domain.ResourceActive {
		return nil, domain.ErrInvalidInput
	}

	claim := &domain.Claim{
		ID:          uuid.New(),
		ResourceID:  resource.ID,
		TimeslotID:  input.TimeslotID,
		ClaimantID:  claimantID,
		OwnerID:     resource.OwnerID,
		RequestText: input.RequestText,
		Status:      domain.ClaimPending,
	}
	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, err
	}

	metrics.RecordClaimTransition(string(domain.ClaimPending))
	s.notify(ctx, emitter.ClaimCreated(*claim, *resource))
	return claim, nil
}

// UpdateStatus runs the state machine against a locked snapshot. Candidates
// are computed from the same snapshot inside the transaction and dispatched
// once it has committed.
func (s *service) UpdateStatus(ctx context.Context, actorID, claimID uuid.UUID, input domain.UpdateClaimStatusInput) (*domain.Claim, error) {
	if !input.Status.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	var candidates []domain.Candidate
	t, err := s.claimRepo.ApplyTransition(ctx, claimID, func(snap domain.ClaimSnapshot) (domain.ClaimTransition, error) {
		t, err := snap.Claim.Transition(snap.Resource.Kind, actorID, input.Status, snap.OccupiedSlots, snap.Resource.MaxAttendees)
		if err != nil {
			return t, err
		}
		// a cancelled resource cannot take on new commitments
		if t.Changed && t.After.Status == domain.ClaimApproved && snap.Resource.Status != domain.ResourceActive {
			return t, domain.ErrInvalidStateTransition
		}
		candidates = emitter.ClaimTransitioned(t, snap.Resource)
		return t, nil
	})
	if err != nil {
		metrics.RecordClaimRejected(rejectReason(err))
		logger.Debug("Claim transition rejected",
			zap.String("claim_id", claimID.String()),
			zap.String("actor_id", actorID.String()),
			zap.String("status", string(input.Status)),
			zap.Error(err),
		)
		return nil, err
	}

	if t.Changed {
		metrics.RecordClaimTransition(string(t.After.Status))
		s.notify(ctx, candidates)
	}
	return &t.After, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return "invalid_state"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	}
	return "error"
}

func (s *service) List(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Claim], error) {
	switch filter.Role {
	case "", domain.ClaimRoleClaimant, domain.ClaimRoleOwner:
	default:
		return domain.PaginatedResponse[domain.Claim]{}, domain.ErrInvalidInput
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return domain.PaginatedResponse[domain.Claim]{}, domain.ErrInvalidInput
	}
	params.Validate()

	claims, total, err := s.claimRepo.List(ctx, userID, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Claim]{}, err
	}
	return domain.NewPaginatedResponse(claims, params.Page, params.PageSize, total), nil
}

func (s *service) History(ctx context.Context, userID, claimID uuid.UUID) ([]domain.ClaimEvent, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim == nil {
		return nil, domain.ErrNotFound
	}
	if claim.ClaimantID != userID && claim.OwnerID != userID {
		return nil, domain.ErrUnauthorized
	}
	return s.claimRepo.ListEvents(ctx, claimID)
}
