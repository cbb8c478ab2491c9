package comment

import (
	"context"

	"github.com/google/uuid"

	"berbagi/internal/domain"
	"berbagi/internal/repository"
	"berbagi/internal/service/emitter"
	"berbagi/internal/service/notification"
)

type Service interface {
	Create(ctx context.Context, authorID, resourceID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	commentRepo  repository.CommentRepository
	resourceRepo repository.ResourceRepository
	notifSvc     notification.Service
}

func NewService(commentRepo repository.CommentRepository, resourceRepo repository.ResourceRepository) Service {
	return &service{
		commentRepo:  commentRepo,
		resourceRepo: resourceRepo,
	}
}

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

// Create stores a comment or a reply. A reply notifies the parent's author
// instead of the resource owner.
func (s *service) Create(ctx context.Context, authorID, resourceID uuid.UUID, input domain.CreateCommentInput) (*domain.Comment, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, domain.ErrNotFound
	}

	var parent *domain.Comment
	if input.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.ResourceID != resourceID {
			return nil, domain.ErrInvalidInput
		}
	}

	comment := &domain.Comment{
		ID:         uuid.New(),
		ResourceID: resourceID,
		AuthorID:   authorID,
		ParentID:   input.ParentID,
		Content:    input.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifSvc != nil {
		s.notifSvc.DispatchAll(ctx, emitter.CommentCreated(*comment, *resource, parent))
	}
	return comment, nil
}
