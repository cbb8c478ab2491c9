package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"berbagi/internal/domain"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error)
	Update(ctx context.Context, resource *domain.Resource) error
	Cancel(ctx context.Context, id uuid.UUID) (bool, error)
	ActiveClaimantIDs(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error)
	ParticipantIDs(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error)
	ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Resource, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Resource, error)
}

type resourceRepository struct {
	db *sqlx.DB
}

func NewResourceRepository(db *sqlx.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

const resourceColumns = `id, owner_id, community_id, kind, title, description, max_attendees, status,
	starts_at, expires_at, created_at, updated_at`

func (r *resourceRepository) Create(ctx context.Context, resource *domain.Resource) error {
	query := `
		INSERT INTO resources (id, owner_id, community_id, kind, title, description, max_attendees, status, starts_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		resource.ID, resource.OwnerID, resource.CommunityID, resource.Kind, resource.Title,
		resource.Description, resource.MaxAttendees, resource.Status, resource.StartsAt, resource.ExpiresAt,
	).Scan(&resource.CreatedAt, &resource.UpdatedAt)
}

func (r *resourceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resource, error) {
	var resource domain.Resource
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`

	err := r.db.GetContext(ctx, &resource, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) Update(ctx context.Context, resource *domain.Resource) error {
	query := `
		UPDATE resources
		SET title = $2, description = $3, max_attendees = $4, starts_at = $5, expires_at = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRowxContext(ctx, query,
		resource.ID, resource.Title, resource.Description, resource.MaxAttendees, resource.StartsAt, resource.ExpiresAt,
	).Scan(&resource.UpdatedAt)
}

// Cancel reports false when the resource was already cancelled.
func (r *resourceRepository) Cancel(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `UPDATE resources SET status = 'cancelled', updated_at = NOW() WHERE id = $1 AND status = 'active'`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *resourceRepository) ActiveClaimantIDs(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	query := `SELECT DISTINCT claimant_id FROM claims WHERE resource_id = $1 AND status = ANY($2)`
	err := r.db.SelectContext(ctx, &ids, query, resourceID, pq.Array(domain.OpenStatuses()))
	return ids, err
}

// ParticipantIDs lists claimants currently holding a slot.
func (r *resourceRepository) ParticipantIDs(ctx context.Context, resourceID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	query := `SELECT DISTINCT claimant_id FROM claims WHERE resource_id = $1 AND status = ANY($2)`
	err := r.db.SelectContext(ctx, &ids, query, resourceID, pq.Array(domain.CapacityStatuses()))
	return ids, err
}

func (r *resourceRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]domain.Resource, error) {
	resources := []domain.Resource{}
	query := `
		SELECT ` + resourceColumns + ` FROM resources
		WHERE status = 'active' AND kind <> 'event' AND expires_at > $1 AND expires_at <= $2
		ORDER BY expires_at ASC`
	err := r.db.SelectContext(ctx, &resources, query, from, to)
	return resources, err
}

func (r *resourceRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Resource, error) {
	resources := []domain.Resource{}
	query := `
		SELECT ` + resourceColumns + ` FROM resources
		WHERE status = 'active' AND kind = 'event' AND starts_at > $1 AND starts_at <= $2
		ORDER BY starts_at ASC`
	err := r.db.SelectContext(ctx, &resources, query, from, to)
	return resources, err
}
