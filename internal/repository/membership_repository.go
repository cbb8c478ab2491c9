package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"berbagi/internal/domain"
)

type MembershipRepository interface {
	// Join and Leave report whether membership actually changed.
	Join(ctx context.Context, communityID, userID uuid.UUID) (bool, error)
	Leave(ctx context.Context, communityID, userID uuid.UUID) (bool, error)
	IsMember(ctx context.Context, communityID, userID uuid.UUID) (bool, error)
	MemberIDs(ctx context.Context, communityID uuid.UUID) ([]uuid.UUID, error)
	OrganizerIDs(ctx context.Context, communityID uuid.UUID) ([]uuid.UUID, error)
}

type membershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Join(ctx context.Context, communityID, userID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO community_memberships (community_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, communityID, userID, domain.MemberRoleMember)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *membershipRepository) Leave(ctx context.Context, communityID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM community_memberships WHERE community_id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, communityID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *membershipRepository) IsMember(ctx context.Context, communityID, userID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM community_memberships WHERE community_id = $1 AND user_id = $2)`
	err := r.db.GetContext(ctx, &exists, query, communityID, userID)
	return exists, err
}

func (r *membershipRepository) MemberIDs(ctx context.Context, communityID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	query := `SELECT user_id FROM community_memberships WHERE community_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, communityID)
	return ids, err
}

func (r *membershipRepository) OrganizerIDs(ctx context.Context, communityID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	query := `SELECT user_id FROM community_memberships WHERE community_id = $1 AND role = $2`
	err := r.db.SelectContext(ctx, &ids, query, communityID, domain.MemberRoleOrganizer)
	return ids, err
}
