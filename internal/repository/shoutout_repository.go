package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"berbagi/internal/domain"
)

type ShoutoutRepository interface {
	Create(ctx context.Context, shoutout *domain.Shoutout) error
}

type shoutoutRepository struct {
	db *sqlx.DB
}

func NewShoutoutRepository(db *sqlx.DB) ShoutoutRepository {
	return &shoutoutRepository{db: db}
}

func (r *shoutoutRepository) Create(ctx context.Context, shoutout *domain.Shoutout) error {
	query := `
		INSERT INTO shoutouts (id, giver_id, receiver_id, resource_id, community_id, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		shoutout.ID, shoutout.GiverID, shoutout.ReceiverID, shoutout.ResourceID, shoutout.CommunityID, shoutout.Message,
	).Scan(&shoutout.CreatedAt)
}
