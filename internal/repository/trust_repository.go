package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"berbagi/internal/domain"
)

type TrustRepository interface {
	// Swap stores the new score and returns the previous one (0 when the
	// row did not exist). Concurrent swaps for the same key serialize.
	Swap(ctx context.Context, score *domain.TrustScore) (float64, error)
}

type trustRepository struct {
	db *sqlx.DB
}

func NewTrustRepository(db *sqlx.DB) TrustRepository {
	return &trustRepository{db: db}
}

func (r *trustRepository) Swap(ctx context.Context, score *domain.TrustScore) (float64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin trust tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO trust_scores (user_id, community_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		score.UserID, score.CommunityID,
	); err != nil {
		return 0, fmt.Errorf("seed trust score: %w", err)
	}

	var previous float64
	if err := tx.GetContext(ctx, &previous,
		`SELECT score FROM trust_scores WHERE user_id = $1 AND community_id = $2 FOR UPDATE`,
		score.UserID, score.CommunityID,
	); err != nil {
		return 0, fmt.Errorf("lock trust score: %w", err)
	}

	query := `
		UPDATE trust_scores SET score = $3, updated_at = NOW()
		WHERE user_id = $1 AND community_id = $2
		RETURNING updated_at`
	if err := tx.QueryRowxContext(ctx, query, score.UserID, score.CommunityID, score.Score).Scan(&score.UpdatedAt); err != nil {
		return 0, fmt.Errorf("update trust score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return previous, nil
}
