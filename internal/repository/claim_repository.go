package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"berbagi/internal/domain"
)

// TransitionFunc decides a claim transition from a locked snapshot. It runs
// inside the transaction; returning an error rolls everything back.
type TransitionFunc func(snap domain.ClaimSnapshot) (domain.ClaimTransition, error)

type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter, params domain.PaginationParams) ([]domain.Claim, int64, error)
	ListEvents(ctx context.Context, claimID uuid.UUID) ([]domain.ClaimEvent, error)
	ApplyTransition(ctx context.Context, claimID uuid.UUID, fn TransitionFunc) (domain.ClaimTransition, error)
}

type claimRepository struct {
	db *sqlx.DB
}

func NewClaimRepository(db *sqlx.DB) ClaimRepository {
	return &claimRepository{db: db}
}

const claimColumns = `id, resource_id, timeslot_id, claimant_id, owner_id, request_text, status,
	given_confirmed, received_confirmed, created_at, updated_at`

func (r *claimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	query := `
		INSERT INTO claims (id, resource_id, timeslot_id, claimant_id, owner_id, request_text, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		claim.ID, claim.ResourceID, claim.TimeslotID, claim.ClaimantID, claim.OwnerID,
		claim.RequestText, claim.Status,
	).Scan(&claim.CreatedAt, &claim.UpdatedAt)
}

func (r *claimRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error) {
	var claim domain.Claim
	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = $1`

	err := r.db.GetContext(ctx, &claim, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

func (r *claimRepository) List(ctx context.Context, userID uuid.UUID, filter domain.ClaimFilter, params domain.PaginationParams) ([]domain.Claim, int64, error) {
	params.Validate()

	var where string
	switch filter.Role {
	case domain.ClaimRoleClaimant:
		where = "claimant_id = $1"
	case domain.ClaimRoleOwner:
		where = "owner_id = $1"
	default:
		where = "(claimant_id = $1 OR owner_id = $1)"
	}
	args := []any{userID}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM claims WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM claims
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, claimColumns, where, len(args)+1, len(args)+2)

	claims := []domain.Claim{}
	err := r.db.SelectContext(ctx, &claims, query, append(args, params.PageSize, params.Offset())...)
	return claims, total, err
}

func (r *claimRepository) ListEvents(ctx context.Context, claimID uuid.UUID) ([]domain.ClaimEvent, error) {
	events := []domain.ClaimEvent{}
	query := `
		SELECT id, claim_id, actor_id, from_status, to_status, created_at
		FROM claim_events
		WHERE claim_id = $1
		ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &events, query, claimID)
	return events, err
}

// ApplyTransition locks the claim and then its resource, counts the slots held
// by other claims on the same resource and timeslot, and hands the snapshot to
// fn. A changed transition is written with a compare-and-swap on the previous
// status and recorded in claim_events, all in one transaction.
func (r *claimRepository) ApplyTransition(ctx context.Context, claimID uuid.UUID, fn TransitionFunc) (domain.ClaimTransition, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.ClaimTransition{}, fmt.Errorf("begin claim transition tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var snap domain.ClaimSnapshot
	err = tx.GetContext(ctx, &snap.Claim, `SELECT `+claimColumns+` FROM claims WHERE id = $1 FOR UPDATE`, claimID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ClaimTransition{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.ClaimTransition{}, fmt.Errorf("lock claim %s: %w", claimID, err)
	}

	err = tx.GetContext(ctx, &snap.Resource, `SELECT `+resourceColumns+` FROM resources WHERE id = $1 FOR UPDATE`, snap.Claim.ResourceID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ClaimTransition{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.ClaimTransition{}, fmt.Errorf("lock resource %s: %w", snap.Claim.ResourceID, err)
	}

	countQuery := `
		SELECT COUNT(*) FROM claims
		WHERE resource_id = $1
			AND timeslot_id IS NOT DISTINCT FROM $2
			AND status = ANY($3)
			AND id <> $4`
	if err := tx.GetContext(ctx, &snap.OccupiedSlots, countQuery,
		snap.Claim.ResourceID, snap.Claim.TimeslotID, pq.Array(domain.CapacityStatuses()), snap.Claim.ID,
	); err != nil {
		return domain.ClaimTransition{}, fmt.Errorf("count occupied slots: %w", err)
	}

	t, err := fn(snap)
	if err != nil || !t.Changed {
		return t, err
	}

	update := `
		UPDATE claims
		SET status = $2, given_confirmed = $3, received_confirmed = $4, updated_at = NOW()
		WHERE id = $1 AND status = $5
		RETURNING updated_at`
	err = tx.QueryRowxContext(ctx, update,
		t.After.ID, t.After.Status, t.After.GivenConfirmed, t.After.ReceivedConfirmed, t.Before.Status,
	).Scan(&t.After.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return t, domain.ErrInvalidStateTransition
	}
	if err != nil {
		return t, fmt.Errorf("update claim %s: %w", claimID, err)
	}

	event := `
		INSERT INTO claim_events (id, claim_id, actor_id, from_status, to_status)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, event,
		uuid.New(), t.After.ID, t.ActorID, t.Before.Status, t.After.Status,
	); err != nil {
		return t, fmt.Errorf("record claim event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return t, fmt.Errorf("commit claim transition tx: %w", err)
	}
	return t, nil
}
