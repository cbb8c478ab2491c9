package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"berbagi/internal/domain"
)

type ConversationRepository interface {
	// Start creates the conversation, its participants and the first message
	// in one transaction.
	Start(ctx context.Context, conv *domain.Conversation, first *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	AddMessage(ctx context.Context, msg *domain.Message) error
}

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Start(ctx context.Context, conv *domain.Conversation, first *domain.Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin conversation tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO conversations (id, created_by) VALUES ($1, $2) RETURNING created_at`,
		conv.ID, conv.CreatedBy,
	).Scan(&conv.CreatedAt); err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}

	for _, userID := range conv.ParticipantIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			conv.ID, userID,
		); err != nil {
			return fmt.Errorf("insert participant %s: %w", userID, err)
		}
	}

	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, content) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		first.ID, first.ConversationID, first.SenderID, first.Content,
	).Scan(&first.CreatedAt); err != nil {
		return fmt.Errorf("insert first message: %w", err)
	}

	return tx.Commit()
}

func (r *conversationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	var conv domain.Conversation
	err := r.db.GetContext(ctx, &conv, `SELECT id, created_by, created_at FROM conversations WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	conv.ParticipantIDs = []uuid.UUID{}
	query := `SELECT user_id FROM conversation_participants WHERE conversation_id = $1`
	if err := r.db.SelectContext(ctx, &conv.ParticipantIDs, query, id); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) AddMessage(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Content,
	).Scan(&msg.CreatedAt)
}
