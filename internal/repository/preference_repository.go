package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"berbagi/internal/domain"
)

type PreferenceRepository interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreference, error)
	UpdateType(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, vector domain.ChannelVector) (*domain.NotificationPreference, error)
	UpdateGlobal(ctx context.Context, userID uuid.UUID, field domain.GlobalPreferenceField, value bool) (*domain.NotificationPreference, error)
}

type preferenceRepository struct {
	db *sqlx.DB
}

func NewPreferenceRepository(db *sqlx.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

const preferenceColumns = `user_id, types, push_enabled, email_enabled, created_at, updated_at`

// GetOrCreate materializes the default row for users created before the
// insert trigger existed.
func (r *preferenceRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.NotificationPreference, error) {
	query := `
		INSERT INTO notification_preferences (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + preferenceColumns

	var pref domain.NotificationPreference
	if err := r.db.GetContext(ctx, &pref, query, userID); err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) UpdateType(ctx context.Context, userID uuid.UUID, notifType domain.NotificationType, vector domain.ChannelVector) (*domain.NotificationPreference, error) {
	if !notifType.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	raw, err := json.Marshal(vector)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO notification_preferences (user_id, types) VALUES ($1, jsonb_build_object($2::text, $3::jsonb))
		ON CONFLICT (user_id) DO UPDATE
		SET types = jsonb_set(notification_preferences.types, ARRAY[$2::text], $3::jsonb, true), updated_at = NOW()
		RETURNING ` + preferenceColumns

	var pref domain.NotificationPreference
	if err := r.db.GetContext(ctx, &pref, query, userID, string(notifType), string(raw)); err != nil {
		return nil, err
	}
	return &pref, nil
}

func (r *preferenceRepository) UpdateGlobal(ctx context.Context, userID uuid.UUID, field domain.GlobalPreferenceField, value bool) (*domain.NotificationPreference, error) {
	var query string
	switch field {
	case domain.GlobalPushEnabled:
		query = `
			INSERT INTO notification_preferences (user_id, push_enabled) VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET push_enabled = EXCLUDED.push_enabled, updated_at = NOW()
			RETURNING ` + preferenceColumns
	case domain.GlobalEmailEnabled:
		query = `
			INSERT INTO notification_preferences (user_id, email_enabled) VALUES ($1, $2)
			ON CONFLICT (user_id) DO UPDATE SET email_enabled = EXCLUDED.email_enabled, updated_at = NOW()
			RETURNING ` + preferenceColumns
	default:
		return nil, domain.ErrInvalidInput
	}

	var pref domain.NotificationPreference
	if err := r.db.GetContext(ctx, &pref, query, userID, value); err != nil {
		return nil, err
	}
	return &pref, nil
}
