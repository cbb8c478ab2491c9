package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChannelVector is the per-type channel switch set.
type ChannelVector struct {
	InApp bool `json:"in_app"`
	Push  bool `json:"push"`
	Email bool `json:"email"`
}

func DefaultChannelVector() ChannelVector {
	return ChannelVector{InApp: true, Push: true, Email: false}
}

// TypePreferences maps notification types to their channel vectors. Stored
// as a JSONB object; absent types use DefaultChannelVector.
type TypePreferences map[NotificationType]ChannelVector

func (p TypePreferences) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

func (p *TypePreferences) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*p = TypePreferences{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TypePreferences", src)
	}

	out := TypePreferences{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*p = out
	return nil
}

type NotificationPreference struct {
	UserID       uuid.UUID       `json:"user_id" db:"user_id"`
	Types        TypePreferences `json:"types" db:"types"`
	PushEnabled  bool            `json:"push_enabled" db:"push_enabled"`
	EmailEnabled bool            `json:"email_enabled" db:"email_enabled"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

// DefaultNotificationPreference materializes the defaults for every type.
// Both global switches start off.
func DefaultNotificationPreference(userID uuid.UUID) NotificationPreference {
	types := make(TypePreferences, len(notificationTypes))
	for _, t := range notificationTypes {
		types[t] = DefaultChannelVector()
	}
	return NotificationPreference{
		UserID: userID,
		Types:  types,
	}
}

// Channels returns the vector for t, falling back to the defaults.
func (p NotificationPreference) Channels(t NotificationType) ChannelVector {
	if v, ok := p.Types[t]; ok {
		return v
	}
	return DefaultChannelVector()
}

// WithDefaults returns a copy whose Types map lists every type explicitly.
func (p NotificationPreference) WithDefaults() NotificationPreference {
	types := make(TypePreferences, len(notificationTypes))
	for _, t := range notificationTypes {
		types[t] = p.Channels(t)
	}
	p.Types = types
	return p
}

// ChannelDecision says which channels a notification goes out on.
type ChannelDecision struct {
	InApp bool
	Push  bool
	Email bool
}

func (d ChannelDecision) Any() bool {
	return d.InApp || d.Push || d.Email
}

// Decide applies the two-level preference matrix for t:
//   - in-app follows the type flag alone
//   - push needs the global switch plus either the type flag or a critical type
//   - email needs the global switch and the type flag
func (p NotificationPreference) Decide(t NotificationType) ChannelDecision {
	v := p.Channels(t)
	return ChannelDecision{
		InApp: v.InApp,
		Push:  p.PushEnabled && (v.Push || t.IsCritical()),
		Email: p.EmailEnabled && v.Email,
	}
}

type GlobalPreferenceField string

const (
	GlobalPushEnabled  GlobalPreferenceField = "push_enabled"
	GlobalEmailEnabled GlobalPreferenceField = "email_enabled"
)

func (f GlobalPreferenceField) IsValid() bool {
	return f == GlobalPushEnabled || f == GlobalEmailEnabled
}

type UpdateGlobalPreferenceInput struct {
	Field GlobalPreferenceField `json:"field"`
	Value bool                  `json:"value"`
}
