package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  *string   `json:"full_name,omitempty" db:"full_name"`
	FirstName *string   `json:"first_name,omitempty" db:"first_name"`
	LastName  *string   `json:"last_name,omitempty" db:"last_name"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Actor is the display information embedded in notifications about the
// user who caused them.
type Actor struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
}

// DisplayName prefers the explicit full name, then "first last", then the
// first name alone.
func (u User) DisplayName() string {
	if name := trimmed(u.FullName); name != "" {
		return name
	}

	first := trimmed(u.FirstName)
	last := trimmed(u.LastName)
	if first != "" && last != "" {
		return first + " " + last
	}
	return first
}

func (u User) Actor() Actor {
	return Actor{
		ID:          u.ID,
		DisplayName: u.DisplayName(),
		AvatarURL:   u.AvatarURL,
	}
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
