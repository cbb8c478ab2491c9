package domain

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	MemberRoleMember    MemberRole = "member"
	MemberRoleOrganizer MemberRole = "organizer"
)

type Membership struct {
	CommunityID uuid.UUID  `json:"community_id" db:"community_id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Role        MemberRole `json:"role" db:"role"`
	JoinedAt    time.Time  `json:"joined_at" db:"joined_at"`
}

type Shoutout struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	GiverID     uuid.UUID  `json:"giver_id" db:"giver_id"`
	ReceiverID  uuid.UUID  `json:"receiver_id" db:"receiver_id"`
	ResourceID  *uuid.UUID `json:"resource_id,omitempty" db:"resource_id"`
	CommunityID *uuid.UUID `json:"community_id,omitempty" db:"community_id"`
	Message     string     `json:"message" db:"message"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

type CreateShoutoutInput struct {
	ReceiverID  uuid.UUID  `json:"receiver_id"`
	ResourceID  *uuid.UUID `json:"resource_id,omitempty"`
	CommunityID *uuid.UUID `json:"community_id,omitempty"`
	Message     string     `json:"message"`
}
