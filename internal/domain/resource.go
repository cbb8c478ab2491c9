package domain

import (
	"time"

	"github.com/google/uuid"
)

type ResourceKind string

const (
	ResourceOffer   ResourceKind = "offer"
	ResourceRequest ResourceKind = "request"
	ResourceEvent   ResourceKind = "event"
)

func (k ResourceKind) IsValid() bool {
	switch k {
	case ResourceOffer, ResourceRequest, ResourceEvent:
		return true
	}
	return false
}

type ResourceStatus string

const (
	ResourceActive    ResourceStatus = "active"
	ResourceCancelled ResourceStatus = "cancelled"
)

type Resource struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	OwnerID      uuid.UUID      `json:"owner_id" db:"owner_id"`
	CommunityID  uuid.UUID      `json:"community_id" db:"community_id"`
	Kind         ResourceKind   `json:"kind" db:"kind"`
	Title        string         `json:"title" db:"title"`
	Description  *string        `json:"description,omitempty" db:"description"`
	MaxAttendees *int           `json:"max_attendees,omitempty" db:"max_attendees"`
	Status       ResourceStatus `json:"status" db:"status"`
	StartsAt     *time.Time     `json:"starts_at,omitempty" db:"starts_at"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty" db:"expires_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

func (r Resource) IsEvent() bool {
	return r.Kind == ResourceEvent
}

type CreateResourceInput struct {
	CommunityID  uuid.UUID    `json:"community_id"`
	Kind         ResourceKind `json:"kind"`
	Title        string       `json:"title"`
	Description  *string      `json:"description,omitempty"`
	MaxAttendees *int         `json:"max_attendees,omitempty"`
	StartsAt     *time.Time   `json:"starts_at,omitempty"`
	ExpiresAt    *time.Time   `json:"expires_at,omitempty"`
}

func (in CreateResourceInput) Validate() error {
	if in.CommunityID == uuid.Nil || !in.Kind.IsValid() || in.Title == "" {
		return ErrInvalidInput
	}
	if in.MaxAttendees != nil && *in.MaxAttendees < 1 {
		return ErrInvalidInput
	}
	return nil
}

type UpdateResourceInput struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	MaxAttendees *int       `json:"max_attendees,omitempty"`
	StartsAt     *time.Time `json:"starts_at,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
}

// Apply copies the set fields onto r.
func (in UpdateResourceInput) Apply(r *Resource) error {
	if in.Title != nil {
		if *in.Title == "" {
			return ErrInvalidInput
		}
		r.Title = *in.Title
	}
	if in.Description != nil {
		r.Description = in.Description
	}
	if in.MaxAttendees != nil {
		if *in.MaxAttendees < 1 {
			return ErrInvalidInput
		}
		r.MaxAttendees = in.MaxAttendees
	}
	if in.StartsAt != nil {
		r.StartsAt = in.StartsAt
	}
	if in.ExpiresAt != nil {
		r.ExpiresAt = in.ExpiresAt
	}
	return nil
}
