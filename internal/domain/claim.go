package domain

import (
	"time"

	"github.com/google/uuid"
)

type ClaimStatus string

const (
	ClaimPending   ClaimStatus = "pending"
	ClaimApproved  ClaimStatus = "approved"
	ClaimRejected  ClaimStatus = "rejected"
	ClaimCancelled ClaimStatus = "cancelled"
	ClaimGiven     ClaimStatus = "given"
	ClaimReceived  ClaimStatus = "received"
	ClaimCompleted ClaimStatus = "completed"
)

func (s ClaimStatus) IsValid() bool {
	switch s {
	case ClaimPending, ClaimApproved, ClaimRejected, ClaimCancelled,
		ClaimGiven, ClaimReceived, ClaimCompleted:
		return true
	}
	return false
}

func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimRejected || s == ClaimCancelled || s == ClaimCompleted
}

// OccupiesCapacity reports whether a claim in this status holds one of the
// resource's attendee slots.
func (s ClaimStatus) OccupiesCapacity() bool {
	switch s {
	case ClaimApproved, ClaimGiven, ClaimReceived, ClaimCompleted:
		return true
	}
	return false
}

// CapacityStatuses lists every status for which OccupiesCapacity is true.
func CapacityStatuses() []string {
	return []string{string(ClaimApproved), string(ClaimGiven), string(ClaimReceived), string(ClaimCompleted)}
}

// OpenStatuses lists the non-terminal statuses.
func OpenStatuses() []string {
	return []string{string(ClaimPending), string(ClaimApproved), string(ClaimGiven), string(ClaimReceived)}
}

type Claim struct {
	ID                uuid.UUID   `json:"id" db:"id"`
	ResourceID        uuid.UUID   `json:"resource_id" db:"resource_id"`
	TimeslotID        *uuid.UUID  `json:"timeslot_id,omitempty" db:"timeslot_id"`
	ClaimantID        uuid.UUID   `json:"claimant_id" db:"claimant_id"`
	OwnerID           uuid.UUID   `json:"owner_id" db:"owner_id"`
	RequestText       *string     `json:"request_text,omitempty" db:"request_text"`
	Status            ClaimStatus `json:"status" db:"status"`
	GivenConfirmed    bool        `json:"given_confirmed" db:"given_confirmed"`
	ReceivedConfirmed bool        `json:"received_confirmed" db:"received_confirmed"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" db:"updated_at"`
}

// ClaimEvent is one row of a claim's audit trail.
type ClaimEvent struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	ClaimID    uuid.UUID   `json:"claim_id" db:"claim_id"`
	ActorID    uuid.UUID   `json:"actor_id" db:"actor_id"`
	FromStatus ClaimStatus `json:"from_status" db:"from_status"`
	ToStatus   ClaimStatus `json:"to_status" db:"to_status"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

type CreateClaimInput struct {
	TimeslotID  *uuid.UUID `json:"timeslot_id,omitempty"`
	RequestText *string    `json:"request_text,omitempty"`
}

type UpdateClaimStatusInput struct {
	Status ClaimStatus `json:"status"`
}

type ClaimRole string

const (
	ClaimRoleClaimant ClaimRole = "claimant"
	ClaimRoleOwner    ClaimRole = "owner"
)

type ClaimFilter struct {
	Role   ClaimRole    `query:"role"`
	Status *ClaimStatus `query:"status"`
}

// ClaimSnapshot is the locked view of a claim handed to the state machine:
// the claim, its resource, and how many other claims currently occupy a slot
// on the same resource and timeslot.
type ClaimSnapshot struct {
	Claim         Claim
	Resource      Resource
	OccupiedSlots int
}
