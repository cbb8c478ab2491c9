package domain

import "github.com/google/uuid"

// ClaimTransition is the result of applying a status change to a claim.
// Changed is false for idempotent repeats, which must not be persisted or
// produce notifications.
type ClaimTransition struct {
	Before       Claim
	After        Claim
	ResourceKind ResourceKind
	ActorID      uuid.UUID
	Requested    ClaimStatus
	Changed      bool
}

// GiverAndReceiver resolves the handoff roles from the resource kind. For an
// offer the owner gives; for a request (favor) the claimant gives. Event
// registrations behave like offers.
func GiverAndReceiver(kind ResourceKind, c Claim) (giver, receiver uuid.UUID) {
	if kind == ResourceRequest {
		return c.ClaimantID, c.OwnerID
	}
	return c.OwnerID, c.ClaimantID
}

// Transition applies target to the claim on behalf of actorID.
//
// occupied is the number of other claims holding a slot on the same resource
// and timeslot; maxAttendees nil means unlimited. Both must come from the same
// locked read as c for the capacity check to hold under concurrency.
func (c Claim) Transition(kind ResourceKind, actorID uuid.UUID, target ClaimStatus, occupied int, maxAttendees *int) (ClaimTransition, error) {
	t := ClaimTransition{
		Before:       c,
		After:        c,
		ResourceKind: kind,
		ActorID:      actorID,
		Requested:    target,
	}

	isOwner := actorID == c.OwnerID
	isClaimant := actorID == c.ClaimantID
	if !isOwner && !isClaimant {
		return t, ErrUnauthorized
	}

	if c.Status.IsTerminal() {
		return t, ErrInvalidStateTransition
	}

	giver, receiver := GiverAndReceiver(kind, c)

	switch target {
	case ClaimApproved, ClaimRejected:
		if c.Status != ClaimPending {
			return t, ErrInvalidStateTransition
		}
		if !isOwner {
			return t, ErrUnauthorized
		}
		if target == ClaimApproved && maxAttendees != nil && occupied >= *maxAttendees {
			return t, ErrCapacityExceeded
		}
		t.After.Status = target

	case ClaimCancelled:
		switch c.Status {
		case ClaimPending:
			if !isClaimant {
				return t, ErrUnauthorized
			}
		case ClaimApproved:
		default:
			return t, ErrInvalidStateTransition
		}
		t.After.Status = ClaimCancelled

	case ClaimGiven:
		if actorID != giver {
			return t, ErrUnauthorized
		}
		if c.GivenConfirmed {
			return t, nil
		}
		if c.Status != ClaimApproved && c.Status != ClaimReceived {
			return t, ErrInvalidStateTransition
		}
		t.After.GivenConfirmed = true
		t.After.Status = ClaimGiven

	case ClaimReceived:
		if actorID != receiver {
			return t, ErrUnauthorized
		}
		if c.ReceivedConfirmed {
			return t, nil
		}
		if c.Status != ClaimApproved && c.Status != ClaimGiven {
			return t, ErrInvalidStateTransition
		}
		t.After.ReceivedConfirmed = true
		t.After.Status = ClaimReceived

	default:
		// pending is only ever the initial state and completed is derived.
		return t, ErrInvalidStateTransition
	}

	if t.After.GivenConfirmed && t.After.ReceivedConfirmed {
		t.After.Status = ClaimCompleted
	}
	t.Changed = true
	return t, nil
}

// NewlyGiven reports whether this transition recorded the giver's confirmation.
func (t ClaimTransition) NewlyGiven() bool {
	return t.Changed && t.After.GivenConfirmed && !t.Before.GivenConfirmed
}

// NewlyReceived reports whether this transition recorded the receiver's confirmation.
func (t ClaimTransition) NewlyReceived() bool {
	return t.Changed && t.After.ReceivedConfirmed && !t.Before.ReceivedConfirmed
}
