// Package emitter maps domain actions to candidate notifications. Every
// function is pure: it reads the state the action produced and returns the
// candidates, leaving the self-notification, dedup and preference guards to
// the dispatcher.
package emitter

import (
	"time"

	"github.com/google/uuid"

	"berbagi/internal/domain"
)

const excerptLength = 140

func ref(id uuid.UUID) *uuid.UUID {
	return &id
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptLength {
		return s
	}
	return string(r[:excerptLength]) + "…"
}

// CommentCreated notifies the resource owner of a top-level comment, or the
// parent's author of a reply.
func CommentCreated(c domain.Comment, resource domain.Resource, parent *domain.Comment) []domain.Candidate {
	linked := domain.LinkedEntities{ResourceID: ref(resource.ID), CommentID: ref(c.ID)}
	detail := domain.CommentMetadata{Excerpt: excerpt(c.Content)}

	if parent != nil {
		if parent.AuthorID == c.AuthorID {
			return nil
		}
		return []domain.Candidate{{
			TargetUserID: parent.AuthorID,
			ActorID:      ref(c.AuthorID),
			Type:         domain.NotifCommentReplied,
			Linked:       linked,
			Detail:       detail,
		}}
	}

	if resource.OwnerID == c.AuthorID {
		return nil
	}
	return []domain.Candidate{{
		TargetUserID: resource.OwnerID,
		ActorID:      ref(c.AuthorID),
		Type:         domain.NotifResourceCommented,
		Linked:       linked,
		Detail:       detail,
	}}
}

// ClaimCreated notifies the owner. Self-claims produce nothing.
func ClaimCreated(c domain.Claim, resource domain.Resource) []domain.Candidate {
	if c.ClaimantID == c.OwnerID {
		return nil
	}
	return []domain.Candidate{{
		TargetUserID: c.OwnerID,
		ActorID:      ref(c.ClaimantID),
		Type:         domain.NotifClaimCreated,
		Linked:       claimLinks(c),
		Detail: domain.ClaimMetadata{
			ResourceTitle: resource.Title,
			RequestText:   c.RequestText,
		},
	}}
}

func claimLinks(c domain.Claim) domain.LinkedEntities {
	return domain.LinkedEntities{ResourceID: ref(c.ResourceID), ClaimID: ref(c.ID)}
}

// ClaimTransitioned covers responses, cancellations and both halves of the
// handoff. Idempotent repeats (Changed == false) produce nothing.
func ClaimTransitioned(t domain.ClaimTransition, resource domain.Resource) []domain.Candidate {
	if !t.Changed {
		return nil
	}
	c := t.After
	actor := ref(t.ActorID)

	switch t.Requested {
	case domain.ClaimApproved, domain.ClaimRejected:
		return []domain.Candidate{{
			TargetUserID: c.ClaimantID,
			ActorID:      actor,
			Type:         domain.NotifClaimResponded,
			Linked:       claimLinks(c),
			Detail: domain.ClaimResponseMetadata{
				ResourceTitle: resource.Title,
				Response:      t.Requested,
			},
		}}

	case domain.ClaimCancelled:
		target := c.OwnerID
		if t.ActorID == c.OwnerID {
			target = c.ClaimantID
		}
		return []domain.Candidate{{
			TargetUserID: target,
			ActorID:      actor,
			Type:         domain.NotifClaimCancelled,
			Linked:       claimLinks(c),
			Detail: domain.ClaimMetadata{
				ResourceTitle: resource.Title,
				RequestText:   c.RequestText,
			},
		}}
	}

	giver, receiver := domain.GiverAndReceiver(t.ResourceKind, c)
	completed := c.Status == domain.ClaimCompleted

	var out []domain.Candidate
	if t.NewlyGiven() {
		out = append(out, domain.Candidate{
			TargetUserID: receiver,
			ActorID:      actor,
			Type:         domain.NotifResourceGiven,
			Linked:       claimLinks(c),
			Detail: domain.HandoffMetadata{
				ResourceTitle: resource.Title,
				Role:          domain.HandoffReceiver,
				Completed:     completed,
			},
		})
	}
	if t.NewlyReceived() {
		out = append(out, domain.Candidate{
			TargetUserID: giver,
			ActorID:      actor,
			Type:         domain.NotifResourceReceived,
			Linked:       claimLinks(c),
			Detail: domain.HandoffMetadata{
				ResourceTitle: resource.Title,
				Role:          domain.HandoffGiver,
				Completed:     completed,
			},
		})
	}
	return out
}

func resourceDetail(r domain.Resource) domain.ResourceMetadata {
	return domain.ResourceMetadata{Title: r.Title, ResourceKind: r.Kind}
}

// ResourceCreated fans out to every community member except the creator.
func ResourceCreated(r domain.Resource, memberIDs []uuid.UUID) []domain.Candidate {
	notifType := domain.NotifResourceCreated
	if r.IsEvent() {
		notifType = domain.NotifEventCreated
	}

	out := make([]domain.Candidate, 0, len(memberIDs))
	for _, userID := range memberIDs {
		if userID == r.OwnerID {
			continue
		}
		out = append(out, domain.Candidate{
			TargetUserID: userID,
			ActorID:      ref(r.OwnerID),
			Type:         notifType,
			Linked:       domain.LinkedEntities{ResourceID: ref(r.ID), CommunityID: ref(r.CommunityID)},
			Detail:       resourceDetail(r),
		})
	}
	return out
}

// ResourceUpdated notifies every holder of an open claim except the editor.
func ResourceUpdated(r domain.Resource, editorID uuid.UUID, claimantIDs []uuid.UUID) []domain.Candidate {
	notifType := domain.NotifResourceUpdated
	if r.IsEvent() {
		notifType = domain.NotifEventUpdated
	}
	return toClaimants(r, editorID, claimantIDs, notifType)
}

// ResourceCancelled uses the critical event.cancelled type for events. Other
// resources have no cancellation type and fall back to resource.updated.
func ResourceCancelled(r domain.Resource, editorID uuid.UUID, claimantIDs []uuid.UUID) []domain.Candidate {
	notifType := domain.NotifResourceUpdated
	if r.IsEvent() {
		notifType = domain.NotifEventCancelled
	}
	return toClaimants(r, editorID, claimantIDs, notifType)
}

func toClaimants(r domain.Resource, editorID uuid.UUID, claimantIDs []uuid.UUID, notifType domain.NotificationType) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(claimantIDs))
	for _, userID := range claimantIDs {
		if userID == editorID {
			continue
		}
		out = append(out, domain.Candidate{
			TargetUserID: userID,
			ActorID:      ref(editorID),
			Type:         notifType,
			Linked:       domain.LinkedEntities{ResourceID: ref(r.ID)},
			Detail:       resourceDetail(r),
		})
	}
	return out
}

// MembershipChanged notifies the community organizers.
func MembershipChanged(communityID, userID uuid.UUID, action domain.MembershipAction, organizerIDs []uuid.UUID) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(organizerIDs))
	for _, organizerID := range organizerIDs {
		if organizerID == userID {
			continue
		}
		out = append(out, domain.Candidate{
			TargetUserID: organizerID,
			ActorID:      ref(userID),
			Type:         domain.NotifMembershipUpdated,
			Linked:       domain.LinkedEntities{CommunityID: ref(communityID)},
			Detail:       domain.MembershipMetadata{Action: action},
		})
	}
	return out
}

// MessageSent notifies the other participants. The first message of a
// conversation is a conversation request.
func MessageSent(msg domain.Message, participantIDs []uuid.UUID, first bool) []domain.Candidate {
	notifType := domain.NotifMessageReceived
	if first {
		notifType = domain.NotifConversationRequested
	}

	out := make([]domain.Candidate, 0, len(participantIDs))
	for _, userID := range participantIDs {
		if userID == msg.SenderID {
			continue
		}
		out = append(out, domain.Candidate{
			TargetUserID: userID,
			ActorID:      ref(msg.SenderID),
			Type:         notifType,
			Linked:       domain.LinkedEntities{ConversationID: ref(msg.ConversationID)},
			Detail:       domain.MessageMetadata{Excerpt: excerpt(msg.Content)},
		})
	}
	return out
}

func ShoutoutGiven(s domain.Shoutout) []domain.Candidate {
	return []domain.Candidate{{
		TargetUserID: s.ReceiverID,
		ActorID:      ref(s.GiverID),
		Type:         domain.NotifShoutoutReceived,
		Linked: domain.LinkedEntities{
			ShoutoutID:  ref(s.ID),
			ResourceID:  s.ResourceID,
			CommunityID: s.CommunityID,
		},
		Detail: domain.ShoutoutMetadata{Message: excerpt(s.Message)},
	}}
}

// TrustScoreChanged emits only when the discretized level moves.
func TrustScoreChanged(userID, communityID uuid.UUID, oldScore, newScore float64) []domain.Candidate {
	oldLevel, newLevel := domain.TrustLevel(oldScore), domain.TrustLevel(newScore)
	if oldLevel == newLevel {
		return nil
	}
	return []domain.Candidate{{
		TargetUserID: userID,
		Type:         domain.NotifTrustLevelChanged,
		Linked:       domain.LinkedEntities{CommunityID: ref(communityID)},
		Detail:       domain.TrustLevelMetadata{OldLevel: oldLevel, NewLevel: newLevel},
	}}
}

// ResourceExpiring is a system notification to the owner.
func ResourceExpiring(r domain.Resource) []domain.Candidate {
	if r.ExpiresAt == nil {
		return nil
	}
	return []domain.Candidate{scheduleCandidate(r, r.OwnerID, domain.NotifResourceExpiring, *r.ExpiresAt)}
}

// EventStarting is a system notification to the owner and every registered
// participant.
func EventStarting(r domain.Resource, participantIDs []uuid.UUID) []domain.Candidate {
	if r.StartsAt == nil {
		return nil
	}

	out := []domain.Candidate{scheduleCandidate(r, r.OwnerID, domain.NotifEventStarting, *r.StartsAt)}
	for _, userID := range participantIDs {
		if userID == r.OwnerID {
			continue
		}
		out = append(out, scheduleCandidate(r, userID, domain.NotifEventStarting, *r.StartsAt))
	}
	return out
}

func scheduleCandidate(r domain.Resource, target uuid.UUID, notifType domain.NotificationType, at time.Time) domain.Candidate {
	return domain.Candidate{
		TargetUserID: target,
		Type:         notifType,
		Linked:       domain.LinkedEntities{ResourceID: ref(r.ID)},
		Detail:       domain.ScheduleMetadata{Title: r.Title, At: at},
	}
}
