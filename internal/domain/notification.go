package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifResourceCommented NotificationType = "resource.commented"
	NotifCommentReplied    NotificationType = "comment.replied"

	NotifClaimCreated   NotificationType = "claim.created"
	NotifClaimResponded NotificationType = "claim.responded"
	NotifClaimCancelled NotificationType = "claim.cancelled"

	NotifResourceGiven    NotificationType = "resource.given"
	NotifResourceReceived NotificationType = "resource.received"

	NotifResourceCreated  NotificationType = "resource.created"
	NotifResourceUpdated  NotificationType = "resource.updated"
	NotifResourceExpiring NotificationType = "resource.expiring"
	NotifEventCreated     NotificationType = "event.created"
	NotifEventUpdated     NotificationType = "event.updated"
	NotifEventCancelled   NotificationType = "event.cancelled"
	NotifEventStarting    NotificationType = "event.starting"

	NotifMessageReceived       NotificationType = "message.received"
	NotifConversationRequested NotificationType = "conversation.requested"
	NotifShoutoutReceived      NotificationType = "shoutout.received"
	NotifMembershipUpdated     NotificationType = "membership.updated"

	NotifTrustLevelChanged NotificationType = "trustlevel.changed"
)

type NotificationGroup string

const (
	GroupComments    NotificationGroup = "comments"
	GroupClaims      NotificationGroup = "claims"
	GroupTransaction NotificationGroup = "transaction"
	GroupResources   NotificationGroup = "resources"
	GroupSocial      NotificationGroup = "social"
	GroupSystem      NotificationGroup = "system"
)

type typeSpec struct {
	group    NotificationGroup
	detail   DetailKind
	critical bool
	// at most one row per (user, type, claim)
	dedup bool
}

var notificationTypes = []NotificationType{
	NotifResourceCommented, NotifCommentReplied,
	NotifClaimCreated, NotifClaimResponded, NotifClaimCancelled,
	NotifResourceGiven, NotifResourceReceived,
	NotifResourceCreated, NotifResourceUpdated, NotifResourceExpiring,
	NotifEventCreated, NotifEventUpdated, NotifEventCancelled, NotifEventStarting,
	NotifMessageReceived, NotifConversationRequested, NotifShoutoutReceived, NotifMembershipUpdated,
	NotifTrustLevelChanged,
}

var typeSpecs = map[NotificationType]typeSpec{
	NotifResourceCommented: {group: GroupComments, detail: DetailComment},
	NotifCommentReplied:    {group: GroupComments, detail: DetailComment},

	NotifClaimCreated:   {group: GroupClaims, detail: DetailClaim, dedup: true},
	NotifClaimResponded: {group: GroupClaims, detail: DetailClaimResponse, dedup: true},
	NotifClaimCancelled: {group: GroupClaims, detail: DetailClaim, dedup: true},

	NotifResourceGiven:    {group: GroupTransaction, detail: DetailHandoff, dedup: true},
	NotifResourceReceived: {group: GroupTransaction, detail: DetailHandoff, dedup: true},

	NotifResourceCreated:  {group: GroupResources, detail: DetailResource},
	NotifResourceUpdated:  {group: GroupResources, detail: DetailResource},
	NotifResourceExpiring: {group: GroupResources, detail: DetailSchedule},
	NotifEventCreated:     {group: GroupResources, detail: DetailResource},
	NotifEventUpdated:     {group: GroupResources, detail: DetailResource},
	NotifEventCancelled:   {group: GroupResources, detail: DetailResource, critical: true},
	NotifEventStarting:    {group: GroupResources, detail: DetailSchedule},

	NotifMessageReceived:       {group: GroupSocial, detail: DetailMessage},
	NotifConversationRequested: {group: GroupSocial, detail: DetailMessage},
	NotifShoutoutReceived:      {group: GroupSocial, detail: DetailShoutout},
	NotifMembershipUpdated:     {group: GroupSocial, detail: DetailMembership},

	NotifTrustLevelChanged: {group: GroupSystem, detail: DetailTrustLevel},
}

// NotificationTypes returns the closed set of notification types.
func NotificationTypes() []NotificationType {
	out := make([]NotificationType, len(notificationTypes))
	copy(out, notificationTypes)
	return out
}

func (t NotificationType) IsValid() bool {
	_, ok := typeSpecs[t]
	return ok
}

func (t NotificationType) Group() NotificationGroup {
	return typeSpecs[t].group
}

// IsCritical types push whenever the recipient's global push switch is on,
// regardless of the per-type push flag.
func (t NotificationType) IsCritical() bool {
	return typeSpecs[t].critical
}

// RequiresDedup types are unique per (recipient, type, claim).
func (t NotificationType) RequiresDedup() bool {
	return typeSpecs[t].dedup
}

func (t NotificationType) DetailKind() DetailKind {
	return typeSpecs[t].detail
}

// LinkedEntities are the ids a notification points at. Only the subset
// relevant to the notification type is set.
type LinkedEntities struct {
	ResourceID     *uuid.UUID `json:"resource_id,omitempty" db:"resource_id"`
	ClaimID        *uuid.UUID `json:"claim_id,omitempty" db:"claim_id"`
	CommentID      *uuid.UUID `json:"comment_id,omitempty" db:"comment_id"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty" db:"conversation_id"`
	ShoutoutID     *uuid.UUID `json:"shoutout_id,omitempty" db:"shoutout_id"`
	CommunityID    *uuid.UUID `json:"community_id,omitempty" db:"community_id"`
}

type Notification struct {
	ID      uuid.UUID        `json:"id" db:"id"`
	UserID  uuid.UUID        `json:"user_id" db:"user_id"`
	ActorID *uuid.UUID       `json:"actor_id" db:"actor_id"`
	Type    NotificationType `json:"type" db:"type"`
	LinkedEntities
	Metadata  Metadata   `json:"metadata" db:"metadata"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ReadAt    *time.Time `json:"read_at" db:"read_at"`
}

func (n Notification) IsRead() bool {
	return n.ReadAt != nil
}

// Candidate is a notification computed from a domain event, before the
// self-notification, dedup and preference guards run.
type Candidate struct {
	TargetUserID uuid.UUID
	// nil for system-generated notifications
	ActorID *uuid.UUID
	Type    NotificationType
	Linked  LinkedEntities
	Detail  Detail
}

func (c Candidate) IsSelfNotification() bool {
	return c.ActorID != nil && *c.ActorID == c.TargetUserID
}

func (c Candidate) Validate() error {
	if c.TargetUserID == uuid.Nil || !c.Type.IsValid() {
		return ErrInvalidInput
	}
	if c.Detail == nil || c.Detail.Kind() != c.Type.DetailKind() {
		return ErrInvalidInput
	}
	if c.Type.RequiresDedup() && c.Linked.ClaimID == nil {
		return ErrInvalidInput
	}
	return nil
}

type NotificationFilter struct {
	UnreadOnly bool              `query:"unread_only"`
	Type       *NotificationType `query:"type"`
}

// DeliveryPayload is what push and email sinks receive.
type DeliveryPayload struct {
	NotificationID uuid.UUID        `json:"notification_id"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Body           string           `json:"body"`
	Linked         LinkedEntities   `json:"linked"`
	Metadata       Metadata         `json:"metadata"`
}
