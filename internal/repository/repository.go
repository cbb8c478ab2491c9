package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Resource     ResourceRepository
	Claim        ClaimRepository
	Comment      CommentRepository
	Membership   MembershipRepository
	Conversation ConversationRepository
	Shoutout     ShoutoutRepository
	Trust        TrustRepository
	Notification NotificationRepository
	Preference   PreferenceRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Resource:     NewResourceRepository(db),
		Claim:        NewClaimRepository(db),
		Comment:      NewCommentRepository(db),
		Membership:   NewMembershipRepository(db),
		Conversation: NewConversationRepository(db),
		Shoutout:     NewShoutoutRepository(db),
		Trust:        NewTrustRepository(db),
		Notification: NewNotificationRepository(db),
		Preference:   NewPreferenceRepository(db),
	}
}
