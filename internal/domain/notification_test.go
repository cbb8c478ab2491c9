package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNotificationTypes_Closed(t *testing.T) {
	types := NotificationTypes()
	assert.Len(t, types, 19)

	groups := map[NotificationGroup]int{}
	for _, nt := range types {
		assert.True(t, nt.IsValid(), nt)
		assert.NotEmpty(t, nt.DetailKind(), nt)
		groups[nt.Group()]++
	}
	assert.Equal(t, map[NotificationGroup]int{
		GroupComments:    2,
		GroupClaims:      3,
		GroupTransaction: 2,
		GroupResources:   7,
		GroupSocial:      4,
		GroupSystem:      1,
	}, groups)

	assert.False(t, NotificationType("claim.approved").IsValid())
}

func TestNotificationType_Flags(t *testing.T) {
	var critical, dedup []NotificationType
	for _, nt := range NotificationTypes() {
		if nt.IsCritical() {
			critical = append(critical, nt)
		}
		if nt.RequiresDedup() {
			dedup = append(dedup, nt)
		}
	}
	assert.Equal(t, []NotificationType{NotifEventCancelled}, critical)
	assert.ElementsMatch(t, []NotificationType{
		NotifClaimCreated, NotifClaimResponded, NotifClaimCancelled,
		NotifResourceGiven, NotifResourceReceived,
	}, dedup)
}

func TestCandidate_Validate(t *testing.T) {
	claimID := uuid.New()
	valid := Candidate{
		TargetUserID: uuid.New(),
		Type:         NotifClaimCreated,
		Linked:       LinkedEntities{ClaimID: &claimID},
		Detail:       ClaimMetadata{},
	}
	assert.NoError(t, valid.Validate())

	noTarget := valid
	noTarget.TargetUserID = uuid.Nil
	assert.ErrorIs(t, noTarget.Validate(), ErrInvalidInput)

	wrongDetail := valid
	wrongDetail.Detail = CommentMetadata{}
	assert.ErrorIs(t, wrongDetail.Validate(), ErrInvalidInput)

	noClaim := valid
	noClaim.Linked = LinkedEntities{}
	assert.ErrorIs(t, noClaim.Validate(), ErrInvalidInput)

	unknown := valid
	unknown.Type = "claim.approved"
	assert.ErrorIs(t, unknown.Validate(), ErrInvalidInput)
}

func TestCandidate_IsSelfNotification(t *testing.T) {
	user := uuid.New()
	other := uuid.New()

	assert.True(t, Candidate{TargetUserID: user, ActorID: &user}.IsSelfNotification())
	assert.False(t, Candidate{TargetUserID: user, ActorID: &other}.IsSelfNotification())
	assert.False(t, Candidate{TargetUserID: user}.IsSelfNotification(), "system notifications have no actor")
}

func TestTrustLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{-5, 0}, {0, 0}, {9.99, 0}, {10, 1}, {49, 1}, {50, 2},
		{100, 3}, {249.5, 3}, {250, 4}, {500, 5}, {10000, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrustLevel(tt.score), "score %v", tt.score)
	}
}
