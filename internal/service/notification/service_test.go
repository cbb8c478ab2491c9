package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"berbagi/internal/domain"
	"berbagi/internal/mocks"
	"berbagi/internal/service/notification"
)

type harness struct {
	notifRepo *mocks.NotificationRepository
	prefRepo  *mocks.PreferenceRepository
	actors    *mocks.ActorResolver
	realtime  *mocks.RealtimePublisher
	push      *mocks.Sink
	email     *mocks.Sink
	pool      *mocks.InlineSubmitter
	svc       notification.Service
}

func newHarness() *harness {
	h := &harness{
		notifRepo: new(mocks.NotificationRepository),
		prefRepo:  new(mocks.PreferenceRepository),
		actors:    new(mocks.ActorResolver),
		realtime:  new(mocks.RealtimePublisher),
		push:      new(mocks.Sink),
		email:     new(mocks.Sink),
		pool:      new(mocks.InlineSubmitter),
	}
	h.svc = notification.NewService(notification.Dependencies{
		Notifications: h.notifRepo,
		Preferences:   h.prefRepo,
		Actors:        h.actors,
		Pool:          h.pool,
		Realtime:      h.realtime,
		Push:          h.push,
		Email:         h.email,
	}, notification.Options{Locale: "en", DeliveryTimeout: time.Second})
	return h
}

func (h *harness) assertNoWrites(t *testing.T) {
	t.Helper()
	h.notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	h.push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	h.email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	h.realtime.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func sampleDetail(kind domain.DetailKind) domain.Detail {
	switch kind {
	case domain.DetailComment:
		return domain.CommentMetadata{Excerpt: "nice"}
	case domain.DetailClaim:
		return domain.ClaimMetadata{ResourceTitle: "Ladder"}
	case domain.DetailClaimResponse:
		return domain.ClaimResponseMetadata{ResourceTitle: "Ladder", Response: domain.ClaimApproved}
	case domain.DetailHandoff:
		return domain.HandoffMetadata{ResourceTitle: "Ladder", Role: domain.HandoffReceiver}
	case domain.DetailResource:
		return domain.ResourceMetadata{Title: "Ladder", ResourceKind: domain.ResourceOffer}
	case domain.DetailSchedule:
		return domain.ScheduleMetadata{Title: "Ladder", At: time.Now()}
	case domain.DetailMessage:
		return domain.MessageMetadata{Excerpt: "hi"}
	case domain.DetailShoutout:
		return domain.ShoutoutMetadata{Message: "thanks"}
	case domain.DetailMembership:
		return domain.MembershipMetadata{Action: domain.MembershipJoined}
	case domain.DetailTrustLevel:
		return domain.TrustLevelMetadata{OldLevel: 1, NewLevel: 2}
	}
	return nil
}

func candidate(notifType domain.NotificationType, actorID *uuid.UUID, target uuid.UUID) domain.Candidate {
	claimID := uuid.New()
	resourceID := uuid.New()
	return domain.Candidate{
		TargetUserID: target,
		ActorID:      actorID,
		Type:         notifType,
		Linked:       domain.LinkedEntities{ResourceID: &resourceID, ClaimID: &claimID},
		Detail:       sampleDetail(notifType.DetailKind()),
	}
}

func preference(userID uuid.UUID, push, email bool, overrides domain.TypePreferences) *domain.NotificationPreference {
	p := domain.DefaultNotificationPreference(userID)
	p.PushEnabled = push
	p.EmailEnabled = email
	for t, v := range overrides {
		p.Types[t] = v
	}
	return &p
}

func TestDispatch_SuppressesSelfNotificationForEveryType(t *testing.T) {
	ctx := context.Background()
	user := uuid.New()

	for _, nt := range domain.NotificationTypes() {
		t.Run(string(nt), func(t *testing.T) {
			h := newHarness()

			result, err := h.svc.Dispatch(ctx, candidate(nt, &user, user))

			require.NoError(t, err)
			assert.Equal(t, notification.OutcomeSuppressedSelf, result.Outcome)
			assert.True(t, result.Suppressed())
			assert.Nil(t, result.Notification)
			h.assertNoWrites(t)
			h.prefRepo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
		})
	}
}

func TestDispatch_Persists(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	actorID, target := uuid.New(), uuid.New()
	c := candidate(domain.NotifResourceCommented, &actorID, target)

	h.prefRepo.On("GetOrCreate", ctx, target).Return(preference(target, false, false, nil), nil).Once()
	h.actors.On("Resolve", ctx, actorID).Return(domain.Actor{ID: actorID, DisplayName: "Budi"}, nil).Once()
	h.notifRepo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == target && *n.ActorID == actorID && n.Type == domain.NotifResourceCommented &&
			n.Metadata.ActorName == "Budi" && n.ReadAt == nil
	})).Return(true, nil).Once()
	h.realtime.On("Publish", mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
		return n.UserID == target
	})).Return(nil).Once()

	result, err := h.svc.Dispatch(ctx, c)

	require.NoError(t, err)
	assert.Equal(t, notification.OutcomePersisted, result.Outcome)
	require.NotNil(t, result.Notification)
	assert.Equal(t, domain.ChannelDecision{InApp: true}, result.Channels)
	h.notifRepo.AssertExpectations(t)
	h.realtime.AssertExpectations(t)
	h.push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_CommentWithPushDisabledForType(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	actorID, target := uuid.New(), uuid.New()
	c := candidate(domain.NotifResourceCommented, &actorID, target)

	pref := preference(target, true, true, domain.TypePreferences{
		domain.NotifResourceCommented: {InApp: true, Push: false, Email: false},
	})
	h.prefRepo.On("GetOrCreate", ctx, target).Return(pref, nil).Once()
	h.actors.On("Resolve", ctx, actorID).Return(domain.Actor{ID: actorID}, nil)
	h.notifRepo.On("Create", ctx, mock.Anything).Return(true, nil).Once()
	h.realtime.On("Publish", mock.Anything, mock.Anything).Return(nil)

	result, err := h.svc.Dispatch(ctx, c)

	require.NoError(t, err)
	assert.Equal(t, notification.OutcomePersisted, result.Outcome)
	h.push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	h.email.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, h.pool.Submitted, "only the realtime fanout is queued")
}

func TestDispatch_CriticalTypeBypassesTypePushFlag(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	actorID, target := uuid.New(), uuid.New()
	c := candidate(domain.NotifEventCancelled, &actorID, target)

	pref := preference(target, true, false, domain.TypePreferences{
		domain.NotifEventCancelled: {InApp: true, Push: false, Email: false},
	})
	h.prefRepo.On("GetOrCreate", ctx, target).Return(pref, nil).Once()
	h.actors.On("Resolve", ctx, actorID).Return(domain.Actor{ID: actorID, DisplayName: "Host"}, nil)
	h.notifRepo.On("Create", ctx, mock.Anything).Return(true, nil).Once()
	h.realtime.On("Publish", mock.Anything, mock.Anything).Return(nil)
	h.push.On("Send", mock.Anything, target, mock.MatchedBy(func(p domain.DeliveryPayload) bool {
		return p.Type == domain.NotifEventCancelled && p.Metadata.ActorName == "Host"
	})).Return(nil).Once()

	result, err := h.svc.Dispatch(ctx, c)

	require.NoError(t, err)
	assert.True(t, result.Channels.Push)
	h.push.AssertExpectations(t)
}

func TestDispatch_PreferenceSuppression(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	actorID, target := uuid.New(), uuid.New()
	c := candidate(domain.NotifShoutoutReceived, &actorID, target)

	pref := preference(target, true, true, domain.TypePreferences{
		domain.NotifShoutoutReceived: {},
	})
	h.prefRepo.On("GetOrCreate", ctx, target).Return(pref, nil).Once()

	result, err := h.svc.Dispatch(ctx, c)

	require.NoError(t, err)
	assert.Equal(t, notification.OutcomeSuppressedPreference, result.Outcome)
	h.assertNoWrites(t)
}

func TestDispatch_PushOnlyIsDeliveredWithoutRow(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	actorID, target := uuid.New(), uuid.New()
	c := candidate(domain.NotifMessageReceived, &actorID, target)

	pref := preference(target, true, false, domain.TypePreferences{
		domain.NotifMessageReceived: {InApp: false, Push: true},
	})
	h.prefRepo.On("GetOrCreate", ctx, target).Return(pref, nil).Once()
	h.actors.On("Resolve", ctx, actorID).Return(domain.Actor{ID: actorID}, nil)
	h.push.On("Send", mock.Anything, target, mock.Anything).Return(nil).Once()

	result, err := h.svc.Dispatch(ctx, c)

	require.NoError(t, err)
	assert.Equal(t, notification.OutcomeDelivered, result.Outcome)
	assert.False(t, result.Suppressed())
	h.notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	h.realtime.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	h.push.AssertExpectations(t)
}

func TestDispatch_Dedup(t *testing.T) {
	ctx := context.Background()
	actorID, target := uuid.New(), uuid.New()

	t.Run("Existing row", func(t *testing.T) {
		h := newHarness()
		c := candidate(domain.NotifClaimResponded, &actorID, target)
		h.notifRepo.On("ExistsForClaim", ctx, target, domain.NotifClaimResponded, *c.Linked.ClaimID).Return(true, nil).Once()

		result, err := h.svc.Dispatch(ctx, c)

		require.NoError(t, err)
		assert.Equal(t, notification.OutcomeSuppressedDuplicate, result.Outcome)
		h.assertNoWrites(t)
	})

	t.Run("Lost the insert race", func(t *testing.T) {
		h := newHarness()
		c := candidate(domain.NotifResourceGiven, &actorID, target)
		h.notifRepo.On("ExistsForClaim", ctx, target, domain.NotifResourceGiven, *c.Linked.ClaimID).Return(false, nil).Once()
		h.prefRepo.On("GetOrCreate", ctx, target).Return(preference(target, true, false, nil), nil).Once()
		h.actors.On("Resolve", ctx, actorID).Return(domain.Actor{ID: actorID}, nil)
		h.notifRepo.On("Create", ctx, mock.Anything).Return(false, nil).Once()

		result, err := h.svc.Dispatch(ctx, c)

		require.NoError(t, err)
		assert.Equal(t, notification.OutcomeSuppressedDuplicate, result.Outcome)
		h.push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
		h.realtime.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Non-claim types skip the check", func(t *testing.T) {
		h := newHarness()
		c := candidate(domain.NotifMessageReceived, &actorID, target)
		h.prefRepo.On("GetOrCreate", ctx, target).Return(preference(target, false, false, nil), nil).Once()
		h.actors.On("Resolve", ctx, actorID).Return(domain.Actor{ID: actorID}, nil)
		h.notifRepo.On("Create", ctx, mock.Anything).Return(true, nil).Once()
		h.realtime.On("Publish", mock.Anything, mock.Anything).Return(nil)

		_, err := h.svc.Dispatch(ctx, c)

		require.NoError(t, err)
		h.notifRepo.AssertNotCalled(t, "ExistsForClaim", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDispatch_DeliveryFailureIsIsolated(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	actorID, target := uuid.New(), uuid.New()
	c := candidate(domain.NotifShoutoutReceived, &actorID, target)

	pref := preference(target, true, true, domain.TypePreferences{
		domain.NotifShoutoutReceived: {InApp: true, Push: true, Email: true},
	})
	h.prefRepo.On("GetOrCreate", ctx, target).Return(pref, nil).Once()
	h.actors.On("Resolve", ctx, actorID).Return(domain.Actor{}, errors.New("redis down"))
	h.notifRepo.On("Create", ctx, mock.Anything).Return(true, nil).Once()
	h.realtime.On("Publish", mock.Anything, mock.Anything).Return(errors.New("publish failed"))
	h.push.On("Send", mock.Anything, target, mock.Anything).Return(errors.New("gateway timeout")).Once()
	h.email.On("Send", mock.Anything, target, mock.Anything).Return(nil).Once()

	result, err := h.svc.Dispatch(ctx, c)

	require.NoError(t, err)
	assert.Equal(t, notification.OutcomePersisted, result.Outcome)
	assert.Empty(t, result.Notification.Metadata.ActorName)
	h.push.AssertExpectations(t)
	h.email.AssertExpectations(t)
}

func TestDispatch_Errors(t *testing.T) {
	ctx := context.Background()
	actorID, target := uuid.New(), uuid.New()

	t.Run("Invalid candidate", func(t *testing.T) {
		h := newHarness()
		c := candidate(domain.NotifClaimCreated, &actorID, target)
		c.Detail = domain.CommentMetadata{}

		_, err := h.svc.Dispatch(ctx, c)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Repository failure", func(t *testing.T) {
		h := newHarness()
		c := candidate(domain.NotifCommentReplied, &actorID, target)
		h.prefRepo.On("GetOrCreate", ctx, target).Return(preference(target, false, false, nil), nil).Once()
		h.actors.On("Resolve", ctx, actorID).Return(domain.Actor{ID: actorID}, nil)
		h.notifRepo.On("Create", ctx, mock.Anything).Return(false, errors.New("db down")).Once()

		_, err := h.svc.Dispatch(ctx, c)
		assert.Error(t, err)
	})
}

func TestDispatchAll_ContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	actorID := uuid.New()
	failing, ok := uuid.New(), uuid.New()

	h.prefRepo.On("GetOrCreate", ctx, failing).Return(nil, errors.New("db down")).Once()
	h.prefRepo.On("GetOrCreate", ctx, ok).Return(preference(ok, false, false, nil), nil).Once()
	h.actors.On("Resolve", ctx, actorID).Return(domain.Actor{ID: actorID}, nil)
	h.notifRepo.On("Create", ctx, mock.Anything).Return(true, nil).Once()
	h.realtime.On("Publish", mock.Anything, mock.Anything).Return(nil)

	results := h.svc.DispatchAll(ctx, []domain.Candidate{
		candidate(domain.NotifResourceCreated, &actorID, failing),
		candidate(domain.NotifResourceCreated, &actorID, ok),
		candidate(domain.NotifResourceCreated, &actorID, actorID),
	})

	require.Len(t, results, 2)
	assert.Equal(t, notification.OutcomePersisted, results[0].Outcome)
	assert.Equal(t, notification.OutcomeSuppressedSelf, results[1].Outcome)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	userID := uuid.New()

	bogus := domain.NotificationType("claim.approved")
	_, err := h.svc.List(ctx, userID, domain.NotificationFilter{Type: &bogus}, domain.DefaultPagination())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	filter := domain.NotificationFilter{UnreadOnly: true}
	items := []domain.Notification{{ID: uuid.New(), UserID: userID}}
	h.notifRepo.On("ListByUser", ctx, userID, filter, domain.PaginationParams{Page: 1, PageSize: 100}).Return(items, int64(150), nil).Once()

	page, err := h.svc.List(ctx, userID, filter, domain.PaginationParams{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNext)
	assert.Len(t, page.Data, 1)
}

func TestMarkAsRead_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	h := newHarness()
	id, owner, other := uuid.New(), uuid.New(), uuid.New()

	h.notifRepo.On("MarkAsRead", ctx, id, owner).Return(nil).Once()
	h.notifRepo.On("MarkAsRead", ctx, id, other).Return(domain.ErrNotFound).Once()
	h.notifRepo.On("MarkAllAsRead", ctx, owner).Return(int64(3), nil).Once()

	assert.NoError(t, h.svc.MarkAsRead(ctx, id, owner))
	assert.ErrorIs(t, h.svc.MarkAsRead(ctx, id, other), domain.ErrNotFound)

	n, err := h.svc.MarkAllAsRead(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
