package realtime

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"berbagi/internal/domain"
)

func notif(at time.Time) domain.Notification {
	return domain.Notification{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Type:      domain.NotifMessageReceived,
		Metadata:  domain.Metadata{Detail: domain.MessageMetadata{Excerpt: "hi"}},
		CreatedAt: at,
	}
}

func TestFeed_ApplyIsIdempotent(t *testing.T) {
	base := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	older := notif(base)
	feed := NewFeed([]domain.Notification{older, older}, 1)

	require.Len(t, feed.Items(), 1)
	assert.Equal(t, int64(1), feed.UnreadCount())

	newer := notif(base.Add(time.Minute))
	assert.True(t, feed.Apply(newer))
	assert.False(t, feed.Apply(newer), "redelivery is ignored")
	assert.False(t, feed.Apply(older))

	items := feed.Items()
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID, "newest first")
	assert.Equal(t, int64(2), feed.UnreadCount())
}

func TestFeed_ReadTracking(t *testing.T) {
	base := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	a, b := notif(base), notif(base.Add(time.Second))
	readAt := base.Add(time.Hour)
	alreadyRead := notif(base.Add(-time.Hour))
	alreadyRead.ReadAt = &readAt

	feed := NewFeed(nil, 0)
	feed.Apply(a)
	feed.Apply(b)
	assert.False(t, feed.Apply(a))
	assert.True(t, feed.Apply(alreadyRead))
	assert.Equal(t, int64(2), feed.UnreadCount(), "read notifications do not count")

	assert.True(t, feed.MarkRead(a.ID, readAt))
	assert.False(t, feed.MarkRead(a.ID, readAt))
	assert.False(t, feed.MarkRead(uuid.New(), readAt))
	assert.Equal(t, int64(1), feed.UnreadCount())

	feed.MarkAllRead(readAt)
	assert.Equal(t, int64(0), feed.UnreadCount())
	for _, n := range feed.Items() {
		assert.True(t, n.IsRead())
	}
}

func TestFeed_ConcurrentRedelivery(t *testing.T) {
	feed := NewFeed(nil, 0)
	n := notif(time.Now())

	var wg sync.WaitGroup
	accepted := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			accepted <- feed.Apply(n)
		}()
	}
	wg.Wait()
	close(accepted)

	count := 0
	for ok := range accepted {
		if ok {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, int64(1), feed.UnreadCount())
}

func TestNotificationWireFormat(t *testing.T) {
	resourceID := uuid.New()
	n := notif(time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC))
	n.LinkedEntities = domain.LinkedEntities{ResourceID: &resourceID}
	n.Metadata.ActorName = "Budi"

	raw, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded domain.Notification
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, n, decoded)

	hub := NewHub(nil)
	assert.Equal(t, "notifications:"+n.UserID.String(), hub.channel(n.UserID))
}
