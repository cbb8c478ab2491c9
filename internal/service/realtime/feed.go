package realtime

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"berbagi/internal/domain"
)

// Feed is the subscriber-side cache of a user's notifications. Delivery is
// at-least-once, so Apply ignores ids it has already seen.
type Feed struct {
	mu     sync.Mutex
	items  []domain.Notification
	seen   map[uuid.UUID]int
	unread int64
}

// NewFeed seeds the cache from a fetched page and the server's unread count.
func NewFeed(initial []domain.Notification, unread int64) *Feed {
	f := &Feed{seen: make(map[uuid.UUID]int, len(initial)), unread: unread}
	for _, n := range initial {
		if _, dup := f.seen[n.ID]; dup {
			continue
		}
		f.items = append(f.items, n)
		f.seen[n.ID] = len(f.items) - 1
	}
	f.sortLocked()
	return f
}

// Apply inserts notif and reports whether it was new.
func (f *Feed) Apply(notif domain.Notification) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, dup := f.seen[notif.ID]; dup {
		return false
	}
	f.items = append(f.items, notif)
	f.sortLocked()
	if !notif.IsRead() {
		f.unread++
	}
	return true
}

// MarkRead reports whether the notification was unread in the cache.
func (f *Feed) MarkRead(id uuid.UUID, at time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	i, ok := f.seen[id]
	if !ok || f.items[i].IsRead() {
		return false
	}
	f.items[i].ReadAt = &at
	if f.unread > 0 {
		f.unread--
	}
	return true
}

func (f *Feed) MarkAllRead(at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		if !f.items[i].IsRead() {
			f.items[i].ReadAt = &at
		}
	}
	f.unread = 0
}

// Items returns a copy, newest first.
func (f *Feed) Items() []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Notification, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Feed) UnreadCount() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

func (f *Feed) sortLocked() {
	sort.SliceStable(f.items, func(i, j int) bool {
		return f.items[i].CreatedAt.After(f.items[j].CreatedAt)
	})
	for i, n := range f.items {
		f.seen[n.ID] = i
	}
}
