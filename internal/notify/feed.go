// Package notify is the notification store: an in-memory, newest-first
// feed of task activity scoped to the signed-in user, mirrored to
// durable storage under a per-user key on every mutation.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nhle/taskboard/internal/event"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/store"
)

// Feed holds one user's notifications. With no user set, the feed is
// empty in memory and every mutation is a no-op; switching users swaps
// the in-memory feed without touching the previous user's persisted one.
type Feed struct {
	mu     sync.Mutex
	store  store.Store
	userID string
	items  []model.Notification
}

// NewFeed creates a feed with no user set.
func NewFeed(s store.Store) *Feed {
	return &Feed{store: s}
}

// SetUser switches the feed to the given user and loads their persisted
// notifications. An empty id clears the in-memory feed. A corrupt
// snapshot yields an empty feed, never an error.
func (f *Feed) SetUser(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.userID = userID
	f.items = nil
	if userID == "" {
		return nil
	}

	raw, ok, err := f.store.Get(ctx, store.NotificationKey(userID))
	if err != nil {
		return fmt.Errorf("loading notifications for %s: %w", userID, err)
	}
	if !ok {
		return nil
	}

	var items []model.Notification
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Unreadable feed data starts the user over with an empty feed.
		return nil
	}
	f.items = items
	return nil
}

// UserID returns the id of the user the feed is scoped to, or "".
func (f *Feed) UserID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userID
}

// Create prepends a new unread notification and persists the feed.
// It is a no-op when no user is signed in. The id is derived from the
// current time, matching the persisted feed format.
func (f *Feed) Create(ctx context.Context, typ model.NotificationType, taskID, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.userID == "" {
		return nil
	}

	n := model.Notification{
		ID:        fmt.Sprintf("notification-%d", time.Now().UnixNano()),
		Type:      typ,
		TaskID:    taskID,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
	f.items = append([]model.Notification{n}, f.items...)
	return f.persistLocked(ctx)
}

// HandleEvent is an event.Handler that turns task activity into feed
// entries. Persistence trouble is dropped here: the side-effect channel
// has no caller to report to.
func (f *Feed) HandleEvent(e event.Event) {
	_ = f.Create(context.Background(), e.Type, e.TaskID, e.Message)
}

// MarkAsRead sets the read flag on the matching entry. Unknown ids are
// a no-op.
func (f *Feed) MarkAsRead(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		if f.items[i].ID == id {
			if f.items[i].Read {
				return nil
			}
			f.items[i].Read = true
			return f.persistLocked(ctx)
		}
	}
	return nil
}

// MarkAllAsRead sets the read flag on every entry.
func (f *Feed) MarkAllAsRead(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		f.items[i].Read = true
	}
	return f.persistLocked(ctx)
}

// Clear removes the matching entry. Unknown ids are a no-op.
func (f *Feed) Clear(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return f.persistLocked(ctx)
		}
	}
	return nil
}

// Notifications returns a copy of the feed, newest first.
func (f *Feed) Notifications() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// UnreadCount returns the number of unread entries.
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for i := range f.items {
		if !f.items[i].Read {
			count++
		}
	}
	return count
}

// persistLocked writes the full feed snapshot. Caller holds f.mu and
// has verified a user is set.
func (f *Feed) persistLocked(ctx context.Context) error {
	items := f.items
	if items == nil {
		items = []model.Notification{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding notifications: %w", err)
	}
	if err := f.store.Put(ctx, store.NotificationKey(f.userID), string(raw)); err != nil {
		return fmt.Errorf("persisting notifications for %s: %w", f.userID, err)
	}
	return nil
}
