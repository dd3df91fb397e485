package notify_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskboard/internal/event"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/notify"
	"github.com/nhle/taskboard/internal/store"
	"github.com/nhle/taskboard/tests/testutil"
)

func TestCreateRequiresUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	f := notify.NewFeed(s)
	ctx := context.Background()

	require.NoError(t, f.Create(ctx, model.NotificationTaskAssigned, "task-1", "hello"))
	assert.Empty(t, f.Notifications())

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	f := notify.NewFeed(testutil.NewTestStore(t))
	ctx := context.Background()
	require.NoError(t, f.SetUser(ctx, "user-1"))

	require.NoError(t, f.Create(ctx, model.NotificationTaskAssigned, "task-1", "first"))
	require.NoError(t, f.Create(ctx, model.NotificationTaskCompleted, "task-2", "second"))

	items := f.Notifications()
	require.Len(t, items, 2)
	assert.Equal(t, "second", items[0].Message)
	assert.Equal(t, "first", items[1].Message)
	assert.False(t, items[0].Read)
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.Equal(t, 2, f.UnreadCount())
}

func TestMarkAsRead(t *testing.T) {
	f := notify.NewFeed(testutil.NewTestStore(t))
	ctx := context.Background()
	require.NoError(t, f.SetUser(ctx, "user-1"))
	require.NoError(t, f.Create(ctx, model.NotificationTaskAssigned, "task-1", "a"))
	require.NoError(t, f.Create(ctx, model.NotificationTaskUpdated, "task-2", "b"))

	id := f.Notifications()[1].ID
	require.NoError(t, f.MarkAsRead(ctx, id))
	assert.Equal(t, 1, f.UnreadCount())

	// Unknown ids are a no-op.
	require.NoError(t, f.MarkAsRead(ctx, "notification-0"))
	assert.Equal(t, 1, f.UnreadCount())
}

func TestMarkAllAsRead(t *testing.T) {
	f := notify.NewFeed(testutil.NewTestStore(t))
	ctx := context.Background()
	require.NoError(t, f.SetUser(ctx, "user-1"))
	require.NoError(t, f.Create(ctx, model.NotificationTaskAssigned, "task-1", "a"))
	require.NoError(t, f.Create(ctx, model.NotificationTaskUpdated, "task-2", "b"))

	require.NoError(t, f.MarkAllAsRead(ctx))
	assert.Equal(t, 0, f.UnreadCount())
	for _, n := range f.Notifications() {
		assert.True(t, n.Read)
	}
}

func TestClear(t *testing.T) {
	f := notify.NewFeed(testutil.NewTestStore(t))
	ctx := context.Background()
	require.NoError(t, f.SetUser(ctx, "user-1"))
	require.NoError(t, f.Create(ctx, model.NotificationTaskAssigned, "task-1", "a"))
	require.NoError(t, f.Create(ctx, model.NotificationTaskDeleted, "task-2", "b"))

	id := f.Notifications()[0].ID
	require.NoError(t, f.Clear(ctx, id))

	items := f.Notifications()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Message)

	require.NoError(t, f.Clear(ctx, "notification-0"))
	assert.Len(t, f.Notifications(), 1)
}

func TestFeedsAreScopedPerUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	f := notify.NewFeed(s)
	ctx := context.Background()

	require.NoError(t, f.SetUser(ctx, "user-1"))
	require.NoError(t, f.Create(ctx, model.NotificationTaskAssigned, "task-1", "for user-1"))

	require.NoError(t, f.SetUser(ctx, "user-2"))
	assert.Empty(t, f.Notifications())
	require.NoError(t, f.Create(ctx, model.NotificationTaskUpdated, "task-2", "for user-2"))

	// Switching back restores the first user's persisted feed intact.
	require.NoError(t, f.SetUser(ctx, "user-1"))
	items := f.Notifications()
	require.Len(t, items, 1)
	assert.Equal(t, "for user-1", items[0].Message)

	// Signing out empties the in-memory feed only.
	require.NoError(t, f.SetUser(ctx, ""))
	assert.Empty(t, f.Notifications())
	raw, ok, err := s.Get(ctx, store.NotificationKey("user-1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, "for user-1")
}

func TestFeedSurvivesRecreation(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	f := notify.NewFeed(s)
	require.NoError(t, f.SetUser(ctx, "user-3"))
	require.NoError(t, f.Create(ctx, model.NotificationTaskCompleted, "task-5", "done"))

	fresh := notify.NewFeed(s)
	require.NoError(t, fresh.SetUser(ctx, "user-3"))
	items := fresh.Notifications()
	require.Len(t, items, 1)
	assert.Equal(t, model.NotificationTaskCompleted, items[0].Type)
	assert.Equal(t, "task-5", items[0].TaskID)
	assert.Equal(t, "done", items[0].Message)
}

func TestCorruptFeedYieldsEmpty(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, store.NotificationKey("user-1"), "?!"))

	f := notify.NewFeed(s)
	require.NoError(t, f.SetUser(ctx, "user-1"))
	assert.Empty(t, f.Notifications())
	assert.Equal(t, 0, f.UnreadCount())
}

func TestHandleEvent(t *testing.T) {
	f := notify.NewFeed(testutil.NewTestStore(t))
	require.NoError(t, f.SetUser(context.Background(), "user-2"))

	bus := event.NewBus()
	bus.Subscribe(f.HandleEvent)
	bus.Publish(event.Event{
		Type:    model.NotificationTaskAssigned,
		TaskID:  "task-9",
		Message: "You've been assigned a new task: Write release notes",
	})

	items := f.Notifications()
	require.Len(t, items, 1)
	assert.Equal(t, model.NotificationTaskAssigned, items[0].Type)
	assert.Equal(t, "task-9", items[0].TaskID)
}
