package store

import "context"

// Well-known storage keys. Values are JSON-encoded snapshots written
// in full on every change; there is no incremental diffing.
const (
	// KeySession holds the current session user, or is absent when
	// signed out.
	KeySession = "user"

	// KeyTasks holds the full task collection.
	KeyTasks = "tasks"

	// notificationKeyPrefix scopes a notification feed to one user.
	notificationKeyPrefix = "notifications-"
)

// NotificationKey returns the storage key for the given user's
// notification feed.
func NotificationKey(userID string) string {
	return notificationKeyPrefix + userID
}

// Store is the durable key-value persistence interface. Values are
// opaque JSON text; the store never interprets them.
type Store interface {
	// Get returns the value for key. The boolean reports whether the
	// key was present; a missing key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns all present keys in lexical order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases the underlying storage.
	Close() error
}
