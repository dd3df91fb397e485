package model

import "time"

// NotificationType identifies the task activity a notification reports.
type NotificationType string

const (
	NotificationTaskAssigned  NotificationType = "task-assigned"
	NotificationTaskUpdated   NotificationType = "task-updated"
	NotificationTaskCompleted NotificationType = "task-completed"
	NotificationTaskDeleted   NotificationType = "task-deleted"
)

// Notification is an entry in one user's feed, created as a side effect
// of task activity. TaskID is a weak reference: deleting the task does
// not remove notifications that point at it.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Type identifies the kind of task activity (use Notification* constants).
	Type NotificationType `json:"type"`

	// TaskID links this notification to the originating task.
	TaskID string `json:"task_id"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
