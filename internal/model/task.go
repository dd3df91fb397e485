package model

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status is the workflow state of a task. Any status may transition
// to any other; there is no enforced progression and no terminal state.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
)

// Task is a unit of work created by one user and assigned to another
// (or the same) user. CreatedBy and AssignedTo carry user ids; they are
// not validated against the roster at write time.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title"`

	// Description is the full body text.
	Description string `json:"description"`

	// DueDate is when the task is expected to be done. A task whose
	// due date has passed and whose status is not completed is overdue.
	DueDate time.Time `json:"due_date"`

	// Priority is the urgency level (use Priority* constants).
	Priority Priority `json:"priority"`

	// Status is the workflow state (use Status* constants).
	Status Status `json:"status"`

	// CreatedBy is the id of the user who created the task.
	CreatedBy string `json:"created_by"`

	// AssignedTo is the id of the user the task is assigned to.
	AssignedTo string `json:"assigned_to"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every mutation of the task.
	UpdatedAt time.Time `json:"updated_at"`
}
