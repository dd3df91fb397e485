package task

import (
	"time"

	"github.com/nhle/taskboard/internal/model"
)

const day = 24 * time.Hour

// seedTasks returns the fixed sample collection used when no persisted
// snapshot exists (or the snapshot is unreadable). Due dates are
// relative to now; one task is already overdue and one is completed.
func seedTasks(now time.Time) []model.Task {
	return []model.Task{
		{
			ID:          "task-1",
			Title:       "Create project proposal",
			Description: "Draft a comprehensive project proposal for the new client",
			DueDate:     now.Add(3 * day),
			Priority:    model.PriorityHigh,
			Status:      model.StatusTodo,
			CreatedBy:   "user-1",
			AssignedTo:  "user-2",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "task-2",
			Title:       "Design user interface mockups",
			Description: "Create wireframes and mockups for the new application",
			DueDate:     now.Add(5 * day),
			Priority:    model.PriorityMedium,
			Status:      model.StatusInProgress,
			CreatedBy:   "user-2",
			AssignedTo:  "user-3",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "task-3",
			Title:       "Implement authentication system",
			Description: "Develop the user authentication and authorization system",
			DueDate:     now.Add(7 * day),
			Priority:    model.PriorityHigh,
			Status:      model.StatusTodo,
			CreatedBy:   "user-1",
			AssignedTo:  "user-1",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "task-4",
			Title:       "Conduct code review",
			Description: "Review and provide feedback on the latest pull request",
			DueDate:     now.Add(-1 * day),
			Priority:    model.PriorityLow,
			Status:      model.StatusReview,
			CreatedBy:   "user-2",
			AssignedTo:  "user-1",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "task-5",
			Title:       "Update documentation",
			Description: "Update API documentation with the latest endpoints",
			DueDate:     now.Add(2 * day),
			Priority:    model.PriorityMedium,
			Status:      model.StatusCompleted,
			CreatedBy:   "user-3",
			AssignedTo:  "user-2",
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}
