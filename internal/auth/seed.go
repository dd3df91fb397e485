package auth

import "github.com/nhle/taskboard/internal/model"

// seedUsers returns the fixed demo roster: one user per role. Login
// matches against this set; it is the fallback identity data when no
// session has ever been persisted.
func seedUsers() []model.User {
	return []model.User{
		{
			ID:     "user-1",
			Name:   "John Doe",
			Email:  "admin@example.com",
			Role:   model.RoleAdmin,
			Avatar: "https://i.pravatar.cc/150?img=1",
		},
		{
			ID:     "user-2",
			Name:   "Jane Smith",
			Email:  "manager@example.com",
			Role:   model.RoleManager,
			Avatar: "https://i.pravatar.cc/150?img=2",
		},
		{
			ID:     "user-3",
			Name:   "Bob Johnson",
			Email:  "user@example.com",
			Role:   model.RoleUser,
			Avatar: "https://i.pravatar.cc/150?img=3",
		},
	}
}
