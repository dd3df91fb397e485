package model

// Role is the access level assigned to a user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// User is a member of the workspace. The roster is seeded at startup;
// users are never updated or deleted once created.
type User struct {
	// ID is the unique, stable identifier for this user.
	ID string `json:"id"`

	// Name is the display name shown alongside tasks and notifications.
	Name string `json:"name"`

	// Email is the sign-in address. Unique; matched case-insensitively.
	Email string `json:"email"`

	// Role is the access level (use Role* constants).
	Role Role `json:"role"`

	// Avatar is an optional image URL for the user.
	Avatar string `json:"avatar,omitempty"`
}
