package shipdesk

import (
	"context"
	"strings"
	"time"
)

// User represents a dashboard user.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate returns an error if the user contains invalid fields.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" || strings.TrimSpace(u.Email) == "" {
		return Errorf(EINVALID, "Username and email are required")
	}
	return nil
}

// UserService represents a service for managing users.
type UserService interface {
	// CreateUser creates a new user.
	// Returns ECONFLICT if the username or email is already taken.
	CreateUser(ctx context.Context, user *User) error

	// FindUserByID retrieves a user by ID.
	// Returns ENOTFOUND if user does not exist.
	FindUserByID(ctx context.Context, id int) (*User, error)

	// FindUsers retrieves all users, oldest first.
	FindUsers(ctx context.Context) ([]*User, error)

	// DeleteUser permanently removes a user.
	// Returns ENOTFOUND if user does not exist.
	DeleteUser(ctx context.Context, id int) error
}
