package users

import "errors"

// User is a minimal credential record. No login flow exists yet; the table is
// a placeholder for future authentication.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

var (
	// ErrUserNotFound is returned when a lookup has no match
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when a create collides on username
	ErrUsernameTaken = errors.New("username already taken")
)
