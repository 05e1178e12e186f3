package user

import "errors"

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
)

// User is an account. Password holds the bcrypt hash, never the plain text.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}
