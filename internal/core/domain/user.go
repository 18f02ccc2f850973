package domain

import (
	"errors"
	"time"
)

var (
	ErrUserExists        = errors.New("user already exists")
	ErrUserNotRegistered = errors.New("you haven't registered yet, please register first")
	ErrWrongPassword     = errors.New("wrong password or email, try again")
)

// User models a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Public returns a copy of u without the password hash.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
