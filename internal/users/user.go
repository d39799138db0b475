// Package users holds the accounts: signup, login and logout.
package users

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

const minPasswordLength = 8

var (
	ErrUserExists      = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongPassword   = errors.New("wrong credentials")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrPasswordTooWeak = errors.New("password too short")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
