package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrCodeInvalid covers both "no such code" and "expired" so the API
	// never tells a caller which one it was.
	ErrCodeInvalid    = errors.New("code is invalid or expired")
	ErrGoogleToken    = errors.New("google token is invalid")
	ErrDeliveryFailed = errors.New("could not deliver code")
)

type Role string

const (
	RoleUser     Role = "user"
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        string
	Email     string
	GoogleID  *string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the 1:1 mutable extension of User. Created empty alongside
// the user on first login.
type Profile struct {
	UserID    string
	Name      string
	Address   string
	Phone     string
	Picture   string
	UpdatedAt time.Time
}

// OneTimeCode is a short-lived login credential. Rows are only ever
// inserted and deleted, never updated.
type OneTimeCode struct {
	ID        string
	Email     string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Customer is the admin-facing join of a user and its profile.
type Customer struct {
	User    User
	Profile Profile
}

// Session is the signed-token payload plus the resolved user,
// returned by the auth usecase after a successful login.
type Session struct {
	Token string
	User  *User
}
