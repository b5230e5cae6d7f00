package domain

import "time"

// Profile represents a registered rider (usuarios table).
type Profile struct {
	ID           string
	FirstName    string
	LastName     string
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session is an authenticated session. Screens beyond the auth flow are only
// reachable while a session exists.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
