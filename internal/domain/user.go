package domain

import "time"

// User is the credential record behind signup/login.
// Username holds the email the learner signs in with.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
