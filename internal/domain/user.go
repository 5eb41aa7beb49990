package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
