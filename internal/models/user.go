package models

import "time"

// User represents a registered account. Accounts are immutable after
// registration; there is no profile edit or delete route.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity is the authenticated principal attached to a request. A nil
// *Identity means the request is anonymous.
type Identity struct {
	UserID   string
	Username string
}
