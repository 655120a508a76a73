package models

import "time"

// Event is one entry in the audit trail: who did what, when.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g. "blog.create", "auth.login"
	Level     string    `json:"level"` // "info", "warn", "error"
	Message   string    `json:"message"`
	Username  *string   `json:"username,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
