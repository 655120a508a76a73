package models

import "time"

// Blog represents a single post. Author holds the username of the user who
// created the post (copied by value at creation time, re-stamped on every
// authorized update), not a reference into the users table.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"imageUrl"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}
