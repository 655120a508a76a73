package models

import "time"

// Session is a server-side login session keyed by an opaque token carried
// in a cookie. LastSeenAt is touched on every successful resolution; a
// session idle for longer than the configured timeout is discarded.
type Session struct {
	Token      string    `json:"-"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"createdAt"`
	LastSeenAt time.Time `json:"lastSeenAt"`
}
