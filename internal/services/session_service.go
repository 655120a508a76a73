package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shubham2799/BlogApp/internal/models"
)

// SessionServiceProvider defines the interface for session services.
type SessionServiceProvider interface {
	CreateSession(user models.User) (models.Session, error)
	ResolveSession(token string) (models.Session, error)
	TerminateSession(token string) error
	PurgeExpired() (int64, error)
}

// SessionService manages server-side login sessions. The token handed to
// the cookie is opaque; all state lives in the sessions table.
type SessionService struct {
	db          *sql.DB
	idleTimeout time.Duration
}

// NewSessionService creates a new SessionService.
func NewSessionService(db *sql.DB, idleTimeout time.Duration) *SessionService {
	return &SessionService{db: db, idleTimeout: idleTimeout}
}

// CreateSession opens a new session for an authenticated user.
func (s *SessionService) CreateSession(user models.User) (models.Session, error) {
	now := time.Now().UTC()
	sess := models.Session{
		Token:      uuid.New().String(),
		UserID:     user.ID,
		Username:   user.Username,
		CreatedAt:  now,
		LastSeenAt: now,
	}

	stmt, err := s.db.Prepare("INSERT INTO sessions(token, user_id, username, created_at, last_seen_at) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(sess.Token, sess.UserID, sess.Username, sess.CreatedAt, sess.LastSeenAt); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return sess, nil
}

// ResolveSession maps a token to its session. A session idle for longer
// than the timeout is deleted and reported as ErrNotAuthenticated; a live
// one has its LastSeenAt touched.
func (s *SessionService) ResolveSession(token string) (models.Session, error) {
	var sess models.Session
	row := s.db.QueryRow("SELECT token, user_id, username, created_at, last_seen_at FROM sessions WHERE token = ?", token)
	err := row.Scan(&sess.Token, &sess.UserID, &sess.Username, &sess.CreatedAt, &sess.LastSeenAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Session{}, models.ErrNotAuthenticated
		}
		return models.Session{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}

	now := time.Now().UTC()
	if now.Sub(sess.LastSeenAt) > s.idleTimeout {
		// Expired; drop the row so the token can never come back.
		s.db.Exec("DELETE FROM sessions WHERE token = ?", token)
		return models.Session{}, models.ErrNotAuthenticated
	}

	if _, err := s.db.Exec("UPDATE sessions SET last_seen_at = ? WHERE token = ?", now, token); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	sess.LastSeenAt = now
	return sess, nil
}

// TerminateSession removes a session, ending the login.
func (s *SessionService) TerminateSession(token string) error {
	if _, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return nil
}

// PurgeExpired deletes every session past the idle timeout. Called
// periodically by the sweeper.
func (s *SessionService) PurgeExpired() (int64, error) {
	cutoff := time.Now().UTC().Add(-s.idleTimeout)
	res, err := s.db.Exec("DELETE FROM sessions WHERE last_seen_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return res.RowsAffected()
}
