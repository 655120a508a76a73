package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shubham2799/BlogApp/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(username, password string) (models.User, error)
	Authenticate(username, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
}

// UserService provides registration and credential checks. Accounts are
// write-once: there is no update or delete path.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a new user, hashing their password.
func (s *UserService) Register(username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if password == "" {
		return models.User{}, fmt.Errorf("%w: password is required", models.ErrValidation)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	if count > 0 {
		return models.User{}, fmt.Errorf("%w: username %q is already taken", models.ErrValidation, username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, username, password_hash, created_at) VALUES(?, ?, ?, ?)")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	defer stmt.Close()

	if _, err = stmt.Exec(user.ID, user.Username, user.PasswordHash, user.CreatedAt); err != nil {
		// A concurrent registration can still hit the UNIQUE constraint.
		return models.User{}, fmt.Errorf("%w: username %q is already taken", models.ErrValidation, username)
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies a user's credentials.
func (s *UserService) Authenticate(username, password string) (models.User, error) {
	user, err := s.getUserByUsername(username)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: unknown username or wrong password", models.ErrValidation)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("%w: unknown username or wrong password", models.ErrValidation)
	}

	// Don't hand the password hash back to the caller
	user.PasswordHash = ""
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return user, nil
}

// getUserByUsername includes the password hash; internal use only.
func (s *UserService) getUserByUsername(username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRow("SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return user, nil
}
