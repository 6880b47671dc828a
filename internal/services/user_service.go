package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mjcastro/gradesource-be/internal/auth"
	"github.com/mjcastro/gradesource-be/internal/database"
	"github.com/mjcastro/gradesource-be/internal/models"
)

// storeTimeout bounds individual database calls so a stuck store cannot
// hold a request open indefinitely.
const storeTimeout = 5 * time.Second

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Login(ctx context.Context, username, password string) (models.User, string, error)
	Signup(ctx context.Context, username, password string) (models.User, string, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides login and signup on top of the user table.
type UserService struct {
	db     *sql.DB
	issuer *auth.Issuer
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, issuer *auth.Issuer) *UserService {
	return &UserService{db: db, issuer: issuer}
}

// Login verifies a username/password pair and issues a token on success.
// A missing user and a wrong password both come back as
// ErrInvalidCredentials so the response does not leak which usernames exist.
func (s *UserService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	user, err := s.findByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", storeErr(err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return models.User{}, "", fmt.Errorf("issuing token: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Signup creates a new account and issues a token for it. The username
// pre-check is best effort; the UNIQUE constraint on the insert is what
// actually decides a race between two signups for the same name.
func (s *UserService) Signup(ctx context.Context, username, password string) (models.User, string, error) {
	if username == "" || password == "" {
		return models.User{}, "", ErrMissingField
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	_, err := s.findByUsername(ctx, username)
	if err == nil {
		return models.User{}, "", ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", storeErr(err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users(id, username, password_hash) VALUES(?, ?, ?)",
		user.ID, user.Username, user.PasswordHash)
	if err != nil {
		if database.IsUniqueViolation(err) {
			// Lost the race to a concurrent signup.
			return models.User{}, "", ErrUsernameTaken
		}
		return models.User{}, "", storeErr(err)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return models.User{}, "", fmt.Errorf("issuing token: %w", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var user models.User
	row := s.db.QueryRowContext(ctx, "SELECT id, username, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, storeErr(err)
	}
	return user, nil
}

func (s *UserService) findByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
