package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"teammatch/internal/auth"
	"teammatch/internal/models"
	"teammatch/internal/storage"
)

var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrMissingFields      = errors.New("username and password are required")
	ErrPasswordTooLong    = errors.New("password is longer than 72 bytes")
)

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, skills string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
}

type authService struct {
	userRepo storage.UserRepository
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(userRepo storage.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a user with a bcrypt password hash. Skills are stored
// lowercased so later matching can rely on it.
func (s *authService) Register(ctx context.Context, username, password, skills string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}
	if len(password) > MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	// The unique index still guards a concurrent insert.
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Skills:       strings.ToLower(skills),
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return newUser, nil
}

// Login returns the user when the password matches. An unknown username and a
// wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
