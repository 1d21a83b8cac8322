package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/msomdec/product-catalog/internal/auth"
	"github.com/msomdec/product-catalog/internal/domain"
)

// AuthService handles user signup, login, and access token checks.
type AuthService struct {
	users      domain.UserRepository
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, jwtSecret string, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account. All fields are required and the email
// must not already belong to another user.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email, and password are required", domain.ErrInvalidInput)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	// The unique index still catches a concurrent signup that slipped past the check above.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", redactEmail(email))
	return user, nil
}

// Login verifies credentials and returns a signed access token with the user.
// Unknown email and wrong password both yield ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Info("login rejected", "reason", "user not found", "email", redactEmail(email))
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		slog.Info("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return "", nil, domain.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, auth.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("generate jwt: %w", err)
	}

	slog.Info("login succeeded", "user_id", user.ID)
	return token, user, nil
}

// ValidateToken parses a token string and returns the user ID it was issued for.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	userID, err := auth.ParseToken(tokenString, s.jwtSecret)
	if err != nil {
		return "", domain.ErrUnauthorized
	}
	return userID, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// redactEmail masks the local part of an address for logging:
// "john.doe@example.com" becomes "jo***@example.com".
func redactEmail(email string) string {
	name, domainPart, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}
	if len(name) > 2 {
		return name[:2] + "***@" + domainPart
	}
	return "***@" + domainPart
}
