package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"portfolio-backend/internal/shared/auth"
	"portfolio-backend/internal/shared/telemetry"
)

// Service contains business logic for user accounts.
type Service struct {
	Repo Repo
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates a local account with a bcrypt-hashed password and
// returns the user with a signed token pair.
func (s *Service) Register(ctx context.Context, email, password, name, role string) (User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, "", "", errors.New("a valid email is required")
	}
	if len(password) < 8 {
		return User{}, "", "", errors.New("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         normalizeRole(role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return User{}, "", "", err
	}

	telemetry.Info("user.registered", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, access, refresh, nil
}

// Authenticate verifies credentials and returns a signed token pair.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, string, string, error) {
	user, err := s.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", "", ErrBadCredential
		}
		return User{}, "", "", err
	}
	if user.PasswordHash == "" {
		// OAuth-only account, no local password to check.
		return User{}, "", "", ErrBadCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", "", ErrBadCredential
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return User{}, "", "", err
	}
	return user, access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (User, string, string, error) {
	claims, err := auth.VerifyRefresh(refreshToken)
	if err != nil {
		return User{}, "", "", err
	}
	user, err := s.Repo.GetByID(ctx, claims.Sub)
	if err != nil {
		return User{}, "", "", err
	}
	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return User{}, "", "", err
	}
	return user, access, refresh, nil
}

// UpsertFromOAuth persists the identity delivered by an OAuth provider
// so submissions and batches have a stable owner.
func (s *Service) UpsertFromOAuth(ctx context.Context, user User) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	if strings.TrimSpace(user.ID) == "" || strings.TrimSpace(user.Email) == "" {
		return errors.New("user id and email are required")
	}
	if user.Role == "" {
		user.Role = RoleDesigner
	}
	user.UpdatedAt = time.Now().UTC()
	return s.Repo.Upsert(ctx, user)
}

// GetByID returns one user.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) issueTokens(user User) (string, string, error) {
	return auth.IssuePair(auth.Claims{
		Sub:     user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
	})
}

func normalizeRole(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case RoleRecruiter:
		return RoleRecruiter
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleDesigner
	}
}
