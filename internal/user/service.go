package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobflow/jobflow/internal/auth"
	"go.uber.org/zap"
)

// Service implements account registration, login and profile management.
type Service struct {
	repo   Repository
	tokens *auth.TokenManager
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a user service.
func NewService(repo Repository, tokens *auth.TokenManager, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, name, password string, skills []string, preferences map[string]any) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if skills == nil {
		skills = []string{}
	}

	if preferences == nil {
		preferences = map[string]any{}
	}

	now := s.now()
	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Skills:       skills,
		Preferences:  preferences,
		IsActive:     true,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", u.ID))

	return u, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}

		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if !auth.VerifyPassword(password, u.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return "", nil, ErrInactive
	}

	token, err := s.tokens.Sign(u.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, u, nil
}

// Get returns a user by ID.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial profile update.
func (s *Service) Update(ctx context.Context, id string, update Update) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		u.Name = *update.Name
	}

	if update.Skills != nil {
		u.Skills = update.Skills
	}

	if update.Preferences != nil {
		u.Preferences = update.Preferences
	}

	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return u, nil
}

// Deactivate marks an account inactive. Deactivated accounts cannot log in
// until reactivated by support.
func (s *Service) Deactivate(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.IsActive = false
	u.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("deactivate user: %w", err)
	}

	s.logger.Info("user deactivated", zap.String("user_id", u.ID))

	return u, nil
}
