package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jobflow/jobflow/internal/auth"
	"github.com/jobflow/jobflow/internal/user"
	"go.uber.org/zap"
)

// UserHandler handles account registration, login and profile operations.
type UserHandler struct {
	users  *user.Service
	logger *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users *user.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	u, err := h.users.Register(ctx, req.Body.Email, req.Body.Name, req.Body.Password, req.Body.Skills, req.Body.Preferences)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return nil, huma.Error409Conflict("email already registered")
		}

		h.logger.Error("registration failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to register")
	}

	return &RegisterResponse{Status: http.StatusCreated, Body: u}, nil
}

func (h *UserHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	token, u, err := h.users.Login(ctx, req.Body.Email, req.Body.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidCredentials):
			return nil, huma.Error401Unauthorized("invalid email or password")
		case errors.Is(err, user.ErrInactive):
			return nil, huma.Error403Forbidden("account is deactivated")
		}

		h.logger.Error("login failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to log in")
	}

	resp := &LoginResponse{}
	resp.Body.AccessToken = token
	resp.Body.TokenType = "bearer"
	resp.Body.User = u

	return resp, nil
}

func (h *UserHandler) GetMe(ctx context.Context, _ *GetMeRequest) (*UserResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	u, err := h.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, huma.Error404NotFound("user not found")
		}

		return nil, huma.Error500InternalServerError("failed to load profile")
	}

	return &UserResponse{Body: u}, nil
}

func (h *UserHandler) UpdateMe(ctx context.Context, req *UpdateMeRequest) (*UserResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	u, err := h.users.Update(ctx, userID, user.Update{
		Name:        req.Body.Name,
		Skills:      req.Body.Skills,
		Preferences: req.Body.Preferences,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, huma.Error404NotFound("user not found")
		}

		h.logger.Error("profile update failed", zap.String("user_id", userID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to update profile")
	}

	return &UserResponse{Body: u}, nil
}

func (h *UserHandler) DeactivateMe(ctx context.Context, _ *DeactivateMeRequest) (*UserResponse, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("authentication required")
	}

	u, err := h.users.Deactivate(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, huma.Error404NotFound("user not found")
		}

		return nil, huma.Error500InternalServerError("failed to deactivate account")
	}

	return &UserResponse{Body: u}, nil
}
