package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/link-shortener/internal/identity"
	"go.uber.org/zap"
)

// AuthHandler serves account signup and login.
type AuthHandler struct {
	svc    *identity.Service
	logger *zap.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(svc *identity.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// SignUp registers a new account.
func (h *AuthHandler) SignUp(ctx context.Context, req *SignUpRequest) (*SignUpResponse, error) {
	if req.Body.Username == "" || req.Body.Email == "" || req.Body.Password == "" {
		return nil, huma.Error400BadRequest("Username, email and password are required")
	}

	user, err := h.svc.SignUp(ctx, req.Body.Username, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailTaken) {
			return nil, huma.Error409Conflict("Email is already registered")
		}

		h.logger.Error("signup failed",
			zap.String("email", req.Body.Email),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal Server Error")
	}

	resp := &SignUpResponse{}
	resp.Body.Message = "User created successfully"
	resp.Body.User = UserPayload{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}

	return resp, nil
}

// LogIn verifies credentials and returns a session token. Unknown email
// and wrong password get the same response.
func (h *AuthHandler) LogIn(ctx context.Context, req *LogInRequest) (*LogInResponse, error) {
	token, err := h.svc.LogIn(ctx, req.Body.Email, req.Body.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, huma.Error400BadRequest("Invalid email or password")
		}

		h.logger.Error("login failed",
			zap.String("email", req.Body.Email),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("Internal Server Error")
	}

	resp := &LogInResponse{}
	resp.Body.Message = "Logged in successfully"
	resp.Body.Token = token

	return resp, nil
}
