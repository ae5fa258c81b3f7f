package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/storeplan/planning-backend-go/internal/domain/auth"
	"github.com/storeplan/planning-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// Manager is the single account allowed to use the planning API.
type Manager struct {
	Username     string
	PasswordHash string
}

type AuthServiceImpl struct {
	jwt.Service
	manager          Manager
	accessExpiration time.Duration
}

func NewAuthService(jwtService jwt.Service, manager Manager, accessExpiration time.Duration) auth.AuthService {
	return &AuthServiceImpl{
		Service:          jwtService,
		manager:          manager,
		accessExpiration: accessExpiration,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest) (auth.TokenResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if a.manager.PasswordHash == "" {
		return auth.TokenResponse{}, auth.ErrLoginDisabled
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(loginReq.Username), []byte(a.manager.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(a.manager.PasswordHash), []byte(loginReq.Password))
	if !usernameOK || passwordErr != nil {
		slog.Warn("Rejected login attempt", "username", loginReq.Username)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, _, err := a.Service.GenerateAccessToken(a.manager.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("Manager logged in", "username", a.manager.Username)

	return auth.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(a.accessExpiration.Seconds()),
	}, nil
}
