package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
	"github.com/bizflow/erp_backend/internal/platform/config"
	"github.com/bizflow/erp_backend/internal/utils"
)

// authService issues JWTs for username/password credentials. Unknown users and
// wrong passwords map to the same unauthorized error so login responses never
// reveal which part failed.
type authService struct {
	userRepo ports.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo ports.UserRepository, cfg *config.Config) ports.AuthSvcFacade {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ ports.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	u, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		logger.Warn("login failed", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(req.Password, u.PasswordHash) {
		logger.Warn("login failed", slog.String("username", req.Username))
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.JWTExpiryDuration)
	claims := jwt.RegisteredClaims{
		Subject:   u.UserID,
		Issuer:    s.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		logger.Error("failed to sign token", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	logger.Info("user logged in", slog.String("user_id", u.UserID))
	return &dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(u),
	}, nil
}
