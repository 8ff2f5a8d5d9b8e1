package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizflow/erp_backend/internal/apperrors"
	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/core/services"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/platform/config"
	"github.com/bizflow/erp_backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	userRepo *MockUserRepository
	cfg      *config.Config
	service  ports.AuthSvcFacade
	ctx      context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.userRepo = new(MockUserRepository)
	s.cfg = &config.Config{
		JWTSecret:         "test-secret-for-signing",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "erp-backend-test",
	}
	s.service = services.NewAuthService(s.userRepo, s.cfg)
	s.ctx = context.Background()
}

func (s *AuthServiceTestSuite) storedUser(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	s.Require().NoError(err)
	return &domain.User{
		UserID:       "user-1",
		FirstName:    "Lina",
		LastName:     "Khoury",
		Username:     "lina",
		PasswordHash: hash,
		Role:         "admin",
	}
}

func (s *AuthServiceTestSuite) TestLogin_IssuesToken() {
	u := s.storedUser("correct horse")
	s.userRepo.On("FindUserByUsername", s.ctx, "lina").Return(u, nil).Once()

	resp, err := s.service.Login(s.ctx, dto.LoginRequest{Username: "lina", Password: "correct horse"})

	s.Require().NoError(err)
	s.Equal("user-1", resp.User.UserID)
	s.WithinDuration(time.Now().UTC().Add(time.Hour), resp.ExpiresAt, 5*time.Second)

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	s.Require().NoError(err)
	s.True(token.Valid)
	s.Equal("user-1", claims.Subject)
	s.Equal("erp-backend-test", claims.Issuer)
	s.userRepo.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	u := s.storedUser("correct horse")
	s.userRepo.On("FindUserByUsername", s.ctx, "lina").Return(u, nil).Once()

	_, err := s.service.Login(s.ctx, dto.LoginRequest{Username: "lina", Password: "battery staple"})

	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUserMapsToSameError() {
	s.userRepo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.Login(s.ctx, dto.LoginRequest{Username: "ghost", Password: "whatever"})

	// A missing user must be indistinguishable from a wrong password.
	s.ErrorIs(err, apperrors.ErrUnauthorized)
	s.NotErrorIs(err, apperrors.ErrNotFound)
	s.userRepo.AssertNotCalled(s.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
