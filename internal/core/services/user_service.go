package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizflow/erp_backend/internal/core/domain"
	"github.com/bizflow/erp_backend/internal/core/ports"
	"github.com/bizflow/erp_backend/internal/dto"
	"github.com/bizflow/erp_backend/internal/middleware"
	"github.com/bizflow/erp_backend/internal/utils"
)

// userService provides user operations. Passwords are bcrypt-hashed here and
// never stored or returned in plaintext.
type userService struct {
	userRepo ports.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo ports.UserRepository) ports.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ ports.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	u := domain.User{
		UserID:       uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         req.Role,
		Notes:        req.Notes,
		CompanyID:    req.CompanyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, u); err != nil {
		logger.Error("failed to save user", slog.String("username", u.Username), slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("user created", slog.String("user_id", u.UserID), slog.String("username", u.Username))
	return &u, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, companyID string) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, companyID)
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	u, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Notes != nil {
		u.Notes = *req.Notes
	}
	if req.CompanyID != nil {
		u.CompanyID = req.CompanyID
	}
	u.LastUpdatedAt = time.Now().UTC()
	u.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *u); err != nil {
		return nil, err
	}
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return s.userRepo.DeleteUser(ctx, userID)
}
