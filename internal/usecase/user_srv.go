package usecase

import (
	"context"
	"fmt"

	"movie-paradise/internal/data/repository"
	"movie-paradise/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error)
}

type userService struct {
	userRepo  repository.UserRepository
	adminRepo repository.AdminRepository
	log       *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		userRepo:  repo.User,
		adminRepo: repo.Admin,
		log:       log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.ProfileResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	isAdmin, err := us.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		us.log.Warn("Admin lookup failed for profile", zap.Error(err), zap.String("user_id", userID.String()))
		isAdmin = false
	}

	resp := response.ProfileToResponse(user, isAdmin)
	return &resp, nil
}
