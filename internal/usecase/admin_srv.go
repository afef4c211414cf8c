package usecase

import (
	"context"
	"fmt"

	"movie-paradise/internal/data/entity"
	"movie-paradise/internal/data/repository"
	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/dto/response"
	"movie-paradise/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	// IsAdmin fails closed: lookup errors count as not admin
	IsAdmin(ctx context.Context, userID uuid.UUID) bool
	AddAdmin(ctx context.Context, req *request.AddAdminRequest) (*response.AdminUserResponse, error)
	GetAdmins(ctx context.Context) ([]response.AdminUserResponse, error)
	GetDashboardStats(ctx context.Context) (*response.DashboardStatsResponse, error)
}

type adminService struct {
	repo  *repository.Repository
	cache *cache.TTL
	log   *zap.Logger
}

func NewAdminService(repo *repository.Repository, moderation *cache.TTL, log *zap.Logger) AdminService {
	return &adminService{
		repo:  repo,
		cache: moderation,
		log:   log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) IsAdmin(ctx context.Context, userID uuid.UUID) bool {
	isAdmin, err := s.repo.Admin.IsAdmin(ctx, userID)
	if err != nil {
		s.log.Error("Admin check failed, denying", zap.Error(err), zap.String("user_id", userID.String()))
		return false
	}
	return isAdmin
}

func (s *adminService) AddAdmin(ctx context.Context, req *request.AddAdminRequest) (*response.AdminUserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Admin.Add(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("add admin: %w", fromRepo(err))
	}

	admins, err := s.repo.Admin.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get admins: %w", err)
	}

	for _, admin := range admins {
		if admin.ID == user.ID {
			resp := response.AdminUserToResponse(admin)
			return &resp, nil
		}
	}

	// listing raced with a removal; answer with what we know
	resp := response.AdminUserResponse{UserID: user.ID.String(), Email: user.Email}
	return &resp, nil
}

func (s *adminService) GetAdmins(ctx context.Context) ([]response.AdminUserResponse, error) {
	admins, err := s.repo.Admin.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get admins: %w", err)
	}

	out := make([]response.AdminUserResponse, len(admins))
	for i, admin := range admins {
		out[i] = response.AdminUserToResponse(admin)
	}
	return out, nil
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*response.DashboardStatsResponse, error) {
	v, err := s.cache.GetOrLoad(dashboardKey, func() (any, error) {
		stats, err := s.repo.Admin.GetDashboardStats(context.WithoutCancel(ctx))
		if err != nil {
			return nil, fmt.Errorf("get dashboard stats: %w", err)
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}

	resp := response.DashboardStatsToResponse(v.(*entity.DashboardStats))
	return &resp, nil
}

func (s *adminService) findUser(ctx context.Context, req *request.AddAdminRequest) (*entity.User, error) {
	var (
		user *entity.User
		err  error
	)

	if req.UserID != "" {
		id, perr := parseID(req.UserID, "user")
		if perr != nil {
			return nil, perr
		}
		user, err = s.repo.User.FindByID(ctx, id)
	} else {
		user, err = s.repo.User.FindByEmail(ctx, req.Email)
	}

	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	return user, nil
}
