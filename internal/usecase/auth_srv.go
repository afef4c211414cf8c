package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/internal/data/repository"
	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/dto/response"
	"movie-paradise/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo is recorded on the session a login creates
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
	CleanupSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository // grouping userRepo, sessionRepo, & adminRepo
	config *utils.Config
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validasi input
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Cek email sudah terdaftar
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Save user
	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// 5. Bootstrap admin pertama
	isAdmin := false
	if bootstrap := s.config.Auth.AdminBootstrapEmail; bootstrap != "" && strings.EqualFold(bootstrap, user.Email) {
		if err := s.repo.Admin.Add(ctx, user.ID); err != nil {
			s.log.Error("Failed to grant bootstrap admin", zap.Error(err), zap.String("user_id", user.ID.String()))
		} else {
			isAdmin = true
		}
	}

	// 6. Auto login setelah register
	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Bool("is_admin", isAdmin),
	)

	resp := response.AuthToResponse(user, session, isAdmin)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	// 1. Validasi
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// 3. Same answer for unknown email and wrong password
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", req.Email))
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	// 4. Create session
	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	isAdmin, err := s.repo.Admin.IsAdmin(ctx, user.ID)
	if err != nil {
		s.log.Warn("Admin lookup failed on login", zap.Error(err), zap.String("user_id", user.ID.String()))
		isAdmin = false
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, session, isAdmin)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return fmt.Errorf("logout: %w", fromRepo(err))
	}

	s.log.Info("User logged out")
	return nil
}

func (s *authService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Session.RevokeAllUserSessions(ctx, userID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	s.log.Info("All sessions revoked", zap.String("user_id", userID.String()))
	return nil
}

func (s *authService) CleanupSessions(ctx context.Context) (int64, error) {
	return s.repo.Session.CleanExpiredSessions(ctx)
}

// ==================== HELPER METHODS ====================

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, client ClientInfo) (*entity.Session, error) {
	ttl := s.config.Auth.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := s.now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     uuid.New(),
		UserAgent: utils.StringPtr(client.UserAgent),
		IPAddress: utils.StringPtr(client.IPAddress),
		ExpiresAt: now.Add(ttl),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
