package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-paradise/internal/data/repository"
	"movie-paradise/pkg/cache"
	"movie-paradise/pkg/storage"
	"movie-paradise/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Movie  MovieService
	Cast   CastService
	Review ReviewService
	Admin  AdminService
	Upload UploadService

	cache *cache.TTL
	log   *zap.Logger
}

// NewService builds every service; store may be nil when object storage is not configured
func NewService(repo *repository.Repository, store storage.ObjectStorage, config *utils.Config, log *zap.Logger) *Service {
	moderation := cache.NewTTL(config.Moderation.CacheTTL)

	return &Service{
		Auth:   NewAuthService(repo, config, log),
		User:   NewUserService(repo, log),
		Movie:  NewMovieService(repo, store, moderation, log),
		Cast:   NewCastService(repo, moderation, log),
		Review: NewReviewService(repo, moderation, log),
		Admin:  NewAdminService(repo, moderation, log),
		Upload: NewUploadService(store, log),
		cache:  moderation,
		log:    log.With(zap.String("service", "maintenance")),
	}
}

// RunMaintenance periodically drops long-expired sessions and stale cache entries until ctx is done
func (s *Service) RunMaintenance(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Auth.CleanupSessions(ctx)
			if err != nil {
				s.log.Warn("Session cleanup failed", zap.Error(err))
			} else if removed > 0 {
				s.log.Info("Expired sessions removed", zap.Int64("count", removed))
			}
			s.cache.Purge()
		}
	}
}

// ==================== CACHE KEYS ====================

const dashboardKey = "dashboard"

func movieReviewsKey(movieID uuid.UUID, page, perPage int) string {
	return fmt.Sprintf("reviews:%s:%d:%d", movieID, page, perPage)
}

func movieStatsKey(movieID uuid.UUID) string {
	return "stats:" + movieID.String()
}

// invalidateMovie drops every cached read derived from the reviews of movieID
func invalidateMovie(c *cache.TTL, movieID uuid.UUID) {
	c.InvalidatePrefix("reviews:" + movieID.String() + ":")
	c.InvalidatePrefix(movieStatsKey(movieID))
	c.InvalidatePrefix(dashboardKey)
}

func parseID(id, what string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s id %q", ErrInvalidInput, what, id)
	}
	return parsed, nil
}
