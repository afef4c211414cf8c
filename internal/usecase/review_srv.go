package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/internal/data/repository"
	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/dto/response"
	"movie-paradise/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	// Public endpoints, approved reviews only
	CreateReview(ctx context.Context, movieID string, userID *uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetMovieReviews(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetMovieReviewStats(ctx context.Context, movieID string) (*response.ReviewStatsResponse, error)

	// Moderation
	GetReviews(ctx context.Context, req *request.ReviewListRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	SetApproval(ctx context.Context, reviewID string, approved bool) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

type reviewService struct {
	repo  *repository.Repository
	cache *cache.TTL
	log   *zap.Logger
	now   func() time.Time
}

func NewReviewService(repo *repository.Repository, moderation *cache.TTL, log *zap.Logger) ReviewService {
	return &reviewService{
		repo:  repo,
		cache: moderation,
		log:   log.With(zap.String("service", "review")),
		now:   time.Now,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, movieID string, userID *uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	// Validate request
	if err := validate(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}

	id, err := parseID(movieID, "movie")
	if err != nil {
		return nil, err
	}

	// Check if movie exists
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}

	// New reviews always wait for moderation
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now(),
		},
		MovieID:    id,
		UserID:     userID,
		Username:   strings.TrimSpace(req.Username),
		Rating:     req.Rating,
		Comment:    trimmedPtr(req.Comment),
		IsApproved: false,
		MovieTitle: movie.Title,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", fromRepo(err))
	}

	// pending count on the dashboard changed
	s.cache.InvalidatePrefix(dashboardKey)

	s.log.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("movie_id", movieID),
		zap.Int("rating", req.Rating),
		zap.Bool("signed_in", userID != nil),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) GetMovieReviews(ctx context.Context, movieID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return nil, err
	}

	page, perPage := max(req.Page, 1), req.Limit()

	// coalesced callers share this load, so one client going away must not fail the rest
	loadCtx := context.WithoutCancel(ctx)

	v, err := s.cache.GetOrLoad(movieReviewsKey(id, page, perPage), func() (any, error) {
		movie, err := s.repo.Movie.FindByID(loadCtx, id)
		if err != nil {
			return nil, fmt.Errorf("get movie: %w", err)
		}
		if movie == nil {
			return nil, fmt.Errorf("movie %s: %w", id, ErrNotFound)
		}

		reviews, err := s.repo.Review.FindApprovedByMovieID(loadCtx, id, perPage, req.Offset())
		if err != nil {
			return nil, fmt.Errorf("get movie reviews: %w", err)
		}

		total, err := s.repo.Review.CountApprovedByMovieID(loadCtx, id)
		if err != nil {
			return nil, fmt.Errorf("count movie reviews: %w", err)
		}

		return response.NewPaginatedResponse(response.ReviewsToResponse(reviews), page, perPage, total), nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*response.PaginatedResponse[response.ReviewResponse]), nil
}

func (s *reviewService) GetMovieReviewStats(ctx context.Context, movieID string) (*response.ReviewStatsResponse, error) {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return nil, err
	}

	stats, err := cachedReviewStats(ctx, s.cache, s.repo.Review, id)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewStatsToResponse(stats)
	return &resp, nil
}

func (s *reviewService) GetReviews(ctx context.Context, req *request.ReviewListRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	approved := entity.ReviewStatus(req.Status).Approved()

	reviews, err := s.repo.Review.FindAll(ctx, approved, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get reviews: %w", err)
	}

	total, err := s.repo.Review.CountAll(ctx, approved)
	if err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}

	return response.NewPaginatedResponse(response.ReviewsToResponse(reviews), req.Page, req.Limit(), total), nil
}

// SetApproval moves a review between pending and approved. Asking for the current state is a no-op.
func (s *reviewService) SetApproval(ctx context.Context, reviewID string, approved bool) (*response.ReviewResponse, error) {
	id, err := parseID(reviewID, "review")
	if err != nil {
		return nil, err
	}

	review, err := s.findReview(ctx, id)
	if err != nil {
		return nil, err
	}

	if review.IsApproved == approved {
		resp := response.ReviewToResponse(review)
		return &resp, nil
	}

	if err := s.repo.Review.SetApproval(ctx, id, approved); err != nil {
		return nil, fmt.Errorf("set review approval: %w", fromRepo(err))
	}

	invalidateMovie(s.cache, review.MovieID)

	// Ambil ulang supaya response sesuai isi database
	review, err = s.findReview(ctx, id)
	if err != nil {
		return nil, err
	}

	s.log.Info("Review moderated",
		zap.String("review_id", reviewID),
		zap.String("movie_id", review.MovieID.String()),
		zap.Bool("approved", approved),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	id, err := parseID(reviewID, "review")
	if err != nil {
		return err
	}

	review, err := s.findReview(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", fromRepo(err))
	}

	invalidateMovie(s.cache, review.MovieID)

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("movie_id", review.MovieID.String()),
	)
	return nil
}

// ==================== HELPER METHODS ====================

func (s *reviewService) findReview(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %s: %w", id, ErrNotFound)
	}
	return review, nil
}

func cachedReviewStats(ctx context.Context, c *cache.TTL, reviews repository.ReviewRepository, movieID uuid.UUID) (*entity.ReviewStats, error) {
	v, err := c.GetOrLoad(movieStatsKey(movieID), func() (any, error) {
		stats, err := reviews.GetApprovedStats(context.WithoutCancel(ctx), movieID)
		if err != nil {
			return nil, fmt.Errorf("get review stats: %w", err)
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.ReviewStats), nil
}
