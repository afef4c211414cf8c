package wire

import (
	"movie-paradise/internal/adaptor"
	"movie-paradise/internal/data/repository"
	"movie-paradise/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	repo *repository.Repository,
	limiter *middleware.RateLimiter,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies/{id}/reviews - Approved reviews only
	r.Get("/api/movies/{id}/reviews", reviewHandler.GetMovieReviews)

	// GET /api/movies/{id}/review-stats - Rating statistics over approved reviews
	r.Get("/api/movies/{id}/review-stats", reviewHandler.GetMovieReviewStats)

	// POST /api/movies/{id}/reviews - Anyone may submit; a session only tags the author
	r.With(
		limiter.Handler,
		middleware.OptionalAuthSession(repo.Session, log),
	).Post("/api/movies/{id}/reviews", reviewHandler.CreateReview)

	// ==================== ADMIN ROUTES ====================
	admin := adminOnly(r, repo, log)
	admin.Get("/api/admin/reviews", reviewHandler.GetReviews)
	admin.Put("/api/admin/reviews/{id}/approve", reviewHandler.ApproveReview)
	admin.Put("/api/admin/reviews/{id}/reject", reviewHandler.RejectReview)
	admin.Delete("/api/admin/reviews/{id}", reviewHandler.DeleteReview)
}
