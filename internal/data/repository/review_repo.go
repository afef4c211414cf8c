package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Public queries only ever see approved reviews
	FindApprovedByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	CountApprovedByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error)
	GetApprovedStats(ctx context.Context, movieID uuid.UUID) (*entity.ReviewStats, error)

	// Moderation
	FindAll(ctx context.Context, approved *bool, limit, offset int) ([]*entity.Review, error)
	CountAll(ctx context.Context, approved *bool) (int64, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) error
}

type reviewRepository struct {
	db      database.PgxIface
	timeout time.Duration
	log     *zap.Logger
}

func NewReviewRepository(db database.PgxIface, timeout time.Duration, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:      db,
		timeout: timeout,
		log:     log.With(zap.String("repository", "review")),
	}
}

const reviewColumns = `r.id, r.movie_id, r.user_id, r.username, r.rating, r.comment,
		       r.is_approved, r.created_at, COALESCE(m.title, '')`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.ID,
		&review.MovieID,
		&review.UserID,
		&review.Username,
		&review.Rating,
		&review.Comment,
		&review.IsApproved,
		&review.CreatedAt,
		&review.MovieTitle,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO reviews (id, movie_id, user_id, username, rating, comment, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.MovieID,
		review.UserID,
		review.Username,
		review.Rating,
		review.Comment,
		review.IsApproved,
		review.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("movie_id", review.MovieID.String()),
			zap.String("username", review.Username),
		)
		return fmt.Errorf("create review for movie %s: %w", review.MovieID, mapPgError(err))
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		LEFT JOIN movies m ON m.id = r.movie_id
		WHERE r.id = $1
	`

	review, err := scanReview(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review %s: %w", id, err)
	}

	return review, nil
}

func (r *reviewRepository) FindApprovedByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews r
		LEFT JOIN movies m ON m.id = r.movie_id
		WHERE r.movie_id = $1 AND r.is_approved = TRUE
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3
	`

	reviews, err := r.queryReviews(ctx, query, movieID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews of movie %s: %w", movieID, err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountApprovedByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT COUNT(*) FROM reviews WHERE movie_id = $1 AND is_approved = TRUE`

	var count int64
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return 0, fmt.Errorf("count reviews of movie %s: %w", movieID, err)
	}

	return count, nil
}

func (r *reviewRepository) GetApprovedStats(ctx context.Context, movieID uuid.UUID) (*entity.ReviewStats, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT
			COALESCE(AVG(rating), 0)::float8 AS avg_rating,
			COUNT(*) AS review_count
		FROM reviews
		WHERE movie_id = $1 AND is_approved = TRUE
	`

	var stats entity.ReviewStats
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&stats.AverageRating, &stats.ReviewCount); err != nil {
		r.log.Error("Failed to get movie review stats",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("get review stats of movie %s: %w", movieID, err)
	}

	return &stats, nil
}

func approvalFilter(qb *strings.Builder, approved *bool, args []any) []any {
	if approved != nil {
		fmt.Fprintf(qb, " WHERE r.is_approved = $%d", len(args)+1)
		args = append(args, *approved)
	}
	return args
}

func (r *reviewRepository) FindAll(ctx context.Context, approved *bool, limit, offset int) ([]*entity.Review, error) {
	var qb strings.Builder
	qb.WriteString(`
		SELECT ` + reviewColumns + `
		FROM reviews r
		LEFT JOIN movies m ON m.id = r.movie_id`)

	args := approvalFilter(&qb, approved, nil)
	fmt.Fprintf(&qb, " ORDER BY r.created_at DESC, r.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	reviews, err := r.queryReviews(ctx, qb.String(), args...)
	if err != nil {
		r.log.Error("Failed to find reviews",
			zap.Error(err),
			zap.Boolp("approved", approved),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) CountAll(ctx context.Context, approved *bool) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var qb strings.Builder
	qb.WriteString(`SELECT COUNT(*) FROM reviews r`)
	args := approvalFilter(&qb, approved, nil)

	var count int64
	if err := r.db.QueryRow(ctx, qb.String(), args...).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err), zap.Boolp("approved", approved))
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return count, nil
}

func (r *reviewRepository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.Exec(ctx, `UPDATE reviews SET is_approved = $2 WHERE id = $1`, id, approved)
	if err != nil {
		r.log.Error("Failed to update review approval",
			zap.Error(err),
			zap.String("review_id", id.String()),
			zap.Bool("approved", approved),
		)
		return fmt.Errorf("update approval of review %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s: %w", id, ErrNotFound)
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]*entity.Review, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*entity.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
