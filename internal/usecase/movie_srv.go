package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"movie-paradise/internal/data/entity"
	"movie-paradise/internal/data/repository"
	"movie-paradise/internal/dto/request"
	"movie-paradise/internal/dto/response"
	"movie-paradise/pkg/cache"
	"movie-paradise/pkg/storage"
	"movie-paradise/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultShowcaseLimit = 5
	MaxShowcaseLimit     = 50
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetTopRated(ctx context.Context, limit int) ([]response.MovieResponse, error)
	GetNewReleases(ctx context.Context, limit int) ([]response.MovieResponse, error)
	GetGenres(ctx context.Context) ([]string, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo  *repository.Repository
	store storage.ObjectStorage
	cache *cache.TTL
	log   *zap.Logger
	now   func() time.Time
}

func NewMovieService(
	repo *repository.Repository,
	store storage.ObjectStorage,
	moderation *cache.TTL,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:  repo,
		store: store,
		cache: moderation,
		log:   log.With(zap.String("service", "movie")),
		now:   time.Now,
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	filter := entity.MovieFilter{
		Search: strings.TrimSpace(req.Search),
		Genre:  strings.TrimSpace(req.Genre),
	}

	// Get movies with pagination and filter
	movies, err := s.repo.Movie.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	// Get total count for pagination metadata
	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.Limit()),
	)

	return response.NewPaginatedResponse(response.MoviesToResponse(movies), req.Page, req.Limit(), total), nil
}

func (s *movieService) GetTopRated(ctx context.Context, limit int) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindTopRated(ctx, showcaseLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("get top rated: %w", err)
	}
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetNewReleases(ctx context.Context, limit int) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindNewReleases(ctx, showcaseLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("get new releases: %w", err)
	}
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetGenres(ctx context.Context) ([]string, error) {
	genres, err := s.repo.Movie.FindGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return genres, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieDetailResponse, error) {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return nil, err
	}

	movie, err := s.findMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	cast, err := s.repo.Cast.FindByMovieID(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("get cast: %w", err)
	}

	stats, err := cachedReviewStats(ctx, s.cache, s.repo.Review, movie.ID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToDetailResponse(movie, cast, stats)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	movie := &entity.Movie{}
	if err := s.applyRequest(movie, req); err != nil {
		s.log.Warn("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	now := s.now()
	movie.ID = uuid.New()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", fromRepo(err))
	}

	s.cache.InvalidatePrefix(dashboardKey)

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieRequest) (*response.MovieResponse, error) {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return nil, err
	}

	movie, err := s.findMovie(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPoster := movie.PosterURL
	oldBackground := movie.BackgroundURL

	if err := s.applyRequest(movie, req); err != nil {
		s.log.Warn("Update movie validation failed", zap.Error(err), zap.String("movie_id", movieID))
		return nil, err
	}
	movie.UpdatedAt = s.now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, fmt.Errorf("update movie: %w", fromRepo(err))
	}

	// Hapus gambar lama yang sudah diganti
	if oldPoster != movie.PosterURL {
		s.removeImage(ctx, oldPoster)
	}
	if oldBackground != nil && (movie.BackgroundURL == nil || *oldBackground != *movie.BackgroundURL) {
		s.removeImage(ctx, *oldBackground)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movieID))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := parseID(movieID, "movie")
	if err != nil {
		return err
	}

	movie, err := s.findMovie(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete movie: %w", fromRepo(err))
	}

	invalidateMovie(s.cache, id)

	s.removeImage(ctx, movie.PosterURL)
	if movie.BackgroundURL != nil {
		s.removeImage(ctx, *movie.BackgroundURL)
	}

	s.log.Info("Movie deleted",
		zap.String("movie_id", movieID),
		zap.String("title", movie.Title),
	)
	return nil
}

// ==================== HELPER METHODS ====================

func (s *movieService) findMovie(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}
	return movie, nil
}

// applyRequest validates req and copies it onto movie
func (s *movieService) applyRequest(movie *entity.Movie, req *request.MovieRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	genres := NormalizeGenres(req.Genres)
	if len(genres) == 0 {
		return &ValidationError{Fields: map[string]string{"genres": "At least one genre is required"}}
	}

	movie.Title = strings.TrimSpace(req.Title)
	movie.Tagline = trimmedPtr(req.Tagline)
	movie.Overview = strings.TrimSpace(req.Overview)
	movie.PosterURL = strings.TrimSpace(req.PosterURL)
	movie.BackgroundURL = trimmedPtr(req.BackgroundURL)
	movie.TrailerURL = trimmedPtr(req.TrailerURL)
	movie.DownloadURL = trimmedPtr(req.DownloadURL)
	movie.Year = req.Year
	movie.Rating = roundRating(req.Rating)
	movie.Duration = strings.TrimSpace(req.Duration)
	movie.Genres = genres

	return nil
}

// removeImage deletes an object we host; failures are only logged
func (s *movieService) removeImage(ctx context.Context, publicURL string) {
	if s.store == nil || publicURL == "" {
		return
	}

	key, ok := s.store.ObjectKey(publicURL)
	if !ok {
		return
	}

	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Warn("Failed to remove old image", zap.Error(err), zap.String("key", key))
	}
}

// NormalizeGenres splits comma separated entries, trims them and drops empties and duplicates
func NormalizeGenres(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	genres := make([]string, 0, len(raw))

	for _, entry := range raw {
		for _, genre := range utils.SplitCSV(entry) {
			if _, ok := seen[genre]; ok {
				continue
			}
			seen[genre] = struct{}{}
			genres = append(genres, genre)
		}
	}

	return genres
}

func showcaseLimit(limit int) int {
	if limit == 0 {
		return DefaultShowcaseLimit
	}
	return utils.ClampInt(limit, 1, MaxShowcaseLimit)
}

// roundRating matches the NUMERIC(3,1) column so responses agree with what is stored
func roundRating(rating *float64) *float64 {
	if rating == nil {
		return nil
	}
	rounded := math.Round(*rating*10) / 10
	return &rounded
}

func trimmedPtr(value *string) *string {
	if value == nil {
		return nil
	}
	return utils.StringPtr(strings.TrimSpace(*value))
}
