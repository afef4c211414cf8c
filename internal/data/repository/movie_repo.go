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

type MovieRepository interface {
	// CRUD Movie
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Catalog queries
	FindAll(ctx context.Context, filter entity.MovieFilter, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error)
	FindTopRated(ctx context.Context, limit int) ([]*entity.Movie, error)
	FindNewReleases(ctx context.Context, limit int) ([]*entity.Movie, error)
	FindGenres(ctx context.Context) ([]string, error)
}

type movieRepository struct {
	db      database.PgxIface
	timeout time.Duration
	log     *zap.Logger
}

func NewMovieRepository(db database.PgxIface, timeout time.Duration, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:      db,
		timeout: timeout,
		log:     log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `id, title, tagline, overview, poster_url, background_url,
		       trailer_url, download_url, year, rating, duration, genres,
		       created_at, updated_at`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Tagline,
		&movie.Overview,
		&movie.PosterURL,
		&movie.BackgroundURL,
		&movie.TrailerURL,
		&movie.DownloadURL,
		&movie.Year,
		&movie.Rating,
		&movie.Duration,
		&movie.Genres,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if movie.Genres == nil {
		movie.Genres = []string{}
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO movies (id, title, tagline, overview, poster_url, background_url,
		                    trailer_url, download_url, year, rating, duration, genres,
		                    created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Tagline,
		movie.Overview,
		movie.PosterURL,
		movie.BackgroundURL,
		movie.TrailerURL,
		movie.DownloadURL,
		movie.Year,
		movie.Rating,
		movie.Duration,
		movie.Genres,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie %q: %w", movie.Title, mapPgError(err))
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie %s: %w", id, err)
	}

	return movie, nil
}

// buildFilter appends the WHERE clause for filter and returns the next placeholder index
func buildFilter(qb *strings.Builder, filter entity.MovieFilter, args []any) ([]any, int) {
	argCount := len(args) + 1
	qb.WriteString(" WHERE 1=1")

	if search := strings.TrimSpace(filter.Search); search != "" {
		fmt.Fprintf(qb, " AND title ILIKE $%d", argCount)
		args = append(args, "%"+escapeLike(search)+"%")
		argCount++
	}

	if genre := strings.TrimSpace(filter.Genre); genre != "" {
		fmt.Fprintf(qb, " AND $%d = ANY(genres)", argCount)
		args = append(args, genre)
		argCount++
	}

	return args, argCount
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *movieRepository) FindAll(ctx context.Context, filter entity.MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	var qb strings.Builder
	qb.WriteString(`SELECT ` + movieColumns + ` FROM movies`)

	args, argCount := buildFilter(&qb, filter, nil)
	fmt.Fprintf(&qb, " ORDER BY title ASC, id ASC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, offset)

	movies, err := r.queryMovies(ctx, qb.String(), args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.String("search", filter.Search),
			zap.String("genre", filter.Genre),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	var qb strings.Builder
	qb.WriteString(`SELECT COUNT(*) FROM movies`)
	args, _ := buildFilter(&qb, filter, nil)

	var total int64
	if err := r.db.QueryRow(ctx, qb.String(), args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies",
			zap.Error(err),
			zap.String("search", filter.Search),
			zap.String("genre", filter.Genre),
		)
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) FindTopRated(ctx context.Context, limit int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies
		ORDER BY rating DESC NULLS LAST, title ASC
		LIMIT $1`

	movies, err := r.queryMovies(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find top rated movies", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("find top rated movies: %w", err)
	}
	return movies, nil
}

func (r *movieRepository) FindNewReleases(ctx context.Context, limit int) ([]*entity.Movie, error) {
	query := `SELECT ` + movieColumns + `
		FROM movies
		ORDER BY year DESC, title ASC
		LIMIT $1`

	movies, err := r.queryMovies(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find new releases", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("find new releases: %w", err)
	}
	return movies, nil
}

func (r *movieRepository) FindGenres(ctx context.Context) ([]string, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT DISTINCT unnest(genres) AS genre FROM movies ORDER BY genre`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, genre)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}

	return genres, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE movies
		SET title = $2, tagline = $3, overview = $4, poster_url = $5,
		    background_url = $6, trailer_url = $7, download_url = $8,
		    year = $9, rating = $10, duration = $11, genres = $12,
		    updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Tagline,
		movie.Overview,
		movie.PosterURL,
		movie.BackgroundURL,
		movie.TrailerURL,
		movie.DownloadURL,
		movie.Year,
		movie.Rating,
		movie.Duration,
		movie.Genres,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("update movie %s: %w", movie.ID, mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", movie.ID, ErrNotFound)
	}

	return nil
}

// Delete removes the movie with its cast and reviews in one transaction
func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin delete movie transaction", zap.Error(err))
		return fmt.Errorf("begin delete movie %s: %w", id, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE movie_id = $1`, id); err != nil {
		r.log.Error("Failed to delete movie reviews", zap.Error(err), zap.String("movie_id", id.String()))
		return fmt.Errorf("delete reviews of movie %s: %w", id, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cast_members WHERE movie_id = $1`, id); err != nil {
		r.log.Error("Failed to delete movie cast", zap.Error(err), zap.String("movie_id", id.String()))
		return fmt.Errorf("delete cast of movie %s: %w", id, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie", zap.Error(err), zap.String("movie_id", id.String()))
		return fmt.Errorf("delete movie %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit delete movie", zap.Error(err), zap.String("movie_id", id.String()))
		return fmt.Errorf("commit delete movie %s: %w", id, err)
	}

	r.log.Info("Movie deleted", zap.String("movie_id", id.String()))
	return nil
}

func (r *movieRepository) queryMovies(ctx context.Context, query string, args ...any) ([]*entity.Movie, error) {
	ctx, cancel := database.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}
