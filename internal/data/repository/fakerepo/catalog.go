package fakerepo

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"movie-paradise/internal/data/entity"
	"movie-paradise/internal/data/repository"

	"github.com/google/uuid"
)

type movieRepo Store

func cloneMovie(m *entity.Movie) *entity.Movie {
	c := clone(m)
	c.Genres = append([]string{}, m.Genres...)
	return c
}

func (r *movieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Movie.Create"); err != nil {
		return err
	}

	if _, ok := s.movies[movie.ID]; ok {
		return fmt.Errorf("create movie: %w", repository.ErrDuplicate)
	}
	s.movies[movie.ID] = cloneMovie(movie)
	return nil
}

func (r *movieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Movie.FindByID"); err != nil {
		return nil, err
	}

	movie, ok := s.movies[id]
	if !ok {
		return nil, nil
	}
	return cloneMovie(movie), nil
}

func (r *movieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Movie.Update"); err != nil {
		return err
	}

	existing, ok := s.movies[movie.ID]
	if !ok {
		return notFound("movie", movie.ID)
	}
	updated := cloneMovie(movie)
	updated.CreatedAt = existing.CreatedAt
	s.movies[movie.ID] = updated
	return nil
}

func (r *movieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Movie.Delete"); err != nil {
		return err
	}

	if _, ok := s.movies[id]; !ok {
		return notFound("movie", id)
	}

	delete(s.movies, id)
	for reviewID, review := range s.reviews {
		if review.MovieID == id {
			delete(s.reviews, reviewID)
		}
	}
	kept := s.cast[:0]
	for _, member := range s.cast {
		if member.MovieID != id {
			kept = append(kept, member)
		}
	}
	s.cast = kept
	return nil
}

func (s *Store) filterMovies(filter entity.MovieFilter) []*entity.Movie {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	genre := strings.TrimSpace(filter.Genre)

	movies := []*entity.Movie{}
	for _, movie := range s.movies {
		if search != "" && !strings.Contains(strings.ToLower(movie.Title), search) {
			continue
		}
		if genre != "" && !slices.Contains(movie.Genres, genre) {
			continue
		}
		movies = append(movies, cloneMovie(movie))
	}
	return movies
}

func (r *movieRepo) FindAll(ctx context.Context, filter entity.MovieFilter, limit, offset int) ([]*entity.Movie, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Movie.FindAll"); err != nil {
		return nil, err
	}

	movies := s.filterMovies(filter)
	sort.Slice(movies, func(i, j int) bool {
		if movies[i].Title != movies[j].Title {
			return movies[i].Title < movies[j].Title
		}
		return movies[i].ID.String() < movies[j].ID.String()
	})
	return paginate(movies, limit, offset), nil
}

func (r *movieRepo) CountAll(ctx context.Context, filter entity.MovieFilter) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Movie.CountAll"); err != nil {
		return 0, err
	}
	return int64(len(s.filterMovies(filter))), nil
}

func (r *movieRepo) FindTopRated(ctx context.Context, limit int) ([]*entity.Movie, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Movie.FindTopRated"); err != nil {
		return nil, err
	}

	movies := s.filterMovies(entity.MovieFilter{})
	sort.Slice(movies, func(i, j int) bool {
		a, b := movies[i].Rating, movies[j].Rating
		switch {
		case a == nil && b == nil:
			return movies[i].Title < movies[j].Title
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		}
		return movies[i].Title < movies[j].Title
	})
	return paginate(movies, limit, 0), nil
}

func (r *movieRepo) FindNewReleases(ctx context.Context, limit int) ([]*entity.Movie, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Movie.FindNewReleases"); err != nil {
		return nil, err
	}

	movies := s.filterMovies(entity.MovieFilter{})
	sort.Slice(movies, func(i, j int) bool {
		if movies[i].Year != movies[j].Year {
			return movies[i].Year > movies[j].Year
		}
		return movies[i].Title < movies[j].Title
	})
	return paginate(movies, limit, 0), nil
}

func (r *movieRepo) FindGenres(ctx context.Context) ([]string, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Movie.FindGenres"); err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	genres := []string{}
	for _, movie := range s.movies {
		for _, genre := range movie.Genres {
			if _, ok := seen[genre]; !ok {
				seen[genre] = struct{}{}
				genres = append(genres, genre)
			}
		}
	}
	sort.Strings(genres)
	return genres, nil
}

type castRepo Store

func (r *castRepo) Create(ctx context.Context, member *entity.CastMember) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Cast.Create"); err != nil {
		return err
	}

	if _, ok := s.movies[member.MovieID]; !ok {
		return fmt.Errorf("create cast member: %w", repository.ErrReference)
	}
	s.cast = append(s.cast, clone(member))
	return nil
}

func (r *castRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CastMember, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Cast.FindByID"); err != nil {
		return nil, err
	}

	for _, member := range s.cast {
		if member.ID == id {
			return clone(member), nil
		}
	}
	return nil, nil
}

func (r *castRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.CastMember, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Cast.FindByMovieID"); err != nil {
		return nil, err
	}

	cast := []*entity.CastMember{}
	for _, member := range s.cast {
		if member.MovieID == movieID {
			cast = append(cast, clone(member))
		}
	}
	return cast, nil
}

func (r *castRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Cast.Delete"); err != nil {
		return err
	}

	for i, member := range s.cast {
		if member.ID == id {
			s.cast = append(s.cast[:i], s.cast[i+1:]...)
			return nil
		}
	}
	return notFound("cast member", id)
}

type reviewRepo Store

// withTitle mimics the LEFT JOIN on movies
func (s *Store) withTitle(review *entity.Review) *entity.Review {
	c := clone(review)
	if movie, ok := s.movies[review.MovieID]; ok {
		c.MovieTitle = movie.Title
	}
	return c
}

func (s *Store) sortedReviews(match func(*entity.Review) bool) []*entity.Review {
	reviews := []*entity.Review{}
	for _, review := range s.reviews {
		if match(review) {
			reviews = append(reviews, s.withTitle(review))
		}
	}
	sort.Slice(reviews, func(i, j int) bool {
		if !reviews[i].CreatedAt.Equal(reviews[j].CreatedAt) {
			return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
		}
		return reviews[i].ID.String() > reviews[j].ID.String()
	})
	return reviews
}

func approvedFor(movieID uuid.UUID) func(*entity.Review) bool {
	return func(review *entity.Review) bool {
		return review.MovieID == movieID && review.IsApproved
	}
}

func matchApproval(approved *bool) func(*entity.Review) bool {
	return func(review *entity.Review) bool {
		return approved == nil || review.IsApproved == *approved
	}
}

func (r *reviewRepo) Create(ctx context.Context, review *entity.Review) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Review.Create"); err != nil {
		return err
	}

	if _, ok := s.movies[review.MovieID]; !ok {
		return fmt.Errorf("create review: %w", repository.ErrReference)
	}
	stored := clone(review)
	stored.MovieTitle = ""
	s.reviews[review.ID] = stored
	return nil
}

func (r *reviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Review.FindByID"); err != nil {
		return nil, err
	}

	review, ok := s.reviews[id]
	if !ok {
		return nil, nil
	}
	return s.withTitle(review), nil
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Review.Delete"); err != nil {
		return err
	}

	if _, ok := s.reviews[id]; !ok {
		return notFound("review", id)
	}
	delete(s.reviews, id)
	return nil
}

func (r *reviewRepo) FindApprovedByMovieID(ctx context.Context, movieID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Review.FindApprovedByMovieID"); err != nil {
		return nil, err
	}
	return paginate(s.sortedReviews(approvedFor(movieID)), limit, offset), nil
}

func (r *reviewRepo) CountApprovedByMovieID(ctx context.Context, movieID uuid.UUID) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Review.CountApprovedByMovieID"); err != nil {
		return 0, err
	}
	return int64(len(s.sortedReviews(approvedFor(movieID)))), nil
}

func (r *reviewRepo) GetApprovedStats(ctx context.Context, movieID uuid.UUID) (*entity.ReviewStats, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Review.GetApprovedStats"); err != nil {
		return nil, err
	}

	stats := &entity.ReviewStats{}
	sum := 0
	for _, review := range s.reviews {
		if approvedFor(movieID)(review) {
			sum += review.Rating
			stats.ReviewCount++
		}
	}
	if stats.ReviewCount > 0 {
		stats.AverageRating = float64(sum) / float64(stats.ReviewCount)
	}
	return stats, nil
}

func (r *reviewRepo) FindAll(ctx context.Context, approved *bool, limit, offset int) ([]*entity.Review, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Review.FindAll"); err != nil {
		return nil, err
	}
	return paginate(s.sortedReviews(matchApproval(approved)), limit, offset), nil
}

func (r *reviewRepo) CountAll(ctx context.Context, approved *bool) (int64, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Review.CountAll"); err != nil {
		return 0, err
	}
	return int64(len(s.sortedReviews(matchApproval(approved)))), nil
}

func (r *reviewRepo) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "Review.SetApproval"); err != nil {
		return err
	}

	review, ok := s.reviews[id]
	if !ok {
		return notFound("review", id)
	}
	review.IsApproved = approved
	return nil
}
