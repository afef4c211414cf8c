package usecase

import (
	"context"
	"testing"

	"movie-paradise/internal/data/repository/fakerepo"
	"movie-paradise/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ptr[T any](v T) *T { return &v }

func validMovieRequest() *request.MovieRequest {
	return &request.MovieRequest{
		Title:     "  Spirited Away ",
		Overview:  "A girl wanders into a world of spirits.",
		PosterURL: stubBase + "posters/spirited-away.jpg",
		Year:      2001,
		Rating:    ptr(8.6),
		Duration:  "2h 5m",
		Genres:    []string{"Animation, Fantasy", "fantasy", "Fantasy"},
	}
}

func TestNormalizeGenres(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"comma separated entry", []string{"Action, Drama"}, []string{"Action", "Drama"}},
		{"duplicates dropped in order", []string{"Drama", "Action", "Drama"}, []string{"Drama", "Action"}},
		{"blanks dropped", []string{" ", "Horror,,"}, []string{"Horror"}},
		{"nothing left", []string{" , "}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeGenres(tt.in))
		})
	}
}

func TestShowcaseLimit(t *testing.T) {
	assert.Equal(t, DefaultShowcaseLimit, showcaseLimit(0))
	assert.Equal(t, 1, showcaseLimit(-3))
	assert.Equal(t, 12, showcaseLimit(12))
	assert.Equal(t, MaxShowcaseLimit, showcaseLimit(500))
}

func TestMovieService_CreateMovie(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	movie, err := svc.Movie.CreateMovie(ctx, validMovieRequest())
	require.NoError(t, err)

	assert.Equal(t, "Spirited Away", movie.Title)
	assert.Equal(t, []string{"Animation", "Fantasy", "fantasy"}, movie.Genres)
	assert.Equal(t, 1, store.Calls("Movie.Create"))

	detail, err := svc.Movie.GetMovieByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, movie.Title, detail.Title)
	assert.Empty(t, detail.Cast)
	assert.Zero(t, detail.ReviewStats.ReviewCount)
}

func TestMovieService_CreateMovie_Validation(t *testing.T) {
	svc, store := newTestService(t)

	req := validMovieRequest()
	req.Title = ""
	req.Year = 1800
	_, err := svc.Movie.CreateMovie(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "year")

	req = validMovieRequest()
	req.Genres = []string{" , "}
	_, err = svc.Movie.CreateMovie(context.Background(), req)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "genres")

	assert.Zero(t, store.Calls("Movie.Create"))
}

func TestMovieService_GetMovies(t *testing.T) {
	svc, store := newTestService(t)
	store.AddMovie("The Matrix", 1999, ptr(8.7), "Action", "Sci-Fi")
	store.AddMovie("Matrix Reloaded", 2003, ptr(7.2), "Action")
	store.AddMovie("Amelie", 2001, nil, "Romance")

	page, err := svc.Movie.GetMovies(context.Background(), &request.MovieListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Search:           "matrix",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, "Matrix Reloaded", page.Data[0].Title)

	page, err = svc.Movie.GetMovies(context.Background(), &request.MovieListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 2, PerPage: 2},
	})
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	page, err = svc.Movie.GetMovies(context.Background(), &request.MovieListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Genre:            "Romance",
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Amelie", page.Data[0].Title)
}

func TestMovieService_Showcases(t *testing.T) {
	svc, store := newTestService(t)
	store.AddMovie("Unrated", 2024, nil, "Drama")
	store.AddMovie("Good", 1990, ptr(7.0), "Drama")
	store.AddMovie("Best", 2010, ptr(9.1), "Drama")

	top, err := svc.Movie.GetTopRated(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"Best", "Good", "Unrated"}, []string{top[0].Title, top[1].Title, top[2].Title})

	fresh, err := svc.Movie.GetNewReleases(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "Unrated", fresh[0].Title)

	genres, err := svc.Movie.GetGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama"}, genres)
}

func TestMovieService_NotFoundAndInvalidID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Movie.GetMovieByID(ctx, "abc")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Movie.GetMovieByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Movie.UpdateMovie(ctx, uuid.NewString(), validMovieRequest())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Movie.DeleteMovie(ctx, uuid.NewString()), ErrNotFound)
}

func TestMovieService_UpdateMovie_RemovesReplacedImages(t *testing.T) {
	store := fakerepo.New()
	objects := &stubStorage{}
	svc := NewService(store.Repository(), objects, testConfig(), zap.NewNop())
	ctx := context.Background()

	req := validMovieRequest()
	req.BackgroundURL = ptr(stubBase + "backgrounds/old.jpg")
	movie, err := svc.Movie.CreateMovie(ctx, req)
	require.NoError(t, err)

	req = validMovieRequest()
	req.PosterURL = stubBase + "posters/new.jpg"
	req.Title = "Spirited Away (Remastered)"
	updated, err := svc.Movie.UpdateMovie(ctx, movie.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "Spirited Away (Remastered)", updated.Title)
	assert.Nil(t, updated.BackgroundURL)
	assert.ElementsMatch(t, []string{"posters/spirited-away.jpg", "backgrounds/old.jpg"}, objects.Deleted())
}

func TestMovieService_DeleteMovie_Cascades(t *testing.T) {
	store := fakerepo.New()
	objects := &stubStorage{}
	svc := NewService(store.Repository(), objects, testConfig(), zap.NewNop())
	ctx := context.Background()

	movie, err := svc.Movie.CreateMovie(ctx, validMovieRequest())
	require.NoError(t, err)
	movieID := uuid.MustParse(movie.ID)
	review := store.AddReview(movieID, "chihiro", 9, true)

	stats, err := svc.Review.GetMovieReviewStats(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.ReviewCount)

	require.NoError(t, svc.Movie.DeleteMovie(ctx, movie.ID))

	_, ok := store.Review(review.ID)
	assert.False(t, ok)
	assert.Equal(t, []string{"posters/spirited-away.jpg"}, objects.Deleted())

	_, err = svc.Review.GetMovieReviews(ctx, movie.ID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieService_CreateMovie_BlankFields(t *testing.T) {
	svc, store := newTestService(t)

	req := validMovieRequest()
	req.Title = "   "
	req.Overview = "\t"
	req.Duration = " "
	_, err := svc.Movie.CreateMovie(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "This field is required", verr.Fields["title"])
	assert.Contains(t, verr.Fields, "overview")
	assert.Contains(t, verr.Fields, "duration")
	assert.Zero(t, store.Calls("Movie.Create"))
}

func TestMovieService_CreateMovie_RejectsNonHTTPURLs(t *testing.T) {
	svc, _ := newTestService(t)

	req := validMovieRequest()
	req.PosterURL = "javascript:alert(1)"
	req.TrailerURL = ptr("data:text/html,hi")
	_, err := svc.Movie.CreateMovie(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Must be a valid URL", verr.Fields["poster_url"])
	assert.Contains(t, verr.Fields, "trailer_url")
}

func TestMovieService_RatingRoundedLikeColumn(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := validMovieRequest()
	req.Rating = ptr(8.75)
	movie, err := svc.Movie.CreateMovie(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, movie.Rating)
	assert.Equal(t, 8.8, *movie.Rating)

	req.Rating = ptr(6.04)
	updated, err := svc.Movie.UpdateMovie(ctx, movie.ID, req)
	require.NoError(t, err)
	assert.Equal(t, 6.0, *updated.Rating)

	req.Rating = nil
	updated, err = svc.Movie.UpdateMovie(ctx, movie.ID, req)
	require.NoError(t, err)
	assert.Nil(t, updated.Rating)
}
